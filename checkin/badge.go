package checkin

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"eventconnect/db"
	"eventconnect/models"
	"eventconnect/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	qrcode "github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// DownloadBadge handles GET /api/events/:eventid/badge: a printable
// PDF badge for the caller's own registration, QR code included.
func DownloadBadge(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var event models.Event
	if err := db.EventsCollection.FindOne(ctx, bson.M{"eventid": eventID}).Decode(&event); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Event not found")
		return
	}

	var reg models.Registration
	err := db.RegistrationsCollection.FindOne(ctx, bson.M{"eventid": eventID, "userid": userID}).Decode(&reg)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "You are not registered for this event")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load registration")
		return
	}

	qrPNG, err := qrcode.Encode(BuildQRPayload(eventID, reg.UniqueCode), qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	pdf := gofpdf.New("P", "mm", "A6", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 12, event.Title, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, event.StartDate.Format("Jan 2, 2006"), "", 1, "C", false, 0, "")
	if event.Location != "" {
		pdf.CellFormat(0, 7, event.Location, "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 9, reg.UserName, "", 1, "C", false, 0, "")

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("badge-qr", opts, bytes.NewReader(qrPNG))
	pageW, _ := pdf.GetPageSize()
	pdf.ImageOptions("badge-qr", (pageW-40)/2, pdf.GetY()+2, 40, 40, false, opts, 0, "")
	pdf.SetY(pdf.GetY() + 46)

	pdf.SetFont("Courier", "", 10)
	pdf.CellFormat(0, 6, reg.UniqueCode, "", 1, "C", false, 0, "")

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=badge-%s.pdf", eventID))
	if err := pdf.Output(w); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to render badge")
	}
}
