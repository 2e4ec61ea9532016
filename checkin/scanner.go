package checkin

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"eventconnect/analytics"
	"eventconnect/db"
	"eventconnect/globals"
	"eventconnect/models"
	"eventconnect/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrBadPayload = errors.New("invalid or tampered scan payload")

func sign(eventID, code string) string {
	mac := hmac.New(sha256.New, globals.JwtSecret)
	mac.Write([]byte(eventID + "|" + code))
	return hex.EncodeToString(mac.Sum(nil))
}

// BuildQRPayload encodes an attendee's unique code with an HMAC so a
// door scanner can trust it offline.
func BuildQRPayload(eventID, code string) string {
	return eventID + "|" + code + "|" + sign(eventID, code)
}

// VerifyQRPayload checks the signature and returns the event id and
// unique code it covers.
func VerifyQRPayload(payload string) (eventID, code string, err error) {
	parts := strings.Split(payload, "|")
	if len(parts) != 3 {
		return "", "", ErrBadPayload
	}
	eventID, code = parts[0], parts[1]
	if !hmac.Equal([]byte(parts[2]), []byte(sign(eventID, code))) {
		return "", "", ErrBadPayload
	}
	return eventID, code, nil
}

// ScanCheckIn handles POST /api/events/:eventid/scan: verify
// the QR payload, map the code to a registration, then check it in.
func ScanCheckIn(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	routeEventID := ps.ByName("eventid")
	userID := utils.GetUserIDFromRequest(r)

	var body struct {
		Payload string `json:"payload"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Payload == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "payload is required")
		return
	}

	eventID, code, err := VerifyQRPayload(body.Payload)
	if err != nil || eventID != routeEventID {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid scan payload")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if httpCode, msg := requireCreator(ctx, eventID, userID); httpCode != 0 {
		utils.RespondWithError(w, httpCode, msg)
		return
	}

	var reg models.Registration
	err = db.RegistrationsCollection.FindOne(ctx, bson.M{"eventid": eventID, "uniquecode": code}).Decode(&reg)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "No registration matches this code")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to look up registration")
		return
	}

	err = markAttended(ctx, eventID, reg.RegistrationID)
	switch {
	case err == ErrAlreadyCheckedIn:
		utils.RespondWithError(w, http.StatusConflict, "Attendee is already checked in")
		return
	case err != nil:
		utils.RespondWithError(w, http.StatusInternalServerError, "Check-in failed")
		return
	}

	BroadcastCheckIn(eventID, reg.RegistrationID)
	analytics.InvalidateCache(eventID)

	utils.SendResponse(w, http.StatusOK, utils.M{
		"attendeeid": reg.RegistrationID,
		"username":   reg.UserName,
	}, "Attendee checked in", nil)
}

// VerifyCode handles GET /api/events/:eventid/verify?code= for door
// staff typing a printed code instead of scanning.
func VerifyCode(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")
	userID := utils.GetUserIDFromRequest(r)

	code := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("code")))
	if code == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "code is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if httpCode, msg := requireCreator(ctx, eventID, userID); httpCode != 0 {
		utils.RespondWithError(w, httpCode, msg)
		return
	}

	var reg models.Registration
	err := db.RegistrationsCollection.FindOne(ctx, bson.M{"eventid": eventID, "uniquecode": code}).Decode(&reg)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "No registration matches this code")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to look up registration")
		return
	}

	err = markAttended(ctx, eventID, reg.RegistrationID)
	switch {
	case err == ErrAlreadyCheckedIn:
		utils.RespondWithError(w, http.StatusConflict, "Attendee is already checked in")
		return
	case err != nil:
		utils.RespondWithError(w, http.StatusInternalServerError, "Check-in failed")
		return
	}

	BroadcastCheckIn(eventID, reg.RegistrationID)
	analytics.InvalidateCache(eventID)

	utils.SendResponse(w, http.StatusOK, utils.M{
		"attendeeid": reg.RegistrationID,
		"username":   reg.UserName,
	}, "Attendee checked in", nil)
}
