package events

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"eventconnect/db"
	"eventconnect/forms"
	"eventconnect/models"
	"eventconnect/mq"
	"eventconnect/search"
	"eventconnect/userdata"
	"eventconnect/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const maxUploadSize = 50 << 20

// CreateEvent handles POST /api/events. The request is multipart: an
// "event" part carrying the JSON document plus any asset slots. Files
// are stored before the event document is written; if any upload
// fails the event is not created.
func CreateEvent(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	var event models.Event
	if err := json.Unmarshal([]byte(r.FormValue("event")), &event); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid event payload")
		return
	}

	assignIDs(&event)
	if errs := ValidateEvent(&event); len(errs) > 0 {
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{"errors": errs})
		return
	}

	results, err := ResolveAll(CollectAssets(r), DefaultUploader)
	if err != nil {
		log.Printf("Event asset upload failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "File upload failed")
		return
	}
	ApplyAssets(&event, results)

	event.EventID = "e" + utils.GenerateID(14)
	event.CreatorID = userID
	if event.Status == "" {
		event.Status = "published"
	}
	event.CreatedAt = time.Now()
	event.UpdatedAt = event.CreatedAt

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := db.EventsCollection.InsertOne(ctx, event); err != nil {
		log.Printf("Error inserting event: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create event")
		return
	}

	go mq.Emit("event-created", models.Index{EntityType: "event", EntityId: event.EventID, Method: "POST"})
	go userdata.AddUserData("event", event.EventID, userID)

	utils.RespondWithJSON(w, http.StatusCreated, event)
}

// GetEvent handles GET /api/events/:eventid and attaches the current
// registration count. Authenticated viewers also learn whether they
// are registered.
func GetEvent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var event models.Event
	err := db.EventsCollection.FindOne(ctx, bson.M{"eventid": eventID}).Decode(&event)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Event not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch event")
		return
	}

	count, err := db.RegistrationsCollection.CountDocuments(ctx, bson.M{"eventid": eventID})
	if err == nil {
		event.RegisteredCount = int(count)
	}

	if userID := utils.GetUserIDFromRequest(r); userID != "" {
		mine, err := db.RegistrationsCollection.CountDocuments(ctx, bson.M{"eventid": eventID, "userid": userID})
		if err == nil {
			registered := mine > 0
			event.IsRegistered = &registered
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, event)
}

// GetEvents handles GET /api/events with paging and optional
// category/mode filters, soonest first.
func GetEvents(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	opts := utils.ParseQueryOptions(r)

	filter := bson.M{}
	if category := r.URL.Query().Get("category"); category != "" {
		filter["category"] = category
	}
	if mode := r.URL.Query().Get("mode"); mode != "" {
		filter["mode"] = mode
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	findOpts := options.Find().
		SetSort(bson.D{{Key: "startdate", Value: 1}}).
		SetSkip(int64((opts.Page - 1) * opts.Limit)).
		SetLimit(int64(opts.Limit))

	cursor, err := db.EventsCollection.Find(ctx, filter, findOpts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch events")
		return
	}
	defer cursor.Close(ctx)

	events := []models.Event{}
	if err := cursor.All(ctx, &events); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode events")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, events)
}

// EditEvent handles PUT /api/events/:eventid. Only the creator may
// edit. Like creation, asset uploads must all succeed before the
// document changes.
func EditEvent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")
	userID := utils.GetUserIDFromRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var existing models.Event
	err := db.EventsCollection.FindOne(ctx, bson.M{"eventid": eventID}).Decode(&existing)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Event not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch event")
		return
	}
	if existing.CreatorID != userID {
		utils.RespondWithError(w, http.StatusForbidden, "Only the creator can edit this event")
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	payload := []byte(r.FormValue("event"))

	var event models.Event
	if err := json.Unmarshal(payload, &event); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid event payload")
		return
	}

	assignIDs(&event)
	if errs := ValidateEvent(&event); len(errs) > 0 {
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{"errors": errs})
		return
	}

	carryForwardAssets(&event, &existing, payload)

	results, err := ResolveAll(CollectAssets(r), DefaultUploader)
	if err != nil {
		log.Printf("Event asset upload failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "File upload failed")
		return
	}
	ApplyAssets(&event, results)

	event.EventID = existing.EventID
	event.CreatorID = existing.CreatorID
	event.CreatedAt = existing.CreatedAt
	event.UpdatedAt = time.Now()

	if _, err := db.EventsCollection.ReplaceOne(ctx, bson.M{"eventid": eventID}, event); err != nil {
		log.Printf("Error updating event: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update event")
		return
	}

	go mq.Emit("event-updated", models.Index{EntityType: "event", EntityId: eventID, Method: "PUT"})

	utils.RespondWithJSON(w, http.StatusOK, event)
}

// carryForwardAssets keeps existing asset URLs only when the update
// payload omits the field entirely. An explicit empty value clears the
// asset; a field that is simply absent means "leave it alone".
func carryForwardAssets(event, existing *models.Event, payload []byte) {
	var patch struct {
		BannerURL *string `json:"bannerUrl"`
		ImageURL  *string `json:"imageUrl"`
		Materials *struct {
			GalleryImages *[]string `json:"galleryImages"`
			Documents     *[]string `json:"documents"`
		} `json:"materials"`
	}
	if err := json.Unmarshal(payload, &patch); err != nil {
		return
	}

	if patch.BannerURL == nil {
		event.BannerURL = existing.BannerURL
	}
	if patch.ImageURL == nil {
		event.ImageURL = existing.ImageURL
	}
	if patch.Materials == nil || patch.Materials.GalleryImages == nil {
		event.Materials.GalleryImages = existing.Materials.GalleryImages
	}
	if patch.Materials == nil || patch.Materials.Documents == nil {
		event.Materials.Documents = existing.Materials.Documents
	}
}

// DeleteEvent handles DELETE /api/events/:eventid. Registrations for
// the event are removed with it.
func DeleteEvent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")
	userID := utils.GetUserIDFromRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var existing models.Event
	err := db.EventsCollection.FindOne(ctx, bson.M{"eventid": eventID}).Decode(&existing)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Event not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch event")
		return
	}
	if existing.CreatorID != userID {
		utils.RespondWithError(w, http.StatusForbidden, "Only the creator can delete this event")
		return
	}

	if _, err := db.EventsCollection.DeleteOne(ctx, bson.M{"eventid": eventID}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete event")
		return
	}
	if _, err := db.RegistrationsCollection.DeleteMany(ctx, bson.M{"eventid": eventID}); err != nil {
		log.Printf("Error deleting registrations for event %s: %v", eventID, err)
	}

	if err := search.RemoveEvent(ctx, eventID); err != nil {
		log.Printf("Error deindexing event %s: %v", eventID, err)
	}
	go userdata.DelUserData("event", eventID, userID)

	utils.SendResponse(w, http.StatusOK, nil, "Event deleted successfully", nil)
}

// GetEventForms handles GET /api/events/:eventid/forms.
func GetEventForms(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var event models.Event
	err := db.EventsCollection.FindOne(ctx, bson.M{"eventid": eventID}).Decode(&event)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Event not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch event")
		return
	}

	registrationForms := event.RegistrationForms
	if registrationForms == nil {
		registrationForms = []models.RegistrationForm{}
	}
	utils.RespondWithJSON(w, http.StatusOK, registrationForms)
}

// GetFormControls handles GET /api/events/:eventid/forms/:formid and
// returns the form plus the render plan derived from its fields.
func GetFormControls(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")
	formID := ps.ByName("formid")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var event models.Event
	err := db.EventsCollection.FindOne(ctx, bson.M{"eventid": eventID}).Decode(&event)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Event not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch event")
		return
	}

	form := event.FormByID(formID)
	if form == nil {
		utils.RespondWithError(w, http.StatusNotFound, "Registration form not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"form":     form,
		"controls": forms.BuildControls(form.FormFields),
	})
}
