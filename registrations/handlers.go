package registrations

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"eventconnect/db"
	"eventconnect/models"
	"eventconnect/userdata"
	"eventconnect/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RegisterForEvent handles POST /api/events/:eventid/register.
func RegisterForEvent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user := profileFor(ctx, userID)
	// The token already carries the username; the profile lookup is
	// only needed for the email
	userName := utils.GetUsernameFromRequest(r)
	if userName == "" {
		userName = user.Name
	}

	reg, fieldErrs, err := Register(ctx, DefaultStore, eventID, userID, userName, user.Email, input)
	switch {
	case err == ErrEventNotFound:
		utils.RespondWithError(w, http.StatusNotFound, "Event not found")
		return
	case err == ErrFormNotFound:
		utils.RespondWithError(w, http.StatusNotFound, "Registration form not found")
		return
	case err == ErrAlreadyRegistered:
		utils.RespondWithError(w, http.StatusConflict, "You are already registered for this event")
		return
	case err == ErrEventClosed:
		utils.RespondWithError(w, http.StatusForbidden, "Event is not open for registration")
		return
	case err != nil:
		log.Printf("Registration failed for event %s: %v", eventID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	if len(fieldErrs) > 0 {
		utils.RespondWithJSON(w, http.StatusUnprocessableEntity, utils.M{"fieldErrors": fieldErrs})
		return
	}

	go userdata.AddUserData("registration", reg.RegistrationID, userID)

	utils.RespondWithJSON(w, http.StatusCreated, reg)
}

type profile struct {
	Name  string
	Email string
}

func profileFor(ctx context.Context, userID string) profile {
	var user models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user)
	if err != nil {
		return profile{}
	}
	return profile{Name: user.Username, Email: user.Email}
}

// CheckRegistration handles GET /api/events/:eventid/registrations/check
// so the client can disable the form without attempting a submit.
func CheckRegistration(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	count, err := db.RegistrationsCollection.CountDocuments(ctx, bson.M{"eventid": eventID, "userid": userID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to check registration")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"isRegistered": count > 0})
}

// GetAttendees handles GET /api/events/:eventid/attendees for the
// event creator, with paging and a name/email filter.
func GetAttendees(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")
	userID := utils.GetUserIDFromRequest(r)

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
	if event.CreatorID != userID {
		utils.RespondWithError(w, http.StatusForbidden, "Only the creator can view attendees")
		return
	}

	opts := utils.ParseQueryOptions(r)
	filter := bson.M{"eventid": eventID}
	if opts.Search != "" {
		filter["$or"] = []bson.M{
			{"username": bson.M{"$regex": opts.Search, "$options": "i"}},
			{"useremail": bson.M{"$regex": opts.Search, "$options": "i"}},
		}
	}
	if checkedIn := r.URL.Query().Get("checkedin"); checkedIn == "true" {
		filter["checkedin"] = true
	} else if checkedIn == "false" {
		filter["checkedin"] = false
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "registrationdate", Value: -1}}).
		SetSkip(int64((opts.Page - 1) * opts.Limit)).
		SetLimit(int64(opts.Limit))

	cursor, err := db.RegistrationsCollection.Find(ctx, filter, findOpts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch attendees")
		return
	}
	defer cursor.Close(ctx)

	attendees := []models.Registration{}
	if err := cursor.All(ctx, &attendees); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode attendees")
		return
	}

	total, _ := db.RegistrationsCollection.CountDocuments(ctx, bson.M{"eventid": eventID})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"attendees": attendees,
		"total":     total,
		"page":      opts.Page,
	})
}

// MyRegistrations handles GET /api/registrations for the current user.
func MyRegistrations(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cursor, err := db.RegistrationsCollection.Find(ctx, bson.M{"userid": userID},
		options.Find().SetSort(bson.D{{Key: "registrationdate", Value: -1}}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch registrations")
		return
	}
	defer cursor.Close(ctx)

	regs := []models.Registration{}
	if err := cursor.All(ctx, &regs); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode registrations")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, regs)
}

// CancelRegistration handles DELETE /api/events/:eventid/register.
// Checked-in attendees cannot cancel.
func CancelRegistration(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var reg models.Registration
	err := db.RegistrationsCollection.FindOneAndDelete(ctx, bson.M{
		"eventid":   eventID,
		"userid":    userID,
		"checkedin": false,
	}).Decode(&reg)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "No cancellable registration found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to cancel registration")
		return
	}

	go userdata.DelUserData("registration", reg.RegistrationID, userID)

	utils.SendResponse(w, http.StatusOK, nil, "Registration cancelled", nil)
}
