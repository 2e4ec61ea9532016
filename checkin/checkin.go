package checkin

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"eventconnect/analytics"
	"eventconnect/db"
	"eventconnect/models"
	"eventconnect/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotRegistered    = errors.New("attendee is not registered")
	ErrAlreadyCheckedIn = errors.New("attendee is already checked in")
)

// markAttended flips a registration to checked-in. The filter matches
// only un-checked-in documents, so the stored timestamp is written
// once and never restamped.
func markAttended(ctx context.Context, eventID, registrationID string) error {
	now := time.Now()
	res, err := db.RegistrationsCollection.UpdateOne(ctx,
		bson.M{"eventid": eventID, "registrationid": registrationID, "checkedin": false},
		bson.M{"$set": bson.M{
			"checkedin":        true,
			"checkedintime":    now,
			"attendancestatus": models.AttendanceAttended,
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// Distinguish "never registered" from "already through the door"
		count, err := db.RegistrationsCollection.CountDocuments(ctx,
			bson.M{"eventid": eventID, "registrationid": registrationID})
		if err != nil {
			return err
		}
		if count == 0 {
			return ErrNotRegistered
		}
		return ErrAlreadyCheckedIn
	}
	return nil
}

// BulkCheckIn applies fn to each attendee id and itemizes every
// outcome. One bad id never aborts the rest of the batch.
func BulkCheckIn(attendeeIDs []string, fn func(id string) error) ([]models.CheckInResult, int) {
	results := make([]models.CheckInResult, 0, len(attendeeIDs))
	succeeded := 0

	for _, id := range attendeeIDs {
		if err := fn(id); err != nil {
			results = append(results, models.CheckInResult{AttendeeID: id, Succeeded: false, Reason: err.Error()})
			continue
		}
		results = append(results, models.CheckInResult{AttendeeID: id, Succeeded: true})
		succeeded++
	}
	return results, succeeded
}

func requireCreator(ctx context.Context, eventID, userID string) (int, string) {
	var event models.Event
	err := db.EventsCollection.FindOne(ctx, bson.M{"eventid": eventID}).Decode(&event)
	if err == mongo.ErrNoDocuments {
		return http.StatusNotFound, "Event not found"
	}
	if err != nil {
		return http.StatusInternalServerError, "Failed to fetch event"
	}
	if event.CreatorID != userID {
		return http.StatusForbidden, "Only the creator can check in attendees"
	}
	return 0, ""
}

// CheckInAttendee handles POST /api/events/:eventid/checkin/:attendeeid.
func CheckInAttendee(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")
	attendeeID := ps.ByName("attendeeid")
	userID := utils.GetUserIDFromRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if code, msg := requireCreator(ctx, eventID, userID); code != 0 {
		utils.RespondWithError(w, code, msg)
		return
	}

	err := markAttended(ctx, eventID, attendeeID)
	switch {
	case err == ErrNotRegistered:
		utils.RespondWithError(w, http.StatusNotFound, "Attendee is not registered for this event")
		return
	case err == ErrAlreadyCheckedIn:
		utils.RespondWithError(w, http.StatusConflict, "Attendee is already checked in")
		return
	case err != nil:
		log.Printf("Check-in failed for %s/%s: %v", eventID, attendeeID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Check-in failed")
		return
	}

	BroadcastCheckIn(eventID, attendeeID)
	analytics.InvalidateCache(eventID)

	utils.SendResponse(w, http.StatusOK, utils.M{"attendeeid": attendeeID, "checkedIn": true}, "Attendee checked in", nil)
}

// BulkCheckInHandler handles POST /api/events/:eventid/checkin with a
// JSON body of attendee ids. The response carries a result per id.
func BulkCheckInHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")
	userID := utils.GetUserIDFromRequest(r)

	var body struct {
		AttendeeIDs []string `json:"attendeeIds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || len(body.AttendeeIDs) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "attendeeIds is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	if code, msg := requireCreator(ctx, eventID, userID); code != 0 {
		utils.RespondWithError(w, code, msg)
		return
	}

	results, succeeded := BulkCheckIn(body.AttendeeIDs, func(id string) error {
		return markAttended(ctx, eventID, id)
	})

	for _, res := range results {
		if res.Succeeded {
			BroadcastCheckIn(eventID, res.AttendeeID)
		}
	}
	if succeeded > 0 {
		analytics.InvalidateCache(eventID)
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"results":      results,
		"successCount": succeeded,
		"failureCount": len(results) - succeeded,
	})
}
