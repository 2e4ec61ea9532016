package analytics

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"eventconnect/db"
	"eventconnect/models"
	"eventconnect/rdx"
	"eventconnect/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const cacheTTL = 60 * time.Second

// Summary is the organizer dashboard payload for one event.
type Summary struct {
	EventID             string           `json:"eventid"`
	TotalRegistrations  int64            `json:"totalRegistrations"`
	CheckedIn           int64            `json:"checkedIn"`
	CheckInRate         float64          `json:"checkInRate"`
	RegistrationsByDay  []DayCount       `json:"registrationsByDay"`
	RegistrationsByForm map[string]int64 `json:"registrationsByForm"`
	GeneratedAt         time.Time        `json:"generatedAt"`
}

type DayCount struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

func cacheKey(eventID string) string { return "analytics:event:" + eventID }

// InvalidateCache drops the cached summary so dashboards pick up a
// check-in without waiting out the TTL.
func InvalidateCache(eventID string) {
	if err := rdx.RdxDel(cacheKey(eventID)); err != nil {
		log.Printf("Analytics cache invalidation failed for %s: %v", eventID, err)
	}
}

// BuildSummary runs the aggregations for one event.
func BuildSummary(ctx context.Context, eventID string) (*Summary, error) {
	total, err := db.RegistrationsCollection.CountDocuments(ctx, bson.M{"eventid": eventID})
	if err != nil {
		return nil, err
	}
	checkedIn, err := db.RegistrationsCollection.CountDocuments(ctx, bson.M{"eventid": eventID, "checkedin": true})
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		EventID:             eventID,
		TotalRegistrations:  total,
		CheckedIn:           checkedIn,
		RegistrationsByForm: map[string]int64{},
		GeneratedAt:         time.Now(),
	}
	if total > 0 {
		summary.CheckInRate = float64(checkedIn) / float64(total)
	}

	byDay, err := db.RegistrationsCollection.Aggregate(ctx, mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"eventid": eventID}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   bson.M{"$dateToString": bson.M{"format": "%Y-%m-%d", "date": "$registrationdate"}},
			"count": bson.M{"$sum": 1},
		}}},
		bson.D{{Key: "$sort", Value: bson.M{"_id": 1}}},
	})
	if err != nil {
		return nil, err
	}
	defer byDay.Close(ctx)

	for byDay.Next(ctx) {
		var row struct {
			ID    string `bson:"_id"`
			Count int64  `bson:"count"`
		}
		if err := byDay.Decode(&row); err != nil {
			continue
		}
		summary.RegistrationsByDay = append(summary.RegistrationsByDay, DayCount{Day: row.ID, Count: row.Count})
	}

	byForm, err := db.RegistrationsCollection.Aggregate(ctx, mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"eventid": eventID}}},
		bson.D{{Key: "$group", Value: bson.M{"_id": "$formid", "count": bson.M{"$sum": 1}}}},
	})
	if err != nil {
		return nil, err
	}
	defer byForm.Close(ctx)

	for byForm.Next(ctx) {
		var row struct {
			ID    string `bson:"_id"`
			Count int64  `bson:"count"`
		}
		if err := byForm.Decode(&row); err != nil {
			continue
		}
		summary.RegistrationsByForm[row.ID] = row.Count
	}

	return summary, nil
}

// EventAnalytics handles GET /api/events/:eventid/analytics for the
// event creator. Summaries are cached briefly since dashboards poll.
func EventAnalytics(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")
	userID := utils.GetUserIDFromRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
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
		utils.RespondWithError(w, http.StatusForbidden, "Only the creator can view analytics")
		return
	}

	if cached, err := rdx.RdxGet(cacheKey(eventID)); err == nil && cached != "" {
		var summary Summary
		if json.Unmarshal([]byte(cached), &summary) == nil {
			utils.RespondWithJSON(w, http.StatusOK, summary)
			return
		}
	}

	summary, err := BuildSummary(ctx, eventID)
	if err != nil {
		log.Printf("Analytics aggregation failed for %s: %v", eventID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to build analytics")
		return
	}

	if data, err := json.Marshal(summary); err == nil {
		_ = rdx.SetWithExpiry(cacheKey(eventID), string(data), cacheTTL)
	}

	utils.RespondWithJSON(w, http.StatusOK, *summary)
}
