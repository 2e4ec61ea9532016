package userdata

import (
	"context"
	"log"
	"net/http"
	"time"

	"eventconnect/db"
	"eventconnect/models"
	"eventconnect/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var validEntityTypes = map[string]bool{
	"event":        true,
	"registration": true,
}

// AddUserData records that a user owns or holds an entity. Callers
// fire it from a goroutine after the entity write succeeds.
func AddUserData(entityType, entityID, userID string) {
	if !validEntityTypes[entityType] {
		log.Printf("Skipping userdata record for unknown entity type %q", entityType)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	record := models.UserData{
		UserID:     userID,
		EntityID:   entityID,
		EntityType: entityType,
		CreatedAt:  time.Now().Format(time.RFC3339),
	}
	if _, err := db.UserDataCollection.InsertOne(ctx, record); err != nil {
		log.Printf("Failed to record userdata %s/%s: %v", entityType, entityID, err)
	}
}

// DelUserData removes the ownership record when the entity goes away.
func DelUserData(entityType, entityID, userID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := db.UserDataCollection.DeleteMany(ctx, bson.M{
		"entity_type": entityType,
		"entity_id":   entityID,
		"userid":      userID,
	})
	if err != nil {
		log.Printf("Failed to delete userdata %s/%s: %v", entityType, entityID, err)
	}
}

// GetUserData handles GET /api/user/:userid/data/:entitytype and
// returns the entity ids the user holds, newest first.
func GetUserData(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	entityType := ps.ByName("entitytype")
	if !validEntityTypes[entityType] {
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown entity type")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cursor, err := db.UserDataCollection.Find(ctx,
		bson.M{"userid": ps.ByName("userid"), "entity_type": entityType},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch user data")
		return
	}
	defer cursor.Close(ctx)

	records := []models.UserData{}
	if err := cursor.All(ctx, &records); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode user data")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, records)
}
