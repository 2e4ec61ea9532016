package profile

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"eventconnect/db"
	"eventconnect/filemgr"
	"eventconnect/models"
	"eventconnect/rdx"
	"eventconnect/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func toProfile(user *models.User) *models.Profile {
	return &models.Profile{
		UserID:    user.UserID,
		Username:  user.Username,
		Email:     user.Email,
		Name:      user.Name,
		Bio:       user.Bio,
		Avatar:    user.Avatar,
		CreatedAt: user.CreatedAt,
	}
}

// loadProfile goes through the cache first; on a miss it reads Mongo
// and fills the cache.
func loadProfile(ctx context.Context, userID string) (*models.Profile, error) {
	if cached := rdx.GetCachedProfile(ctx, userID); cached != nil {
		return cached, nil
	}

	var user models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user)
	if err != nil {
		return nil, err
	}

	p := toProfile(&user)
	rdx.CacheProfile(ctx, p)
	return p, nil
}

// GetMyProfile handles GET /api/profile.
func GetMyProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	p, err := loadProfile(ctx, userID)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Profile not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load profile")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, p)
}

// GetUserProfile handles GET /api/user/:userid.
func GetUserProfile(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	p, err := loadProfile(ctx, ps.ByName("userid"))
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Profile not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load profile")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, p)
}

// EditProfile handles PUT /api/profile. Writes go to Mongo, then the
// cache entry is dropped so the next read repopulates it.
func EditProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input struct {
		Name        string `json:"name"`
		Bio         string `json:"bio"`
		PhoneNumber string `json:"phone_number"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	update := bson.M{"updated_at": time.Now()}
	if strings.TrimSpace(input.Name) != "" {
		update["name"] = strings.TrimSpace(input.Name)
	}
	if input.Bio != "" {
		update["bio"] = input.Bio
	}
	if input.PhoneNumber != "" {
		update["phone_number"] = input.PhoneNumber
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.UserCollection.UpdateOne(ctx, bson.M{"userid": userID}, bson.M{"$set": update})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Profile not found")
		return
	}

	rdx.InvalidateProfile(ctx, userID)

	p, err := loadProfile(ctx, userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load profile")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, p)
}

// UploadAvatar handles PUT /api/profile/avatar as a multipart form
// with an "avatar" file part.
func UploadAvatar(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "avatar file is required")
		return
	}

	name, err := filemgr.SaveFileForEntity(file, header, filemgr.EntityUser, filemgr.PicPhoto)
	if err != nil {
		log.Printf("Avatar upload failed for %s: %v", userID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to store avatar")
		return
	}
	url := filemgr.PublicPath(filemgr.EntityUser, filemgr.PicPhoto, name)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := db.UserCollection.UpdateOne(ctx, bson.M{"userid": userID},
		bson.M{"$set": bson.M{"avatar": url, "updated_at": time.Now()}}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	rdx.InvalidateProfile(ctx, userID)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"avatar": url})
}
