package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"eventconnect/db"
	"eventconnect/globals"
	"eventconnect/middleware"
	"eventconnect/models"
	"eventconnect/rdx"
	"eventconnect/utils"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

const (
	refreshTokenTTL = 7 * 24 * time.Hour
	accessTokenTTL  = 15 * time.Minute
)

func sendError(w http.ResponseWriter, code int, msg string) {
	utils.RespondWithError(w, code, msg)
}

func generateAccessToken(user models.User) (string, error) {
	claims := middleware.Claims{
		Username: user.Username,
		UserID:   user.UserID,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.UserID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(accessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(globals.JwtSecret)
}

func generateRefreshToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func registerHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.Username == "" || input.Email == "" || len(input.Password) < 8 {
		sendError(w, http.StatusBadRequest, "Username, email and a password of at least 8 characters are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	count, err := db.UserCollection.CountDocuments(ctx, bson.M{"$or": []bson.M{
		{"username": input.Username},
		{"email": input.Email},
	}})
	if err != nil {
		sendError(w, http.StatusInternalServerError, "Failed to check existing users")
		return
	}
	if count > 0 {
		sendError(w, http.StatusConflict, "Username or email already taken")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		sendError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	user := models.User{
		UserID:    "u" + utils.GenerateID(12),
		Username:  input.Username,
		Email:     input.Email,
		Password:  string(hashed),
		Role:      []string{"user"},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if _, err := db.UserCollection.InsertOne(ctx, user); err != nil {
		log.Printf("Error creating user: %v", err)
		sendError(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	utils.SendResponse(w, http.StatusCreated, map[string]string{
		"userid":   user.UserID,
		"username": user.Username,
	}, "Account created", nil)
}

func loginHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Username == "" || input.Password == "" {
		sendError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var storedUser models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"username": input.Username}).Decode(&storedUser)
	if err != nil {
		sendError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(storedUser.Password), []byte(input.Password)); err != nil {
		sendError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	tokenString, err := generateAccessToken(storedUser)
	if err != nil {
		sendError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	refreshToken, err := generateRefreshToken()
	if err != nil {
		sendError(w, http.StatusInternalServerError, "Failed to generate refresh token")
		return
	}

	_, err = db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": storedUser.UserID},
		bson.M{"$set": bson.M{
			"refreshtoken": hashToken(refreshToken),
			"refreshexp":   time.Now().Add(refreshTokenTTL),
			"last_login":   time.Now(),
		}},
	)
	if err != nil {
		sendError(w, http.StatusInternalServerError, "Failed to store refresh token")
		return
	}

	if err := rdx.RdxHset("sessions", storedUser.UserID, tokenString); err != nil {
		log.Printf("Redis session storage failed: %v", err)
	}

	utils.SendResponse(w, http.StatusOK, map[string]string{
		"token":        tokenString,
		"refreshToken": refreshToken,
		"userid":       storedUser.UserID,
	}, "Login successful", nil)
}

func refreshTokenHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		UserID       string `json:"userid"`
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.RefreshToken == "" {
		sendError(w, http.StatusBadRequest, "Refresh token is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var storedUser models.User
	err := db.UserCollection.FindOne(ctx, bson.M{
		"userid":       input.UserID,
		"refreshtoken": hashToken(input.RefreshToken),
	}).Decode(&storedUser)
	if err == mongo.ErrNoDocuments || (err == nil && time.Now().After(storedUser.RefreshExpiry)) {
		sendError(w, http.StatusUnauthorized, "Invalid or expired refresh token")
		return
	}
	if err != nil {
		sendError(w, http.StatusInternalServerError, "Failed to verify refresh token")
		return
	}

	tokenString, err := generateAccessToken(storedUser)
	if err != nil {
		sendError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	utils.SendResponse(w, http.StatusOK, map[string]string{"token": tokenString}, "Token refreshed", nil)
}

func logoutUserHandler(w http.ResponseWriter, r *http.Request) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		sendError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	_, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{"$unset": bson.M{"refreshtoken": "", "refreshexp": ""}},
	)
	if err != nil {
		sendError(w, http.StatusInternalServerError, "Failed to log out")
		return
	}

	if _, err := rdx.RdxHdel("sessions", userID); err != nil {
		log.Printf("Redis session removal failed: %v", err)
	}
	rdx.InvalidateProfile(ctx, userID)

	utils.SendResponse(w, http.StatusOK, nil, "Logged out successfully", nil)
}
