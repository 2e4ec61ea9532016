package models

import "time"

type User struct {
	UserID        string    `json:"userid" bson:"userid"`
	Username      string    `json:"username" bson:"username"`
	Email         string    `json:"email" bson:"email"`
	Password      string    `json:"-" bson:"password"`
	Role          []string  `json:"role" bson:"role"`
	Name          string    `json:"name,omitempty" bson:"name,omitempty"`
	Bio           string    `json:"bio,omitempty" bson:"bio,omitempty"`
	Avatar        string    `json:"avatar" bson:"avatar"`
	PhoneNumber   string    `json:"phone_number,omitempty" bson:"phone_number,omitempty"`
	EmailVerified bool      `json:"email_verified" bson:"email_verified"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at"`
	LastLogin     time.Time `json:"last_login" bson:"last_login"`
	RefreshToken  string    `json:"-" bson:"refreshtoken,omitempty"`
	RefreshExpiry time.Time `json:"refreshexp" bson:"refreshexp"`
}

// Profile is the cached, client-facing slice of a User. It is a
// read-through cache entry, never the source of truth.
type Profile struct {
	UserID    string    `json:"userid" bson:"userid"`
	Username  string    `json:"username" bson:"username"`
	Email     string    `json:"email" bson:"email"`
	Name      string    `json:"name,omitempty" bson:"name,omitempty"`
	Bio       string    `json:"bio,omitempty" bson:"bio,omitempty"`
	Avatar    string    `json:"avatar" bson:"avatar"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

type UserData struct {
	UserID     string `json:"userid" bson:"userid"`
	EntityID   string `json:"entity_id" bson:"entity_id"`
	EntityType string `json:"entity_type" bson:"entity_type"`
	ItemID     string `json:"item_id" bson:"item_id"`
	ItemType   string `json:"item_type" bson:"item_type"`
	CreatedAt  string `json:"created_at" bson:"created_at"`
}

// Index is the message shape published on the internal event channel.
type Index struct {
	EntityType string `json:"entity_type"`
	Method     string `json:"method"`
	EntityId   string `json:"entity_id"`
	ItemId     string `json:"item_id"`
	ItemType   string `json:"item_type"`
}
