package db

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection          *mongo.Collection
	UserDataCollection      *mongo.Collection
	EventsCollection        *mongo.Collection
	RegistrationsCollection *mongo.Collection
	FilesCollection         *mongo.Collection
	Client                  *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	var err error
	Client, err = mongo.Connect(context.TODO(), options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	database := Client.Database("eventconnect")
	UserCollection = database.Collection("users")
	UserDataCollection = database.Collection("userdata")
	EventsCollection = database.Collection("events")
	RegistrationsCollection = database.Collection("registrations")
	FilesCollection = database.Collection("files")

	EnsureIndexes()
}

// EnsureIndexes creates the indexes the write paths rely on. The
// (eventid, userid) unique index is the duplicate-registration guard:
// the insert itself is the authoritative check, not a client pre-read.
func EnsureIndexes() {
	_, err := RegistrationsCollection.Indexes().CreateMany(context.TODO(), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "eventid", Value: 1}, {Key: "userid", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "eventid", Value: 1}, {Key: "uniquecode", Value: 1}},
		},
	})
	if err != nil {
		log.Printf("Error creating registration indexes: %v", err)
	}

	_, err = EventsCollection.Indexes().CreateOne(context.TODO(), mongo.IndexModel{
		Keys:    bson.D{{Key: "eventid", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Printf("Error creating event index: %v", err)
	}
}
