package filemgr

import (
	"context"
	"log"
	"time"

	"eventconnect/db"

	"go.mongodb.org/mongo-driver/bson"
)

// recordUpload keeps an audit row per stored file so orphaned uploads
// can be swept later. Best effort; a miss never fails the upload.
func recordUpload(entity EntityType, picType PictureType, filename string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := db.FilesCollection.InsertOne(ctx, bson.M{
		"filename":    filename,
		"entity":      string(entity),
		"pictype":     string(picType),
		"path":        PublicPath(entity, picType, filename),
		"uploaded_at": time.Now(),
	})
	if err != nil {
		log.Printf("Failed to record upload %s: %v", filename, err)
	}
}
