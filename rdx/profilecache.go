package rdx

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"eventconnect/models"

	"github.com/redis/go-redis/v9"
)

// Read-through cache for user profiles: populated on a successful
// identity fetch, invalidated on sign-out, never treated as the source
// of truth. Entries expire on their own so a stale profile self-heals.

const profileTTL = 15 * time.Minute

func profileKey(userID string) string { return "profile:" + userID }

func CacheProfile(ctx context.Context, p *models.Profile) {
	data, err := json.Marshal(p)
	if err != nil {
		log.Printf("Failed to marshal profile %s: %v", p.UserID, err)
		return
	}
	if err := Conn.Set(ctx, profileKey(p.UserID), data, profileTTL).Err(); err != nil {
		log.Printf("Failed to cache profile %s: %v", p.UserID, err)
	}
}

func GetCachedProfile(ctx context.Context, userID string) *models.Profile {
	data, err := Conn.Get(ctx, profileKey(userID)).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("Profile cache read error for %s: %v", userID, err)
		}
		return nil
	}
	var p models.Profile
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil
	}
	return &p
}

func InvalidateProfile(ctx context.Context, userID string) {
	if err := Conn.Del(ctx, profileKey(userID)).Err(); err != nil {
		log.Printf("Failed to invalidate profile %s: %v", userID, err)
	}
}
