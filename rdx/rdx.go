package rdx

import (
	"context"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

func init() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	Conn = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
}

// --- Plain key helpers ---

func RdxGet(key string) (string, error) {
	return Conn.Get(context.Background(), key).Result()
}

func RdxDel(key string) error {
	return Conn.Del(context.Background(), key).Err()
}

func SetWithExpiry(key, value string, ttl time.Duration) error {
	return Conn.Set(context.Background(), key, value, ttl).Err()
}

// --- Hash helpers ---

func RdxHset(hash, field, value string) error {
	return Conn.HSet(context.Background(), hash, field, value).Err()
}

func RdxHdel(hash, field string) (int64, error) {
	return Conn.HDel(context.Background(), hash, field).Result()
}
