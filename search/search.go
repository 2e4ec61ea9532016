package search

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"

	"eventconnect/db"
	"eventconnect/models"
	"eventconnect/rdx"
	"eventconnect/utils"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/redis/go-redis/v9"
)

// -------------------------
// Tokenization
// -------------------------

var tokenRegex = regexp.MustCompile(`(?i)[A-Za-z0-9_]+`)
var stopWords = map[string]bool{
	"the": true, "and": true, "of": true, "in": true, "to": true,
	"for": true, "on": true, "with": true, "a": true, "an": true,
}

func Tokenize(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	matches := tokenRegex.FindAllString(text, -1)

	out := make([]string, 0, len(matches))
	seen := map[string]struct{}{}
	for _, m := range matches {
		t := strings.ToLower(m)
		if stopWords[t] {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func invertedKey(token string) string { return "inverted:event:" + token }

// tokensKey stores the token set an event was last indexed under, so
// a reindex can remove entries for text that no longer exists.
func tokensKey(eventID string) string { return "event:tokens:" + eventID }

// tempSearchKey names the scratch sorted set for one query. Unique per
// call so concurrent identical queries never delete each other's
// intermediate results.
func tempSearchKey() string { return "search:tmp:" + utils.GetUUID() }

// -------------------------
// Indexing flows
// -------------------------

// IndexEvent adds the event to the inverted index keyed by the tokens
// of its title, category and tags, and records the token set for the
// next reindex.
func IndexEvent(ctx context.Context, event *models.Event) error {
	text := strings.Join(append([]string{event.Title, event.Category, event.Description}, event.Tags...), " ")
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return nil
	}

	members := make([]any, len(tokens))
	for i, t := range tokens {
		members[i] = t
	}

	score := float64(event.CreatedAt.UnixNano())
	pipe := rdx.Conn.Pipeline()
	for _, token := range tokens {
		pipe.ZAdd(ctx, invertedKey(token), redis.Z{Score: score, Member: event.EventID})
	}
	pipe.Del(ctx, tokensKey(event.EventID))
	pipe.SAdd(ctx, tokensKey(event.EventID), members...)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("index event %s: %w", event.EventID, err)
	}
	return nil
}

// RemoveEvent drops the event from every token set it was indexed
// under, using the stored token set rather than the current document
// text so stale tokens come out too.
func RemoveEvent(ctx context.Context, eventID string) error {
	tokens, err := rdx.Conn.SMembers(ctx, tokensKey(eventID)).Result()
	if err != nil {
		return fmt.Errorf("load token set for %s: %w", eventID, err)
	}
	if len(tokens) == 0 {
		return nil
	}

	pipe := rdx.Conn.Pipeline()
	for _, token := range tokens {
		pipe.ZRem(ctx, invertedKey(token), eventID)
	}
	pipe.Del(ctx, tokensKey(eventID))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("deindex event %s: %w", eventID, err)
	}
	return nil
}

// ReindexFromDB rebuilds the index entry for one event id, used by the
// indexing worker when it receives an event-changed message. The old
// token set is removed first so edits drop tokens that no longer
// appear in the event text.
func ReindexFromDB(ctx context.Context, eventID string) error {
	if err := RemoveEvent(ctx, eventID); err != nil {
		log.Printf("Deindex before reindex failed for %s: %v", eventID, err)
	}

	var event models.Event
	err := db.EventsCollection.FindOne(ctx, bson.M{"eventid": eventID}).Decode(&event)
	if err != nil {
		return fmt.Errorf("load event %s: %w", eventID, err)
	}
	return IndexEvent(ctx, &event)
}

// -------------------------
// Query flow
// -------------------------

// QueryEvents intersects the token sets for the query terms and loads
// the matching events, newest first.
func QueryEvents(ctx context.Context, query string, limit int) ([]models.Event, error) {
	tokens := Tokenize(query)
	if len(tokens) == 0 {
		return []models.Event{}, nil
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}

	keys := make([]string, 0, len(tokens))
	for _, t := range tokens {
		keys = append(keys, invertedKey(t))
	}

	tmpKey := tempSearchKey()
	if err := rdx.Conn.ZInterStore(ctx, tmpKey, &redis.ZStore{Keys: keys}).Err(); err != nil {
		return nil, fmt.Errorf("intersect tokens: %w", err)
	}
	defer rdx.Conn.Del(ctx, tmpKey)

	ids, err := rdx.Conn.ZRevRange(ctx, tmpKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("read results: %w", err)
	}
	if len(ids) == 0 {
		return []models.Event{}, nil
	}

	cursor, err := db.EventsCollection.Find(ctx, bson.M{"eventid": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []models.Event
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}

	// Preserve relevance ordering from the index
	byID := make(map[string]models.Event, len(events))
	for _, e := range events {
		byID[e.EventID] = e
	}
	ordered := make([]models.Event, 0, len(events))
	for _, id := range ids {
		if e, ok := byID[id]; ok {
			ordered = append(ordered, e)
		}
	}

	log.Printf("Search %q matched %d events", query, len(ordered))
	return ordered, nil
}
