package mq

import (
	"context"
	"encoding/json"
	"log"

	"eventconnect/models"
	"eventconnect/rdx"
	"eventconnect/search"
)

const channel = "eventconnect-events"

// Emit publishes a domain event to the internal Redis channel. Callers
// fire it from a goroutine; a lost message only delays reindexing.
func Emit(eventName string, content models.Index) {
	data, err := json.Marshal(content)
	if err != nil {
		log.Printf("[Emit] Failed to marshal %s: %v", eventName, err)
		return
	}

	if err := rdx.Conn.Publish(context.Background(), channel, data).Err(); err != nil {
		log.Printf("[Emit] Failed to publish %s: %v", eventName, err)
	}
}

// StartIndexingWorker consumes domain events and keeps the search
// index in step with event documents.
func StartIndexingWorker() {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, channel)
	ch := sub.Channel()

	log.Println("[IndexingWorker] Listening for domain events...")

	for msg := range ch {
		var event models.Index
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Printf("[IndexingWorker] Failed to parse event: %v", err)
			continue
		}

		if event.EntityType != "event" {
			continue
		}

		if err := search.ReindexFromDB(ctx, event.EntityId); err != nil {
			log.Printf("[IndexingWorker] Reindex error for %s: %v", event.EntityId, err)
		}
	}
}
