package checkin

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"eventconnect/globals"
	"eventconnect/middleware"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// hub fans check-in notifications out to dashboards watching an event.
type hub struct {
	mu    sync.RWMutex
	conns map[string]map[*websocket.Conn]bool
}

var feed = &hub{conns: make(map[string]map[*websocket.Conn]bool)}

func (h *hub) add(eventID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conns[eventID] == nil {
		h.conns[eventID] = make(map[*websocket.Conn]bool)
	}
	h.conns[eventID][conn] = true
}

func (h *hub) remove(eventID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns[eventID], conn)
	conn.Close()
}

// BroadcastCheckIn pushes a check-in notification to every dashboard
// watching the event. Slow or dead connections are dropped.
func BroadcastCheckIn(eventID, attendeeID string) {
	msg := map[string]any{
		"type":       "checkin",
		"eventid":    eventID,
		"attendeeid": attendeeID,
		"at":         time.Now().Format(time.RFC3339),
	}

	feed.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(feed.conns[eventID]))
	for conn := range feed.conns[eventID] {
		conns = append(conns, conn)
	}
	feed.mu.RUnlock()

	for _, conn := range conns {
		if err := conn.WriteJSON(msg); err != nil {
			feed.remove(eventID, conn)
		}
	}
}

// CheckInFeed handles GET /ws/events/:eventid/checkins. Browsers
// cannot set headers on websocket requests, so the JWT rides in the
// token query param; only the event creator may subscribe.
func CheckInFeed(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")

	raw := r.URL.Query().Get("token")
	if raw == "" {
		http.Error(w, "Missing token", http.StatusUnauthorized)
		return
	}
	claims := &middleware.Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return globals.JwtSecret, nil
	})
	if err != nil || !token.Valid {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if code, msg := requireCreator(ctx, eventID, claims.UserID); code != 0 {
		http.Error(w, msg, code)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	feed.add(eventID, conn)
	defer feed.remove(eventID, conn)

	// The reader only exists to notice disconnects
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
