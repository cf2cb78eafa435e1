package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/KirkDiggler/rollcall/internal/notify"
	sessionService "github.com/KirkDiggler/rollcall/internal/services/session"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
)

// EventSource subscribes to a session's admission channel
type EventSource interface {
	Subscribe(ctx context.Context, sessionID string) *redis.PubSub
}

// handleSessionEvents streams admissions to the session owner as
// server-sent events until the session expires or the client leaves.
func (s *Server) handleSessionEvents(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	sessionID := chi.URLParam(r, "sessionId")

	found, err := s.sessions.GetSession(r.Context(), &sessionService.GetSessionInput{
		SessionID: sessionID,
	})
	if err != nil {
		writeServiceError(w, "get session", err)
		return
	}
	if found.Session.OwnerID != claims.UserID {
		writeError(w, http.StatusForbidden, "forbidden", "session belongs to another teacher")
		return
	}

	now := s.clock.Now()
	if !found.Session.IsActive(now) {
		writeError(w, http.StatusGone, "session_expired", "this attendance code has expired")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "server_error", "streaming unsupported")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), found.Session.Remaining(now))
	defer cancel()

	pubsub := s.events.Subscribe(ctx, sessionID)
	defer pubsub.Close()

	// wait for the subscription so nothing published after the headers is missed
	if _, err := pubsub.Receive(ctx); err != nil {
		log.Printf("Failed to subscribe to session %s: %v", sessionID, err)
		writeError(w, http.StatusInternalServerError, "server_error", "internal server error")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	messages := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}

			event, err := notify.DecodeEvent(msg)
			if err != nil {
				log.Printf("Failed to decode event on %s: %v", msg.Channel, err)
				continue
			}

			payload, err := json.Marshal(event)
			if err != nil {
				log.Printf("Failed to encode event: %v", err)
				continue
			}

			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, payload)
			flusher.Flush()
		}
	}
}
