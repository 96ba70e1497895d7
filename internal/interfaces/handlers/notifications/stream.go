package notifications

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	notifsvc "helwati-backend/internal/application/notifications"
	"helwati-backend/internal/domain"
	"helwati-backend/internal/feed"
	"helwati-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	streamWriteWait   = 10 * time.Second
	streamPingPeriod  = 30 * time.Second
	streamReadTimeout = 60 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Session cookie is the auth boundary; origin is checked by CORS on the
	// rest of the API and the handshake carries the same cookie.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// streamEvent is the wire shape pushed to the client.
type streamEvent struct {
	Type         string                `json:"type"`
	Notification *domain.Notification  `json:"notification,omitempty"`
	Snapshot     []domain.Notification `json:"snapshot,omitempty"`
	UnreadCount  int                   `json:"unread_count"`
}

// Stream GET /api/v1/notifications/stream — upgrades to a websocket and
// pushes the recipient's current feed followed by live inserts from the
// recipient's Redis channel.
func (h *Handlers) Stream(c *fiber.Ctx) error {
	userID := actorUserID(c)
	if userID == uuid.Nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	return adaptor.HTTPHandlerFunc(h.streamHTTP(userID))(c)
}

func (h *Handlers) streamHTTP(recipient uuid.UUID) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Warn().Err(err).Str("user_id", recipient.String()).Msg("notifications stream: upgrade failed")
			return
		}
		defer conn.Close()

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		// Snapshot first, so the client renders without a separate list fetch
		snapshot, err := h.Service.List(ctx, recipient, notifsvc.DefaultListLimit)
		if err != nil {
			log.Error().Err(err).Str("user_id", recipient.String()).Msg("notifications stream: snapshot load failed")
			return
		}
		f := feed.New(recipient)
		f.Load(snapshot)
		if err := writeEvent(conn, streamEvent{Type: "snapshot", Snapshot: f.Entries(), UnreadCount: f.UnreadCount()}); err != nil {
			return
		}

		pubsub := h.Service.Rdb.Subscribe(ctx, notifsvc.ChannelPrefix+recipient.String())
		defer pubsub.Close()

		// Read loop only detects close; clients do not send commands here
		go func() {
			defer cancel()
			conn.SetReadLimit(512)
			_ = conn.SetReadDeadline(time.Now().Add(streamReadTimeout))
			conn.SetPongHandler(func(string) error {
				return conn.SetReadDeadline(time.Now().Add(streamReadTimeout))
			})
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		ticker := time.NewTicker(streamPingPeriod)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(streamWriteWait)); err != nil {
					return
				}
			case msg, ok := <-pubsub.Channel():
				if !ok {
					return
				}
				var n domain.Notification
				if err := json.Unmarshal([]byte(msg.Payload), &n); err != nil {
					log.Warn().Err(err).Msg("notifications stream: bad payload on channel")
					continue
				}
				before := f.Len()
				f.Append(n)
				if f.Len() == before {
					// duplicate, foreign, or self entry: feed rules dropped it
					continue
				}
				if err := writeEvent(conn, streamEvent{Type: "notification", Notification: &n, UnreadCount: f.UnreadCount()}); err != nil {
					return
				}
			}
		}
	}
}

func writeEvent(conn *websocket.Conn, ev streamEvent) error {
	_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
	return conn.WriteJSON(ev)
}
