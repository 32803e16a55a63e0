package handlers

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/creative-automation/backend/internal/events"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// WSHub fans campaign events out to websocket clients following a campaign.
// Each connection subscribes to one campaign id via query parameter.
type WSHub struct {
	subscriber  events.Subscriber
	log         *zap.Logger
	mu          sync.RWMutex
	connections map[string][]*websocket.Conn
}

func NewWSHub(subscriber events.Subscriber, log *zap.Logger) *WSHub {
	return &WSHub{
		subscriber:  subscriber,
		log:         log,
		connections: make(map[string][]*websocket.Conn),
	}
}

func (h *WSHub) Start(ctx context.Context) {
	_ = h.subscriber.Subscribe(ctx, events.StreamCampaign, func(event events.Event) {
		h.broadcast(event)
	})
}

// broadcast routes an event to the connections watching its campaign.
func (h *WSHub) broadcast(event events.Event) {
	campaignID, _ := event.Payload["campaign_id"].(string)
	if campaignID == "" {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, conn := range h.connections[campaignID] {
		_ = conn.WriteMessage(websocket.TextMessage, data)
	}
}

// WSUpgradeMiddleware checks for websocket upgrade
func WSUpgradeMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}
}

func (h *WSHub) HandleWS(conn *websocket.Conn) {
	campaignID := conn.Query("campaign_id")
	if campaignID == "" {
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"missing campaign_id"}`))
		conn.Close()
		return
	}

	// Register
	h.mu.Lock()
	h.connections[campaignID] = append(h.connections[campaignID], conn)
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		conns := h.connections[campaignID]
		for i, c := range conns {
			if c == conn {
				h.connections[campaignID] = append(conns[:i], conns[i+1:]...)
				break
			}
		}
		if len(h.connections[campaignID]) == 0 {
			delete(h.connections, campaignID)
		}
		h.mu.Unlock()
		conn.Close()
	}()

	// Read loop (keep alive / pings)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
