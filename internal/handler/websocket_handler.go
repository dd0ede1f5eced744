package handler

import (
	"net/http"
	"strings"

	"github.com/dafibh/fortuna/fortuna-tracker/internal/domain"
	"github.com/dafibh/fortuna/fortuna-tracker/internal/websocket"
	ws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// StatusSource reports the facade's data access state
type StatusSource interface {
	Status() domain.Status
}

// WebSocketHandler upgrades UI connections and greets them with the current data state
type WebSocketHandler struct {
	hub       *websocket.Hub
	status    StatusSource
	origins   map[string]struct{}
	anyOrigin bool
	upgrader  ws.Upgrader
}

// NewWebSocketHandler creates a new WebSocketHandler. An origin of "*" accepts any origin.
func NewWebSocketHandler(hub *websocket.Hub, allowedOrigins []string, status StatusSource) *WebSocketHandler {
	h := &WebSocketHandler{
		hub:     hub,
		status:  status,
		origins: make(map[string]struct{}, len(allowedOrigins)),
	}
	for _, origin := range allowedOrigins {
		origin = normalizeOrigin(origin)
		if origin == "*" {
			h.anyOrigin = true
			continue
		}
		if origin != "" {
			h.origins[origin] = struct{}{}
		}
	}

	h.upgrader = ws.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

func normalizeOrigin(origin string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(origin)), "/")
}

// checkOrigin accepts non-browser clients that send no Origin header
func (h *WebSocketHandler) checkOrigin(r *http.Request) bool {
	origin := normalizeOrigin(r.Header.Get("Origin"))
	if origin == "" || h.anyOrigin {
		return true
	}
	if _, ok := h.origins[origin]; ok {
		return true
	}

	log.Warn().Str("origin", origin).Msg("WebSocket connection rejected: origin not allowed")
	return false
}

// greeting mirrors the last load outcome so a fresh UI knows whether data is usable
func (h *WebSocketHandler) greeting() (websocket.Event, bool) {
	if h.status == nil {
		return websocket.Event{}, false
	}
	status := h.status.Status()
	if status.Error != "" {
		return websocket.DataFailed(map[string]string{"error": status.Error}), true
	}
	if status.LoadedAt == nil {
		return websocket.Event{}, false
	}
	return websocket.DataReloaded(map[string]interface{}{"loadedAt": status.LoadedAt}), true
}

// HandleWS handles WebSocket connection requests at GET /ws.
// Clients receive transaction, goal and data reload events.
func (h *WebSocketHandler) HandleWS(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Debug().Err(err).Msg("WebSocket upgrade failed")
		return err
	}

	client := websocket.NewClient(conn, h.hub)
	if event, ok := h.greeting(); ok {
		if data, err := event.ToJSON(); err == nil {
			_ = client.Send(data)
		}
	}
	h.hub.Register(client)

	log.Info().
		Str("client_id", client.ID()).
		Int("client_count", h.hub.ClientCount()).
		Msg("WebSocket client connected")

	go client.WritePump()
	go client.ReadPump()

	return nil
}
