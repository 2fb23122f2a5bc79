package handlers

import (
	"context"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"repobrowser/internal/application/service"
	"repobrowser/internal/domain/browser"
	"repobrowser/internal/domain/events"
	"repobrowser/internal/middleware"
)

const (
	sseClientBuffer   = 16
	sseSendTimeout    = time.Second
	sseHeartbeatEvery = 30 * time.Second
)

// SSEClient represents a connected SSE client
type SSEClient struct {
	ID        string
	SessionID string
	Channel   chan events.Envelope
}

// SSEManager fans browser events out to the event streams of their session
type SSEManager struct {
	clients map[string][]*SSEClient // sessionID -> clients
	mu      sync.RWMutex
	logger  zerolog.Logger
}

// NewSSEManager creates a new SSE manager
func NewSSEManager(logger zerolog.Logger) *SSEManager {
	return &SSEManager{
		clients: make(map[string][]*SSEClient),
		logger:  logger,
	}
}

// AddClient registers a new SSE client
func (m *SSEManager) AddClient(client *SSEClient) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.clients[client.SessionID] = append(m.clients[client.SessionID], client)
}

// RemoveClient removes an SSE client
func (m *SSEManager) RemoveClient(sessionID string, clientID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	clients := m.clients[sessionID]
	for i, client := range clients {
		if client.ID == clientID {
			close(client.Channel)
			m.clients[sessionID] = append(clients[:i], clients[i+1:]...)
			break
		}
	}

	if len(m.clients[sessionID]) == 0 {
		delete(m.clients, sessionID)
	}
}

// Broadcast sends an envelope to every client of a session
func (m *SSEManager) Broadcast(sessionID string, env events.Envelope) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, client := range m.clients[sessionID] {
		select {
		case client.Channel <- env:
		case <-time.After(sseSendTimeout):
			m.logger.Warn().
				Str("session_id", sessionID).
				Str("client_id", client.ID).
				Str("event_type", env.Type).
				Msg("Dropped event for slow SSE client")
		}
	}
}

// HandleEvent is the dispatcher hook for browser events
func (m *SSEManager) HandleEvent(ctx context.Context, e events.DomainEvent) error {
	m.Broadcast(e.AggregateID(), events.Wrap(e))
	return nil
}

// GetClientCount returns the number of clients watching a session
func (m *SSEManager) GetClientCount(sessionID string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients[sessionID])
}

// EventsHandler streams a session's browser events
type EventsHandler struct {
	sessions *service.SessionStore
	manager  *SSEManager
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(sessions *service.SessionStore, manager *SSEManager) *EventsHandler {
	return &EventsHandler{
		sessions: sessions,
		manager:  manager,
	}
}

// Stream handles GET /events
// @Summary Stream browser events
// @Description Streams the session's state changes using Server-Sent Events. The first event is a browser.state snapshot.
// @Tags Browser
// @Produce text/event-stream
// @Success 200 {string} string "SSE stream"
// @Router /events [get]
func (h *EventsHandler) Stream(c *gin.Context) {
	sessionID := middleware.SessionID(c)
	b, _ := h.sessions.Get(sessionID)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	client := &SSEClient{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Channel:   make(chan events.Envelope, sseClientBuffer),
	}
	h.manager.AddClient(client)
	defer h.manager.RemoveClient(sessionID, client.ID)

	// Registered before the snapshot so a load settling in between is still delivered.
	snapshot := browser.NewStateChangedEvent(browser.EventTypeSnapshot, sessionID, b.State(), nil)
	c.SSEvent(browser.EventTypeSnapshot, events.Wrap(snapshot))
	c.Writer.Flush()

	ticker := time.NewTicker(sseHeartbeatEvery)
	defer ticker.Stop()

	for {
		select {
		case <-c.Request.Context().Done():
			return
		case env := <-client.Channel:
			c.SSEvent(env.Type, env)
			c.Writer.Flush()
		case <-ticker.C:
			c.SSEvent("heartbeat", "ping")
			c.Writer.Flush()
		}
	}
}
