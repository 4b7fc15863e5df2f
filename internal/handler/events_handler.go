package handler

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	"github.com/aperturelabs/alms/internal/domain"
)

const (
	eventClientBufferSize = 64
	eventKeepAlive        = 25 * time.Second
	eventSessionTimeout   = 2 * time.Second

	EventTypeMessage = "message"
)

// MessageEvent tells a client that a conversation has a new message. It
// never carries content; clients fetch it through the message endpoints.
type MessageEvent struct {
	Type           string    `json:"type"`
	ConversationID int64     `json:"conversationId"`
	MessageID      int64     `json:"messageId"`
	SenderID       int64     `json:"senderId"`
	Timestamp      time.Time `json:"timestamp"`
}

type eventClient struct {
	employeeID int64
	events     chan MessageEvent
}

// SessionVerifier reports the state of a session token without extending it.
type SessionVerifier interface {
	IsActive(ctx context.Context, token string) (domain.TokenState, error)
}

type EventsHandler struct {
	sessions SessionVerifier
	logger   *slog.Logger

	mu      sync.RWMutex
	clients map[string]*eventClient
}

func NewEventsHandler(sessions SessionVerifier, logger *slog.Logger) *EventsHandler {
	return &EventsHandler{
		sessions: sessions,
		logger:   logger,
		clients:  make(map[string]*eventClient),
	}
}

func (h *EventsHandler) Register(app *fiber.App, requireAuth fiber.Handler) {
	app.Get("/events/messages", requireAuth, h.Stream)
}

// Stream godoc
//
//	@Summary		Stream new message notifications
//	@Description	Server-sent events for conversations the caller participates in
//	@Tags			messages
//	@Produce		text/event-stream
//	@Security		SessionToken
//	@Success		200
//	@Router			/events/messages [get]
func (h *EventsHandler) Stream(c *fiber.Ctx) error {
	employee := GetEmployeeFromContext(c)
	if employee == nil {
		return fiber.ErrUnauthorized
	}

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("Transfer-Encoding", "chunked")

	token := GetSessionTokenFromContext(c)
	clientID := uuid.New().String()
	events := h.subscribe(clientID, employee.ID)

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		ticker := time.NewTicker(eventKeepAlive)
		defer ticker.Stop()

		h.serve(w, clientID, token, events, ticker.C)
	}))

	return nil
}

// serve writes events until the client goes away or the session behind
// token is no longer active. The session is checked on every tick.
func (h *EventsHandler) serve(w *bufio.Writer, clientID, token string, events <-chan MessageEvent, ticks <-chan time.Time) {
	defer h.unsubscribe(clientID)

	fmt.Fprintf(w, "event: ready\ndata: {\"clientId\":%q}\n\n", clientID)
	if err := w.Flush(); err != nil {
		return
	}

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := h.writeEvent(w, event); err != nil {
				return
			}
		case <-ticks:
			if !h.sessionActive(token) {
				fmt.Fprint(w, "event: session-ended\ndata: {}\n\n")
				_ = w.Flush()
				return
			}
			fmt.Fprint(w, ": keep-alive\n\n")
			if err := w.Flush(); err != nil {
				return
			}
		}
	}
}

func (h *EventsHandler) sessionActive(token string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), eventSessionTimeout)
	defer cancel()

	state, err := h.sessions.IsActive(ctx, token)
	if err != nil {
		h.logger.Warn("event stream session check failed", "error", err)
		return false
	}
	return state == domain.TokenActive
}

// writeEvent returns only write errors. An event that cannot be encoded is
// logged and skipped so the stream stays up.
func (h *EventsHandler) writeEvent(w *bufio.Writer, event MessageEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Warn("skipping undeliverable message event", "message_id", event.MessageID, "error", err)
		return nil
	}

	fmt.Fprintf(w, "event: %s\n", event.Type)
	fmt.Fprintf(w, "data: %s\n\n", data)
	return w.Flush()
}

func (h *EventsHandler) subscribe(clientID string, employeeID int64) <-chan MessageEvent {
	h.mu.Lock()
	defer h.mu.Unlock()

	client := &eventClient{
		employeeID: employeeID,
		events:     make(chan MessageEvent, eventClientBufferSize),
	}
	h.clients[clientID] = client
	return client.events
}

func (h *EventsHandler) unsubscribe(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if client, ok := h.clients[clientID]; ok {
		close(client.events)
		delete(h.clients, clientID)
	}
}

// EmitMessage notifies every connected client of the recipients. Clients
// whose buffer is full miss the event.
func (h *EventsHandler) EmitMessage(recipients []int64, message domain.Message) {
	wanted := make(map[int64]struct{}, len(recipients))
	for _, id := range recipients {
		wanted[id] = struct{}{}
	}

	event := MessageEvent{
		Type:           EventTypeMessage,
		ConversationID: message.ConversationID,
		MessageID:      message.ID,
		SenderID:       message.EmployeeID,
		Timestamp:      time.Now().UTC(),
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients {
		if _, ok := wanted[client.employeeID]; !ok {
			continue
		}
		select {
		case client.events <- event:
		default:
		}
	}
}

func (h *EventsHandler) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
