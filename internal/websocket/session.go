package websocket

import (
	"context"
	"strings"

	"ai-deepsearch-be/internal/dto"
	"ai-deepsearch-be/internal/pkg/logger"
	"ai-deepsearch-be/internal/service"
	"ai-deepsearch-be/pkg/agent"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// Handler streams one agent session per websocket connection: the first text
// frame is the query, then the client receives {type:"step"} progress events
// and exactly one terminal {type:"result"} or {type:"error"} frame.
type Handler struct {
	searchService service.ISearchService
	subscriber    message.Subscriber
	logger        logger.ILogger
}

func NewHandler(searchService service.ISearchService, subscriber message.Subscriber, log logger.ILogger) *Handler {
	return &Handler{
		searchService: searchService,
		subscriber:    subscriber,
		logger:        log,
	}
}

// ServeWs upgrades the request and hands the hijacked connection to Serve.
func (h *Handler) ServeWs(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(h.Serve)(c)
	}
	return fiber.ErrUpgradeRequired
}

type runOutcome struct {
	result *agent.Result
	err    error
}

// Serve handles one connection. The connection is closed when it returns.
func (h *Handler) Serve(c *websocket.Conn) {
	defer c.Close()

	_, raw, err := c.ReadMessage()
	if err != nil {
		return
	}
	query := strings.TrimSpace(string(raw))
	sessionID := uuid.NewString()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := h.subscriber.Subscribe(ctx, agent.ProgressTopic(sessionID))
	if err != nil {
		h.logger.Error("WebSocket", "Progress subscription failed", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		_ = c.WriteJSON(agent.ProgressEvent{Type: "error", Message: "internal error"})
		return
	}

	// A client disconnect cancels the in-flight session promptly; an
	// already-started ingest write may complete (upserts are idempotent).
	go func() {
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	done := make(chan runOutcome, 1)
	go func() {
		result, err := h.searchService.Run(ctx, sessionID, query)
		done <- runOutcome{result: result, err: err}
	}()

	for {
		select {
		case msg, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if err := c.WriteMessage(websocket.TextMessage, msg.Payload); err != nil {
				msg.Ack()
				cancel()
				h.drain(done)
				return
			}
			msg.Ack()

		case outcome := <-done:
			h.flushPending(c, events)
			h.writeTerminal(c, sessionID, outcome)
			return
		}
	}
}

// flushPending forwards progress events that were published before the run
// finished but not yet relayed.
func (h *Handler) flushPending(c *websocket.Conn, events <-chan *message.Message) {
	for {
		select {
		case msg, ok := <-events:
			if !ok {
				return
			}
			_ = c.WriteMessage(websocket.TextMessage, msg.Payload)
			msg.Ack()
		default:
			return
		}
	}
}

func (h *Handler) writeTerminal(c *websocket.Conn, sessionID string, outcome runOutcome) {
	if outcome.err != nil {
		h.logger.Warn("WebSocket", "Session ended with error", map[string]interface{}{
			"session_id": sessionID,
			"error":      outcome.err.Error(),
		})
		_ = c.WriteJSON(agent.ProgressEvent{Type: "error", Message: outcome.err.Error()})
		return
	}
	_ = c.WriteJSON(agent.ProgressEvent{Type: "result", Data: dto.ToDeepSearchResponse(outcome.result)})
}

func (h *Handler) drain(done <-chan runOutcome) {
	go func() {
		<-done
	}()
}
