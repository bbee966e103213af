package ws

import (
	"errors"
	"net/http"
	"time"

	"github.com/GriffinCanCode/AppCoPro/backend/internal/domain/workspace"
	"github.com/GriffinCanCode/AppCoPro/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AppCoPro/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AppCoPro/backend/internal/shared/types"
	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 4096
	outboxSize     = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins
	},
}

// snapshotMessage is the first frame of every stream
type snapshotMessage struct {
	Type  string              `json:"type"`
	Build types.BuildSnapshot `json:"build"`
}

// Handler streams build events of one workspace over WebSocket
type Handler struct {
	workspaces *workspace.Manager
	metrics    *monitoring.Metrics
	logger     *logging.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(workspaces *workspace.Manager, metrics *monitoring.Metrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handler{workspaces: workspaces, metrics: metrics, logger: logger}
}

// HandleConnection upgrades GET /workspaces/:id/stream. The client receives a
// snapshot message followed by build events in step order. Clients may send
// {"type":"ping"} and get {"type":"pong"} back.
func (h *Handler) HandleConnection(c *gin.Context) {
	ws, err := h.workspaces.Get(c.Param("id"))
	if errors.Is(err, workspace.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "workspace not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}

	if h.metrics != nil {
		h.metrics.IncWSConnections()
		defer h.metrics.DecWSConnections()
	}

	// Subscribe before the snapshot so no event falls between the two
	events, unsubscribe := ws.Orchestrator.Subscribe()
	defer unsubscribe()

	client := newClient(conn, h.metrics, h.logger.With(zap.String("workspace_id", ws.ID)))

	// The snapshot is written before writeLoop starts so it always arrives first
	if err := client.send(snapshotMessage{Type: "snapshot", Build: ws.Orchestrator.Snapshot()}, "snapshot"); err != nil {
		_ = conn.Close()
		return
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		client.readLoop()
	}()

	client.writeLoop(events, done)
}

// client owns one connection. Only writeLoop writes to conn.
type client struct {
	conn    *websocket.Conn
	outbox  chan outbound
	metrics *monitoring.Metrics
	logger  *logging.Logger
}

type outbound struct {
	payload any
	kind    string
}

func newClient(conn *websocket.Conn, metrics *monitoring.Metrics, logger *logging.Logger) *client {
	return &client{
		conn:    conn,
		outbox:  make(chan outbound, outboxSize),
		metrics: metrics,
		logger:  logger,
	}
}

// queue hands a reply to the writer, dropping it when the outbox is full
func (c *client) queue(payload any, kind string) {
	select {
	case c.outbox <- outbound{payload: payload, kind: kind}:
	default:
		c.logger.Warn("WebSocket outbox full, dropping message", zap.String("type", kind))
	}
}

func (c *client) readLoop() {
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug("WebSocket read error", zap.Error(err))
			}
			return
		}
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))

		var msg types.WSMessage
		if err := sonic.Unmarshal(data, &msg); err != nil {
			c.queue(gin.H{"type": "error", "message": "invalid message"}, "error")
			continue
		}
		c.record("in", msg.Type)

		switch msg.Type {
		case "ping":
			c.queue(gin.H{"type": "pong"}, "pong")
		default:
			c.queue(gin.H{"type": "error", "message": "unknown message type"}, "error")
		}
	}
}

// writeLoop forwards events and replies until the client goes away or the
// event channel closes
func (c *client) writeLoop(events <-chan types.BuildEvent, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case <-done:
			return
		case out := <-c.outbox:
			if err := c.send(out.payload, out.kind); err != nil {
				return
			}
		case event, ok := <-events:
			if !ok {
				_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
				_ = c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "stream closed"))
				return
			}
			if err := c.send(event, string(event.Type)); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *client) send(payload any, kind string) error {
	data, err := sonic.Marshal(payload)
	if err != nil {
		c.logger.Error("Failed to encode WebSocket message", zap.String("type", kind), zap.Error(err))
		return nil
	}

	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		c.logger.Debug("WebSocket send failed", zap.Error(err))
		return err
	}
	c.record("out", kind)
	return nil
}

func (c *client) record(direction, kind string) {
	if c.metrics != nil {
		c.metrics.RecordWSMessage(direction, kind)
	}
}
