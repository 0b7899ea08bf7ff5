package ws

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/quizbridge/internal/domain/bridge"
	"github.com/GriffinCanCode/quizbridge/internal/domain/widget"
	"github.com/GriffinCanCode/quizbridge/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/quizbridge/internal/shared/utils"
)

const writeWait = 10 * time.Second

// Handler manages host WebSocket connections
type Handler struct {
	widget   *widget.Widget
	host     *bridge.HostTransport
	metrics  *monitoring.Metrics
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

// NewHandler creates a bridge handler accepting hosts from allowedOrigins.
// "*" accepts any origin; requests without an Origin header are always accepted.
func NewHandler(w *widget.Widget, host *bridge.HostTransport, allowedOrigins []string, logger *zap.Logger) *Handler {
	return &Handler{
		widget: w,
		host:   host,
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: originChecker(allowedOrigins),
		},
	}
}

// WithMetrics adds connection tracking to the handler
func (h *Handler) WithMetrics(metrics *monitoring.Metrics) *Handler {
	h.metrics = metrics
	return h
}

func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]struct{}, len(allowed))
	for _, origin := range allowed {
		if origin == "*" {
			return func(*http.Request) bool { return true }
		}
		set[origin] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}

// connection is one attached host. Writes are serialized.
type connection struct {
	id   string
	conn *websocket.Conn
	mu   sync.Mutex
}

// Post writes data as a single text frame.
func (c *connection) Post(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// HandleConnection upgrades the request and attaches the host until it disconnects
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	host := &connection{id: uuid.New().String(), conn: conn}
	h.host.Attach(host)
	if h.metrics != nil {
		h.metrics.IncHostConnections()
	}
	h.logger.Info("Host attached",
		zap.String("connection_id", host.id),
		zap.String("remote_addr", c.Request.RemoteAddr),
	)

	defer func() {
		replaced := !h.host.Detach(host)
		if h.metrics != nil {
			h.metrics.DecHostConnections()
		}
		h.logger.Info("Host detached",
			zap.String("connection_id", host.id),
			zap.Bool("replaced", replaced),
		)
	}()

	conn.SetReadLimit(utils.MaxMessageSize)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Warn("WebSocket read error",
					zap.String("connection_id", host.id),
					zap.Error(err),
				)
			}
			return
		}
		h.widget.OnNativeMessage(data)
	}
}
