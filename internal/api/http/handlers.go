package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/quizbridge/internal/api/middleware"
	"github.com/GriffinCanCode/quizbridge/internal/domain/bridge"
	"github.com/GriffinCanCode/quizbridge/internal/domain/router"
	"github.com/GriffinCanCode/quizbridge/internal/domain/view"
	"github.com/GriffinCanCode/quizbridge/internal/domain/widget"
	"github.com/GriffinCanCode/quizbridge/internal/shared/utils"
)

// HostStatus reports whether a native host is currently attached.
type HostStatus interface {
	Connected() bool
}

// Handlers contains all HTTP handlers
type Handlers struct {
	widget    *widget.Widget
	mode      bridge.Mode
	host      HostStatus
	logger    *zap.Logger
	validator *utils.SizeValidator
}

// NewHandlers creates a new handler set. host may be nil in local mode.
func NewHandlers(w *widget.Widget, mode bridge.Mode, host HostStatus, logger *zap.Logger) *Handlers {
	return &Handlers{
		widget:    w,
		mode:      mode,
		host:      host,
		logger:    logger,
		validator: utils.DefaultMessageValidator(),
	}
}

// Register mounts every route on r.
func (h *Handlers) Register(r gin.IRouter) {
	r.GET("/health", h.Health)
	r.GET("/state", h.State)
	r.POST("/native", h.Native)
	r.POST("/select", h.Select)
	r.POST("/next", h.Next)
	r.GET("/", h.Page)
	r.GET("/:route", h.Page)
}

// RegisterFallback serves page loads for multi-segment paths such as
// /quiz/pergunta-2. Anything other than GET stays a 404.
func (h *Handlers) RegisterFallback(e *gin.Engine) {
	e.NoRoute(func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		h.Page(c)
	})
}

// Health handles liveness checks
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "healthy",
		"mode":           h.mode,
		"host_connected": h.host != nil && h.host.Connected(),
	})
}

// State returns the widget snapshot
func (h *Handlers) State(c *gin.Context) {
	c.JSON(http.StatusOK, h.widget.Snapshot())
}

// Page handles a page load. Unknown paths redirect to the first question.
func (h *Handlers) Page(c *gin.Context) {
	path := c.Request.URL.Path
	if normalized := router.Normalize(path); normalized != path {
		c.Redirect(http.StatusFound, normalized)
		return
	}

	v := h.widget.Open(path)
	body, err := view.HTML(v)
	if err != nil {
		h.logger.Error("Failed to render page",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.String("route", v.Route),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render page"})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", body)
}

type selectRequest struct {
	QuestionID string `form:"question_id" json:"questionId" binding:"required"`
	OptionID   string `form:"option_id" json:"optionId" binding:"required"`
}

// Select records an option choice and returns to the current page
func (h *Handlers) Select(c *gin.Context) {
	var req selectRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.widget.SelectOption(req.QuestionID, req.OptionID); err != nil {
		h.logger.Warn("Rejected option selection",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.String("question_id", req.QuestionID),
			zap.String("option_id", req.OptionID),
			zap.Error(err),
		)
		if errors.Is(err, widget.ErrUnknownQuestion) || errors.Is(err, widget.ErrUnknownOption) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Redirect(http.StatusSeeOther, h.currentPage())
}

// Next advances past the current question
func (h *Handlers) Next(c *gin.Context) {
	route := h.widget.NavigateToNext()
	if h.widget.HostDriven() {
		c.Status(http.StatusNoContent)
		return
	}
	c.Redirect(http.StatusSeeOther, route)
}

// Native accepts one host message in the request body
func (h *Handlers) Native(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, int64(h.validator.MaxSize())+1)
	body, err := c.GetRawData()
	if err == nil {
		err = h.validator.ValidateSize(body)
	}
	if err != nil {
		h.logger.Warn("Rejected host message",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.Error(err),
		)
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
		return
	}
	if len(body) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message body required"})
		return
	}

	h.widget.OnNativeMessage(body)
	c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
}

func (h *Handlers) currentPage() string {
	if location := h.widget.Location(); location != "" {
		return location
	}
	return router.FirstRoute
}
