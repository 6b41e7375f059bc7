package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/smartq/backend/internal/queue"
)

type Handler struct {
	Registry  *queue.Registry
	Announcer *queue.Announcer
	Validator *validator.Validate
	Logger    zerolog.Logger
}

func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary List configured services
// @Tags services
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/services [get]
func (h *Handler) ServicesList(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"services": h.Registry.Descriptors()})
}

type EnqueueRequest struct {
	Name    string `json:"name" validate:"required"`
	Counter string `json:"counter"`
}

// @Summary Issue a ticket
// @Tags queue
// @Accept json
// @Produce json
// @Param service path string true "Service name"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/queue/{service}/enqueue [post]
func (h *Handler) Enqueue(c *gin.Context) {
	svc, ok := h.lookupService(c)
	if !ok {
		return
	}
	var req EnqueueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}

	entry := svc.Enqueue(req.Name, req.Counter)
	c.JSON(http.StatusOK, gin.H{"message": "Item enqueued", "item": entry})
}

type DequeueRequest struct {
	Counter string `json:"counter"`
}

// @Summary Call the next ticket
// @Tags queue
// @Accept json
// @Produce json
// @Param service path string true "Service name"
// @Success 200 {object} map[string]any
// @Router /api/queue/{service}/dequeue [post]
func (h *Handler) Dequeue(c *gin.Context) {
	svc, ok := h.lookupService(c)
	if !ok {
		return
	}
	var req DequeueRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}

	called := svc.CallNext(req.Counter)
	if called == nil {
		c.JSON(http.StatusOK, gin.H{"message": "Queue is empty"})
		return
	}
	// Synthesis runs outside the serialized section; the call has already
	// committed and a renderer failure is only a warning.
	go h.Announcer.Announce(svc, *called)
	c.JSON(http.StatusOK, gin.H{"message": "Item dequeued", "item": called})
}

type CompleteRequest struct {
	Number      *int   `json:"Q_number" validate:"required"`
	Name        string `json:"name"`
	CompletedBy string `json:"completed_by"`
}

// @Summary Record a completed visit
// @Tags queue
// @Accept json
// @Produce json
// @Param service path string true "Service name"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Router /api/queue/{service}/complete [post]
func (h *Handler) Complete(c *gin.Context) {
	svc, ok := h.lookupService(c)
	if !ok {
		return
	}
	var req CompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_TICKET", "missing or invalid Q_number", err.Error())
		return
	}
	if req.Number == nil {
		writeError(c, http.StatusBadRequest, "INVALID_TICKET", "missing or invalid Q_number", nil)
		return
	}

	entry := svc.Complete(*req.Number, req.Name, req.CompletedBy)
	c.JSON(http.StatusOK, gin.H{"message": "item completed", "item": entry})
}

type MuteRequest struct {
	Muted *bool `json:"muted" validate:"required"`
}

// @Summary Mute or unmute announcements
// @Tags queue
// @Accept json
// @Produce json
// @Param service path string true "Service name"
// @Success 200 {object} map[string]any
// @Router /api/queue/{service}/mute [post]
func (h *Handler) Mute(c *gin.Context) {
	svc, ok := h.lookupService(c)
	if !ok {
		return
	}
	var req MuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}

	svc.SetMuted(*req.Muted)
	c.JSON(http.StatusOK, gin.H{"message": "mute updated", "muted": *req.Muted})
}

// @Summary Replay the current announcement
// @Tags queue
// @Produce json
// @Param service path string true "Service name"
// @Success 200 {object} map[string]any
// @Router /api/queue/{service}/reannounce [post]
func (h *Handler) Reannounce(c *gin.Context) {
	svc, ok := h.lookupService(c)
	if !ok {
		return
	}

	announced, err := svc.Reannounce()
	switch {
	case errors.Is(err, queue.ErrNoCurrentItem):
		c.JSON(http.StatusOK, gin.H{"message": "no current item"})
	case errors.Is(err, queue.ErrMuted):
		c.JSON(http.StatusOK, gin.H{"message": "muted"})
	case !announced:
		c.JSON(http.StatusOK, gin.H{"message": "no audio"})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "reannounced"})
	}
}

type TransferRequest struct {
	Number *int   `json:"Q_number" validate:"required"`
	Target string `json:"target" validate:"required"`
}

// @Summary Transfer a completed visit to another service
// @Tags queue
// @Accept json
// @Produce json
// @Param service path string true "Source service name"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Failure 409 {object} map[string]any
// @Router /api/queue/{service}/transfer [post]
func (h *Handler) Transfer(c *gin.Context) {
	source := c.Param("service")
	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_TICKET", "missing or invalid Q_number", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}

	entry, err := h.Registry.Transfer(source, *req.Number, req.Target)
	if err != nil {
		switch {
		case errors.Is(err, queue.ErrUnknownService):
			writeError(c, http.StatusNotFound, "UNKNOWN_SERVICE", "Service not found", err.Error())
		case errors.Is(err, queue.ErrUnknownTicket):
			writeError(c, http.StatusNotFound, "UNKNOWN_TICKET", "Ticket not found in history", err.Error())
		case errors.Is(err, queue.ErrTransferConflict):
			writeError(c, http.StatusConflict, "TRANSFER_CONFLICT", "Ticket already transferred", err.Error())
		default:
			writeError(c, http.StatusInternalServerError, "TRANSFER_ERROR", "Transfer failed", err.Error())
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "item transferred", "item": entry})
}

type OperatorRequest struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name" validate:"required"`
}

// @Summary Register an operator display name
// @Tags operators
// @Accept json
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/operators [post]
func (h *Handler) RegisterOperator(c *gin.Context) {
	var req OperatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}

	h.Registry.Operators.Register(req.ID, req.Name)
	c.JSON(http.StatusOK, gin.H{"message": "operator registered", "id": req.ID, "name": req.Name})
}

// @Summary Resolve an operator display name
// @Tags operators
// @Produce json
// @Param id path string true "Operator id"
// @Success 200 {object} map[string]any
// @Router /api/operators/{id} [get]
func (h *Handler) GetOperator(c *gin.Context) {
	id := c.Param("id")
	name, ok := h.Registry.Operators.Resolve(id)
	c.JSON(http.StatusOK, gin.H{"id": id, "name": name, "found": ok})
}

func (h *Handler) lookupService(c *gin.Context) (*queue.Service, bool) {
	svc, err := h.Registry.Lookup(c.Param("service"))
	if err != nil {
		writeError(c, http.StatusNotFound, "UNKNOWN_SERVICE", "Service not found", nil)
		return nil, false
	}
	return svc, true
}

func writeError(c *gin.Context, status int, code string, message string, details any) {
	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}
