package api

import (
	"errors"
	"net/http"

	"ticketdesk-service/internal/domain/entity"
	"ticketdesk-service/internal/infrastructure/config"
	"ticketdesk-service/internal/usecase"
	"ticketdesk-service/pkg/apperrors"
	"ticketdesk-service/pkg/logger"
	"ticketdesk-service/pkg/metrics"
	"ticketdesk-service/pkg/utils"

	"github.com/gin-gonic/gin"
)

// TicketHandler serves the ticket lifecycle endpoints
type TicketHandler struct {
	service usecase.TicketService
	cfg     *config.Config
	logger  logger.Logger
	metrics *metrics.Metrics
}

// NewTicketHandler creates a new ticket handler
func NewTicketHandler(service usecase.TicketService, cfg *config.Config, log logger.Logger, m *metrics.Metrics) *TicketHandler {
	return &TicketHandler{
		service: service,
		cfg:     cfg,
		logger:  log,
		metrics: m,
	}
}

// AuthRequest carries the shared secret exchanged for the bearer token
type AuthRequest struct {
	Password string `json:"password"`
}

// TicketFields are the client-supplied fields of one ticket document
type TicketFields struct {
	TicketNumber string `json:"ticketNumber" binding:"required"`
	Date         string `json:"date"`
	Operator     string `json:"operator"`
	Client       string `json:"client"`
	Type         string `json:"type"`
	Notes        string `json:"notes"`
}

// CreateTicketRequest is the body of POST /ticket
type CreateTicketRequest struct {
	Exhibition string `json:"exhibition"`
	TicketFields
}

// CreateTicketsRequest is the body of POST /tickets
type CreateTicketsRequest struct {
	Exhibition string         `json:"exhibition"`
	Documents  []TicketFields `json:"documents" binding:"required,min=1,dive"`
}

// UpdateStatusRequest is the body of PATCH /ticket/status
type UpdateStatusRequest struct {
	Exhibition   string `json:"exhibition"`
	TicketNumber string `json:"ticketNumber" binding:"required"`
	Verified     *bool  `json:"verified" binding:"required"`
}

// DeleteTicketRequest is the body of DELETE /ticket
type DeleteTicketRequest struct {
	Exhibition   string `json:"exhibition"`
	TicketNumber string `json:"ticketNumber" binding:"required"`
}

// DeleteTicketsRequest is the body of DELETE /tickets
type DeleteTicketsRequest struct {
	Exhibition    string   `json:"exhibition"`
	TicketNumbers []string `json:"ticketNumbers" binding:"required,min=1"`
}

// Auth exchanges the configured shared secret for the static bearer
// token. This is the only unauthenticated endpoint.
func (h *TicketHandler) Auth(c *gin.Context) {
	var req AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Password != h.cfg.AuthPassword {
		h.logger.Warn("Failed login attempt", "ip", c.ClientIP())
		h.metrics.AuthDenied.Inc()
		c.JSON(http.StatusForbidden, "Permission denied")
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": h.cfg.AuthToken})
}

// requireExhibition validates the exhibition named by the request
// against the configured allow-list. Requests that name nothing or
// something unknown are rejected as not-found, never bad-request, so
// the response does not distinguish the two. Runs after TokenAuth;
// unauthenticated callers never reach this check.
func (h *TicketHandler) requireExhibition(c *gin.Context, exhibition string) bool {
	if !h.cfg.KnownExhibition(exhibition) {
		c.JSON(http.StatusNotFound, "Exhibition not specified or not found")
		return false
	}
	return true
}

func (h *TicketHandler) buildTicket(c *gin.Context, fields TicketFields) (*entity.Ticket, bool) {
	date, err := utils.ParseTicketDate(fields.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, "Invalid date format")
		return nil, false
	}
	return &entity.Ticket{
		TicketNumber: fields.TicketNumber,
		Date:         date,
		Operator:     fields.Operator,
		Client:       fields.Client,
		Type:         fields.Type,
		Notes:        fields.Notes,
	}, true
}

// CreateTicket handles POST /ticket
func (h *TicketHandler) CreateTicket(c *gin.Context) {
	var req CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, "Invalid request format")
		return
	}
	if !h.requireExhibition(c, req.Exhibition) {
		return
	}
	ticket, ok := h.buildTicket(c, req.TicketFields)
	if !ok {
		return
	}
	if err := h.service.Create(c.Request.Context(), req.Exhibition, ticket); err != nil {
		h.handleError(c, err, "CreateTicket")
		return
	}
	c.JSON(http.StatusOK, "Success")
}

// CreateTickets handles POST /tickets, the ordered batch insert used
// for serial ticket ranges
func (h *TicketHandler) CreateTickets(c *gin.Context) {
	var req CreateTicketsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, "Invalid request format")
		return
	}
	if !h.requireExhibition(c, req.Exhibition) {
		return
	}
	tickets := make([]*entity.Ticket, 0, len(req.Documents))
	for _, fields := range req.Documents {
		ticket, ok := h.buildTicket(c, fields)
		if !ok {
			return
		}
		tickets = append(tickets, ticket)
	}
	if _, err := h.service.CreateBatch(c.Request.Context(), req.Exhibition, tickets); err != nil {
		h.handleError(c, err, "CreateTickets")
		return
	}
	c.JSON(http.StatusOK, "Success")
}

// ListTickets handles GET /tickets?exhibition=<id>
func (h *TicketHandler) ListTickets(c *gin.Context) {
	exhibition := c.Query("exhibition")
	if !h.requireExhibition(c, exhibition) {
		return
	}
	tickets, err := h.service.List(c.Request.Context(), exhibition)
	if err != nil {
		h.handleError(c, err, "ListTickets")
		return
	}
	if tickets == nil {
		tickets = []*entity.Ticket{}
	}
	c.JSON(http.StatusOK, tickets)
}

// UpdateStatus handles PATCH /ticket/status
func (h *TicketHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, "Invalid request format")
		return
	}
	if !h.requireExhibition(c, req.Exhibition) {
		return
	}
	if err := h.service.SetVerified(c.Request.Context(), req.Exhibition, req.TicketNumber, *req.Verified); err != nil {
		h.handleError(c, err, "UpdateStatus")
		return
	}
	c.JSON(http.StatusOK, "Success")
}

// DeleteTicket handles DELETE /ticket
func (h *TicketHandler) DeleteTicket(c *gin.Context) {
	var req DeleteTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, "Invalid request format")
		return
	}
	if !h.requireExhibition(c, req.Exhibition) {
		return
	}
	if err := h.service.Delete(c.Request.Context(), req.Exhibition, req.TicketNumber); err != nil {
		h.handleError(c, err, "DeleteTicket")
		return
	}
	c.JSON(http.StatusOK, "Success")
}

// DeleteTickets handles DELETE /tickets
func (h *TicketHandler) DeleteTickets(c *gin.Context) {
	var req DeleteTicketsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, "Invalid request format")
		return
	}
	if !h.requireExhibition(c, req.Exhibition) {
		return
	}
	if _, err := h.service.DeleteBatch(c.Request.Context(), req.Exhibition, req.TicketNumbers); err != nil {
		h.handleError(c, err, "DeleteTickets")
		return
	}
	c.JSON(http.StatusOK, "Success")
}

// handleError maps service errors to responses. Storage errors never
// reach the caller as raw text; anything unclassified is logged at
// error severity and reported as an internal error.
func (h *TicketHandler) handleError(c *gin.Context, err error, operation string) {
	log := h.logger.With("operation", operation)
	var partial *apperrors.PartialInsertError
	switch {
	case errors.Is(err, apperrors.ErrTicketNumberTaken):
		log.Warn("Duplicate ticket number")
		c.JSON(http.StatusConflict, "This ticket number has already been used")
	case errors.As(err, &partial):
		log.Warn("Partial batch insert", "inserted", partial.Inserted)
		c.JSON(http.StatusConflict, gin.H{
			"message":  "Some ticket number has already been used, partly inserted.",
			"inserted": partial.Inserted,
		})
	case errors.Is(err, apperrors.ErrTicketNotFound):
		log.Warn("No ticket matched")
		c.JSON(http.StatusBadRequest, "No ticket matched the given ticket number")
	default:
		log.Error("Unexpected error", "error", err)
		h.metrics.ErrorsCount.WithLabelValues(operation).Inc()
		c.JSON(http.StatusInternalServerError, "Internal server error")
	}
}
