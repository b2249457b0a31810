package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"immobiliare-gpt-backend/internal/models"
)

type ContactStore interface {
	CreateContact(ctx context.Context, contact *models.Contact) error
}

type ContactForwarder interface {
	ForwardContact(ctx context.Context, contact *models.Contact) error
}

type ContactHandler struct {
	store     ContactStore
	forwarder ContactForwarder
	logger    *zap.Logger
}

func NewContactHandler(store ContactStore, forwarder ContactForwarder, logger *zap.Logger) *ContactHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContactHandler{store: store, forwarder: forwarder, logger: logger}
}

// Submit godoc
// @Summary     Send a contact message
// @Tags        contact
// @Accept      json
// @Produce     json
// @Param       request body models.ContactRequest true "Contact message"
// @Success     201 {object} models.ContactResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /contact [post]
func (h *ContactHandler) Submit(c *gin.Context) {
	var req models.ContactRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request",
			Message: err.Error(),
		})
		return
	}

	contact := &models.Contact{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.TrimSpace(req.Email),
		Message:   strings.TrimSpace(req.Message),
		CreatedAt: time.Now().UTC(),
	}

	if err := h.store.CreateContact(c.Request.Context(), contact); err != nil {
		h.logger.Error("failed to store contact message", zap.Error(err))
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "failed to send message",
			Message: err.Error(),
			Notices: []models.Notice{errorNotice("Message not sent", err)},
		})
		return
	}

	if h.forwarder != nil {
		if err := h.forwarder.ForwardContact(c.Request.Context(), contact); err != nil {
			h.logger.Warn("failed to forward contact message", zap.String("contact_id", contact.ID.String()), zap.Error(err))
		}
	}

	c.JSON(http.StatusCreated, models.ContactResponse{
		Notices: []models.Notice{{
			Level:   models.NoticeSuccess,
			Title:   "Message sent",
			Message: "Thank you, we will get back to you soon.",
		}},
	})
}
