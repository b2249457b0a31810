package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"immobiliare-gpt-backend/internal/ads"
	"immobiliare-gpt-backend/internal/ai"
	"immobiliare-gpt-backend/internal/models"
)

type AIHandler struct {
	service *ai.Service
	logger  *zap.Logger
}

// NewAIHandler builds the handler. A nil service answers every request with
// 503.
func NewAIHandler(service *ai.Service, logger *zap.Logger) *AIHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AIHandler{service: service, logger: logger}
}

func (h *AIHandler) available(c *gin.Context) bool {
	if h.service == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
			Error:   "ai not configured",
			Message: "no API key is configured for the AI provider",
		})
		return false
	}
	return true
}

func (h *AIHandler) completionError(c *gin.Context, err error) {
	if errors.Is(err, ai.ErrEmptyPrompt) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}
	h.logger.Error("ai request failed", zap.Error(err))
	c.JSON(http.StatusBadGateway, models.ErrorResponse{
		Error:   "ai request failed",
		Message: err.Error(),
		Notices: []models.Notice{errorNotice("AI request failed", err)},
	})
}

func completionResponse(comp *ai.Completion) models.CompletionResponse {
	return models.CompletionResponse{
		Content: comp.Content,
		Model:   comp.Model,
		Usage: models.UsageStats{
			PromptTokens:     comp.Usage.PromptTokens,
			CompletionTokens: comp.Usage.CompletionTokens,
			TotalTokens:      comp.Usage.TotalTokens,
		},
	}
}

// Chat godoc
// @Summary     Free form completion
// @Tags        ai
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.ChatRequest true "Prompt"
// @Success     200 {object} models.CompletionResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Failure     503 {object} models.ErrorResponse
// @Router      /ai/chat [post]
func (h *AIHandler) Chat(c *gin.Context) {
	if !h.available(c) {
		return
	}

	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	comp, err := h.service.Chat(c.Request.Context(), ai.Request{
		Prompt:       req.Prompt,
		SystemPrompt: req.SystemPrompt,
		Model:        req.Model,
		MaxTokens:    req.MaxTokens,
	})
	if err != nil {
		h.completionError(c, err)
		return
	}
	c.JSON(http.StatusOK, completionResponse(comp))
}

// OptimizeDescription godoc
// @Summary     Rewrite a listing description
// @Description Rewrites the description in the voice of a real estate copywriter.
// @Tags        ai
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.OptimizeDescriptionRequest true "Listing"
// @Success     200 {object} models.CompletionResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Failure     503 {object} models.ErrorResponse
// @Router      /ai/optimize-description [post]
func (h *AIHandler) OptimizeDescription(c *gin.Context) {
	if !h.available(c) {
		return
	}

	var req models.OptimizeDescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	comp, err := h.service.OptimizeDescription(c.Request.Context(), req.Title, req.Description)
	if err != nil {
		h.completionError(c, err)
		return
	}
	c.JSON(http.StatusOK, completionResponse(comp))
}

// EnhanceImage godoc
// @Summary     Enhance a listing photo
// @Description Returns a brighter and sharper version of the photo.
// @Tags        ai
// @Accept      multipart/form-data
// @Produce     image/png
// @Security    Bearer
// @Param       image         formData file   true  "JPEG or PNG photo"
// @Param       property_type formData string false "Property type, e.g. villa"
// @Param       room_type     formData string false "Room type, e.g. kitchen"
// @Success     200 {file} binary
// @Failure     400 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Failure     503 {object} models.ErrorResponse
// @Router      /ai/enhance-image [post]
func (h *AIHandler) EnhanceImage(c *gin.Context) {
	if !h.available(c) {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, ads.MaxFileSize+1<<20)
	fh, err := c.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "file too large", Reason: "file_too_large"})
			return
		}
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "no image uploaded", Message: err.Error()})
		return
	}
	if fh.Size > ads.MaxFileSize {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "file too large", Reason: "file_too_large"})
		return
	}

	src, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to read image", Message: err.Error()})
		return
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to read image", Message: err.Error()})
		return
	}

	contentType := ads.DetectContentType(data)
	if !ads.Accepted(contentType) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "unsupported file type", Reason: "unsupported_type"})
		return
	}

	out, err := h.service.EnhanceImage(c.Request.Context(), ai.Image{
		Name:        fh.Filename,
		ContentType: contentType,
		Data:        data,
	}, c.PostForm("property_type"), c.PostForm("room_type"))
	if err != nil {
		h.completionError(c, err)
		return
	}

	c.Data(http.StatusOK, out.ContentType, out.Data)
}
