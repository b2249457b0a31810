package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"immobiliare-gpt-backend/internal/ads"
	"immobiliare-gpt-backend/internal/models"
)

// maxFormMemory bounds the multipart form kept in memory; the rest spills
// to temporary files.
const maxFormMemory = 32 << 20

// maxSubmitBody caps a submission: a full batch of maximum size photos plus
// room for the text fields and multipart framing.
const maxSubmitBody = ads.MaxFiles*ads.MaxFileSize + 1<<20

type AdsHandler struct {
	service *ads.Service
	logger  *zap.Logger
}

func NewAdsHandler(service *ads.Service, logger *zap.Logger) *AdsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdsHandler{service: service, logger: logger}
}

// Submit godoc
// @Summary     Submit an ad request
// @Description Uploads up to 30 JPEG or PNG photos (2 MiB each) together with the listing details.
// @Description Oversized or unsupported files are skipped with a notice. Either every photo is stored
// @Description and linked to the new request or nothing is kept.
// @Tags        ads
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       images          formData file   true  "Listing photos (multiple files allowed)"
// @Param       title           formData string true  "Listing title"
// @Param       description     formData string true  "Listing description"
// @Param       email           formData string false "Contact email, defaults to the account email"
// @Param       rights_accepted formData bool   true  "The user owns the rights to the photos"
// @Param       terms_accepted  formData bool   true  "The user accepts the terms of service"
// @Success     201 {object} models.SubmitAdResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /ads [post]
func (h *AdsHandler) Submit(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSubmitBody)
	if err := c.Request.ParseMultipartForm(maxFormMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, models.ErrorResponse{
				Error:   "request too large",
				Message: fmt.Sprintf("a submission is limited to %d bytes", tooLarge.Limit),
				Reason:  "request_too_large",
				Notices: []models.Notice{{
					Level:   models.NoticeError,
					Title:   "Upload too large",
					Message: fmt.Sprintf("Upload at most %d photos of up to 2 MiB each.", ads.MaxFiles),
				}},
			})
			return
		}
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to parse multipart form",
			Message: err.Error(),
		})
		return
	}

	accepted, notices, err := ads.IntakeUploads(0, formUploads(c.Request.MultipartForm))
	if err != nil {
		if _, ok := ads.ValidationReason(err); !ok {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "failed to read uploaded files",
				Message: err.Error(),
			})
			return
		}
		h.validationError(c, err, notices)
		return
	}

	form := &ads.Form{
		Images:         accepted,
		Title:          c.PostForm("title"),
		Description:    c.PostForm("description"),
		Email:          c.PostForm("email"),
		RightsAccepted: formBool(c.PostForm("rights_accepted")),
		TermsAccepted:  formBool(c.PostForm("terms_accepted")),
	}

	receipt, err := h.service.Submit(c.Request.Context(), sess, form)
	if err != nil {
		var stageErr *ads.StageError
		switch {
		case errors.Is(err, ads.ErrNoSession):
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		case errors.As(err, &stageErr):
			h.logger.Error("ad submission failed", zap.String("stage", string(stageErr.Stage)), zap.Error(err))
			c.JSON(http.StatusBadGateway, models.ErrorResponse{
				Error:   "submission failed",
				Message: err.Error(),
				Reason:  string(stageErr.Stage),
				Notices: append(notices, errorNotice("Submission failed", err)),
			})
		default:
			h.validationError(c, err, notices)
		}
		return
	}

	notices = append(notices, models.Notice{
		Level:   models.NoticeSuccess,
		Title:   "Request submitted",
		Message: fmt.Sprintf("%d photos uploaded. We will notify you when your listing is ready.", len(receipt.Images)),
	})

	c.JSON(http.StatusCreated, models.SubmitAdResponse{
		Ad:      adRequestResponse(receipt.AdRequest),
		Images:  adImageResponses(receipt.Images),
		Notices: notices,
		Prefill: models.FormPrefill{Email: form.Email},
	})
}

func (h *AdsHandler) validationError(c *gin.Context, err error, notices []models.Notice) {
	reason, ok := ads.ValidationReason(err)
	if !ok {
		h.logger.Error("unexpected submission error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "internal error", Message: err.Error()})
		return
	}
	if !errors.Is(err, ads.ErrTooManyFiles) {
		notices = append(notices, errorNotice("Check the form", err))
	}
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:   "validation failed",
		Message: err.Error(),
		Reason:  reason,
		Notices: notices,
	})
}

// List godoc
// @Summary     List ad requests
// @Description Returns the caller's ad requests, newest first, with their display category.
// @Tags        ads
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.AdListResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /ads [get]
func (h *AdsHandler) List(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	reqs, err := h.service.List(c.Request.Context(), sess)
	if err != nil {
		h.logger.Error("failed to list ad requests", zap.Error(err))
		c.JSON(http.StatusBadGateway, models.ErrorResponse{Error: "failed to list ad requests", Message: err.Error()})
		return
	}

	out := make([]models.AdRequestResponse, len(reqs))
	for i := range reqs {
		out[i] = adRequestResponse(&reqs[i])
	}
	c.JSON(http.StatusOK, models.AdListResponse{Ads: out})
}

// Get godoc
// @Summary     Get an ad request
// @Tags        ads
// @Produce     json
// @Security    Bearer
// @Param       ad_id path string true "Ad request ID (UUID)"
// @Success     200 {object} models.AdDetailResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /ads/{ad_id} [get]
func (h *AdsHandler) Get(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	id, ok := adID(c)
	if !ok {
		return
	}

	req, images, err := h.service.Get(c.Request.Context(), sess, id)
	if err != nil {
		h.lookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.AdDetailResponse{
		Ad:     adRequestResponse(req),
		Images: adImageResponses(images),
	})
}

// Download godoc
// @Summary     Download results
// @Description Returns the files of a completed ad request. Requests that are not completed yet answer 409.
// @Tags        ads
// @Produce     json
// @Security    Bearer
// @Param       ad_id path string true "Ad request ID (UUID)"
// @Success     200 {object} models.DownloadResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Router      /ads/{ad_id}/download [get]
func (h *AdsHandler) Download(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	id, ok := adID(c)
	if !ok {
		return
	}

	images, err := h.service.Download(c.Request.Context(), sess, id)
	if err != nil {
		h.lookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.DownloadResponse{
		AdRequestID: id.String(),
		Files:       adImageResponses(images),
	})
}

func (h *AdsHandler) lookupError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "ad request not found"})
	case errors.Is(err, ads.ErrNotReady):
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Error:   "not ready",
			Message: err.Error(),
			Notices: []models.Notice{{Level: models.NoticeInfo, Title: "Still in progress", Message: "Your listing is not ready for download yet."}},
		})
	case errors.Is(err, ads.ErrNoSession):
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
	default:
		h.logger.Error("failed to load ad request", zap.Error(err))
		c.JSON(http.StatusBadGateway, models.ErrorResponse{Error: "failed to load ad request", Message: err.Error()})
	}
}

func adID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("ad_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid ad id"})
		return uuid.Nil, false
	}
	return id, true
}

func formBool(v string) bool {
	if b, err := strconv.ParseBool(v); err == nil {
		return b
	}
	return strings.EqualFold(v, "on") || strings.EqualFold(v, "yes")
}

// formUploads collects the photos of the "images" and "images[]" fields
// without reading them.
func formUploads(form *multipart.Form) []ads.Upload {
	if form == nil {
		return nil
	}

	var uploads []ads.Upload
	for _, field := range []string{"images", "images[]"} {
		for _, fh := range form.File[field] {
			uploads = append(uploads, formUpload{fh})
		}
	}
	return uploads
}

type formUpload struct {
	header *multipart.FileHeader
}

func (u formUpload) Name() string { return u.header.Filename }

func (u formUpload) Size() int64 { return u.header.Size }

func (u formUpload) Open() (io.ReadCloser, error) { return u.header.Open() }
