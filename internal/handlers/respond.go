package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"immobiliare-gpt-backend/internal/ads"
	"immobiliare-gpt-backend/internal/middleware"
	"immobiliare-gpt-backend/internal/models"
)

func requireSession(c *gin.Context) (ads.Session, bool) {
	sess, ok := middleware.Session(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return ads.Session{}, false
	}
	return sess, true
}

func errorNotice(title string, err error) models.Notice {
	return models.Notice{Level: models.NoticeError, Title: title, Message: err.Error()}
}

func adRequestResponse(req *models.AdRequest) models.AdRequestResponse {
	return models.AdRequestResponse{
		ID:             req.ID.String(),
		Title:          req.Title,
		Description:    req.Description,
		Email:          req.Email,
		Status:         req.Status,
		StatusCategory: string(ads.Category(req.Status)),
		Downloadable:   ads.Downloadable(req.Status),
		CreatedAt:      req.CreatedAt,
	}
}

func adImageResponses(images []models.AdImage) []models.AdImageResponse {
	out := make([]models.AdImageResponse, len(images))
	for i, img := range images {
		out[i] = models.AdImageResponse{
			ID:               img.ID.String(),
			FileName:         img.FileName,
			OriginalImageURL: img.OriginalImageURL,
			Status:           img.Status,
			CreatedAt:        img.CreatedAt,
		}
	}
	return out
}
