package ads

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"immobiliare-gpt-backend/internal/models"
)

var ErrNotReady = errors.New("ad request is not completed yet")

type StatusCategory string

const (
	CategorySuccess StatusCategory = "success"
	CategoryPending StatusCategory = "pending"
	CategoryError   StatusCategory = "error"
)

// Category maps a request status to the visual category shown to the user.
func Category(status string) StatusCategory {
	switch status {
	case models.AdStatusCompleted:
		return CategorySuccess
	case models.AdStatusInProgress:
		return CategoryPending
	default:
		return CategoryError
	}
}

// Downloadable reports whether results of a request can be downloaded.
func Downloadable(status string) bool {
	return status == models.AdStatusCompleted
}

// List returns the user's requests, newest first.
func (s *Service) List(ctx context.Context, sess Session) ([]models.AdRequest, error) {
	if !sess.Valid() {
		return nil, ErrNoSession
	}
	reqs, err := s.records.ListAdRequests(ctx, sess.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ad requests: %w", err)
	}
	return reqs, nil
}

func (s *Service) Get(ctx context.Context, sess Session, id uuid.UUID) (*models.AdRequest, []models.AdImage, error) {
	if !sess.Valid() {
		return nil, nil, ErrNoSession
	}
	req, err := s.records.GetAdRequest(ctx, id, sess.UserID)
	if err != nil {
		return nil, nil, err
	}
	images, err := s.records.ListAdImages(ctx, id, sess.UserID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list ad images: %w", err)
	}
	return req, images, nil
}

// Download returns the images of a completed request.
func (s *Service) Download(ctx context.Context, sess Session, id uuid.UUID) ([]models.AdImage, error) {
	req, images, err := s.Get(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	if !Downloadable(req.Status) {
		return nil, ErrNotReady
	}
	return images, nil
}
