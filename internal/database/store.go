package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"immobiliare-gpt-backend/internal/models"
)

// Store is the SQL record store for ad requests, their images and contact
// messages.
type Store struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) CreateAdRequest(ctx context.Context, req *models.AdRequest) (*models.AdRequest, error) {
	if _, err := s.db.NamedExecContext(ctx, insertAdRequest, req); err != nil {
		return nil, fmt.Errorf("failed to create ad request: %w", err)
	}
	out := *req
	return &out, nil
}

// InsertAdImages stores all images with a single multi-row insert.
func (s *Store) InsertAdImages(ctx context.Context, images []models.AdImage) error {
	if len(images) == 0 {
		return nil
	}
	if _, err := s.db.NamedExecContext(ctx, insertAdImage, images); err != nil {
		return fmt.Errorf("failed to insert ad images: %w", err)
	}
	return nil
}

func (s *Store) ListAdRequests(ctx context.Context, userID uuid.UUID) ([]models.AdRequest, error) {
	reqs := []models.AdRequest{}
	if err := s.db.SelectContext(ctx, &reqs, s.db.Rebind(selectAdRequests), userID); err != nil {
		return nil, fmt.Errorf("failed to list ad requests: %w", err)
	}
	return reqs, nil
}

func (s *Store) GetAdRequest(ctx context.Context, id, userID uuid.UUID) (*models.AdRequest, error) {
	var req models.AdRequest
	err := s.db.GetContext(ctx, &req, s.db.Rebind(selectAdRequest), id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ad request: %w", err)
	}
	return &req, nil
}

func (s *Store) ListAdImages(ctx context.Context, adRequestID, userID uuid.UUID) ([]models.AdImage, error) {
	images := []models.AdImage{}
	if err := s.db.SelectContext(ctx, &images, s.db.Rebind(selectAdImages), adRequestID, userID); err != nil {
		return nil, fmt.Errorf("failed to list ad images: %w", err)
	}
	return images, nil
}

func (s *Store) UpdateAdRequestStatus(ctx context.Context, id uuid.UUID, status string) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(updateAdRequestStatus), status, id)
	if err != nil {
		return fmt.Errorf("failed to update ad request status: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.ErrNotFound
	}
	return nil
}

// DeleteAdRequest removes a request together with its image rows.
func (s *Store) DeleteAdRequest(ctx context.Context, id, userID uuid.UUID) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, tx.Rebind(deleteAdImages), id, userID); err != nil {
		return fmt.Errorf("failed to delete ad images: %w", err)
	}
	if _, err := tx.ExecContext(ctx, tx.Rebind(deleteAdRequest), id, userID); err != nil {
		return fmt.Errorf("failed to delete ad request: %w", err)
	}
	return tx.Commit()
}

func (s *Store) CreateContact(ctx context.Context, contact *models.Contact) error {
	if _, err := s.db.NamedExecContext(ctx, insertContact, contact); err != nil {
		return fmt.Errorf("failed to store contact message: %w", err)
	}
	return nil
}
