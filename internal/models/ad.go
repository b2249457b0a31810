package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	AdStatusInProgress = "in_progress"
	AdStatusCompleted  = "completed"
	AdStatusFailed     = "failed"

	ImageStatusUploaded = "uploaded"
)

// ErrNotFound is returned by record stores when a row does not exist or is
// not owned by the requesting user.
var ErrNotFound = errors.New("record not found")

type AdRequest struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Email       string    `db:"email" json:"email"`
	UserID      uuid.UUID `db:"user_id" json:"user_id"`
	Status      string    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type AdImage struct {
	ID               uuid.UUID `db:"id" json:"id"`
	AdRequestID      uuid.UUID `db:"ad_request_id" json:"ad_request_id"`
	UserID           uuid.UUID `db:"user_id" json:"user_id"`
	FileName         string    `db:"file_name" json:"file_name"`
	OriginalImageURL string    `db:"original_image_url" json:"original_image_url"`
	Status           string    `db:"status" json:"status"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}

type Contact struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Message   string    `db:"message" json:"message"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type User struct {
	ID    uuid.UUID
	Email string
}

// AuthSession is the token pair handed out after a successful OAuth login.
type AuthSession struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	ExpiresIn    int
	User         User
}
