package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"
	"immobiliare-gpt-backend/internal/models"
)

const (
	tableAdRequests = "ad_requests"
	tableAdImages   = "ad_images"
	tableContacts   = "contacts"
)

// RestStore keeps records through the PostgREST API of the project. It is
// used when no direct database connection is configured.
type RestStore struct {
	client *supabase.Client
}

func NewRestStore(client *supabase.Client) *RestStore {
	return &RestStore{client: client}
}

// DialRest connects to the project with the service role key. Row ownership
// is enforced by the store through explicit user_id filters.
func DialRest(projectURL, serviceKey string) (*RestStore, error) {
	client, err := supabase.NewClient(projectURL, serviceKey, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize supabase client: %w", err)
	}
	return NewRestStore(client), nil
}

// timestamp accepts the layouts PostgREST emits for both timestamp and
// timestamptz columns.
type timestamp time.Time

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999-07",
	"2006-01-02 15:04:05.999999999",
}

func (t *timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			*t = timestamp(parsed.UTC())
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", s)
}

type adRequestRow struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Email       string    `json:"email"`
	UserID      uuid.UUID `json:"user_id"`
	Status      string    `json:"status"`
	CreatedAt   timestamp `json:"created_at"`
}

func (r adRequestRow) model() models.AdRequest {
	return models.AdRequest{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Email:       r.Email,
		UserID:      r.UserID,
		Status:      r.Status,
		CreatedAt:   time.Time(r.CreatedAt),
	}
}

type adImageRow struct {
	ID               uuid.UUID `json:"id"`
	AdRequestID      uuid.UUID `json:"ad_request_id"`
	UserID           uuid.UUID `json:"user_id"`
	FileName         string    `json:"file_name"`
	OriginalImageURL string    `json:"original_image_url"`
	Status           string    `json:"status"`
	CreatedAt        timestamp `json:"created_at"`
}

func (r adImageRow) model() models.AdImage {
	return models.AdImage{
		ID:               r.ID,
		AdRequestID:      r.AdRequestID,
		UserID:           r.UserID,
		FileName:         r.FileName,
		OriginalImageURL: r.OriginalImageURL,
		Status:           r.Status,
		CreatedAt:        time.Time(r.CreatedAt),
	}
}

func (s *RestStore) Ping(_ context.Context) error {
	_, _, err := s.client.From(tableAdRequests).Select("id", "", false).Limit(1, "").Execute()
	return err
}

func (s *RestStore) CreateAdRequest(_ context.Context, req *models.AdRequest) (*models.AdRequest, error) {
	var rows []adRequestRow
	_, err := s.client.From(tableAdRequests).
		Insert(req, false, "", "representation", "").
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("failed to create ad request: %w", err)
	}
	if len(rows) == 0 {
		out := *req
		return &out, nil
	}
	out := rows[0].model()
	return &out, nil
}

// InsertAdImages sends all rows in one bulk insert request.
func (s *RestStore) InsertAdImages(_ context.Context, images []models.AdImage) error {
	if len(images) == 0 {
		return nil
	}
	_, _, err := s.client.From(tableAdImages).
		Insert(images, false, "", "minimal", "").
		Execute()
	if err != nil {
		return fmt.Errorf("failed to insert ad images: %w", err)
	}
	return nil
}

func (s *RestStore) ListAdRequests(_ context.Context, userID uuid.UUID) ([]models.AdRequest, error) {
	var rows []adRequestRow
	_, err := s.client.From(tableAdRequests).
		Select("*", "", false).
		Eq("user_id", userID.String()).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("failed to list ad requests: %w", err)
	}

	reqs := make([]models.AdRequest, len(rows))
	for i, r := range rows {
		reqs[i] = r.model()
	}
	return reqs, nil
}

func (s *RestStore) GetAdRequest(_ context.Context, id, userID uuid.UUID) (*models.AdRequest, error) {
	var rows []adRequestRow
	_, err := s.client.From(tableAdRequests).
		Select("*", "", false).
		Eq("id", id.String()).
		Eq("user_id", userID.String()).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("failed to get ad request: %w", err)
	}
	if len(rows) == 0 {
		return nil, models.ErrNotFound
	}
	req := rows[0].model()
	return &req, nil
}

func (s *RestStore) ListAdImages(_ context.Context, adRequestID, userID uuid.UUID) ([]models.AdImage, error) {
	var rows []adImageRow
	_, err := s.client.From(tableAdImages).
		Select("*", "", false).
		Eq("ad_request_id", adRequestID.String()).
		Eq("user_id", userID.String()).
		Order("created_at", &postgrest.OrderOpts{Ascending: true}).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("failed to list ad images: %w", err)
	}

	images := make([]models.AdImage, len(rows))
	for i, r := range rows {
		images[i] = r.model()
	}
	return images, nil
}

func (s *RestStore) UpdateAdRequestStatus(_ context.Context, id uuid.UUID, status string) error {
	var rows []adRequestRow
	_, err := s.client.From(tableAdRequests).
		Update(map[string]string{"status": status}, "representation", "").
		Eq("id", id.String()).
		ExecuteTo(&rows)
	if err != nil {
		return fmt.Errorf("failed to update ad request status: %w", err)
	}
	if len(rows) == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (s *RestStore) DeleteAdRequest(_ context.Context, id, userID uuid.UUID) error {
	_, _, err := s.client.From(tableAdImages).
		Delete("minimal", "").
		Eq("ad_request_id", id.String()).
		Eq("user_id", userID.String()).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to delete ad images: %w", err)
	}

	_, _, err = s.client.From(tableAdRequests).
		Delete("minimal", "").
		Eq("id", id.String()).
		Eq("user_id", userID.String()).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to delete ad request: %w", err)
	}
	return nil
}

func (s *RestStore) CreateContact(_ context.Context, contact *models.Contact) error {
	_, _, err := s.client.From(tableContacts).
		Insert(contact, false, "", "minimal", "").
		Execute()
	if err != nil {
		return fmt.Errorf("failed to store contact message: %w", err)
	}
	return nil
}

