package ads

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"immobiliare-gpt-backend/internal/models"
)

// RecordStore is the row store holding ad requests and their images.
type RecordStore interface {
	CreateAdRequest(ctx context.Context, req *models.AdRequest) (*models.AdRequest, error)
	InsertAdImages(ctx context.Context, images []models.AdImage) error
	ListAdRequests(ctx context.Context, userID uuid.UUID) ([]models.AdRequest, error)
	GetAdRequest(ctx context.Context, id, userID uuid.UUID) (*models.AdRequest, error)
	ListAdImages(ctx context.Context, adRequestID, userID uuid.UUID) ([]models.AdImage, error)
	DeleteAdRequest(ctx context.Context, id, userID uuid.UUID) error
}

// ObjectStore keeps the uploaded photos.
type ObjectStore interface {
	// Upload stores data under path and returns the stored path.
	Upload(ctx context.Context, path, contentType string, data []byte) (string, error)
	PublicURL(path string) string
	Remove(ctx context.Context, paths []string) error
}

// Publisher hands submitted requests to the fulfillment process.
type Publisher interface {
	PublishSubmitted(ctx context.Context, req *models.AdRequest, imageCount int) error
}

type Stage string

const (
	StageCreateRequest Stage = "create_request"
	StageUpload        Stage = "upload"
	StageLink          Stage = "link"
)

// StageError reports which step of a submission failed.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// UploadOutcome is the result of storing one file. Exactly one of URL and
// Err is set.
type UploadOutcome struct {
	Index int
	File  string
	Path  string
	URL   string
	Err   error
}

// BatchResult collects every upload outcome in submission order.
type BatchResult struct {
	Outcomes []UploadOutcome
}

func (b BatchResult) Succeeded() []UploadOutcome {
	out := make([]UploadOutcome, 0, len(b.Outcomes))
	for _, o := range b.Outcomes {
		if o.Err == nil {
			out = append(out, o)
		}
	}
	return out
}

// Err joins the errors of all failed uploads, nil when every upload succeeded.
func (b BatchResult) Err() error {
	var errs []error
	for _, o := range b.Outcomes {
		if o.Err != nil {
			errs = append(errs, o.Err)
		}
	}
	return errors.Join(errs...)
}

// Receipt is returned by a successful submission.
type Receipt struct {
	AdRequest *models.AdRequest
	Images    []models.AdImage
}

type Service struct {
	records   RecordStore
	objects   ObjectStore
	publisher Publisher
	logger    *zap.Logger
	now       func() time.Time
}

func NewService(records RecordStore, objects ObjectStore, publisher Publisher, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		records:   records,
		objects:   objects,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// Submit validates the form, creates the ad request, uploads every image
// concurrently and links the uploads to the request. The outcome is all or
// nothing: when any upload or the link insert fails the stored objects and
// the parent row are removed again. On success the form is reset.
func (s *Service) Submit(ctx context.Context, sess Session, form *Form) (*Receipt, error) {
	if !sess.Valid() {
		return nil, ErrNoSession
	}
	if strings.TrimSpace(form.Email) == "" {
		form.Email = sess.Email
	}
	if err := form.Validate(); err != nil {
		return nil, err
	}

	req, err := s.records.CreateAdRequest(ctx, &models.AdRequest{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(form.Title),
		Description: strings.TrimSpace(form.Description),
		Email:       strings.TrimSpace(form.Email),
		UserID:      sess.UserID,
		Status:      models.AdStatusInProgress,
		CreatedAt:   s.now().UTC(),
	})
	if err != nil {
		return nil, &StageError{Stage: StageCreateRequest, Err: err}
	}

	log := s.logger.With(zap.String("ad_request_id", req.ID.String()), zap.String("user_id", sess.UserID.String()))
	log.Info("ad request created", zap.Int("images", len(form.Images)))

	batch := s.uploadAll(ctx, req, form.Images)
	uploaded := batch.Succeeded()
	if err := batch.Err(); err != nil {
		log.Warn("image upload failed",
			zap.Int("succeeded", len(uploaded)),
			zap.Int("failed", len(batch.Outcomes)-len(uploaded)),
			zap.Error(err))
		s.compensate(ctx, log, req, uploaded)
		return nil, &StageError{Stage: StageUpload, Err: err}
	}

	images := make([]models.AdImage, 0, len(uploaded))
	for _, o := range uploaded {
		images = append(images, models.AdImage{
			ID:               uuid.New(),
			AdRequestID:      req.ID,
			UserID:           sess.UserID,
			FileName:         path.Base(o.Path),
			OriginalImageURL: o.URL,
			Status:           models.ImageStatusUploaded,
			CreatedAt:        s.now().UTC(),
		})
	}

	if len(images) > 0 {
		if err := s.records.InsertAdImages(ctx, images); err != nil {
			log.Warn("linking images failed", zap.Error(err))
			s.compensate(ctx, log, req, uploaded)
			return nil, &StageError{Stage: StageLink, Err: err}
		}
	}

	if s.publisher != nil {
		if err := s.publisher.PublishSubmitted(ctx, req, len(images)); err != nil {
			log.Error("failed to publish submission", zap.Error(err))
		}
	}

	log.Info("ad request submitted", zap.Int("images", len(images)))
	form.Reset(sess)
	return &Receipt{AdRequest: req, Images: images}, nil
}

// uploadAll starts one upload per file and waits for all of them. A failed
// upload never cancels its siblings.
func (s *Service) uploadAll(ctx context.Context, req *models.AdRequest, files []File) BatchResult {
	outcomes := make([]UploadOutcome, len(files))

	var g errgroup.Group
	for i, f := range files {
		g.Go(func() error {
			out := UploadOutcome{Index: i, File: f.Name, Path: objectPath(req.UserID, req.ID, f)}
			stored, err := s.objects.Upload(ctx, out.Path, f.ContentType, f.Data)
			if err != nil {
				out.Err = fmt.Errorf("upload %s: %w", f.Name, err)
			} else {
				out.Path = stored
				out.URL = s.objects.PublicURL(stored)
			}
			outcomes[i] = out
			return nil
		})
	}
	_ = g.Wait()

	return BatchResult{Outcomes: outcomes}
}

// compensate removes what a failed submission left behind. It runs detached
// from the request context and only logs its own failures.
func (s *Service) compensate(ctx context.Context, log *zap.Logger, req *models.AdRequest, uploaded []UploadOutcome) {
	ctx = context.WithoutCancel(ctx)

	if len(uploaded) > 0 {
		paths := make([]string, len(uploaded))
		for i, o := range uploaded {
			paths[i] = o.Path
		}
		if err := s.objects.Remove(ctx, paths); err != nil {
			log.Error("failed to remove orphaned uploads", zap.Strings("paths", paths), zap.Error(err))
		}
	}

	if err := s.records.DeleteAdRequest(ctx, req.ID, req.UserID); err != nil {
		log.Error("failed to delete ad request", zap.Error(err))
	}
}

func objectPath(userID, adRequestID uuid.UUID, f File) string {
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(f.Name)), ".")
	if ext == "" {
		ext = extensionFor(f.ContentType)
	}
	return fmt.Sprintf("%s/%s/%s.%s", userID, adRequestID, uuid.NewString(), ext)
}

func extensionFor(contentType string) string {
	if contentType == ContentTypePNG {
		return "png"
	}
	return "jpg"
}
