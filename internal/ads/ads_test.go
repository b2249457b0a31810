package ads_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"immobiliare-gpt-backend/internal/ads"
	"immobiliare-gpt-backend/internal/models"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var (
	jpegBytes = append([]byte("\xFF\xD8\xFF\xE0\x00\x10JFIF\x00"), bytes.Repeat([]byte{0}, 64)...)
	pngBytes  = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), bytes.Repeat([]byte{0}, 64)...)
)

type fakeRecords struct {
	mu         sync.Mutex
	createErr  error
	insertErr  error
	created    []models.AdRequest
	inserts    [][]models.AdImage
	deleted    []uuid.UUID
	images     []models.AdImage
	getRequest *models.AdRequest
}

func (f *fakeRecords) CreateAdRequest(_ context.Context, req *models.AdRequest) (*models.AdRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, *req)
	out := *req
	return &out, nil
}

func (f *fakeRecords) InsertAdImages(_ context.Context, images []models.AdImage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inserts = append(f.inserts, images)
	return f.insertErr
}

func (f *fakeRecords) ListAdRequests(_ context.Context, userID uuid.UUID) ([]models.AdRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.AdRequest
	for _, r := range f.created {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRecords) GetAdRequest(_ context.Context, id, userID uuid.UUID) (*models.AdRequest, error) {
	if f.getRequest != nil && f.getRequest.ID == id && f.getRequest.UserID == userID {
		return f.getRequest, nil
	}
	return nil, models.ErrNotFound
}

func (f *fakeRecords) ListAdImages(_ context.Context, _, _ uuid.UUID) ([]models.AdImage, error) {
	return f.images, nil
}

func (f *fakeRecords) DeleteAdRequest(_ context.Context, id, _ uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeRecords) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.created) + len(f.inserts) + len(f.deleted)
}

type fakeObjects struct {
	mu       sync.Mutex
	failOn   map[string]bool
	uploaded []string
	removed  []string
	barrier  *sync.WaitGroup
}

func (f *fakeObjects) Upload(_ context.Context, path, _ string, data []byte) (string, error) {
	if f.barrier != nil {
		f.barrier.Done()
		done := make(chan struct{})
		go func() {
			f.barrier.Wait()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			return "", errors.New("uploads were not issued concurrently")
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failOn[string(data)] {
		return "", errors.New("storage unavailable")
	}
	f.uploaded = append(f.uploaded, path)
	return path, nil
}

func (f *fakeObjects) PublicURL(path string) string {
	return "https://cdn.test/ad-images/" + path
}

func (f *fakeObjects) Remove(_ context.Context, paths []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, paths...)
	return nil
}

type fakePublisher struct {
	published []uuid.UUID
}

func (p *fakePublisher) PublishSubmitted(_ context.Context, req *models.AdRequest, _ int) error {
	p.published = append(p.published, req.ID)
	return nil
}

func jpeg(name string, tag string) ads.File {
	data := append(append([]byte{}, jpegBytes...), []byte(tag)...)
	return ads.File{Name: name, ContentType: ads.ContentTypeJPEG, Size: int64(len(data)), Data: data}
}

func validForm(images ...ads.File) *ads.Form {
	return &ads.Form{
		Images:         images,
		Title:          "Villa moderna con vista panoramica",
		Description:    "200 mq, 4 camere, 3 bagni, giardino privato",
		Email:          "owner@example.com",
		RightsAccepted: true,
		TermsAccepted:  true,
	}
}

func session() ads.Session {
	return ads.Session{UserID: uuid.New(), Email: "owner@example.com"}
}

func TestDetectContentType(t *testing.T) {
	assert.Equal(t, ads.ContentTypeJPEG, ads.DetectContentType(jpegBytes))
	assert.Equal(t, ads.ContentTypePNG, ads.DetectContentType(pngBytes))
	assert.False(t, ads.Accepted(ads.DetectContentType([]byte("GIF89a........"))))
}

func TestIntake_ExcludesOversizedAndWrongType(t *testing.T) {
	files := []ads.File{
		jpeg("kitchen.jpg", "a"),
		jpeg("living.jpg", "b"),
		{Name: "garden.png", ContentType: ads.ContentTypePNG, Size: ads.MaxFileSize + 1},
		{Name: "plan.gif", ContentType: "image/gif", Size: 100},
	}

	accepted, notices, err := ads.Intake(0, files)
	require.NoError(t, err)

	require.Len(t, accepted, 2)
	assert.Equal(t, "kitchen.jpg", accepted[0].Name)
	assert.Equal(t, "living.jpg", accepted[1].Name)

	require.Len(t, notices, 3)
	assert.Equal(t, models.NoticeError, notices[0].Level)
	assert.Contains(t, notices[0].Title, "garden.png")
	assert.Contains(t, notices[0].Message, "2.0 MiB (2,097,152 bytes)")
	assert.Contains(t, notices[0].Message, "this file has 2,097,153 bytes")
	assert.Contains(t, notices[1].Title, "plan.gif")
	assert.Equal(t, models.NoticeSuccess, notices[2].Level)
}

func TestIntake_ExactLimitsAccepted(t *testing.T) {
	files := make([]ads.File, ads.MaxFiles)
	for i := range files {
		files[i] = ads.File{Name: fmt.Sprintf("%d.jpg", i), ContentType: ads.ContentTypeJPEG, Size: ads.MaxFileSize}
	}

	accepted, _, err := ads.Intake(0, files)
	require.NoError(t, err)
	assert.Len(t, accepted, ads.MaxFiles)
}

func TestIntake_TooManyFiles(t *testing.T) {
	files := make([]ads.File, ads.MaxFiles+1)
	for i := range files {
		files[i] = jpeg(fmt.Sprintf("%d.jpg", i), "x")
	}

	accepted, notices, err := ads.Intake(0, files)
	assert.ErrorIs(t, err, ads.ErrTooManyFiles)
	assert.Nil(t, accepted)
	require.NotEmpty(t, notices)
	assert.Equal(t, "File limit exceeded", notices[len(notices)-1].Title)

	_, _, err = ads.Intake(29, []ads.File{jpeg("a.jpg", "a"), jpeg("b.jpg", "b")})
	assert.ErrorIs(t, err, ads.ErrTooManyFiles)
}

func TestFormValidate_Order(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *ads.Form)
		want   error
		reason string
	}{
		{"no images", func(f *ads.Form) { f.Images = nil; f.Title = "" }, ads.ErrNoImages, "no_images"},
		{"blank title", func(f *ads.Form) { f.Title = "   "; f.Email = "bad" }, ads.ErrMissingFields, "missing_fields"},
		{"blank description", func(f *ads.Form) { f.Description = "" }, ads.ErrMissingFields, "missing_fields"},
		{"blank email", func(f *ads.Form) { f.Email = "" }, ads.ErrMissingFields, "missing_fields"},
		{"invalid email", func(f *ads.Form) { f.Email = "owner@example"; f.RightsAccepted = false }, ads.ErrInvalidEmail, "invalid_email"},
		{"rights", func(f *ads.Form) { f.RightsAccepted = false; f.TermsAccepted = false }, ads.ErrRightsNotAccepted, "rights_not_accepted"},
		{"terms", func(f *ads.Form) { f.TermsAccepted = false }, ads.ErrTermsNotAccepted, "terms_not_accepted"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm(jpeg("a.jpg", "a"))
			tt.mutate(form)

			err := form.Validate()
			assert.ErrorIs(t, err, tt.want)

			reason, ok := ads.ValidationReason(err)
			assert.True(t, ok)
			assert.Equal(t, tt.reason, reason)
		})
	}

	assert.NoError(t, validForm(jpeg("a.jpg", "a")).Validate())
}

func TestSubmit_ValidationFailureMakesNoStoreCalls(t *testing.T) {
	records := &fakeRecords{}
	objects := &fakeObjects{}
	svc := ads.NewService(records, objects, nil, nil)

	form := validForm(jpeg("a.jpg", "a"))
	form.Email = "not-an-email"

	_, err := svc.Submit(context.Background(), session(), form)
	assert.ErrorIs(t, err, ads.ErrInvalidEmail)
	assert.Zero(t, records.calls())
	assert.Empty(t, objects.uploaded)
}

func TestSubmit_RequiresSession(t *testing.T) {
	svc := ads.NewService(&fakeRecords{}, &fakeObjects{}, nil, nil)

	_, err := svc.Submit(context.Background(), ads.Session{}, validForm(jpeg("a.jpg", "a")))
	assert.ErrorIs(t, err, ads.ErrNoSession)
}

func TestSubmit_Success(t *testing.T) {
	records := &fakeRecords{}
	objects := &fakeObjects{}
	publisher := &fakePublisher{}
	svc := ads.NewService(records, objects, publisher, nil)
	sess := session()

	form := validForm(jpeg("kitchen.JPG", "a"), jpeg("living", "b"), jpeg("bath.jpeg", "c"))
	receipt, err := svc.Submit(context.Background(), sess, form)
	require.NoError(t, err)

	require.Len(t, records.created, 1)
	req := records.created[0]
	assert.Equal(t, models.AdStatusInProgress, req.Status)
	assert.Equal(t, sess.UserID, req.UserID)

	require.Len(t, records.inserts, 1)
	batch := records.inserts[0]
	require.Len(t, batch, 3)
	for i, img := range batch {
		assert.Equal(t, req.ID, img.AdRequestID)
		assert.Equal(t, sess.UserID, img.UserID)
		assert.Equal(t, models.ImageStatusUploaded, img.Status)
		assert.True(t, strings.HasPrefix(img.OriginalImageURL, "https://cdn.test/ad-images/"+sess.UserID.String()+"/"+req.ID.String()+"/"))
		assert.True(t, strings.HasSuffix(img.OriginalImageURL, img.FileName))
		assert.Equal(t, receipt.Images[i].ID, img.ID)
	}
	assert.True(t, strings.HasSuffix(batch[0].FileName, ".jpg"))
	assert.True(t, strings.HasSuffix(batch[1].FileName, ".jpg"))
	assert.True(t, strings.HasSuffix(batch[2].FileName, ".jpeg"))

	assert.Equal(t, []uuid.UUID{req.ID}, publisher.published)
	assert.Empty(t, records.deleted)

	assert.Equal(t, ads.Form{Email: sess.Email}, *form)
}

func TestSubmit_SignedInEmailFillsBlankField(t *testing.T) {
	records := &fakeRecords{}
	svc := ads.NewService(records, &fakeObjects{}, nil, nil)
	sess := session()

	form := validForm(jpeg("a.jpg", "a"))
	form.Email = ""

	_, err := svc.Submit(context.Background(), sess, form)
	require.NoError(t, err)
	assert.Equal(t, sess.Email, records.created[0].Email)
}

func TestSubmit_UploadsAreConcurrent(t *testing.T) {
	const n = 5
	var barrier sync.WaitGroup
	barrier.Add(n)

	records := &fakeRecords{}
	objects := &fakeObjects{barrier: &barrier}
	svc := ads.NewService(records, objects, nil, nil)

	files := make([]ads.File, n)
	for i := range files {
		files[i] = jpeg(fmt.Sprintf("%d.jpg", i), fmt.Sprint(i))
	}

	_, err := svc.Submit(context.Background(), session(), validForm(files...))
	require.NoError(t, err)
	assert.Len(t, objects.uploaded, n)
	require.Len(t, records.inserts, 1)
	assert.Len(t, records.inserts[0], n)
}

func TestSubmit_OneUploadFailsReportsSingleFailure(t *testing.T) {
	records := &fakeRecords{}
	bad := jpeg("broken.jpg", "broken")
	objects := &fakeObjects{failOn: map[string]bool{string(bad.Data): true}}
	svc := ads.NewService(records, objects, &fakePublisher{}, nil)

	form := validForm(jpeg("a.jpg", "a"), bad, jpeg("c.jpg", "c"))
	receipt, err := svc.Submit(context.Background(), session(), form)
	assert.Nil(t, receipt)

	var stageErr *ads.StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, ads.StageUpload, stageErr.Stage)
	assert.Contains(t, err.Error(), "broken.jpg")

	assert.Len(t, records.created, 1)
	assert.Empty(t, records.inserts)

	// the two successful siblings are cleaned up with the parent row
	assert.ElementsMatch(t, objects.uploaded, objects.removed)
	assert.Len(t, objects.removed, 2)
	assert.Equal(t, []uuid.UUID{records.created[0].ID}, records.deleted)

	// form state is kept for a retry
	assert.Len(t, form.Images, 3)
}

func TestSubmit_CreateFailureStopsEverything(t *testing.T) {
	records := &fakeRecords{createErr: errors.New("db down")}
	objects := &fakeObjects{}
	svc := ads.NewService(records, objects, nil, nil)

	_, err := svc.Submit(context.Background(), session(), validForm(jpeg("a.jpg", "a")))

	var stageErr *ads.StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, ads.StageCreateRequest, stageErr.Stage)
	assert.Empty(t, objects.uploaded)
	assert.Empty(t, records.inserts)
	assert.Empty(t, records.deleted)
}

func TestSubmit_LinkFailureCompensates(t *testing.T) {
	records := &fakeRecords{insertErr: errors.New("constraint violation")}
	objects := &fakeObjects{}
	svc := ads.NewService(records, objects, nil, nil)

	_, err := svc.Submit(context.Background(), session(), validForm(jpeg("a.jpg", "a"), jpeg("b.jpg", "b")))

	var stageErr *ads.StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, ads.StageLink, stageErr.Stage)
	assert.Len(t, records.inserts, 1)
	assert.ElementsMatch(t, objects.uploaded, objects.removed)
	assert.Len(t, records.deleted, 1)
}

func TestBatchResult(t *testing.T) {
	b := ads.BatchResult{Outcomes: []ads.UploadOutcome{
		{Index: 0, Path: "a", URL: "u/a"},
		{Index: 1, Err: errors.New("boom")},
		{Index: 2, Path: "c", URL: "u/c"},
	}}

	ok := b.Succeeded()
	require.Len(t, ok, 2)
	assert.Equal(t, 0, ok[0].Index)
	assert.Equal(t, 2, ok[1].Index)
	assert.EqualError(t, b.Err(), "boom")

	assert.NoError(t, ads.BatchResult{Outcomes: ok}.Err())
}

func TestCategoryAndDownloadable(t *testing.T) {
	assert.Equal(t, ads.CategorySuccess, ads.Category(models.AdStatusCompleted))
	assert.Equal(t, ads.CategoryPending, ads.Category(models.AdStatusInProgress))
	assert.Equal(t, ads.CategoryError, ads.Category(models.AdStatusFailed))
	assert.Equal(t, ads.CategoryError, ads.Category("unknown"))

	assert.True(t, ads.Downloadable(models.AdStatusCompleted))
	assert.False(t, ads.Downloadable(models.AdStatusInProgress))
	assert.False(t, ads.Downloadable("Completed"))
}

func TestDownload(t *testing.T) {
	sess := session()
	req := &models.AdRequest{ID: uuid.New(), UserID: sess.UserID, Status: models.AdStatusInProgress}
	records := &fakeRecords{getRequest: req, images: []models.AdImage{{ID: uuid.New()}}}
	svc := ads.NewService(records, &fakeObjects{}, nil, nil)

	_, err := svc.Download(context.Background(), sess, req.ID)
	assert.ErrorIs(t, err, ads.ErrNotReady)

	req.Status = models.AdStatusCompleted
	images, err := svc.Download(context.Background(), sess, req.ID)
	require.NoError(t, err)
	assert.Len(t, images, 1)

	_, err = svc.Download(context.Background(), session(), req.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestList_NewestFirstFromStore(t *testing.T) {
	sess := session()
	records := &fakeRecords{}
	svc := ads.NewService(records, &fakeObjects{}, nil, nil)

	_, err := svc.Submit(context.Background(), sess, validForm(jpeg("a.jpg", "a")))
	require.NoError(t, err)

	reqs, err := svc.List(context.Background(), sess)
	require.NoError(t, err)
	assert.Len(t, reqs, 1)

	others, err := svc.List(context.Background(), session())
	require.NoError(t, err)
	assert.Empty(t, others)
}
