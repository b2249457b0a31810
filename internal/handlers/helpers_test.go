package handlers_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"immobiliare-gpt-backend/internal/ads"
	"immobiliare-gpt-backend/internal/ai"
	"immobiliare-gpt-backend/internal/config"
	"immobiliare-gpt-backend/internal/handlers"
	"immobiliare-gpt-backend/internal/models"
	"immobiliare-gpt-backend/internal/plans"
	"immobiliare-gpt-backend/internal/supabase"
)

const testSecret = "test-secret-key-for-jwt-signing-must-be-long-enough"

var (
	jpegData = append([]byte("\xFF\xD8\xFF\xE0\x00\x10JFIF\x00"), bytes.Repeat([]byte{1}, 32)...)
	pngData  = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), bytes.Repeat([]byte{1}, 32)...)
	gifData  = []byte("GIF89a\x01\x00\x01\x00\x00\x00\x00")
)

type memRecords struct {
	mu        sync.Mutex
	requests  map[uuid.UUID]models.AdRequest
	images    []models.AdImage
	inserts   int
	contacts  []models.Contact
	insertErr error
	pingErr   error
}

func newMemRecords() *memRecords {
	return &memRecords{requests: map[uuid.UUID]models.AdRequest{}}
}

func (m *memRecords) Ping(context.Context) error { return m.pingErr }

func (m *memRecords) CreateAdRequest(_ context.Context, req *models.AdRequest) (*models.AdRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests[req.ID] = *req
	out := *req
	return &out, nil
}

func (m *memRecords) InsertAdImages(_ context.Context, images []models.AdImage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inserts++
	if m.insertErr != nil {
		return m.insertErr
	}
	m.images = append(m.images, images...)
	return nil
}

func (m *memRecords) ListAdRequests(_ context.Context, userID uuid.UUID) ([]models.AdRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.AdRequest{}
	for _, r := range m.requests {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memRecords) GetAdRequest(_ context.Context, id, userID uuid.UUID) (*models.AdRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.requests[id]
	if !ok || r.UserID != userID {
		return nil, models.ErrNotFound
	}
	return &r, nil
}

func (m *memRecords) ListAdImages(_ context.Context, adRequestID, userID uuid.UUID) ([]models.AdImage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.AdImage{}
	for _, img := range m.images {
		if img.AdRequestID == adRequestID && img.UserID == userID {
			out = append(out, img)
		}
	}
	return out, nil
}

func (m *memRecords) DeleteAdRequest(_ context.Context, id, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.requests[id]; ok && r.UserID == userID {
		delete(m.requests, id)
	}
	return nil
}

func (m *memRecords) CreateContact(_ context.Context, c *models.Contact) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.contacts = append(m.contacts, *c)
	return nil
}

func (m *memRecords) put(req models.AdRequest, images ...models.AdImage) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests[req.ID] = req
	m.images = append(m.images, images...)
}

type memObjects struct {
	mu      sync.Mutex
	objects map[string][]byte
	fail    bool
}

func newMemObjects() *memObjects {
	return &memObjects{objects: map[string][]byte{}}
}

func (m *memObjects) Upload(_ context.Context, path, _ string, data []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return "", errors.New("bucket unavailable")
	}
	m.objects[path] = data
	return path, nil
}

func (m *memObjects) PublicURL(path string) string {
	return "https://cdn.test/" + path
}

func (m *memObjects) Remove(_ context.Context, paths []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range paths {
		delete(m.objects, p)
	}
	return nil
}

type fakeForwarder struct {
	forwarded []models.Contact
}

func (f *fakeForwarder) ForwardContact(_ context.Context, c *models.Contact) error {
	f.forwarded = append(f.forwarded, *c)
	return nil
}

type fakeProvider struct {
	lastRequest ai.Request
}

func (f *fakeProvider) Complete(_ context.Context, req ai.Request) (*ai.Completion, error) {
	f.lastRequest = req
	return &ai.Completion{Content: "Descrizione ottimizzata", Model: req.Model, Usage: ai.Usage{TotalTokens: 42}}, nil
}

func (f *fakeProvider) EditImage(_ context.Context, img ai.Image, _ string) (*ai.Image, error) {
	return &ai.Image{Name: img.Name, ContentType: "image/png", Data: pngData}, nil
}

type fakeAuth struct {
	verifier string
	signOuts []string
}

func (f *fakeAuth) AuthorizeURL(provider, redirectTo string) (string, string, error) {
	if provider != "google" {
		return "", "", fmt.Errorf("%w: %s", supabase.ErrUnsupportedProvider, provider)
	}
	return "https://accounts.example.com/authorize?redirect_to=" + redirectTo, f.verifier, nil
}

func (f *fakeAuth) ExchangeCode(code, verifier string) (*models.AuthSession, error) {
	if code != "good-code" || verifier != f.verifier {
		return nil, errors.New("invalid grant")
	}
	return &models.AuthSession{
		AccessToken: "access",
		TokenType:   "bearer",
		ExpiresIn:   3600,
		User:        models.User{ID: uuid.MustParse("11111111-1111-1111-1111-111111111111"), Email: "owner@example.com"},
	}, nil
}

func (f *fakeAuth) SignOut(token string) error {
	f.signOuts = append(f.signOuts, token)
	return nil
}

type testEnv struct {
	engine    *gin.Engine
	records   *memRecords
	objects   *memObjects
	forwarder *fakeForwarder
	provider  *fakeProvider
	auth      *fakeAuth
	userID    uuid.UUID
	token     string
}

func newTestEnv(t *testing.T, withAI bool) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{SupabaseJWTSecret: testSecret, SessionSecret: "session-secret-0123456789abcdef"}
	env := &testEnv{
		records:   newMemRecords(),
		objects:   newMemObjects(),
		forwarder: &fakeForwarder{},
		provider:  &fakeProvider{},
		auth:      &fakeAuth{verifier: "verifier-123"},
		userID:    uuid.New(),
	}

	ps, err := plans.Load()
	require.NoError(t, err)

	var aiService *ai.Service
	if withAI {
		aiService = ai.NewService(env.provider, "gpt-4", 1000, "Italian")
	}

	r := &handlers.Router{
		Health:  handlers.NewHealthHandler(env.records),
		Ads:     handlers.NewAdsHandler(ads.NewService(env.records, env.objects, nil, nil), nil),
		Contact: handlers.NewContactHandler(env.records, env.forwarder, nil),
		AI:      handlers.NewAIHandler(aiService, nil),
		Auth:    handlers.NewAuthHandler(env.auth, "http://localhost:3000/dashboard", nil),
		Plans:   handlers.NewPlansHandler(ps),
	}
	env.engine = r.Engine(cfg, zap.NewNop())

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   env.userID.String(),
		"email": "owner@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	env.token, err = token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	return env
}

func (e *testEnv) do(req *http.Request, authenticated bool) *httptest.ResponseRecorder {
	if authenticated {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

type upload struct {
	name string
	data []byte
}

func multipartRequest(t *testing.T, target string, fileField string, files []upload, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, f := range files {
		part, err := w.CreateFormFile(fileField, f.name)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req, err := http.NewRequest(http.MethodPost, target, &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}
