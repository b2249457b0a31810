package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"immobiliare-gpt-backend/internal/models"
)

func TestOAuthFlow(t *testing.T) {
	env := newTestEnv(t, false)

	start, _ := http.NewRequest(http.MethodGet, "/auth/oauth/google", nil)
	w := env.do(start, false)

	require.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "accounts.example.com")
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies, "verifier is kept in the session cookie")

	callback, _ := http.NewRequest(http.MethodGet, "/auth/callback?code=good-code", nil)
	for _, ck := range cookies {
		callback.AddCookie(ck)
	}
	w = env.do(callback, false)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp models.AuthSessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "access", resp.AccessToken)
	assert.Equal(t, "owner@example.com", resp.User.Email)
}

func TestOAuthStart_UnsupportedProvider(t *testing.T) {
	env := newTestEnv(t, false)

	req, _ := http.NewRequest(http.MethodGet, "/auth/oauth/myspace", nil)
	w := env.do(req, false)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCallback_Failures(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		status int
	}{
		{"provider error", "?error=access_denied&error_description=denied", http.StatusUnauthorized},
		{"missing code", "", http.StatusBadRequest},
		{"no login session", "?code=good-code", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, false)
			req, _ := http.NewRequest(http.MethodGet, "/auth/callback"+tt.query, nil)
			w := env.do(req, false)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestMeAndLogout(t *testing.T) {
	env := newTestEnv(t, false)

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/me", nil)
	w := env.do(req, true)
	require.Equal(t, http.StatusOK, w.Code)
	var me models.MeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	assert.Equal(t, env.userID.String(), me.UserID)
	assert.Equal(t, "owner@example.com", me.Email)

	req, _ = http.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	w = env.do(req, true)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []string{env.token}, env.auth.signOuts)

	req, _ = http.NewRequest(http.MethodGet, "/api/v1/me", nil)
	w = env.do(req, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
