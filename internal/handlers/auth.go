package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"immobiliare-gpt-backend/internal/models"
	"immobiliare-gpt-backend/internal/supabase"
)

const verifierKey = "pkce_verifier"

// AuthProvider runs the OAuth login flow against the identity service.
type AuthProvider interface {
	AuthorizeURL(provider, redirectTo string) (string, string, error)
	ExchangeCode(code, verifier string) (*models.AuthSession, error)
	SignOut(accessToken string) error
}

type AuthHandler struct {
	auth       AuthProvider
	redirectTo string
	logger     *zap.Logger
}

func NewAuthHandler(auth AuthProvider, redirectTo string, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{auth: auth, redirectTo: redirectTo, logger: logger}
}

// OAuthStart godoc
// @Summary     Start an OAuth login
// @Description Redirects to the identity provider. The PKCE verifier is kept in the session cookie.
// @Tags        auth
// @Param       provider path string true "OAuth provider, e.g. google"
// @Success     302
// @Failure     400 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /auth/oauth/{provider} [get]
func (h *AuthHandler) OAuthStart(c *gin.Context) {
	authURL, verifier, err := h.auth.AuthorizeURL(c.Param("provider"), h.redirectTo)
	if err != nil {
		if errors.Is(err, supabase.ErrUnsupportedProvider) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "unsupported provider", Message: err.Error()})
			return
		}
		h.logger.Error("failed to start oauth flow", zap.Error(err))
		c.JSON(http.StatusBadGateway, models.ErrorResponse{Error: "failed to start login", Message: err.Error()})
		return
	}

	session := sessions.Default(c)
	session.Set(verifierKey, verifier)
	if err := session.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to save session", Message: err.Error()})
		return
	}

	c.Redirect(http.StatusFound, authURL)
}

// Callback godoc
// @Summary     Complete an OAuth login
// @Description Exchanges the authorization code for an access token.
// @Tags        auth
// @Produce     json
// @Param       code query string true "Authorization code"
// @Success     200 {object} models.AuthSessionResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Router      /auth/callback [get]
func (h *AuthHandler) Callback(c *gin.Context) {
	if errDesc := c.Query("error_description"); errDesc != "" {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "login failed", Message: errDesc})
		return
	}

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "missing code"})
		return
	}

	session := sessions.Default(c)
	verifier, _ := session.Get(verifierKey).(string)
	if verifier == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "login session expired", Message: "start the login again"})
		return
	}

	auth, err := h.auth.ExchangeCode(code, verifier)
	if err != nil {
		h.logger.Warn("code exchange failed", zap.Error(err))
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "login failed", Message: err.Error()})
		return
	}

	session.Delete(verifierKey)
	if err := session.Save(); err != nil {
		h.logger.Warn("failed to clear login session", zap.Error(err))
	}

	c.JSON(http.StatusOK, models.AuthSessionResponse{
		AccessToken:  auth.AccessToken,
		RefreshToken: auth.RefreshToken,
		TokenType:    auth.TokenType,
		ExpiresIn:    auth.ExpiresIn,
		User: models.MeResponse{
			UserID: auth.User.ID.String(),
			Email:  auth.User.Email,
		},
	})
}

// Logout godoc
// @Summary     Sign out
// @Description Revokes the refresh tokens of the current session.
// @Tags        auth
// @Security    Bearer
// @Success     204
// @Failure     401 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	if err := h.auth.SignOut(sess.AccessToken); err != nil {
		h.logger.Error("sign out failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, models.ErrorResponse{Error: "failed to sign out", Message: err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// Me godoc
// @Summary     Current user
// @Tags        auth
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.MeResponse
// @Failure     401 {object} models.ErrorResponse
// @Router      /me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, models.MeResponse{UserID: sess.UserID.String(), Email: sess.Email})
}
