package supabase

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/supabase-community/gotrue-go"
	"github.com/supabase-community/gotrue-go/types"
	"immobiliare-gpt-backend/internal/models"
)

var ErrUnsupportedProvider = errors.New("unsupported oauth provider")

var providers = map[string]types.Provider{
	"google":   types.ProviderGoogle,
	"github":   types.ProviderGitHub,
	"facebook": types.ProviderFacebook,
	"apple":    types.ProviderApple,
	"azure":    types.ProviderAzure,
}

// AuthClient wraps the GoTrue API of the project for the OAuth login flow.
type AuthClient struct {
	client gotrue.Client
}

func NewAuthClient(supabaseURL, apiKey string) *AuthClient {
	client := gotrue.New("", apiKey).WithCustomGoTrueURL(strings.TrimSuffix(supabaseURL, "/") + "/auth/v1")
	return &AuthClient{client: client}
}

// AuthorizeURL starts a PKCE flow with the named provider. The returned
// verifier must be presented again when the code is exchanged.
func (a *AuthClient) AuthorizeURL(provider, redirectTo string) (string, string, error) {
	p, ok := providers[strings.ToLower(provider)]
	if !ok {
		return "", "", fmt.Errorf("%w: %s", ErrUnsupportedProvider, provider)
	}

	resp, err := a.client.Authorize(types.AuthorizeRequest{
		Provider: p,
		FlowType: types.FlowPKCE,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to start oauth flow: %w", err)
	}

	authURL := resp.AuthorizationURL
	if redirectTo != "" {
		u, err := url.Parse(authURL)
		if err != nil {
			return "", "", fmt.Errorf("invalid authorization url: %w", err)
		}
		q := u.Query()
		q.Set("redirect_to", redirectTo)
		u.RawQuery = q.Encode()
		authURL = u.String()
	}

	return authURL, resp.Verifier, nil
}

// ExchangeCode trades the callback code for a session.
func (a *AuthClient) ExchangeCode(code, verifier string) (*models.AuthSession, error) {
	resp, err := a.client.Token(types.TokenRequest{
		GrantType:    "pkce",
		Code:         code,
		CodeVerifier: verifier,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code: %w", err)
	}

	return &models.AuthSession{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		TokenType:    resp.TokenType,
		ExpiresIn:    resp.ExpiresIn,
		User: models.User{
			ID:    resp.User.ID,
			Email: resp.User.Email,
		},
	}, nil
}

func (a *AuthClient) CurrentUser(accessToken string) (*models.User, error) {
	resp, err := a.client.WithToken(accessToken).GetUser()
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &models.User{ID: resp.ID, Email: resp.Email}, nil
}

func (a *AuthClient) SignOut(accessToken string) error {
	if err := a.client.WithToken(accessToken).Logout(); err != nil {
		return fmt.Errorf("failed to sign out: %w", err)
	}
	return nil
}
