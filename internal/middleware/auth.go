package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"immobiliare-gpt-backend/internal/ads"
	"immobiliare-gpt-backend/internal/config"
	"immobiliare-gpt-backend/internal/models"
)

const (
	UserIDKey      = "user_id"
	EmailKey       = "email"
	AccessTokenKey = "access_token"
)

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
		Error:   "unauthorized",
		Message: message,
	})
}

// AuthMiddleware verifies the HS256 access token issued by Supabase Auth and
// stores the user id, email and raw token in the context.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing authorization header")
			return
		}

		scheme, tokenString, ok := strings.Cut(authHeader, " ")
		if !ok || scheme != "Bearer" {
			abortUnauthorized(c, "invalid authorization header format")
			return
		}
		tokenString = strings.TrimSpace(tokenString)
		if tokenString == "" {
			abortUnauthorized(c, "empty token")
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if cfg.SupabaseJWTSecret == "" {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(cfg.SupabaseJWTSecret), nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil {
			var message string
			switch {
			case strings.Contains(err.Error(), "signature is invalid"):
				message = "token signature is invalid"
			case strings.Contains(err.Error(), "token is expired"):
				message = "token has expired"
			case strings.Contains(err.Error(), "token is malformed"):
				message = "token is malformed"
			default:
				message = err.Error()
			}
			abortUnauthorized(c, message)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok || !token.Valid {
			abortUnauthorized(c, "invalid token claims")
			return
		}

		sub, _ := claims["sub"].(string)
		userID, err := uuid.Parse(sub)
		if err != nil {
			abortUnauthorized(c, "missing user id in token")
			return
		}
		email, _ := claims["email"].(string)

		c.Set(UserIDKey, userID)
		c.Set(EmailKey, email)
		c.Set(AccessTokenKey, tokenString)
		c.Next()
	}
}

// Session returns the identity placed in the context by AuthMiddleware.
func Session(c *gin.Context) (ads.Session, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return ads.Session{}, false
	}
	userID, ok := v.(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return ads.Session{}, false
	}
	return ads.Session{
		UserID:      userID,
		Email:       c.GetString(EmailKey),
		AccessToken: c.GetString(AccessTokenKey),
	}, true
}
