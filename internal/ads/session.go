package ads

import (
	"errors"

	"github.com/google/uuid"
)

var ErrNoSession = errors.New("no authenticated user")

// Session is the identity of the user driving one interaction. It is built
// per request from the verified access token and passed explicitly to every
// operation that needs it.
type Session struct {
	UserID      uuid.UUID
	Email       string
	AccessToken string
}

func (s Session) Valid() bool {
	return s.UserID != uuid.Nil
}
