package session

import (
	"context"
	"errors"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoIdentity is returned when the stored token yields no user id.
var ErrNoIdentity = errors.New("session: no user identity")

// UserIDClaim is the token payload field carrying the user id.
const UserIDClaim = "user_id"

// Identity resolves the current user from the stored access token.
type Identity struct {
	store Store
}

func NewIdentity(s Store) *Identity {
	return &Identity{store: s}
}

// UserID decodes the access token payload and returns its user_id claim.
// The signature is not verified. A missing token, a malformed token or a
// missing claim all return ErrNoIdentity.
func (i *Identity) UserID(ctx context.Context) (string, error) {
	token, err := i.store.Token(ctx)
	if err != nil {
		return "", ErrNoIdentity
	}
	return UserIDFromToken(token)
}

// UserIDFromToken extracts the user_id claim from a JWT without verifying it.
func UserIDFromToken(token string) (string, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", ErrNoIdentity
	}
	switch v := claims[UserIDClaim].(type) {
	case string:
		if v != "" {
			return v, nil
		}
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	}
	return "", ErrNoIdentity
}
