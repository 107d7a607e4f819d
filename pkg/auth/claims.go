package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID uuid.UUID
	JTI    string
}

// AccessTokenClaims represents the bearer token presented by clients. Only the
// subject user is trusted; role and activation state are re-read per request.
type AccessTokenClaims struct {
	UserID uuid.UUID `json:"user_id"`
	jwt.RegisteredClaims
}

// subjectUser resolves the user the token speaks for. Provider-issued tokens
// may carry only the standard sub claim.
func (c *AccessTokenClaims) subjectUser() (uuid.UUID, error) {
	if c.UserID != uuid.Nil {
		if c.Subject != "" && c.Subject != c.UserID.String() {
			return uuid.Nil, fmt.Errorf("token subject does not match user_id")
		}
		return c.UserID, nil
	}
	if c.Subject == "" {
		return uuid.Nil, fmt.Errorf("token missing user_id")
	}
	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("token subject is not a user id: %w", err)
	}
	return id, nil
}
