package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the bearer token payload: username plus user id, and nothing
// else. Tokens carry no expiry, matching the session model of the service
// (log in once, token is valid until the signing secret rotates).
type Claims struct {
	Username string `json:"username"`
	ID       string `json:"id"`
	jwt.RegisteredClaims
}

// Tokens signs and verifies HS256 bearer tokens.
type Tokens struct {
	secret []byte
}

func NewTokens(secret string) *Tokens {
	return &Tokens{secret: []byte(secret)}
}

// Issue signs a token embedding the user's username and id.
func (t *Tokens) Issue(userID uuid.UUID, username string) (string, error) {
	claims := Claims{
		Username: username,
		ID:       userID.String(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a raw token string and returns the Principal.
func (t *Tokens) Verify(raw string) (*Principal, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("token verification failed: %w", err)
	}

	userID, err := uuid.Parse(claims.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid id claim: %w", err)
	}

	return &Principal{UserID: userID, Username: claims.Username}, nil
}
