package api

import (
	"errors"
	"time"

	"github.com/diyhub/backend/errs"
	"github.com/diyhub/backend/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// authCookieName is the http-only cookie login sets alongside the token in the body
const authCookieName = "authToken"

type tokenClaims struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies HS256 access tokens
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) TokenIssuer {
	return TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (t TokenIssuer) TTL() time.Duration {
	return t.ttl
}

// Issue signs a token carrying the user's id and email
func (t TokenIssuer) Issue(user *models.User) (string, error) {
	now := t.now()
	claims := tokenClaims{
		ID:    user.ID.String(),
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Verify parses raw and returns its claims. Expired tokens map to a 401, anything else that
// fails to verify maps to a 403.
func (t TokenIssuer) Verify(raw string) (uuid.UUID, string, error) {
	var claims tokenClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, "", errs.NewExpiredTokenError()
		}
		return uuid.Nil, "", errs.NewInvalidTokenError()
	}

	userID, err := uuid.Parse(claims.ID)
	if err != nil {
		return uuid.Nil, "", errs.NewInvalidTokenError()
	}
	return userID, claims.Email, nil
}
