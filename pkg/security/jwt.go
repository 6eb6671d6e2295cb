package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenInvalid   = errors.New("token is invalid")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("token is malformed")
)

type sessionClaims struct {
	UserID int `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenCodec mints and validates self-contained session tokens. The secret
// and TTL are fixed at construction and shared for the process lifetime.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenCodec(secret string, ttl time.Duration) *TokenCodec {
	return &TokenCodec{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue encodes userID and an expiry into a signed HS256 token
func (tc *TokenCodec) Issue(userID int) (string, error) {
	now := time.Now()

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tc.ttl)),
		},
	})

	return t.SignedString(tc.secret)
}

// Validate checks integrity and expiry and returns the embedded user id
func (tc *TokenCodec) Validate(tokenStr string) (int, error) {
	claims := &sessionClaims{}

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, ErrTokenInvalid
		}

		return tc.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return 0, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return 0, ErrTokenMalformed
		default:
			return 0, ErrTokenInvalid
		}
	}

	if !token.Valid {
		return 0, ErrTokenInvalid
	}

	if claims.UserID <= 0 {
		return 0, ErrTokenMalformed
	}

	return claims.UserID, nil
}
