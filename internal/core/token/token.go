// Package token encodes and decodes the signed claims carried by session
// tokens. Tokens are compact HS256 JWTs; validity is decided purely by the
// signature and the embedded timestamps, never by server-side state.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMalformed signals structurally invalid token input (wrong number
	// of segments, bad encoding, unparseable claims).
	ErrMalformed = errors.New("malformed token")

	// ErrSignatureInvalid signals a token whose MAC does not match the
	// shared secret.
	ErrSignatureInvalid = errors.New("invalid token signature")

	// ErrExpired signals a token presented after its expiry timestamp.
	ErrExpired = errors.New("token expired")
)

// Claims is the payload embedded in a token. Immutable once issued: a token
// cannot be amended, only reissued.
type Claims struct {
	SubjectID string    `json:"subject_id"`
	Role      string    `json:"role"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// jwtClaims is the wire layout. The subject carries the identity id; role is
// the only custom claim.
type jwtClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Codec signs and verifies tokens with a single shared secret. Exactly one
// algorithm (HS256) is accepted on both paths, so a verifier can never be
// steered onto a weaker algorithm by token content.
type Codec struct {
	secret []byte
}

func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret)}
}

// Encode serializes claims and signs them with the shared secret. Timestamps
// are carried at second precision (JWT numeric dates).
func (c *Codec) Encode(claims Claims) (string, error) {
	payload := jwtClaims{
		Role: claims.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.SubjectID,
			IssuedAt:  jwt.NewNumericDate(claims.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, payload).SignedString(c.secret)
}

// Decode verifies the signature and expiry of tokenString and returns the
// embedded claims. The signature check is constant-time inside the MAC
// verification.
func (c *Codec) Decode(tokenString string) (Claims, error) {
	var payload jwtClaims
	_, err := jwt.ParseWithClaims(tokenString, &payload, func(*jwt.Token) (any, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return Claims{}, mapError(err)
	}

	claims := Claims{
		SubjectID: payload.Subject,
		Role:      payload.Role,
	}
	if payload.IssuedAt != nil {
		claims.IssuedAt = payload.IssuedAt.Time
	}
	if payload.ExpiresAt != nil {
		claims.ExpiresAt = payload.ExpiresAt.Time
	}
	return claims, nil
}

func mapError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrSignatureInvalid
	default:
		return ErrMalformed
	}
}
