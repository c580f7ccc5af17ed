package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrTokenExpired - the token's expiry has elapsed.
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenMalformed - the token cannot be parsed, carries the wrong
	// kind discriminator, or is otherwise structurally invalid.
	ErrTokenMalformed = errors.New("token malformed")

	// ErrBadSignature - the token parses but its signature does not verify.
	ErrBadSignature = errors.New("token signature invalid")

	// ErrTokenRevoked - the refresh token has been blacklisted.
	ErrTokenRevoked = errors.New("token revoked")
)

// Kind discriminates access tokens from refresh tokens so one can never be
// presented where the other is expected.
type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

// Claims is the signed claim bundle carried by both token kinds.
type Claims struct {
	UserID string `json:"uid"`
	Kind   string `json:"kind"`
	jwt.RegisteredClaims
}

// Codec mints and verifies signed tokens. It is pure: no state beyond the
// secret and the clock, safe for concurrent use.
type Codec struct {
	secret []byte
	now    func() time.Time
}

func NewCodec(secret string) *Codec {
	return &Codec{
		secret: []byte(secret),
		now:    time.Now,
	}
}

// Mint produces a signed token for userID with expiry = now + lifetime.
// The JWT ID is unique per token and keys the revocation blacklist.
func (c *Codec) Mint(userID uuid.UUID, kind Kind, lifetime time.Duration) (string, error) {
	now := c.now().UTC()

	claims := Claims{
		UserID: userID.String(),
		Kind:   string(kind),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("token: sign failed: %w", err)
	}

	return signed, nil
}

// Verify checks signature, expiry and kind, and returns the embedded claims.
// Failures map onto ErrTokenExpired, ErrBadSignature or ErrTokenMalformed.
func (c *Codec) Verify(raw string, want Kind) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(raw, &Claims{},
		func(t *jwt.Token) (interface{}, error) {
			if t.Method != jwt.SigningMethodHS256 {
				return nil, ErrBadSignature
			}

			return c.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
	)

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrBadSignature
		default:
			return nil, ErrTokenMalformed
		}
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenMalformed
	}

	if claims.Kind != string(want) {
		return nil, ErrTokenMalformed
	}

	if _, err := uuid.Parse(claims.UserID); err != nil {
		return nil, ErrTokenMalformed
	}

	return claims, nil
}

// User returns the user ID embedded in verified claims.
func (cl *Claims) User() uuid.UUID {
	uid, _ := uuid.Parse(cl.UserID)
	return uid
}
