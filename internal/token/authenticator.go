package token

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrNoCredential - the request carries no usable credential cookie.
var ErrNoCredential = errors.New("no credential")

// Result is the outcome of authenticating a cookie pair. When the access
// token had to be re-minted from the refresh token, ReplacementAccess is
// non-empty and the caller is responsible for writing it back into the
// outbound response.
type Result struct {
	UserID            uuid.UUID
	ReplacementAccess string
	ReplacementMaxAge time.Duration
}

// Authenticator recovers an authenticated identity from inbound credential
// cookies, transparently re-minting an access token from a still-valid,
// non-revoked refresh token when the access token no longer verifies.
type Authenticator struct {
	codec     *Codec
	revoked   RevocationStore
	accessTTL time.Duration
}

func NewAuthenticator(codec *Codec, revoked RevocationStore, accessTTL time.Duration) *Authenticator {
	return &Authenticator{
		codec:     codec,
		revoked:   revoked,
		accessTTL: accessTTL,
	}
}

// Authenticate runs the per-request state machine:
//
//  1. no access token -> ErrNoCredential;
//  2. access token verifies -> authenticated;
//  3. otherwise fall through to the refresh token: verify it, reject if
//     revoked, then mint a replacement access token for the same identity.
func (a *Authenticator) Authenticate(ctx context.Context, accessRaw, refreshRaw string) (*Result, error) {
	if accessRaw == "" {
		return nil, ErrNoCredential
	}

	claims, err := a.codec.Verify(accessRaw, KindAccess)
	if err == nil {
		return &Result{UserID: claims.User()}, nil
	}

	if refreshRaw == "" {
		return nil, ErrNoCredential
	}

	refresh, err := a.codec.Verify(refreshRaw, KindRefresh)
	if err != nil {
		return nil, err
	}

	revoked, err := a.revoked.IsRevoked(ctx, refresh.ID)
	if err != nil {
		return nil, fmt.Errorf("token: revocation check: %w", err)
	}
	if revoked {
		return nil, ErrTokenRevoked
	}

	access, err := a.codec.Mint(refresh.User(), KindAccess, a.accessTTL)
	if err != nil {
		return nil, err
	}

	return &Result{
		UserID:            refresh.User(),
		ReplacementAccess: access,
		ReplacementMaxAge: a.accessTTL,
	}, nil
}
