package token

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Pair is a freshly minted access/refresh token pair together with the
// max-age each cookie should carry.
type Pair struct {
	AccessToken   string
	RefreshToken  string
	AccessMaxAge  time.Duration
	RefreshMaxAge time.Duration
}

// Issuer mints credential pairs for verified identities. Deterministic given
// the configured lifetimes; no side effects beyond minting.
type Issuer struct {
	codec      *Codec
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewIssuer(codec *Codec, accessTTL, refreshTTL time.Duration) *Issuer {
	return &Issuer{
		codec:      codec,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (i *Issuer) Issue(userID uuid.UUID) (*Pair, error) {
	access, err := i.codec.Mint(userID, KindAccess, i.accessTTL)
	if err != nil {
		return nil, fmt.Errorf("token: issue access: %w", err)
	}

	refresh, err := i.codec.Mint(userID, KindRefresh, i.refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("token: issue refresh: %w", err)
	}

	return &Pair{
		AccessToken:   access,
		RefreshToken:  refresh,
		AccessMaxAge:  i.accessTTL,
		RefreshMaxAge: i.refreshTTL,
	}, nil
}

// AccessTTL exposes the configured access lifetime for callers that mint
// single replacement tokens.
func (i *Issuer) AccessTTL() time.Duration {
	return i.accessTTL
}
