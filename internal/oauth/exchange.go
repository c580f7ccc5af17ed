package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/lxup/42Cursus-ft-transcendence/internal/config"
)

var (
	// ErrExchangeFailed - the provider refused the code-for-token exchange.
	ErrExchangeFailed = errors.New("oauth token exchange failed")

	// ErrProfileFailed - the provider profile endpoint returned an error or
	// an unusable payload.
	ErrProfileFailed = errors.New("oauth profile fetch failed")
)

// Profile is the normalized identity returned by the provider. Facts only;
// identity resolution happens in the user service.
type Profile struct {
	Email string `json:"email"`
	Login string `json:"login"`
}

// Exchange drives the authorization-code flow against a single provider:
// redirect construction, code-for-token exchange, bearer profile fetch.
// Both outbound calls are bounded by the client timeout and fail closed.
type Exchange struct {
	oauth      *oauth2.Config
	profileURL string
	client     *http.Client
}

func New(cfg config.OAuthConfig) *Exchange {
	return &Exchange{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.AuthURL,
				TokenURL: cfg.TokenURL,
			},
		},
		profileURL: cfg.ProfileURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// AuthorizeURL builds the provider authorize redirect with response_type=code.
func (e *Exchange) AuthorizeURL(state string) string {
	return e.oauth.AuthCodeURL(state)
}

// ExchangeCode posts the authorization code to the provider token endpoint.
func (e *Exchange) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, e.client)

	token, err := e.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExchangeFailed, err)
	}

	return token, nil
}

// FetchProfile loads the provider profile with bearer auth. Non-200
// responses and payloads missing email or login fail with ErrProfileFailed.
func (e *Exchange) FetchProfile(ctx context.Context, token *oauth2.Token) (*Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.profileURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProfileFailed, err)
	}
	token.SetAuthHeader(req)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProfileFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrProfileFailed, resp.StatusCode)
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProfileFailed, err)
	}

	if profile.Email == "" || profile.Login == "" {
		return nil, fmt.Errorf("%w: profile missing email or login", ErrProfileFailed)
	}

	return &profile, nil
}
