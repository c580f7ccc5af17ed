package token

import (
	"net/http"
	"time"
)

const (
	AccessCookie  = "access_token"
	RefreshCookie = "refresh_token"
)

// CookieOptions defines how credential cookies are issued.
type CookieOptions struct {
	Path   string
	Secure bool
	Domain string
}

// normalize applies safe defaults without breaking callers.
func (o CookieOptions) normalize() CookieOptions {
	if o.Path == "" {
		o.Path = "/"
	}
	return o
}

func setCookie(w http.ResponseWriter, name, value string, maxAge time.Duration, opts CookieOptions) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     opts.Path,
		Domain:   opts.Domain,
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// SetPairCookies attaches both credential cookies to the response.
func SetPairCookies(w http.ResponseWriter, pair *Pair, opts CookieOptions) {
	opts = opts.normalize()
	setCookie(w, AccessCookie, pair.AccessToken, pair.AccessMaxAge, opts)
	setCookie(w, RefreshCookie, pair.RefreshToken, pair.RefreshMaxAge, opts)
}

// SetAccessCookie writes a single replacement access token, used when the
// authenticator re-mints from a still-valid refresh token.
func SetAccessCookie(w http.ResponseWriter, access string, maxAge time.Duration, opts CookieOptions) {
	opts = opts.normalize()
	setCookie(w, AccessCookie, access, maxAge, opts)
}

// ClearCookies removes both credential cookies from the client.
func ClearCookies(w http.ResponseWriter, opts CookieOptions) {
	opts = opts.normalize()

	for _, name := range []string{AccessCookie, RefreshCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     opts.Path,
			Domain:   opts.Domain,
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   opts.Secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
}
