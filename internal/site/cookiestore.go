package site

import (
	"context"
	"net/http"
	"time"

	"github.com/nextclip/attribution/internal/attribution"
)

// CookieStore adapts one request/response pair to the KeyValueStore
// capability. Get reads the request's cookies; Set and Delete emit
// Set-Cookie headers scoped per the attribution config. The browser is
// the medium enforcing expiry, so no expiry bookkeeping happens here.
type CookieStore struct {
	w   http.ResponseWriter
	r   *http.Request
	cfg attribution.Config
	now func() time.Time
}

func NewCookieStore(w http.ResponseWriter, r *http.Request, cfg attribution.Config) *CookieStore {
	return &CookieStore{w: w, r: r, cfg: cfg, now: time.Now}
}

func (c *CookieStore) Get(_ context.Context, key string) (string, bool, error) {
	ck, err := c.r.Cookie(key)
	if err != nil || ck.Value == "" {
		return "", false, nil
	}
	return ck.Value, true, nil
}

func (c *CookieStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	http.SetCookie(c.w, &http.Cookie{
		Name:     key,
		Value:    value,
		Path:     c.cfg.CookiePath,
		Domain:   c.cfg.CookieDomain,
		Expires:  c.now().Add(ttl),
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Delete expires the cookie immediately: same path/domain scoping as
// the original write, expiry timestamp in the past.
func (c *CookieStore) Delete(_ context.Context, key string) error {
	http.SetCookie(c.w, &http.Cookie{
		Name:     key,
		Value:    "",
		Path:     c.cfg.CookiePath,
		Domain:   c.cfg.CookieDomain,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
