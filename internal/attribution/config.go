package attribution

import "time"

// Production defaults for the nextclip website.
const (
	DefaultParamName    = "ref"
	DefaultCookieName   = "nextclip_ref"
	DefaultStorageKey   = "nextclip_affiliate_code"
	DefaultCookieDomain = ".nextclip.io"
	DefaultCookiePath   = "/"
	DefaultTTL          = 30 * 24 * time.Hour
)

// Config is the immutable settings value a Store is built with.
//
// Fields:
//   - ParamName: URL query/fragment parameter carrying the raw code.
//   - CookieName: name of the cookie-medium entry.
//   - StorageKey: key of the structured-store entry.
//   - CookieDomain: parent registrable domain the cookie is scoped to,
//     so subdomains share it. Empty means host-only (tests).
//   - CookiePath: path scope of the cookie.
//   - TTL: lifetime of a captured attribution in both media.
//   - Source: origin tag recorded in every persisted record.
type Config struct {
	ParamName    string
	CookieName   string
	StorageKey   string
	CookieDomain string
	CookiePath   string
	TTL          time.Duration
	Source       string
}

// DefaultConfig returns the production configuration.
func DefaultConfig() Config {
	return Config{
		ParamName:    DefaultParamName,
		CookieName:   DefaultCookieName,
		StorageKey:   DefaultStorageKey,
		CookieDomain: DefaultCookieDomain,
		CookiePath:   DefaultCookiePath,
		TTL:          DefaultTTL,
		Source:       "website",
	}
}
