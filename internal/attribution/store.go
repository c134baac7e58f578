package attribution

import (
	"context"
	"encoding/json"
	"net/url"
	"time"

	"github.com/nextclip/attribution/internal/affiliate"
	"github.com/nextclip/attribution/internal/logging"
	"github.com/nextclip/attribution/internal/store"
)

// Notifier is invoked after a successful capture, e.g. to surface a
// "referral applied" banner. The default is a no-op.
type Notifier func(code affiliate.Code)

// Store reconciles the two attribution media: the structured store
// (preferred on read, explicit lazy expiry via the record's expiresAt)
// and the cookie-like medium (fallback on read, expiry enforced by the
// medium itself). That asymmetry is deliberate and must stay.
type Store struct {
	cfg    Config
	local  store.KeyValueStore // structured record
	cookie store.KeyValueStore // medium with native expiry
	now    func() time.Time
	log    logging.Logger
	notify Notifier
}

// New builds a Store over the structured medium (local) and the
// cookie-like medium (cookie). A nil logger is replaced with a no-op.
func New(cfg Config, local, cookie store.KeyValueStore, log logging.Logger) *Store {
	if log == nil {
		log = logging.Nop()
	}
	return &Store{cfg: cfg, local: local, cookie: cookie, now: time.Now, log: log}
}

// WithClock overrides the time source. Tests use it to drive expiry.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// WithNotifier installs a capture notification hook.
func (s *Store) WithNotifier(n Notifier) *Store {
	s.notify = n
	return s
}

// PersistResult reports which media accepted the write.
type PersistResult struct {
	CookieOK bool
	LocalOK  bool
}

// Persist writes code into both media with fresh timestamps. The two
// writes are independent failure domains: each is attempted regardless
// of the other's outcome, and neither failure is raised. Persisting the
// same code twice simply overwrites both entries.
func (s *Store) Persist(ctx context.Context, code affiliate.Code) PersistResult {
	now := s.now()
	var res PersistResult

	// Cookie medium: no expiry field in the payload, the medium itself
	// expires the entry. The JSON is URL-encoded to stay cookie-safe.
	rec := Record{Code: code, SetAt: now.UnixMilli(), Source: s.cfg.Source}
	if payload, err := json.Marshal(rec); err != nil {
		s.log.Warn(ctx, "cookie payload marshal failed", "err", err)
	} else if err := s.cookie.Set(ctx, s.cfg.CookieName, url.QueryEscape(string(payload)), s.cfg.TTL); err != nil {
		s.log.Warn(ctx, "cookie write failed", "err", err)
	} else {
		res.CookieOK = true
	}

	// Structured medium: expiry travels in the payload and is enforced
	// lazily on read.
	rec.ExpiresAt = now.Add(s.cfg.TTL).UnixMilli()
	if payload, err := json.Marshal(rec); err != nil {
		s.log.Warn(ctx, "record marshal failed", "err", err)
	} else if err := s.local.Set(ctx, s.cfg.StorageKey, string(payload), 0); err != nil {
		s.log.Warn(ctx, "structured store write failed", "err", err)
	} else {
		res.LocalOK = true
	}

	return res
}

// Read returns the current attributed code: the structured store is
// preferred, the cookie medium is the fallback. Expired structured
// entries are deleted as a side effect of reading. Read never fails;
// malformed payloads in either medium count as absent.
func (s *Store) Read(ctx context.Context) (affiliate.Code, bool) {
	if code, ok := s.readLocal(ctx); ok {
		return code, true
	}
	return s.readCookie(ctx)
}

func (s *Store) readLocal(ctx context.Context) (affiliate.Code, bool) {
	payload, ok, err := s.local.Get(ctx, s.cfg.StorageKey)
	if err != nil {
		s.log.Warn(ctx, "structured store read failed", "err", err)
		return "", false
	}
	if !ok {
		return "", false
	}
	rec, ok := decodeRecord(payload)
	if !ok {
		return "", false
	}
	if rec.expired(s.now()) {
		if err := s.local.Delete(ctx, s.cfg.StorageKey); err != nil {
			s.log.Warn(ctx, "expired record cleanup failed", "err", err)
		}
		return "", false
	}
	return rec.Code, true
}

func (s *Store) readCookie(ctx context.Context) (affiliate.Code, bool) {
	raw, ok, err := s.cookie.Get(ctx, s.cfg.CookieName)
	if err != nil {
		s.log.Warn(ctx, "cookie read failed", "err", err)
		return "", false
	}
	if !ok {
		return "", false
	}
	payload, err := url.QueryUnescape(raw)
	if err != nil {
		return "", false
	}
	rec, ok := decodeRecord(payload)
	if !ok {
		return "", false
	}
	// no expiry check here: the medium purges expired cookies itself
	return rec.Code, true
}

// GetCode returns the current attributed code, if any.
func (s *Store) GetCode(ctx context.Context) (affiliate.Code, bool) {
	return s.Read(ctx)
}

// HasCode reports whether any attribution is currently present.
func (s *Store) HasCode(ctx context.Context) bool {
	_, ok := s.Read(ctx)
	return ok
}

// Clear removes the attribution from both media. Both deletes are
// attempted even when one fails.
func (s *Store) Clear(ctx context.Context) {
	if err := s.local.Delete(ctx, s.cfg.StorageKey); err != nil {
		s.log.Warn(ctx, "structured store delete failed", "err", err)
	}
	if err := s.cookie.Delete(ctx, s.cfg.CookieName); err != nil {
		s.log.Warn(ctx, "cookie delete failed", "err", err)
	}
}
