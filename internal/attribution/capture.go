package attribution

import (
	"context"
	"net/url"

	"github.com/nextclip/attribution/internal/affiliate"
)

// CaptureState is the outcome of one page-load initialization pass.
type CaptureState int

const (
	// NotCaptured: the URL carried no valid code. Nothing was written;
	// any previously stored attribution is reported as-is.
	NotCaptured CaptureState = iota
	// Captured: a valid code was found and persisted to both media.
	Captured
)

// CaptureResult describes one initialization pass.
type CaptureResult struct {
	State CaptureState

	// Code is the captured code, or the previously stored attribution
	// when State is NotCaptured (empty when there is none).
	Code affiliate.Code

	// Persist is the per-medium write outcome. Zero unless Captured.
	Persist PersistResult

	// StrippedURL is the request URL with the referral parameter
	// removed, ready for a history-replace or redirect. Nil unless
	// Captured.
	StrippedURL *url.URL
}

// Capture runs the page-load flow against u: extract the raw token,
// validate it, persist to both media, and produce the stripped URL. A
// missing or invalid token lands in the NotCaptured branch, which only
// reads. There are no retries and no further transitions until the next
// page load.
func (s *Store) Capture(ctx context.Context, u *url.URL) CaptureResult {
	raw, found := affiliate.Extract(u, s.cfg.ParamName)
	if found {
		if code, ok := affiliate.Sanitize(raw); ok {
			res := CaptureResult{
				State:       Captured,
				Code:        code,
				Persist:     s.Persist(ctx, code),
				StrippedURL: affiliate.StripParam(u, s.cfg.ParamName),
			}
			s.log.Info(ctx, "referral captured",
				"code", string(code),
				"cookie_ok", res.Persist.CookieOK,
				"local_ok", res.Persist.LocalOK)
			if s.notify != nil {
				s.notify(code)
			}
			return res
		}
		// invalid token is the same as no token
		s.log.Debug(ctx, "referral token rejected", "raw", raw)
	}

	res := CaptureResult{State: NotCaptured}
	if code, ok := s.Read(ctx); ok {
		res.Code = code
		s.log.Debug(ctx, "existing attribution", "code", string(code))
	}
	return res
}
