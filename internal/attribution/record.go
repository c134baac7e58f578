package attribution

import (
	"encoding/json"
	"time"

	"github.com/nextclip/attribution/internal/affiliate"
)

// Record is the value persisted in each medium. Timestamps are Unix
// milliseconds so records stay interoperable with the ones written by
// the browser-side snippet. ExpiresAt is set only for the structured
// store; the cookie medium expires on its own and carries no expiry
// field.
type Record struct {
	Code      affiliate.Code `json:"code"`
	SetAt     int64          `json:"setAt"`
	Source    string         `json:"source"`
	ExpiresAt int64          `json:"expiresAt,omitempty"`
}

// expired reports whether the record's own expiry, if any, has passed.
func (r Record) expired(now time.Time) bool {
	return r.ExpiresAt != 0 && r.ExpiresAt <= now.UnixMilli()
}

// decodeRecord parses a stored JSON payload. A payload that does not
// parse, or parses without a code, counts as absent.
func decodeRecord(payload string) (Record, bool) {
	var rec Record
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		return Record{}, false
	}
	if rec.Code == "" {
		return Record{}, false
	}
	return rec, true
}
