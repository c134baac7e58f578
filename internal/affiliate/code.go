package affiliate

import (
	"regexp"
	"strings"
)

// SourceWebsite tags attribution records captured by the website.
const SourceWebsite = "website"

// Code is a validated affiliate referral code: 3–20 uppercase ASCII
// letters or digits. Values of this type only exist after passing
// Sanitize, so stores never hold a syntactically invalid code.
type Code string

var codePattern = regexp.MustCompile(`^[A-Z0-9]{3,20}$`)

// Sanitize normalizes a raw referral token (trim surrounding whitespace,
// upper-case) and reports whether the result is a valid Code. Hyphens,
// underscores, inner spaces and any other punctuation are rejected.
func Sanitize(raw string) (Code, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	if !codePattern.MatchString(normalized) {
		return "", false
	}
	return Code(normalized), true
}
