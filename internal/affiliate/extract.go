package affiliate

import (
	"net/url"
	"strings"
)

// Extract pulls the raw referral token carried by param out of u.
// The query component wins; when it has no value the fragment is
// consulted: if the fragment text contains the parameter name it is
// itself parsed as a query string (the share-link style
// "https://site/#ref=CODE"). The returned token is raw, pre-validation.
//
// Extract never fails: malformed input is reported as "not found".
func Extract(u *url.URL, param string) (string, bool) {
	if u == nil || param == "" {
		return "", false
	}

	if vs, ok := u.Query()[param]; ok && len(vs) > 0 && vs[0] != "" {
		return vs[0], true
	}

	fragment := u.Fragment
	if fragment == "" || !strings.Contains(fragment, param) {
		return "", false
	}
	fv, err := url.ParseQuery(fragment)
	if err != nil {
		return "", false
	}
	if vs, ok := fv[param]; ok && len(vs) > 0 && vs[0] != "" {
		return vs[0], true
	}
	return "", false
}

// StripParam returns a copy of u with only the named parameter removed,
// from the query and from a query-like fragment. Every other parameter,
// the path, and unrelated fragment text are preserved. Used for the
// history-replace step after a successful capture.
func StripParam(u *url.URL, param string) *url.URL {
	if u == nil {
		return nil
	}
	out := *u

	q := out.Query()
	if _, ok := q[param]; ok {
		q.Del(param)
		out.RawQuery = q.Encode()
	}

	if out.Fragment != "" && strings.Contains(out.Fragment, param) {
		if fv, err := url.ParseQuery(out.Fragment); err == nil {
			if _, ok := fv[param]; ok {
				fv.Del(param)
				out.Fragment = fv.Encode()
				out.RawFragment = ""
			}
		}
	}

	return &out
}
