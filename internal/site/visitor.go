package site

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// VisitorCookieName carries the signed anonymous visitor id.
const VisitorCookieName = "nextclip_vid"

var errInvalidVisitorToken = errors.New("invalid visitor token")

// visitorClaims embed the visitor id in the signed cookie, so the
// structured store cannot be pointed at another visitor's record by
// editing the cookie value.
type visitorClaims struct {
	jwt.RegisteredClaims
	VisitorID string `json:"vid"`
}

// Visitors mints and verifies visitor identity cookies.
type Visitors struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewVisitors(secret []byte, ttl time.Duration) *Visitors {
	return &Visitors{secret: secret, ttl: ttl, now: time.Now}
}

func (v *Visitors) token(id string) (string, error) {
	now := v.now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, visitorClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(v.ttl)),
		},
		VisitorID: id,
	})
	return t.SignedString(v.secret)
}

func (v *Visitors) parse(tokenString string) (string, error) {
	claims := &visitorClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid || claims.VisitorID == "" {
		return "", errInvalidVisitorToken
	}
	return claims.VisitorID, nil
}

// Ensure returns the visitor id for the request, minting a fresh
// identity (and setting its cookie) when the request carries none or an
// invalid one. A bad cookie never fails the request.
func (v *Visitors) Ensure(w http.ResponseWriter, r *http.Request) string {
	if ck, err := r.Cookie(VisitorCookieName); err == nil && ck.Value != "" {
		if id, err := v.parse(ck.Value); err == nil {
			return id
		}
	}

	id := uuid.NewString()
	if tok, err := v.token(id); err == nil {
		http.SetCookie(w, &http.Cookie{
			Name:     VisitorCookieName,
			Value:    tok,
			Path:     "/",
			Expires:  v.now().Add(v.ttl),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return id
}
