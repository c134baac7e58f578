package site

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nextclip/attribution/internal/attribution"
	"github.com/nextclip/attribution/internal/logging"
	"github.com/nextclip/attribution/internal/store"
)

// newTestSite spins up the full router over an in-memory structured
// store, with a cookie-jar client so visitor and attribution cookies
// flow across requests like a browser.
func newTestSite(t *testing.T) (*httptest.Server, *http.Client, *store.Memory) {
	t.Helper()

	cfg := attribution.DefaultConfig()
	cfg.CookieDomain = "" // host-only, so the jar accepts cookies from 127.0.0.1

	local := store.NewMemory()
	h := NewHandler(cfg, local, NewVisitors([]byte("test-secret"), attribution.DefaultTTL), logging.Nop())

	srv := httptest.NewServer(h.Routes())
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{Jar: jar}

	return srv, client, local
}

func get(t *testing.T, client *http.Client, url string) *http.Response {
	t.Helper()
	resp, err := client.Get(url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestSite_CaptureFlow(t *testing.T) {
	srv, client, _ := newTestSite(t)

	// landing with ?ref= captures and redirects to the stripped URL
	resp := get(t, client, srv.URL+"/?ref=ab12&page=2")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/?page=2", resp.Request.URL.RequestURI())

	// the accessor API serves the captured code on a later visit
	resp = get(t, client, srv.URL+"/api/affiliate/code")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "AB12", body["code"])

	resp = get(t, client, srv.URL+"/api/affiliate/status")
	var status map[string]bool
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	assert.True(t, status["attributed"])
}

func TestSite_InvalidCodeIsIgnored(t *testing.T) {
	srv, client, _ := newTestSite(t)

	// disallowed character: no capture, no redirect
	resp := get(t, client, srv.URL+"/?ref=xy-99")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/?ref=xy-99", resp.Request.URL.RequestURI())

	resp = get(t, client, srv.URL+"/api/affiliate/code")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestSite_InstallButtonDecoration(t *testing.T) {
	srv, client, _ := newTestSite(t)

	get(t, client, srv.URL+"/?ref=partner7")

	resp := get(t, client, srv.URL+"/install")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	page, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(page), `data-affiliate-code="PARTNER7"`)
}

func TestSite_InstallButtonWithoutAttribution(t *testing.T) {
	srv, client, _ := newTestSite(t)

	resp := get(t, client, srv.URL+"/install")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	page, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.NotContains(t, string(page), "data-affiliate-code")
}

func TestSite_ClearRemovesAttribution(t *testing.T) {
	srv, client, _ := newTestSite(t)

	get(t, client, srv.URL+"/?ref=ab12")

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/affiliate/code", nil)
	require.NoError(t, err)
	resp, err := client.Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = get(t, client, srv.URL+"/api/affiliate/code")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = get(t, client, srv.URL+"/api/affiliate/status")
	var status map[string]bool
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	assert.False(t, status["attributed"])
}

func TestSite_CookieFallbackWhenStructuredStoreLost(t *testing.T) {
	srv, client, local := newTestSite(t)

	get(t, client, srv.URL+"/?ref=ab12")

	// the server-side store loses its state; the browser cookie still
	// carries the attribution
	local.Reset()

	resp := get(t, client, srv.URL+"/api/affiliate/code")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "AB12", body["code"])
}

func TestSite_CaptureIsIdempotentAcrossRequests(t *testing.T) {
	srv, client, _ := newTestSite(t)

	get(t, client, srv.URL+"/?ref=ab12")
	get(t, client, srv.URL+"/?ref=ab12")

	resp := get(t, client, srv.URL+"/api/affiliate/code")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "AB12", body["code"])
}

func TestSite_NewCaptureOverwritesPrevious(t *testing.T) {
	srv, client, _ := newTestSite(t)

	get(t, client, srv.URL+"/?ref=first1")
	get(t, client, srv.URL+"/?ref=second2")

	resp := get(t, client, srv.URL+"/api/affiliate/code")
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "SECOND2", body["code"])
}

func TestSite_AttributionCookieShape(t *testing.T) {
	srv, client, _ := newTestSite(t)

	// capture without following the redirect, to inspect Set-Cookie
	noRedirect := &http.Client{
		Jar: client.Jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	resp, err := noRedirect.Get(srv.URL + "/?ref=ab12")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	var refCookie *http.Cookie
	for _, ck := range resp.Cookies() {
		if ck.Name == attribution.DefaultCookieName {
			refCookie = ck
		}
	}
	require.NotNil(t, refCookie, "capture must set the attribution cookie")
	assert.Contains(t, refCookie.Value, "AB12")
	assert.Equal(t, "/", refCookie.Path)
}

func TestSite_FragmentStaysClientSide(t *testing.T) {
	// fragments never reach the server; the fragment fallback is the
	// core's job (covered in the attribution package). Here we only
	// assert the route itself stays well-behaved with odd queries.
	srv, client, _ := newTestSite(t)

	resp := get(t, client, srv.URL+"/?ref="+strings.Repeat("A", 40))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = get(t, client, srv.URL+"/api/affiliate/code")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}
