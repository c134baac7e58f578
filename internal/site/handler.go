package site

import (
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nextclip/attribution/internal/attribution"
	"github.com/nextclip/attribution/internal/logging"
	"github.com/nextclip/attribution/internal/store"
)

// Handler wires the capture middleware and the accessor API onto a chi
// router. The structured store is shared across requests and namespaced
// per visitor; the cookie medium is bound to each request.
type Handler struct {
	cfg      attribution.Config
	local    store.KeyValueStore
	visitors *Visitors
	log      logging.Logger
}

func NewHandler(cfg attribution.Config, local store.KeyValueStore, visitors *Visitors, log logging.Logger) *Handler {
	return &Handler{cfg: cfg, local: local, visitors: visitors, log: log}
}

// storeFor builds the per-request attribution store: the shared
// structured backend scoped to this visitor plus the request-bound
// cookie medium.
func (h *Handler) storeFor(w http.ResponseWriter, r *http.Request) *attribution.Store {
	visitorID := h.visitors.Ensure(w, r)
	local := store.Namespaced(h.local, "visitor:"+visitorID+":")
	return attribution.New(h.cfg, local, NewCookieStore(w, r, h.cfg), h.log)
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(requestLogger(h.log))

	r.Get("/api/affiliate/code", h.getCode)
	r.Get("/api/affiliate/status", h.getStatus)
	r.Delete("/api/affiliate/code", h.clearCode)

	r.Group(func(r chi.Router) {
		r.Use(h.CaptureMiddleware)
		r.Get("/", h.homePage)
		r.Get("/install", h.installPage)
	})

	return r
}

// CaptureMiddleware runs the capture flow against the request URL. When
// a code is captured it persists both media and redirects to the same
// URL with the referral parameter stripped, so the code does not linger
// in the address bar or get re-shared.
func (h *Handler) CaptureMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		st := h.storeFor(w, r)
		res := st.Capture(r.Context(), r.URL)
		if res.State == attribution.Captured && res.StrippedURL != nil {
			http.Redirect(w, r, res.StrippedURL.RequestURI(), http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// getCode returns the current attribution: 200 with the code, or 204.
func (h *Handler) getCode(w http.ResponseWriter, r *http.Request) {
	st := h.storeFor(w, r)
	code, ok := st.GetCode(r.Context())
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"code": string(code)})
}

func (h *Handler) getStatus(w http.ResponseWriter, r *http.Request) {
	st := h.storeFor(w, r)
	writeJSON(w, http.StatusOK, map[string]bool{"attributed": st.HasCode(r.Context())})
}

// clearCode drops the attribution from both media.
func (h *Handler) clearCode(w http.ResponseWriter, r *http.Request) {
	st := h.storeFor(w, r)
	st.Clear(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

var installTmpl = template.Must(template.New("install").Parse(`<!DOCTYPE html>
<html>
<head><title>Install NextClip</title></head>
<body>
<a class="install-button" href="https://chromewebstore.google.com/detail/nextclip"{{if .Code}} data-affiliate-code="{{.Code}}"{{end}}>Install NextClip</a>
</body>
</html>
`))

// installPage decorates the install button with the attributed code as
// a data attribute. Read-only: navigation is not modified.
func (h *Handler) installPage(w http.ResponseWriter, r *http.Request) {
	st := h.storeFor(w, r)
	code, _ := st.GetCode(r.Context())

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := installTmpl.Execute(w, struct{ Code string }{Code: string(code)}); err != nil {
		h.log.Error(r.Context(), "install page render failed", "err", err)
	}
}

func (h *Handler) homePage(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("nextclip\n"))
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
