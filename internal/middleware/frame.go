package middleware

import (
	"net/http"
	"strings"
)

// FrameOptions controls who may embed the app and which origins may call
// the API from a browser.
type FrameOptions struct {
	// FrameAncestors are listed after 'self' in the CSP frame-ancestors
	// directive.
	FrameAncestors []string
	// OmitXFrameOptions drops X-Frame-Options and relies on CSP alone, which
	// is required for cross-origin embedding in browsers that honour both.
	OmitXFrameOptions bool
	// CORSOrigins receive Access-Control-Allow-Origin for their requests.
	CORSOrigins []string
}

// FrameHeaders sets the embedding policy headers on every response and
// answers CORS preflights from allow-listed origins.
func FrameHeaders(opts FrameOptions) func(http.Handler) http.Handler {
	csp := "frame-ancestors " + strings.Join(append([]string{"'self'"}, opts.FrameAncestors...), " ")
	allowed := make(map[string]bool, len(opts.CORSOrigins))
	for _, o := range opts.CORSOrigins {
		allowed[o] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			if !opts.OmitXFrameOptions {
				h.Set("X-Frame-Options", "SAMEORIGIN")
			}
			h.Set("Content-Security-Policy", csp)

			origin := r.Header.Get("Origin")
			if origin != "" && (allowed[origin] || allowed["*"]) {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Credentials", "true")
				h.Set("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Iframe-Mode, X-Window-Opener, X-Parent-Location")
				h.Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
				h.Add("Vary", "Origin")
				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusNoContent)
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}
