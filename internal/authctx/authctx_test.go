package authctx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		env  Environment
		want Context
	}{
		{"no window", Environment{}, Standalone},
		{"no window ignores parent", Environment{ParentIsSelf: false}, Standalone},
		{"top level", Environment{HasWindow: true, ParentIsSelf: true}, Standalone},
		{"framed", Environment{HasWindow: true}, Iframe},
		{"cross origin parent", Environment{HasWindow: true, ParentIsSelf: true, ParentUnreadable: true}, Iframe},
		{"popup wins over frame", Environment{HasWindow: true, HasOpener: true}, Popup},
		{"forced demo", Environment{ForceDemo: true}, Iframe},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.env))
		})
	}
}

func TestDetectorFromRequest(t *testing.T) {
	d := Detector{EmbedderHosts: []string{"flowslash.dev"}}

	t.Run("api client", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
		assert.Equal(t, Standalone, d.Classify(req))
	})

	t.Run("top level navigation", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Sec-Fetch-Dest", "document")
		assert.Equal(t, Standalone, d.Classify(req))
	})

	t.Run("iframe navigation", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Sec-Fetch-Dest", "iframe")
		assert.Equal(t, Iframe, d.Classify(req))
	})

	t.Run("iframe query flag", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/?iframe=true", nil)
		trusting := Detector{TrustEmbedHints: true}
		assert.Equal(t, Iframe, trusting.Classify(req))
	})

	t.Run("embed hints ignored unless trusted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/me/premium?iframe=true", nil)
		req.Header.Set("X-Iframe-Mode", "true")
		req.Header.Set("X-Parent-Location", "denied")
		assert.Equal(t, Standalone, d.Classify(req))
	})

	t.Run("embedder referer", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept", "text/html")
		req.Header.Set("Referer", "https://app.flowslash.dev/projects/1")
		assert.Equal(t, Iframe, d.Classify(req))
	})

	t.Run("unknown referer", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept", "text/html")
		req.Header.Set("Referer", "https://notflowslash.dev/")
		assert.Equal(t, Standalone, d.Classify(req))
	})

	t.Run("parent location denied", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Sec-Fetch-Mode", "navigate")
		req.Header.Set("X-Parent-Location", "denied")
		assert.Equal(t, Iframe, Detector{TrustEmbedHints: true}.Classify(req))
	})

	t.Run("popup", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Window-Opener", "true")
		req.Header.Set("Sec-Fetch-Dest", "iframe")
		assert.Equal(t, Popup, d.Classify(req))
	})

	t.Run("forced demo", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
		assert.Equal(t, Iframe, Detector{ForceDemo: true}.Classify(req))
	})
}
