package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

var noContent = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestFrameHeaders(t *testing.T) {
	h := FrameHeaders(FrameOptions{
		FrameAncestors: []string{"https://embedder.example"},
		CORSOrigins:    []string{"https://embedder.example"},
	})(noContent)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/pricing", nil))
	assert.Equal(t, "SAMEORIGIN", rr.Header().Get("X-Frame-Options"))
	assert.Equal(t, "frame-ancestors 'self' https://embedder.example", rr.Header().Get("Content-Security-Policy"))
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestFrameHeadersOmitXFrameOptions(t *testing.T) {
	h := FrameHeaders(FrameOptions{OmitXFrameOptions: true})(noContent)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Empty(t, rr.Header().Get("X-Frame-Options"))
	assert.Equal(t, "frame-ancestors 'self'", rr.Header().Get("Content-Security-Policy"))
}

func TestCORSAllowList(t *testing.T) {
	h := FrameHeaders(FrameOptions{CORSOrigins: []string{"https://embedder.example"}})(noContent)

	req := httptest.NewRequest(http.MethodOptions, "/api/ideas", nil)
	req.Header.Set("Origin", "https://embedder.example")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "https://embedder.example", rr.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/ideas", nil)
	req.Header.Set("Origin", "https://evil.example")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}
