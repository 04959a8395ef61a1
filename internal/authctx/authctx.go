// Package authctx classifies where a page view is running: on its own, inside
// another site's frame, or in a popup opened by another window.
package authctx

import (
	"net/http"
	"net/url"
	"strings"
)

type Context string

const (
	Standalone Context = "standalone"
	Iframe     Context = "iframe"
	Popup      Context = "popup"
)

// Environment is the ambient state a classification is made from.
type Environment struct {
	// HasWindow is false when there is no browsing context at all, e.g. a
	// server-side render or a plain API client.
	HasWindow bool
	// HasOpener is set when another window opened this one.
	HasOpener bool
	// ParentIsSelf is false when the page is nested in a frame.
	ParentIsSelf bool
	// ParentUnreadable is set when the parent's location could not be read,
	// which only happens for cross-origin embedding.
	ParentUnreadable bool
	// ForceDemo overrides detection for deployments that always run as a demo.
	ForceDemo bool
}

// Classify is pure: the same Environment always yields the same Context.
func Classify(env Environment) Context {
	if env.ForceDemo {
		return Iframe
	}
	if !env.HasWindow {
		return Standalone
	}
	if env.HasOpener {
		return Popup
	}
	if env.ParentUnreadable || !env.ParentIsSelf {
		return Iframe
	}
	return Standalone
}

// Detector derives an Environment from request headers.
type Detector struct {
	// EmbedderHosts are hosts whose Referer marks the request as embedded.
	EmbedderHosts []string
	ForceDemo     bool
	// TrustEmbedHints honours the shim's X-Iframe-Mode, ?iframe and
	// X-Parent-Location signals. Any client can set them, so only demo
	// deployments enable this; otherwise an iframe is recognised by
	// Sec-Fetch-Dest or an embedder Referer.
	TrustEmbedHints bool
}

// FromRequest reads the signals a browser (or the embedding shim) attaches
// to a page request.
func (d Detector) FromRequest(r *http.Request) Environment {
	env := Environment{
		HasWindow:    hasWindow(r),
		ParentIsSelf: true,
		ForceDemo:    d.ForceDemo,
	}

	q := r.URL.Query()
	if r.Header.Get("X-Window-Opener") == "true" || q.Get("popup") == "true" {
		env.HasOpener = true
	}
	if r.Header.Get("Sec-Fetch-Dest") == "iframe" || d.embeddedByReferer(r.Referer()) {
		env.ParentIsSelf = false
	}
	if d.TrustEmbedHints {
		if r.Header.Get("X-Iframe-Mode") == "true" || q.Get("iframe") == "true" {
			env.ParentIsSelf = false
		}
		if r.Header.Get("X-Parent-Location") == "denied" {
			env.ParentUnreadable = true
		}
	}
	return env
}

// Classify is shorthand for Classify(d.FromRequest(r)).
func (d Detector) Classify(r *http.Request) Context {
	return Classify(d.FromRequest(r))
}

func hasWindow(r *http.Request) bool {
	for name := range r.Header {
		if strings.HasPrefix(name, "Sec-Fetch-") {
			return true
		}
	}
	if strings.Contains(r.Header.Get("Accept"), "text/html") {
		return true
	}
	// Explicit embedding hints only come from a browsing context.
	return r.Header.Get("X-Iframe-Mode") != "" || r.Header.Get("X-Window-Opener") != "" ||
		r.URL.Query().Get("iframe") != "" || r.URL.Query().Get("popup") != ""
}

func (d Detector) embeddedByReferer(referer string) bool {
	if referer == "" || len(d.EmbedderHosts) == 0 {
		return false
	}
	u, err := url.Parse(referer)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	for _, h := range d.EmbedderHosts {
		h = strings.ToLower(h)
		if host == h || strings.HasSuffix(host, "."+h) {
			return true
		}
	}
	return false
}
