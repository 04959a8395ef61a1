package auth

import (
	"net/http"
	"strings"

	"yt-planner/internal/authctx"
	apperrors "yt-planner/pkg/errors"
)

// CredentialScheme prefixes the provider credential in the Authorization
// header.
const CredentialScheme = "tma"

// Selector is built once at startup. For each request it classifies the
// context and returns the facade that serves the whole page view.
type Selector struct {
	detector authctx.Detector
	provider Provider
	mock     *MockSource
	demo     bool
}

// NewSelector wires the facade choice. provider may be nil only when demo is
// true.
func NewSelector(detector authctx.Detector, provider Provider, mock *MockSource, demo bool) *Selector {
	return &Selector{detector: detector, provider: provider, mock: mock, demo: demo}
}

// Demo reports whether the deployment runs in demo mode.
func (s *Selector) Demo() bool { return s.demo }

// MockSource exposes the demo identity source.
func (s *Selector) MockSource() *MockSource { return s.mock }

// Resolve picks MockAuth for demo deployments and embedded contexts, and
// RealAuth otherwise. Errors come from the provider or a malformed header.
func (s *Selector) Resolve(r *http.Request) (Auth, authctx.Context, error) {
	c := s.detector.Classify(r)
	if s.demo || c == authctx.Iframe {
		return NewMockAuth(s.mock), c, nil
	}
	if s.provider == nil {
		return nil, c, apperrors.Configuration("identity provider is not configured")
	}

	credential, err := credentialFromRequest(r)
	if err != nil {
		return nil, c, err
	}
	a, err := NewRealAuth(r.Context(), s.provider, credential)
	if err != nil {
		return nil, c, err
	}
	return a, c, nil
}

func credentialFromRequest(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", nil
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != CredentialScheme || parts[1] == "" {
		return "", apperrors.Unauthorized("Authorization header format must be 'tma <initData>'")
	}
	return parts[1], nil
}
