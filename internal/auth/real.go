package auth

import (
	"context"

	apperrors "yt-planner/pkg/errors"
)

// RealAuth forwards to the identity provider. Provider failures are returned
// to the caller unchanged; there is no fallback to demo data.
type RealAuth struct {
	provider Provider
	session  *Session
}

// NewRealAuth resolves credential with the provider. An empty credential
// yields a loaded, signed-out facade.
func NewRealAuth(ctx context.Context, provider Provider, credential string) (*RealAuth, error) {
	a := &RealAuth{provider: provider}
	if credential == "" {
		return a, nil
	}
	session, err := provider.Session(ctx, credential)
	if err != nil {
		return nil, err
	}
	a.session = session
	return a, nil
}

func (a *RealAuth) IsLoaded() bool { return true }

func (a *RealAuth) IsSignedIn() bool { return a.session != nil && a.session.Identity != nil }

func (a *RealAuth) UserID() string {
	if !a.IsSignedIn() {
		return ""
	}
	return a.session.Identity.ID
}

func (a *RealAuth) User() *Identity {
	if !a.IsSignedIn() {
		return nil
	}
	return a.session.Identity
}

func (a *RealAuth) GetToken(ctx context.Context) (string, error) {
	if !a.IsSignedIn() {
		return "", apperrors.ErrNotSignedIn
	}
	return a.session.Token, nil
}

func (a *RealAuth) SignOut(ctx context.Context) error {
	if !a.IsSignedIn() {
		return nil
	}
	if err := a.provider.Revoke(ctx, a.session); err != nil {
		return err
	}
	a.session = nil
	return nil
}

func (a *RealAuth) Has(check Check) bool {
	return a.IsSignedIn() && hasCheck(a.session.Identity, check)
}

func (a *RealAuth) Demo() bool { return false }
