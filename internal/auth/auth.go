// Package auth exposes one session facade to the rest of the app. A page
// view is served either by RealAuth, backed by the identity provider, or by
// MockAuth, backed by a canned demo identity; Selector makes that choice once
// per request.
package auth

import (
	"context"
	"strings"
	"time"
)

// Identity is the user shape the provider returns and the demo source mimics.
type Identity struct {
	ID             string            `json:"id"`
	FirstName      string            `json:"firstName"`
	LastName       string            `json:"lastName"`
	FullName       string            `json:"fullName"`
	Username       string            `json:"username"`
	Email          string            `json:"email,omitempty"`
	ImageURL       string            `json:"imageUrl,omitempty"`
	PublicMetadata map[string]string `json:"publicMetadata"`
	CreatedAt      time.Time         `json:"createdAt"`
	LastSignInAt   time.Time         `json:"lastSignInAt"`
}

// Session is what the provider hands back for a valid credential.
type Session struct {
	ID       string
	Identity *Identity
	Token    string
	ExpireAt time.Time
}

// Check is a single permission query for Auth.Has. Empty fields are ignored;
// all non-empty fields must match.
type Check struct {
	Role       string
	Permission string
	Plan       string
}

// Auth is the uniform session interface consumed by handlers.
type Auth interface {
	IsLoaded() bool
	IsSignedIn() bool
	UserID() string
	User() *Identity
	GetToken(ctx context.Context) (string, error)
	SignOut(ctx context.Context) error
	Has(check Check) bool
	// Demo reports whether this facade is synthesised from demo data.
	Demo() bool
}

// Provider is the identity provider boundary. Session validates a raw
// credential; Revoke ends the session it describes.
type Provider interface {
	Session(ctx context.Context, credential string) (*Session, error)
	Revoke(ctx context.Context, session *Session) error
}

type ctxKey int

const authKey ctxKey = 1

func WithAuth(ctx context.Context, a Auth) context.Context {
	return context.WithValue(ctx, authKey, a)
}

func FromContext(ctx context.Context) (Auth, bool) {
	a, ok := ctx.Value(authKey).(Auth)
	return a, ok
}

func hasCheck(identity *Identity, check Check) bool {
	if identity == nil {
		return false
	}
	meta := identity.PublicMetadata
	if check.Role != "" && meta["role"] != check.Role {
		return false
	}
	if check.Plan != "" && meta["plan"] != check.Plan {
		return false
	}
	if check.Permission != "" {
		granted := false
		for _, p := range strings.Split(meta["permissions"], ",") {
			if strings.TrimSpace(p) == check.Permission {
				granted = true
				break
			}
		}
		if !granted {
			return false
		}
	}
	return true
}
