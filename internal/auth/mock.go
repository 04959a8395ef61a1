package auth

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

const MockSessionID = "sess_demo_123"

func demoIdentities(now time.Time) []Identity {
	return []Identity{
		{
			ID:        "demo_user_123",
			FirstName: "Alex",
			LastName:  "Developer",
			FullName:  "Alex Developer",
			Username:  "alexdev",
			Email:     "alex.developer@demo.com",
			ImageURL:  "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=32&h=32&fit=crop&crop=face&auto=format&q=75",
			PublicMetadata: map[string]string{
				"role": "developer",
				"plan": "premium",
			},
			CreatedAt:    now.Add(-30 * 24 * time.Hour),
			LastSignInAt: now.Add(-30 * time.Minute),
		},
		{
			ID:        "demo_user_456",
			FirstName: "Jordan",
			LastName:  "Designer",
			FullName:  "Jordan Designer",
			Username:  "jordanux",
			Email:     "jordan.designer@demo.com",
			ImageURL:  "https://images.unsplash.com/photo-1494790108755-2616b612b786?w=32&h=32&fit=crop&crop=face&auto=format&q=75",
			PublicMetadata: map[string]string{
				"role": "designer",
				"plan": "basic",
			},
			CreatedAt:    now.Add(-60 * 24 * time.Hour),
			LastSignInAt: now.Add(-2 * time.Hour),
		},
	}
}

// MockSource picks one demo identity when it is created and returns that
// same identity for its whole lifetime.
type MockSource struct {
	identity *Identity
	session  *Session
}

func NewMockSource(rng *rand.Rand) *MockSource {
	now := time.Now()
	identities := demoIdentities(now)
	identity := identities[rng.Intn(len(identities))]
	return &MockSource{
		identity: &identity,
		session: &Session{
			ID:       MockSessionID,
			Identity: &identity,
			ExpireAt: now.Add(24 * time.Hour),
		},
	}
}

func (s *MockSource) Identity() *Identity { return s.identity }

func (s *MockSource) Session() *Session { return s.session }

// IsPremium reports the plan advertised in the demo identity's metadata.
func (s *MockSource) IsPremium() bool {
	return s.identity.PublicMetadata["plan"] == "premium"
}

// MockAuth is the demo facade. It never reaches the identity provider.
type MockAuth struct {
	source *MockSource
}

func NewMockAuth(source *MockSource) *MockAuth {
	return &MockAuth{source: source}
}

func (a *MockAuth) IsLoaded() bool { return true }

func (a *MockAuth) IsSignedIn() bool { return true }

func (a *MockAuth) UserID() string { return a.source.Identity().ID }

func (a *MockAuth) User() *Identity { return a.source.Identity() }

// GetToken returns a placeholder that is unique per call and carries no
// signature.
func (a *MockAuth) GetToken(ctx context.Context) (string, error) {
	return fmt.Sprintf("mock_jwt_token_%d_%s", time.Now().UnixNano(), uuid.NewString()), nil
}

func (a *MockAuth) SignOut(ctx context.Context) error { return nil }

func (a *MockAuth) Has(check Check) bool { return true }

func (a *MockAuth) Demo() bool { return true }
