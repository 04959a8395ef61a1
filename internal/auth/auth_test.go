package auth_test

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yt-planner/internal/auth"
	"yt-planner/internal/auth/mocks"
	"yt-planner/internal/authctx"
	apperrors "yt-planner/pkg/errors"
)

func newMockSource(seed int64) *auth.MockSource {
	return auth.NewMockSource(rand.New(rand.NewSource(seed)))
}

func TestMockSourceIsStable(t *testing.T) {
	source := newMockSource(7)
	first := source.Identity()
	for i := 0; i < 10; i++ {
		assert.Same(t, first, source.Identity())
	}
	assert.Equal(t, auth.MockSessionID, source.Session().ID)
	assert.Same(t, first, source.Session().Identity)
}

func TestMockSourceShape(t *testing.T) {
	for seed := int64(0); seed < 8; seed++ {
		id := newMockSource(seed).Identity()
		assert.NotEmpty(t, id.ID)
		assert.NotEmpty(t, id.FullName)
		assert.NotEmpty(t, id.Email)
		assert.NotEmpty(t, id.ImageURL)
		assert.Contains(t, []string{"premium", "basic"}, id.PublicMetadata["plan"])
	}
}

func TestMockAuth(t *testing.T) {
	a := auth.NewMockAuth(newMockSource(1))
	ctx := context.Background()

	assert.True(t, a.IsLoaded())
	assert.True(t, a.IsSignedIn())
	assert.True(t, a.Demo())
	assert.NotNil(t, a.User())
	assert.Equal(t, a.User().ID, a.UserID())
	assert.True(t, a.Has(auth.Check{Role: "admin", Permission: "org:delete", Plan: "enterprise"}))
	assert.NoError(t, a.SignOut(ctx))
	assert.True(t, a.IsSignedIn())

	t1, err := a.GetToken(ctx)
	require.NoError(t, err)
	t2, err := a.GetToken(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, t1, t2)
	assert.Contains(t, t1, "mock_jwt_token_")
}

func TestSelectorIframeNeverCallsProvider(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := mocks.NewMockProvider(ctrl) // no expectations: any call fails the test

	s := auth.NewSelector(authctx.Detector{}, provider, newMockSource(3), false)
	req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
	req.Header.Set("Sec-Fetch-Dest", "iframe")
	req.Header.Set("Authorization", "tma some-real-credential")

	a, c, err := s.Resolve(req)
	require.NoError(t, err)
	assert.Equal(t, authctx.Iframe, c)
	assert.True(t, a.IsSignedIn())
	assert.NotNil(t, a.User())
	assert.True(t, a.Demo())

	_, err = a.GetToken(req.Context())
	assert.NoError(t, err)
	assert.NoError(t, a.SignOut(req.Context()))
}

func TestSelectorDemoModeStandalone(t *testing.T) {
	s := auth.NewSelector(authctx.Detector{}, nil, newMockSource(3), true)
	a, c, err := s.Resolve(httptest.NewRequest(http.MethodGet, "/api/session", nil))
	require.NoError(t, err)
	assert.Equal(t, authctx.Standalone, c)
	assert.True(t, a.Demo())
}

func TestSelectorStandaloneDelegates(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := mocks.NewMockProvider(ctrl)

	identity := &auth.Identity{ID: "tg_42", PublicMetadata: map[string]string{"role": "creator", "plan": "premium"}}
	session := &auth.Session{ID: "s1", Identity: identity, Token: "init-data"}
	provider.EXPECT().Session(gomock.Any(), "init-data").Return(session, nil)
	provider.EXPECT().Revoke(gomock.Any(), session).Return(nil)

	s := auth.NewSelector(authctx.Detector{}, provider, newMockSource(3), false)
	req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
	req.Header.Set("Authorization", "tma init-data")

	a, c, err := s.Resolve(req)
	require.NoError(t, err)
	assert.Equal(t, authctx.Standalone, c)
	assert.False(t, a.Demo())
	assert.True(t, a.IsSignedIn())
	assert.Equal(t, "tg_42", a.UserID())
	assert.True(t, a.Has(auth.Check{Plan: "premium"}))
	assert.False(t, a.Has(auth.Check{Role: "admin"}))

	token, err := a.GetToken(req.Context())
	require.NoError(t, err)
	assert.Equal(t, "init-data", token)

	require.NoError(t, a.SignOut(req.Context()))
	assert.False(t, a.IsSignedIn())
}

func TestSelectorStandaloneProviderErrorPropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := mocks.NewMockProvider(ctrl)
	networkErr := errors.New("dial tcp: connection refused")
	provider.EXPECT().Session(gomock.Any(), "init-data").Return(nil, networkErr)

	s := auth.NewSelector(authctx.Detector{}, provider, newMockSource(3), false)
	req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
	req.Header.Set("Authorization", "tma init-data")

	a, _, err := s.Resolve(req)
	assert.Nil(t, a)
	assert.Same(t, networkErr, err)
}

func TestSelectorPopupUsesProvider(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := mocks.NewMockProvider(ctrl)
	provider.EXPECT().Session(gomock.Any(), "cred").Return(&auth.Session{Identity: &auth.Identity{ID: "tg_1"}}, nil)

	s := auth.NewSelector(authctx.Detector{}, provider, newMockSource(3), false)
	req := httptest.NewRequest(http.MethodGet, "/?popup=true", nil)
	req.Header.Set("Authorization", "tma cred")

	a, c, err := s.Resolve(req)
	require.NoError(t, err)
	assert.Equal(t, authctx.Popup, c)
	assert.False(t, a.Demo())
}

func TestSelectorSignedOutAndMalformed(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := mocks.NewMockProvider(ctrl)
	s := auth.NewSelector(authctx.Detector{}, provider, newMockSource(3), false)

	a, _, err := s.Resolve(httptest.NewRequest(http.MethodGet, "/api/session", nil))
	require.NoError(t, err)
	assert.True(t, a.IsLoaded())
	assert.False(t, a.IsSignedIn())
	_, err = a.GetToken(context.Background())
	assert.True(t, errors.Is(err, apperrors.ErrNotSignedIn))

	req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
	req.Header.Set("Authorization", "Bearer sometoken")
	_, _, err = s.Resolve(req)
	assert.Equal(t, apperrors.CodeUnauthenticated, apperrors.CodeOf(err))
}

func TestContextRoundTrip(t *testing.T) {
	a := auth.NewMockAuth(newMockSource(1))
	ctx := auth.WithAuth(context.Background(), a)
	got, ok := auth.FromContext(ctx)
	require.True(t, ok)
	assert.Same(t, a, got)

	_, ok = auth.FromContext(context.Background())
	assert.False(t, ok)
}
