package auth_test

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yt-planner/internal/auth"
	"yt-planner/internal/auth/mocks"
	apperrors "yt-planner/pkg/errors"
)

const testBotToken = "123456:TEST-TOKEN"

// signInitData builds init data the way the Telegram client does.
func signInitData(t *testing.T, token string, authDate time.Time, user string) string {
	t.Helper()
	values := map[string]string{
		"auth_date": strconv.FormatInt(authDate.Unix(), 10),
		"query_id":  "AAHdF6IQAAAAAN0XohDhrOrc",
		"user":      user,
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+values[k])
	}

	secret := hmac.New(sha256.New, []byte("WebAppData"))
	secret.Write([]byte(token))
	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(strings.Join(pairs, "\n")))

	q := url.Values{}
	for k, v := range values {
		q.Set(k, v)
	}
	q.Set("hash", hex.EncodeToString(mac.Sum(nil)))
	return q.Encode()
}

type memoryRevocations struct {
	mu   sync.Mutex
	keys map[string]time.Duration
}

func (m *memoryRevocations) Revoke(ctx context.Context, sessionID string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.keys == nil {
		m.keys = map[string]time.Duration{}
	}
	m.keys[sessionID] = ttl
	return nil
}

func (m *memoryRevocations) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.keys[sessionID]
	return ok, nil
}

const telegramUser = `{"id":279058397,"first_name":"Vladislav","last_name":"Kibenko","username":"vdkfrost","language_code":"en"}`

func TestTelegramProviderSession(t *testing.T) {
	p := auth.NewTelegramProvider(testBotToken, time.Hour, nil)
	cred := signInitData(t, testBotToken, time.Now(), telegramUser)

	session, err := p.Session(context.Background(), cred)
	require.NoError(t, err)
	assert.Equal(t, "tg_279058397", session.Identity.ID)
	assert.Equal(t, "Vladislav Kibenko", session.Identity.FullName)
	assert.Equal(t, "vdkfrost", session.Identity.Username)
	assert.Equal(t, cred, session.Token)
	assert.NotEmpty(t, session.ID)
	assert.True(t, session.ExpireAt.After(time.Now()))
}

func TestTelegramProviderRejectsBadSignature(t *testing.T) {
	p := auth.NewTelegramProvider(testBotToken, time.Hour, nil)
	cred := signInitData(t, "999:OTHER-TOKEN", time.Now(), telegramUser)

	_, err := p.Session(context.Background(), cred)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeUnauthenticated, apperrors.CodeOf(err))
}

func TestTelegramProviderRejectsExpired(t *testing.T) {
	p := auth.NewTelegramProvider(testBotToken, time.Hour, nil)
	cred := signInitData(t, testBotToken, time.Now().Add(-2*time.Hour), telegramUser)

	_, err := p.Session(context.Background(), cred)
	assert.Error(t, err)
}

func TestTelegramProviderRevocation(t *testing.T) {
	store := &memoryRevocations{}
	p := auth.NewTelegramProvider(testBotToken, time.Hour, store)
	cred := signInitData(t, testBotToken, time.Now(), telegramUser)
	ctx := context.Background()

	session, err := p.Session(ctx, cred)
	require.NoError(t, err)
	require.NoError(t, p.Revoke(ctx, session))

	ttl, ok := store.keys[session.ID]
	require.True(t, ok)
	assert.True(t, ttl > 0 && ttl <= time.Hour)

	_, err = p.Session(ctx, cred)
	assert.Equal(t, apperrors.CodeUnauthenticated, apperrors.CodeOf(err))
}

func TestTelegramProviderRevocationStoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockRevocations(ctrl)
	storeErr := assert.AnError
	store.EXPECT().IsRevoked(gomock.Any(), gomock.Any()).Return(false, storeErr)

	p := auth.NewTelegramProvider(testBotToken, time.Hour, store)
	_, err := p.Session(context.Background(), signInitData(t, testBotToken, time.Now(), telegramUser))
	assert.ErrorIs(t, err, storeErr)
}

func TestRealAuthSignOutRevokes(t *testing.T) {
	store := &memoryRevocations{}
	p := auth.NewTelegramProvider(testBotToken, time.Hour, store)
	cred := signInitData(t, testBotToken, time.Now(), telegramUser)
	ctx := context.Background()

	a, err := auth.NewRealAuth(ctx, p, cred)
	require.NoError(t, err)
	require.True(t, a.IsSignedIn())
	require.NoError(t, a.SignOut(ctx))
	assert.False(t, a.IsSignedIn())
	assert.Len(t, store.keys, 1)

	_, err = auth.NewRealAuth(ctx, p, cred)
	assert.Error(t, err)
}

func TestUserIDFromTelegram(t *testing.T) {
	assert.Equal(t, "tg_42", auth.UserIDFromTelegram(42))
}
