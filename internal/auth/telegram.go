package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	initdata "github.com/telegram-mini-apps/init-data-golang"

	apperrors "yt-planner/pkg/errors"
)

// TelegramUserPrefix namespaces Telegram ids among provider user ids.
const TelegramUserPrefix = "tg_"

// TelegramProvider validates Telegram Mini App init data signed with the
// bot token.
type TelegramProvider struct {
	botToken string
	expIn    time.Duration
	revoked  Revocations
}

func NewTelegramProvider(botToken string, expIn time.Duration, revoked Revocations) *TelegramProvider {
	return &TelegramProvider{botToken: botToken, expIn: expIn, revoked: revoked}
}

func (p *TelegramProvider) Session(ctx context.Context, credential string) (*Session, error) {
	if err := initdata.Validate(credential, p.botToken, p.expIn); err != nil {
		return nil, apperrors.ErrProviderFailed(err)
	}

	data, err := initdata.Parse(credential)
	if err != nil {
		return nil, apperrors.ErrProviderFailed(err)
	}
	if data.User.ID == 0 {
		return nil, apperrors.Unauthorized("init data carries no user")
	}

	sessionID := credentialID(credential)
	if p.revoked != nil {
		revoked, err := p.revoked.IsRevoked(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, apperrors.Unauthorized("session has been signed out")
		}
	}

	return &Session{
		ID:       sessionID,
		Identity: telegramIdentity(data.User),
		Token:    credential,
		ExpireAt: p.expiry(),
	}, nil
}

func (p *TelegramProvider) Revoke(ctx context.Context, session *Session) error {
	if p.revoked == nil {
		return nil
	}
	ttl := time.Until(session.ExpireAt)
	if ttl <= 0 {
		ttl = p.expIn
	}
	return p.revoked.Revoke(ctx, session.ID, ttl)
}

func (p *TelegramProvider) expiry() time.Time {
	if p.expIn <= 0 {
		return time.Now().Add(24 * time.Hour)
	}
	return time.Now().Add(p.expIn)
}

// UserIDFromTelegram maps a Telegram account id to a provider user id.
func UserIDFromTelegram(id int64) string {
	return TelegramUserPrefix + strconv.FormatInt(id, 10)
}

func telegramIdentity(u initdata.User) *Identity {
	fullName := strings.TrimSpace(u.FirstName + " " + u.LastName)
	return &Identity{
		ID:             UserIDFromTelegram(u.ID),
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		FullName:       fullName,
		Username:       u.Username,
		ImageURL:       u.PhotoURL,
		PublicMetadata: map[string]string{},
		LastSignInAt:   time.Now(),
	}
}

func credentialID(credential string) string {
	sum := sha256.Sum256([]byte(credential))
	return hex.EncodeToString(sum[:])
}
