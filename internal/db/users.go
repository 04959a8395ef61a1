package db

import (
	"context"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"yt-planner/internal/models"
	apperrors "yt-planner/pkg/errors"
)

const userColumns = `user_id, name, email, is_premium, feed_token, created_at, last_login_at`

// UserUpsert carries the fields supplied at sign-in. Nil fields keep the
// stored value. InitialPremium only applies when the user is created.
type UserUpsert struct {
	UserID         string
	Name           *string
	Email          *string
	IsPremium      *bool
	InitialPremium bool
}

// UpsertUser inserts a new user or updates an existing one based on the
// identity provider's id, refreshing last_login_at.
func (s *Store) UpsertUser(ctx context.Context, u UserUpsert) (*models.User, error) {
	query := `
		INSERT INTO users (user_id, name, email, is_premium, feed_token)
		VALUES ($1, $2, $3, COALESCE($4::BOOLEAN, $6::BOOLEAN), $5)
		ON CONFLICT (user_id) DO UPDATE SET
			name = COALESCE(EXCLUDED.name, users.name),
			email = COALESCE(EXCLUDED.email, users.email),
			is_premium = COALESCE($4::BOOLEAN, users.is_premium),
			last_login_at = NOW()
		RETURNING ` + userColumns
	user := &models.User{}
	err := s.get(ctx, user, query, u.UserID, u.Name, u.Email, u.IsPremium, uuid.NewString(), u.InitialPremium)
	if err != nil {
		log.Printf("Error upserting user %s: %v", u.UserID, err)
		return nil, err
	}
	return user, nil
}

func (s *Store) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	user := &models.User{}
	err := s.get(ctx, user, `SELECT `+userColumns+` FROM users WHERE user_id = $1`, userID)
	if err != nil {
		return nil, mapNoRows(err, apperrors.ErrUserNotFound)
	}
	return user, nil
}

func (s *Store) GetUserByFeedToken(ctx context.Context, token string) (*models.User, error) {
	user := &models.User{}
	err := s.get(ctx, user, `SELECT `+userColumns+` FROM users WHERE feed_token = $1`, token)
	if err != nil {
		return nil, mapNoRows(err, apperrors.ErrUserNotFound)
	}
	return user, nil
}

func (s *Store) UpdatePremiumStatus(ctx context.Context, userID string, isPremium bool) error {
	return s.execOne(ctx, apperrors.ErrUserNotFound,
		`UPDATE users SET is_premium = $1 WHERE user_id = $2`, isPremium, userID)
}
