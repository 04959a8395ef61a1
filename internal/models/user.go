package models

import "time"

type contextKey string

// UserContextKey is the key for the signed-in user in a request context.
const UserContextKey = contextKey("user")

// User represents a user in the database. UserID is the identity
// provider's id and is unique.
type User struct {
	UserID      string    `db:"user_id" json:"userId"`
	Name        *string   `db:"name" json:"name,omitempty"`
	Email       *string   `db:"email" json:"email,omitempty"`
	IsPremium   bool      `db:"is_premium" json:"isPremium"`
	FeedToken   string    `db:"feed_token" json:"-"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	LastLoginAt time.Time `db:"last_login_at" json:"lastLoginAt"`
}
