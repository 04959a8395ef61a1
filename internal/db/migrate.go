package db

import (
	"context"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		user_id TEXT PRIMARY KEY,
		name TEXT,
		email TEXT,
		is_premium BOOLEAN NOT NULL DEFAULT FALSE,
		feed_token TEXT NOT NULL UNIQUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		last_login_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS channels (
		id TEXT PRIMARY KEY,
		channel_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		url TEXT NOT NULL,
		subscriber_count BIGINT NOT NULL DEFAULT 0,
		video_count BIGINT NOT NULL DEFAULT 0,
		view_count BIGINT NOT NULL DEFAULT 0,
		thumbnail_url TEXT NOT NULL DEFAULT '',
		is_analyzed BOOLEAN NOT NULL DEFAULT FALSE,
		last_synced_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (user_id, channel_id)
	)`,
	`CREATE TABLE IF NOT EXISTS videos (
		id TEXT PRIMARY KEY,
		video_id TEXT NOT NULL,
		channel_id TEXT NOT NULL,
		channel_row_id TEXT NOT NULL REFERENCES channels(id) ON DELETE CASCADE,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		published_at TIMESTAMPTZ NOT NULL,
		view_count BIGINT NOT NULL DEFAULT 0,
		like_count BIGINT NOT NULL DEFAULT 0,
		comment_count BIGINT NOT NULL DEFAULT 0,
		thumbnail_url TEXT NOT NULL DEFAULT '',
		tags TEXT[] NOT NULL DEFAULT '{}',
		UNIQUE (channel_row_id, video_id)
	)`,
	`CREATE TABLE IF NOT EXISTS content_ideas (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		tags TEXT[] NOT NULL DEFAULT '{}',
		category TEXT,
		is_premium BOOLEAN NOT NULL DEFAULT FALSE,
		is_generated BOOLEAN NOT NULL DEFAULT FALSE,
		inspiration_sources TEXT[] NOT NULL DEFAULT '{}',
		potential_keywords TEXT[] NOT NULL DEFAULT '{}',
		estimated_viewership TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS content_ideas_user_id_idx ON content_ideas (user_id)`,
	`CREATE TABLE IF NOT EXISTS trending_topics (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		topic TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		relevance_score INT NOT NULL DEFAULT 0,
		sources TEXT[] NOT NULL DEFAULT '{}',
		is_premium BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS trending_topics_user_id_idx ON trending_topics (user_id)`,
	`CREATE TABLE IF NOT EXISTS competitors (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		competitor_channel_id TEXT NOT NULL,
		name TEXT NOT NULL,
		url TEXT NOT NULL,
		subscriber_count BIGINT NOT NULL DEFAULT 0,
		video_count BIGINT NOT NULL DEFAULT 0,
		view_count BIGINT NOT NULL DEFAULT 0,
		notes TEXT NOT NULL DEFAULT '',
		is_premium BOOLEAN NOT NULL DEFAULT TRUE,
		last_synced_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (user_id, competitor_channel_id)
	)`,
	`CREATE TABLE IF NOT EXISTS insights (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		category TEXT NOT NULL CHECK (category IN ('performance', 'opportunity', 'suggestion', 'trend')),
		priority INT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS insights_user_id_idx ON insights (user_id)`,
}

// Migrate creates any missing tables.
func (s *Store) Migrate(ctx context.Context) error {
	for _, q := range schema {
		if _, err := s.q.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("failed to init schema: %w", err)
		}
	}
	return nil
}
