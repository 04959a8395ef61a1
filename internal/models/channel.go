package models

import (
	"time"

	"github.com/lib/pq"
)

// Channel is a YouTube channel connected by a user.
type Channel struct {
	ID              string    `db:"id" json:"id"`
	ChannelID       string    `db:"channel_id" json:"channelId"`
	UserID          string    `db:"user_id" json:"userId"`
	Name            string    `db:"name" json:"name"`
	URL             string    `db:"url" json:"url"`
	SubscriberCount int64     `db:"subscriber_count" json:"subscriberCount"`
	VideoCount      int64     `db:"video_count" json:"videoCount"`
	ViewCount       int64     `db:"view_count" json:"viewCount"`
	ThumbnailURL    string    `db:"thumbnail_url" json:"thumbnailUrl"`
	IsAnalyzed      bool      `db:"is_analyzed" json:"isAnalyzed"`
	LastSyncedAt    time.Time `db:"last_synced_at" json:"lastSyncedAt"`
}

// Video belongs to one connected Channel row; ChannelID repeats the
// external channel id.
type Video struct {
	ID           string         `db:"id" json:"id"`
	VideoID      string         `db:"video_id" json:"videoId"`
	ChannelID    string         `db:"channel_id" json:"channelId"`
	ChannelRowID string         `db:"channel_row_id" json:"-"`
	Title        string         `db:"title" json:"title"`
	Description  string         `db:"description" json:"description"`
	PublishedAt  time.Time      `db:"published_at" json:"publishedAt"`
	ViewCount    int64          `db:"view_count" json:"viewCount"`
	LikeCount    int64          `db:"like_count" json:"likeCount"`
	CommentCount int64          `db:"comment_count" json:"commentCount"`
	ThumbnailURL string         `db:"thumbnail_url" json:"thumbnailUrl"`
	Tags         pq.StringArray `db:"tags" json:"tags"`
}
