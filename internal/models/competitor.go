package models

import "time"

// Competitor is another creator's channel tracked by a premium user.
type Competitor struct {
	ID                  string    `db:"id" json:"id"`
	UserID              string    `db:"user_id" json:"userId"`
	CompetitorChannelID string    `db:"competitor_channel_id" json:"competitorChannelId"`
	Name                string    `db:"name" json:"name"`
	URL                 string    `db:"url" json:"url"`
	SubscriberCount     int64     `db:"subscriber_count" json:"subscriberCount"`
	VideoCount          int64     `db:"video_count" json:"videoCount"`
	ViewCount           int64     `db:"view_count" json:"viewCount"`
	Notes               string    `db:"notes" json:"notes"`
	IsPremium           bool      `db:"is_premium" json:"isPremium"`
	LastSyncedAt        time.Time `db:"last_synced_at" json:"lastSyncedAt"`
}

func (c Competitor) Premium() bool { return c.IsPremium }

// CompetitorAnalysis is computed on demand and never stored.
type CompetitorAnalysis struct {
	TopPerformingContentTypes []string `json:"topPerformingContentTypes"`
	UploadFrequency           string   `json:"uploadFrequency"`
	AverageViewCount          int64    `json:"averageViewCount"`
	EngagementRate            string   `json:"engagementRate"`
	GrowthRate                string   `json:"growthRate"`
	RecommendedStrategies     []string `json:"recommendedStrategies"`
}
