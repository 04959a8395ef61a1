package models

import "time"

type InsightCategory string

const (
	InsightPerformance InsightCategory = "performance"
	InsightOpportunity InsightCategory = "opportunity"
	InsightSuggestion  InsightCategory = "suggestion"
	InsightTrend       InsightCategory = "trend"
)

// Insight rows are replaced as a whole set on every refresh.
type Insight struct {
	ID          string          `db:"id" json:"id"`
	UserID      string          `db:"user_id" json:"userId"`
	Title       string          `db:"title" json:"title"`
	Description string          `db:"description" json:"description"`
	Category    InsightCategory `db:"category" json:"category"`
	Priority    int             `db:"priority" json:"priority"`
	CreatedAt   time.Time       `db:"created_at" json:"createdAt"`
}

// DashboardOverview summarises a user's rows for the dashboard page.
type DashboardOverview struct {
	IsPremium   bool `db:"-" json:"isPremium"`
	Channels    int  `db:"channels" json:"channels"`
	Videos      int  `db:"videos" json:"videos"`
	Ideas       int  `db:"ideas" json:"ideas"`
	Topics      int  `db:"topics" json:"topics"`
	Competitors int  `db:"competitors" json:"competitors"`
	Insights    int  `db:"insights" json:"insights"`
}
