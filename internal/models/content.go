package models

import (
	"time"

	"github.com/lib/pq"
)

// ContentIdea is a generated or manually entered video idea.
type ContentIdea struct {
	ID                  string         `db:"id" json:"id"`
	UserID              string         `db:"user_id" json:"userId"`
	Title               string         `db:"title" json:"title"`
	Description         string         `db:"description" json:"description"`
	Tags                pq.StringArray `db:"tags" json:"tags"`
	Category            *string        `db:"category" json:"category,omitempty"`
	IsPremium           bool           `db:"is_premium" json:"isPremium"`
	IsGenerated         bool           `db:"is_generated" json:"isGenerated"`
	InspirationSources  pq.StringArray `db:"inspiration_sources" json:"inspirationSources"`
	PotentialKeywords   pq.StringArray `db:"potential_keywords" json:"potentialKeywords"`
	EstimatedViewership *string        `db:"estimated_viewership" json:"estimatedViewership,omitempty"`
	CreatedAt           time.Time      `db:"created_at" json:"createdAt"`
}

func (c ContentIdea) Premium() bool { return c.IsPremium }

// TrendingTopic is a topic suggested for the user's niche.
type TrendingTopic struct {
	ID             string         `db:"id" json:"id"`
	UserID         string         `db:"user_id" json:"userId"`
	Topic          string         `db:"topic" json:"topic"`
	Description    string         `db:"description" json:"description"`
	RelevanceScore int            `db:"relevance_score" json:"relevanceScore"`
	Sources        pq.StringArray `db:"sources" json:"sources"`
	IsPremium      bool           `db:"is_premium" json:"isPremium"`
	CreatedAt      time.Time      `db:"created_at" json:"createdAt"`
}

func (t TrendingTopic) Premium() bool { return t.IsPremium }
