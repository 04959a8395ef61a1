package planner

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"yt-planner/internal/gate"
	"yt-planner/internal/models"
	apperrors "yt-planner/pkg/errors"
)

const defaultCompetitorID = "demo-competitor-id"

// AddCompetitor starts tracking the channel behind competitorURL. It is a
// premium feature; free users are refused before anything is written.
func (s *Service) AddCompetitor(ctx context.Context, user *models.User, competitorURL string) (*models.Competitor, error) {
	if err := gate.RequirePremium(user, "Competitor analysis"); err != nil {
		return nil, err
	}
	competitorURL = strings.TrimSpace(competitorURL)
	if competitorURL == "" {
		return nil, apperrors.ErrInvalidChannelURL
	}

	id := lastSegment(competitorURL, defaultCompetitorID)
	stored, err := s.store.UpsertCompetitor(ctx, &models.Competitor{
		ID:                  uuid.NewString(),
		UserID:              user.UserID,
		CompetitorChannelID: id,
		Name:                "Competitor " + id,
		URL:                 competitorURL,
		SubscriberCount:     s.intn(500000),
		VideoCount:          s.intn(1000),
		ViewCount:           s.intn(50000000),
	})
	if err != nil {
		return nil, err
	}
	log.Printf("User %s is now tracking competitor %s", user.UserID, id)
	return stored, nil
}

// ListCompetitors is empty for free users.
func (s *Service) ListCompetitors(ctx context.Context, user *models.User) ([]models.Competitor, error) {
	if !gate.IsPremium(user) {
		return []models.Competitor{}, nil
	}
	competitors, err := s.store.GetCompetitorsByUserID(ctx, user.UserID)
	if err != nil {
		return nil, err
	}
	return gate.Filter(competitors, user), nil
}

// UpdateCompetitorNotes replaces the notes. There is no version check; the
// last write wins.
func (s *Service) UpdateCompetitorNotes(ctx context.Context, userID, id, notes string) error {
	return s.store.UpdateCompetitorNotes(ctx, userID, id, notes)
}

func (s *Service) DeleteCompetitor(ctx context.Context, userID, id string) error {
	return s.store.DeleteCompetitor(ctx, userID, id)
}

// CompetitorInsights returns a simulated analysis of a tracked competitor.
func (s *Service) CompetitorInsights(ctx context.Context, user *models.User, id string) (*models.CompetitorAnalysis, error) {
	if err := gate.RequirePremium(user, "Competitor insights"); err != nil {
		return nil, err
	}
	c, err := s.store.GetCompetitorByID(ctx, user.UserID, id)
	if err != nil {
		return nil, err
	}

	videos := c.VideoCount
	if videos == 0 {
		videos = 1
	}
	return &models.CompetitorAnalysis{
		TopPerformingContentTypes: []string{"Tutorials", "Reviews", "Interviews"},
		UploadFrequency:           "2 videos per week",
		AverageViewCount:          c.ViewCount / videos,
		EngagementRate:            fmt.Sprintf("%.2f%%", s.float64()*10),
		GrowthRate:                fmt.Sprintf("%.2f%% per month", s.float64()*20),
		RecommendedStrategies: []string{
			"Focus on tutorial content similar to competitor's top videos",
			"Upload more frequently to match competitor's cadence",
			"Engage more with comments to boost engagement rate",
		},
	}, nil
}

// ResyncCompetitor refreshes a competitor's statistics from the background
// worker.
func (s *Service) ResyncCompetitor(ctx context.Context, id string) error {
	return s.store.UpdateCompetitorStats(ctx, id, s.intn(500000), s.intn(1000), s.intn(50000000))
}
