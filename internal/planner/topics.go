package planner

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"yt-planner/internal/db"
	"yt-planner/internal/gate"
	"yt-planner/internal/models"
)

type topicTemplate struct {
	topic       string
	description string
	score       int
	sources     []string
}

var basicTopics = []topicTemplate{
	{"Content Creation Tips", "Best practices for creating engaging YouTube content", 85, []string{"YouTube Trends", "Creator Insights"}},
	{"YouTube Algorithm Updates", "Recent changes to the YouTube recommendation algorithm", 90, []string{"YouTube Blog", "Creator Insider"}},
	{"Video Editing Techniques", "Popular editing styles and techniques for YouTube", 75, []string{"Creator Forums", "Editing Communities"}},
}

var premiumTopics = []topicTemplate{
	{"Emerging Content Niches", "Undiscovered content categories with high growth potential", 95, []string{"Trend Analysis", "Market Research"}},
	{"Monetization Strategies", "Advanced techniques for maximizing revenue from your content", 88, []string{"Creator Economy Reports", "Platform Insights"}},
	{"Audience Retention Tactics", "Proven methods to keep viewers watching longer", 92, []string{"Analytics Research", "Engagement Studies"}},
	{"Cross-Platform Growth", "Strategies for leveraging multiple platforms to grow your audience", 87, []string{"Social Media Trends", "Creator Case Studies"}},
}

// GenerateTrendingTopics appends a batch of topics for the user: the basic
// set for everyone plus the premium set for premium users. Earlier batches
// are kept, so calling it twice stores both batches.
func (s *Service) GenerateTrendingTopics(ctx context.Context, user *models.User, niche string) ([]string, error) {
	templates := append([]topicTemplate{}, basicTopics...)
	premium := gate.IsPremium(user)
	if premium {
		templates = append(templates, premiumTopics...)
	}

	niche = strings.TrimSpace(niche)
	now := s.now()
	topics := make([]models.TrendingTopic, 0, len(templates))
	for i, tpl := range templates {
		description := tpl.description
		if niche != "" {
			description += " for " + niche + " creators"
		}
		topics = append(topics, models.TrendingTopic{
			ID:             uuid.NewString(),
			UserID:         user.UserID,
			Topic:          tpl.topic,
			Description:    description,
			RelevanceScore: tpl.score,
			Sources:        tpl.sources,
			IsPremium:      i >= len(basicTopics),
			CreatedAt:      now,
		})
	}

	err := s.store.WithTx(ctx, func(tx *db.Store) error {
		for _, t := range topics {
			if err := tx.InsertTrendingTopic(ctx, t); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(topics))
	for _, t := range topics {
		ids = append(ids, t.ID)
	}
	return ids, nil
}

func (s *Service) ListTrendingTopics(ctx context.Context, user *models.User, includePremium bool) ([]models.TrendingTopic, error) {
	return s.store.GetTrendingTopics(ctx, user.UserID, gate.IncludePremium(user, includePremium))
}

func (s *Service) DeleteTrendingTopic(ctx context.Context, userID, id string) error {
	return s.store.DeleteTrendingTopic(ctx, userID, id)
}
