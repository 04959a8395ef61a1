package planner

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"yt-planner/internal/db"
	"yt-planner/internal/models"
)

const insightsShown = 10

// RefreshInsights replaces the user's insights with a set derived from their
// channels, ideas and competitors. The old set is removed in the same
// transaction, so readers see either the old or the new set.
func (s *Service) RefreshInsights(ctx context.Context, userID string) (int, error) {
	channels, err := s.store.GetChannelsByUserID(ctx, userID)
	if err != nil {
		return 0, err
	}
	ideas, err := s.store.GetContentIdeas(ctx, userID, true)
	if err != nil {
		return 0, err
	}
	competitors, err := s.store.GetCompetitorsByUserID(ctx, userID)
	if err != nil {
		return 0, err
	}

	now := s.now()
	insights := deriveInsights(channels, ideas, competitors, now)
	for i := range insights {
		insights[i].ID = uuid.NewString()
		insights[i].UserID = userID
		insights[i].CreatedAt = now
	}

	err = s.store.WithTx(ctx, func(tx *db.Store) error {
		if _, err := tx.DeleteInsightsByUser(ctx, userID); err != nil {
			return err
		}
		for _, in := range insights {
			if err := tx.InsertInsight(ctx, in); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(insights), nil
}

func deriveInsights(channels []models.Channel, ideas []models.ContentIdea, competitors []models.Competitor, now time.Time) []models.Insight {
	var out []models.Insight
	add := func(category models.InsightCategory, priority int, title, description string) {
		out = append(out, models.Insight{Title: title, Description: description, Category: category, Priority: priority})
	}

	if len(channels) > 0 {
		var views, videos int64
		for _, c := range channels {
			views += c.ViewCount
			videos += c.VideoCount
		}
		if videos == 0 {
			videos = 1
		}
		avg := views / videos
		if avg > 10000 {
			add(models.InsightPerformance, 8, "Strong Viewership",
				fmt.Sprintf("Your videos average %d views each. Keep up the excellent momentum!", avg))
		} else if avg < 1000 {
			add(models.InsightPerformance, 7, "Viewership Needs Attention",
				fmt.Sprintf("Your videos average %d views each. Consider reviewing titles, thumbnails and upload times.", avg))
		}
	}

	if len(channels) > 0 {
		generated := 0
		for _, idea := range ideas {
			if idea.IsGenerated {
				generated++
			}
		}
		if len(ideas) == 0 {
			add(models.InsightOpportunity, 7, "Content Idea Opportunity",
				"You have connected a channel but have no content ideas yet. Generate ideas from your channel analytics to plan your next uploads.")
		} else if manual := len(ideas) - generated; generated > manual*2 {
			add(models.InsightOpportunity, 6, "Make Ideas Your Own",
				fmt.Sprintf("%d of your %d ideas were generated. Adding your own ideas keeps your channel's voice distinct.", generated, len(ideas)))
		}
	}

	if len(competitors) == 0 && len(channels) > 0 {
		add(models.InsightSuggestion, 6, "Competitor Tracking Suggestion",
			"Track a few channels in your niche to compare upload cadence and engagement with your own.")
	}
	if len(channels) > 3 {
		analyzed := 0
		for _, c := range channels {
			if c.IsAnalyzed {
				analyzed++
			}
		}
		if analyzed == 0 {
			add(models.InsightSuggestion, 5, "Channel Sync Focus",
				"You have several channels connected but none has been re-synced yet. Sync them to refresh their statistics.")
		}
	}

	if len(channels) > 0 && len(competitors) > 0 {
		add(models.InsightTrend, 5, "Balanced Growth Trend",
			"You're tracking both your own channels and your competitors. This combined view often leads to sustainable growth.")
	}
	if len(ideas) > 10 {
		recent := 0
		for _, idea := range ideas {
			if idea.CreatedAt.After(now.Add(-30 * 24 * time.Hour)) {
				recent++
			}
		}
		if recent*10 > len(ideas)*3 {
			add(models.InsightTrend, 6, "Strong Ideation Trend",
				fmt.Sprintf("You've added %d ideas in the last 30 days, %d%% of your idea backlog.", recent, recent*100/len(ideas)))
		}
	}

	if len(channels) == 0 && len(ideas) == 0 && len(competitors) == 0 {
		add(models.InsightSuggestion, 9, "Getting Started",
			"Welcome! Connect your YouTube channel to start generating content ideas and tracking your growth.")
	}
	return out
}

// ListInsights returns the newest insights, highest priority first.
func (s *Service) ListInsights(ctx context.Context, userID string) ([]models.Insight, error) {
	return s.store.GetInsights(ctx, userID, insightsShown)
}

func (s *Service) DashboardOverview(ctx context.Context, user *models.User) (*models.DashboardOverview, error) {
	o, err := s.store.GetOverview(ctx, user.UserID)
	if err != nil {
		return nil, err
	}
	o.IsPremium = user.IsPremium
	return o, nil
}
