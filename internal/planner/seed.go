package planner

import (
	"context"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"yt-planner/internal/db"
	"yt-planner/internal/models"
)

// SeedResult counts the rows written by SeedDemoData.
type SeedResult struct {
	Ideas  int `json:"ideas"`
	Topics int `json:"topics"`
}

type seedIdea struct {
	title       string
	description string
	category    string
	tags        []string
	premium     bool
	age         time.Duration
}

var seedIdeas = []seedIdea{
	{"Beginner's Guide to Your Niche", "A walkthrough for newcomers that answers the questions your comments ask most.", "Tutorial", []string{"beginner", "guide"}, false, 12 * 24 * time.Hour},
	{"Gear I Actually Use", "An honest review of the equipment behind your videos.", "Review", []string{"gear", "review"}, false, 9 * 24 * time.Hour},
	{"A Week Behind the Scenes", "Show how a video goes from idea to upload.", "Vlog", []string{"behind the scenes"}, false, 6 * 24 * time.Hour},
	{"Reacting to Viewer Submissions", "Feature your audience and build community.", "Reaction", []string{"community", "reaction"}, true, 3 * 24 * time.Hour},
	{"Interview With a Creator in Your Niche", "A collaboration that introduces you to a new audience.", "Interview", []string{"collab", "interview"}, true, 24 * time.Hour},
}

// SeedDemoData replaces the user's ideas and topics with a sample set so a
// fresh account has something to show.
func (s *Service) SeedDemoData(ctx context.Context, user *models.User) (*SeedResult, error) {
	now := s.now()
	result := &SeedResult{}

	err := s.store.WithTx(ctx, func(tx *db.Store) error {
		if err := tx.DeleteContentIdeasByUser(ctx, user.UserID); err != nil {
			return err
		}
		if err := tx.DeleteTrendingTopicsByUser(ctx, user.UserID); err != nil {
			return err
		}

		for _, seed := range seedIdeas {
			category := seed.category
			idea := models.ContentIdea{
				ID:                 uuid.NewString(),
				UserID:             user.UserID,
				Title:              seed.title,
				Description:        seed.description,
				Tags:               seed.tags,
				Category:           &category,
				IsPremium:          seed.premium,
				IsGenerated:        false,
				InspirationSources: []string{},
				PotentialKeywords:  seed.tags,
				CreatedAt:          now.Add(-seed.age),
			}
			if err := tx.InsertContentIdea(ctx, idea); err != nil {
				return err
			}
			result.Ideas++
		}

		for i, tpl := range append(append([]topicTemplate{}, basicTopics...), premiumTopics...) {
			topic := models.TrendingTopic{
				ID:             uuid.NewString(),
				UserID:         user.UserID,
				Topic:          tpl.topic,
				Description:    tpl.description,
				RelevanceScore: tpl.score,
				Sources:        tpl.sources,
				IsPremium:      i >= len(basicTopics),
				CreatedAt:      now,
			}
			if err := tx.InsertTrendingTopic(ctx, topic); err != nil {
				return err
			}
			result.Topics++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"user": user.UserID, "ideas": result.Ideas, "topics": result.Topics}).Info("Seeded demo data")
	return result, nil
}
