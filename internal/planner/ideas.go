package planner

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"yt-planner/internal/db"
	"yt-planner/internal/gate"
	"yt-planner/internal/models"
	apperrors "yt-planner/pkg/errors"
)

const (
	// FreeIdeaLimit is both the cap on a free user's batch and the number of
	// free ideas at the head of a premium batch.
	FreeIdeaLimit = 3
	MaxIdeaBatch  = 20
)

var (
	ideaCategories = []string{"Tutorial", "Review", "Vlog", "Commentary", "Interview", "Reaction"}
	viewership     = []string{"high", "medium", "low"}
)

// GenerateContentIdeas synthesises up to count ideas for one of the user's
// channels and returns their ids. Free users get at most FreeIdeaLimit; in a
// premium batch every idea past the first FreeIdeaLimit is premium.
func (s *Service) GenerateContentIdeas(ctx context.Context, user *models.User, channelID string, count int) ([]string, error) {
	if count <= 0 || count > MaxIdeaBatch {
		return nil, apperrors.InvalidArg(fmt.Sprintf("count must be between 1 and %d", MaxIdeaBatch))
	}

	channel, err := s.store.GetChannelByExternalID(ctx, user.UserID, channelID)
	if err != nil {
		return nil, err
	}
	videos, err := s.store.GetVideosByChannel(ctx, user.UserID, channel.ID)
	if err != nil {
		return nil, err
	}

	sources := make([]string, 0, 2)
	for i := 0; i < len(videos) && i < 2; i++ {
		sources = append(sources, videos[i].VideoID)
	}

	n := count
	if !gate.IsPremium(user) && n > FreeIdeaLimit {
		n = FreeIdeaLimit
	}

	ideas := make([]models.ContentIdea, 0, n)
	now := s.now()
	for i := 0; i < n; i++ {
		premium := i >= FreeIdeaLimit
		tier := "free"
		if premium {
			tier = "premium"
		}
		category := s.pick(ideaCategories)
		estimate := s.pick(viewership)
		ideas = append(ideas, models.ContentIdea{
			ID:                  uuid.NewString(),
			UserID:              user.UserID,
			Title:               fmt.Sprintf("Content Idea %d: %s", i+1, s.pick(ideaCategories)),
			Description:         fmt.Sprintf("This is a %s content idea generated based on your channel analytics. It's designed to engage your audience and grow your channel.", tier),
			Tags:                []string{"youtube", "content", strings.ToLower(s.pick(ideaCategories))},
			Category:            &category,
			IsPremium:           premium,
			IsGenerated:         true,
			InspirationSources:  sources,
			PotentialKeywords:   []string{"youtube", "creator", "content", strings.ToLower(s.pick(ideaCategories))},
			EstimatedViewership: &estimate,
			CreatedAt:           now,
		})
	}

	if err := s.insertIdeas(ctx, ideas); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(ideas))
	for _, idea := range ideas {
		ids = append(ids, idea.ID)
	}
	return ids, nil
}

func (s *Service) insertIdeas(ctx context.Context, ideas []models.ContentIdea) error {
	return s.store.WithTx(ctx, func(tx *db.Store) error {
		for _, idea := range ideas {
			if err := tx.InsertContentIdea(ctx, idea); err != nil {
				return err
			}
		}
		return nil
	})
}

// ListContentIdeas returns premium ideas only when the user is premium and
// asked for them.
func (s *Service) ListContentIdeas(ctx context.Context, user *models.User, includePremium bool) ([]models.ContentIdea, error) {
	return s.store.GetContentIdeas(ctx, user.UserID, gate.IncludePremium(user, includePremium))
}

type ManualIdea struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Category    string   `json:"category"`
}

// CreateManualIdea stores an idea typed in by the user. Manual ideas are
// never premium.
func (s *Service) CreateManualIdea(ctx context.Context, userID string, in ManualIdea) (*models.ContentIdea, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, apperrors.InvalidArg("title is required")
	}

	idea := models.ContentIdea{
		ID:                 uuid.NewString(),
		UserID:             userID,
		Title:              title,
		Description:        strings.TrimSpace(in.Description),
		Tags:               in.Tags,
		InspirationSources: []string{},
		PotentialKeywords:  []string{},
		CreatedAt:          s.now(),
	}
	if idea.Tags == nil {
		idea.Tags = []string{}
	}
	if in.Category != "" {
		idea.Category = &in.Category
	}
	if err := s.store.InsertContentIdea(ctx, idea); err != nil {
		return nil, err
	}
	return &idea, nil
}

func (s *Service) DeleteContentIdea(ctx context.Context, userID, id string) error {
	return s.store.DeleteContentIdea(ctx, userID, id)
}

// FeedIdeas resolves a feed token to its user and returns the ideas that user
// may see. Premium ideas are included only for premium users.
func (s *Service) FeedIdeas(ctx context.Context, token string) (*models.User, []models.ContentIdea, error) {
	user, err := s.store.GetUserByFeedToken(ctx, token)
	if err != nil {
		return nil, nil, err
	}
	ideas, err := s.ListContentIdeas(ctx, user, true)
	if err != nil {
		return nil, nil, err
	}
	return user, ideas, nil
}
