package db

import (
	"context"

	log "github.com/sirupsen/logrus"

	"yt-planner/internal/models"
	apperrors "yt-planner/pkg/errors"
)

const ideaColumns = `id, user_id, title, description, tags, category, is_premium, is_generated, inspiration_sources, potential_keywords, estimated_viewership, created_at`

func (s *Store) InsertContentIdea(ctx context.Context, idea models.ContentIdea) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO content_ideas (`+ideaColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		idea.ID, idea.UserID, idea.Title, idea.Description, idea.Tags, idea.Category, idea.IsPremium,
		idea.IsGenerated, idea.InspirationSources, idea.PotentialKeywords, idea.EstimatedViewership, idea.CreatedAt)
	if err != nil {
		log.Printf("Error storing content idea for user %s: %v", idea.UserID, err)
	}
	return err
}

// GetContentIdeas returns the user's ideas, newest first. Premium ideas are
// only included when withPremium is true.
func (s *Store) GetContentIdeas(ctx context.Context, userID string, withPremium bool) ([]models.ContentIdea, error) {
	query := `
		SELECT ` + ideaColumns + `
		FROM content_ideas
		WHERE user_id = $1 AND (is_premium = FALSE OR $2)
		ORDER BY created_at DESC
	`
	ideas := []models.ContentIdea{}
	err := s.selectRows(ctx, &ideas, query, userID, withPremium)
	return ideas, err
}

func (s *Store) DeleteContentIdea(ctx context.Context, userID, id string) error {
	return s.execOne(ctx, apperrors.ErrIdeaNotFound,
		`DELETE FROM content_ideas WHERE id = $1 AND user_id = $2`, id, userID)
}

func (s *Store) DeleteContentIdeasByUser(ctx context.Context, userID string) error {
	_, err := s.q.ExecContext(ctx, `DELETE FROM content_ideas WHERE user_id = $1`, userID)
	return err
}
