package db

import (
	"context"

	"yt-planner/internal/models"
)

const insightColumns = `id, user_id, title, description, category, priority, created_at`

func (s *Store) DeleteInsightsByUser(ctx context.Context, userID string) (int64, error) {
	res, err := s.q.ExecContext(ctx, `DELETE FROM insights WHERE user_id = $1`, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Store) InsertInsight(ctx context.Context, in models.Insight) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO insights (`+insightColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		in.ID, in.UserID, in.Title, in.Description, in.Category, in.Priority, in.CreatedAt)
	return err
}

func (s *Store) GetInsights(ctx context.Context, userID string, limit int) ([]models.Insight, error) {
	insights := []models.Insight{}
	err := s.selectRows(ctx, &insights, `
		SELECT `+insightColumns+`
		FROM insights
		WHERE user_id = $1
		ORDER BY priority DESC, created_at DESC
		LIMIT $2`, userID, limit)
	return insights, err
}

// GetOverview counts the user's rows in one round trip.
func (s *Store) GetOverview(ctx context.Context, userID string) (*models.DashboardOverview, error) {
	o := &models.DashboardOverview{}
	err := s.get(ctx, o, `
		SELECT
			(SELECT COUNT(*) FROM channels WHERE user_id = $1) AS channels,
			(SELECT COUNT(*) FROM videos v JOIN channels c ON c.id = v.channel_row_id WHERE c.user_id = $1) AS videos,
			(SELECT COUNT(*) FROM content_ideas WHERE user_id = $1) AS ideas,
			(SELECT COUNT(*) FROM trending_topics WHERE user_id = $1) AS topics,
			(SELECT COUNT(*) FROM competitors WHERE user_id = $1) AS competitors,
			(SELECT COUNT(*) FROM insights WHERE user_id = $1) AS insights`, userID)
	if err != nil {
		return nil, err
	}
	return o, nil
}
