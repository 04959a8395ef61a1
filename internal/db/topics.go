package db

import (
	"context"

	"yt-planner/internal/models"
	apperrors "yt-planner/pkg/errors"
)

const topicColumns = `id, user_id, topic, description, relevance_score, sources, is_premium, created_at`

func (s *Store) InsertTrendingTopic(ctx context.Context, t models.TrendingTopic) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO trending_topics (`+topicColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		t.ID, t.UserID, t.Topic, t.Description, t.RelevanceScore, t.Sources, t.IsPremium, t.CreatedAt)
	return err
}

func (s *Store) GetTrendingTopics(ctx context.Context, userID string, withPremium bool) ([]models.TrendingTopic, error) {
	query := `
		SELECT ` + topicColumns + `
		FROM trending_topics
		WHERE user_id = $1 AND (is_premium = FALSE OR $2)
		ORDER BY created_at DESC, relevance_score DESC
	`
	topics := []models.TrendingTopic{}
	err := s.selectRows(ctx, &topics, query, userID, withPremium)
	return topics, err
}

func (s *Store) DeleteTrendingTopic(ctx context.Context, userID, id string) error {
	return s.execOne(ctx, apperrors.ErrTopicNotFound,
		`DELETE FROM trending_topics WHERE id = $1 AND user_id = $2`, id, userID)
}

func (s *Store) DeleteTrendingTopicsByUser(ctx context.Context, userID string) error {
	_, err := s.q.ExecContext(ctx, `DELETE FROM trending_topics WHERE user_id = $1`, userID)
	return err
}
