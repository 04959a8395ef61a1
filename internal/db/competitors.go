package db

import (
	"context"

	log "github.com/sirupsen/logrus"

	"yt-planner/internal/models"
	apperrors "yt-planner/pkg/errors"
)

const competitorColumns = `id, user_id, competitor_channel_id, name, url, subscriber_count, video_count, view_count, notes, is_premium, last_synced_at`

// UpsertCompetitor stores a tracked competitor. Adding the same competitor
// channel again refreshes its statistics and keeps the notes.
func (s *Store) UpsertCompetitor(ctx context.Context, c *models.Competitor) (*models.Competitor, error) {
	query := `
		INSERT INTO competitors (id, user_id, competitor_channel_id, name, url, subscriber_count, video_count, view_count, notes, is_premium, last_synced_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, '', TRUE, NOW())
		ON CONFLICT (user_id, competitor_channel_id) DO UPDATE SET
			subscriber_count = EXCLUDED.subscriber_count,
			video_count = EXCLUDED.video_count,
			view_count = EXCLUDED.view_count,
			last_synced_at = NOW()
		RETURNING ` + competitorColumns
	stored := &models.Competitor{}
	err := s.get(ctx, stored, query, c.ID, c.UserID, c.CompetitorChannelID, c.Name, c.URL, c.SubscriberCount, c.VideoCount, c.ViewCount)
	if err != nil {
		log.Printf("Error storing competitor %s for user %s: %v", c.CompetitorChannelID, c.UserID, err)
		return nil, err
	}
	return stored, nil
}

func (s *Store) GetCompetitorsByUserID(ctx context.Context, userID string) ([]models.Competitor, error) {
	competitors := []models.Competitor{}
	err := s.selectRows(ctx, &competitors,
		`SELECT `+competitorColumns+` FROM competitors WHERE user_id = $1 ORDER BY subscriber_count DESC`, userID)
	return competitors, err
}

func (s *Store) GetCompetitorByID(ctx context.Context, userID, id string) (*models.Competitor, error) {
	c := &models.Competitor{}
	err := s.get(ctx, c, `SELECT `+competitorColumns+` FROM competitors WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return nil, mapNoRows(err, apperrors.ErrCompetitorNotFound)
	}
	return c, nil
}

func (s *Store) GetAllCompetitors(ctx context.Context) ([]models.Competitor, error) {
	competitors := []models.Competitor{}
	err := s.selectRows(ctx, &competitors, `SELECT `+competitorColumns+` FROM competitors ORDER BY last_synced_at`)
	return competitors, err
}

// UpdateCompetitorNotes overwrites the notes; concurrent edits are last
// write wins.
func (s *Store) UpdateCompetitorNotes(ctx context.Context, userID, id, notes string) error {
	return s.execOne(ctx, apperrors.ErrCompetitorNotFound,
		`UPDATE competitors SET notes = $1 WHERE id = $2 AND user_id = $3`, notes, id, userID)
}

func (s *Store) UpdateCompetitorStats(ctx context.Context, id string, subscribers, videos, views int64) error {
	return s.execOne(ctx, apperrors.ErrCompetitorNotFound, `
		UPDATE competitors
		SET subscriber_count = $1, video_count = $2, view_count = $3, last_synced_at = NOW()
		WHERE id = $4`,
		subscribers, videos, views, id)
}

func (s *Store) DeleteCompetitor(ctx context.Context, userID, id string) error {
	return s.execOne(ctx, apperrors.ErrCompetitorNotFound,
		`DELETE FROM competitors WHERE id = $1 AND user_id = $2`, id, userID)
}
