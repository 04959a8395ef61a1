package db

import (
	"context"

	log "github.com/sirupsen/logrus"

	"yt-planner/internal/models"
	apperrors "yt-planner/pkg/errors"
)

const channelColumns = `id, channel_id, user_id, name, url, subscriber_count, video_count, view_count, thumbnail_url, is_analyzed, last_synced_at`

// UpsertChannel stores a connected channel. Reconnecting the same external
// channel refreshes its statistics and keeps the existing row id.
func (s *Store) UpsertChannel(ctx context.Context, c *models.Channel) (*models.Channel, error) {
	query := `
		INSERT INTO channels (id, channel_id, user_id, name, url, subscriber_count, video_count, view_count, thumbnail_url, last_synced_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		ON CONFLICT (user_id, channel_id) DO UPDATE SET
			subscriber_count = EXCLUDED.subscriber_count,
			video_count = EXCLUDED.video_count,
			view_count = EXCLUDED.view_count,
			last_synced_at = NOW()
		RETURNING ` + channelColumns
	stored := &models.Channel{}
	err := s.get(ctx, stored, query, c.ID, c.ChannelID, c.UserID, c.Name, c.URL, c.SubscriberCount, c.VideoCount, c.ViewCount, c.ThumbnailURL)
	if err != nil {
		log.Printf("Error storing channel %s for user %s: %v", c.ChannelID, c.UserID, err)
		return nil, err
	}
	return stored, nil
}

func (s *Store) GetChannelsByUserID(ctx context.Context, userID string) ([]models.Channel, error) {
	query := `
		SELECT ` + channelColumns + `
		FROM channels
		WHERE user_id = $1
		ORDER BY last_synced_at DESC
	`
	channels := []models.Channel{}
	if err := s.selectRows(ctx, &channels, query, userID); err != nil {
		log.Printf("Error getting channels for user %s: %v", userID, err)
		return nil, err
	}
	return channels, nil
}

// GetChannelByID looks a channel up by row id, scoped to its owner.
func (s *Store) GetChannelByID(ctx context.Context, userID, id string) (*models.Channel, error) {
	c := &models.Channel{}
	err := s.get(ctx, c, `SELECT `+channelColumns+` FROM channels WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return nil, mapNoRows(err, apperrors.ErrChannelNotFound)
	}
	return c, nil
}

// GetChannelByExternalID looks a channel up by its YouTube channel id.
func (s *Store) GetChannelByExternalID(ctx context.Context, userID, channelID string) (*models.Channel, error) {
	c := &models.Channel{}
	err := s.get(ctx, c, `SELECT `+channelColumns+` FROM channels WHERE channel_id = $1 AND user_id = $2`, channelID, userID)
	if err != nil {
		return nil, mapNoRows(err, apperrors.ErrChannelNotFound)
	}
	return c, nil
}

// GetChannelByRowID is used by background jobs that carry no user context.
func (s *Store) GetChannelByRowID(ctx context.Context, id string) (*models.Channel, error) {
	c := &models.Channel{}
	err := s.get(ctx, c, `SELECT `+channelColumns+` FROM channels WHERE id = $1`, id)
	if err != nil {
		return nil, mapNoRows(err, apperrors.ErrChannelNotFound)
	}
	return c, nil
}

func (s *Store) GetAllChannels(ctx context.Context) ([]models.Channel, error) {
	channels := []models.Channel{}
	err := s.selectRows(ctx, &channels, `SELECT `+channelColumns+` FROM channels ORDER BY last_synced_at`)
	return channels, err
}

func (s *Store) UpdateChannelStats(ctx context.Context, id string, subscribers, videos, views int64) error {
	return s.execOne(ctx, apperrors.ErrChannelNotFound, `
		UPDATE channels
		SET subscriber_count = $1, video_count = $2, view_count = $3, last_synced_at = NOW()
		WHERE id = $4`,
		subscribers, videos, views, id)
}

func (s *Store) MarkChannelAnalyzed(ctx context.Context, id string) error {
	return s.execOne(ctx, apperrors.ErrChannelNotFound, `UPDATE channels SET is_analyzed = TRUE WHERE id = $1`, id)
}

func (s *Store) DeleteChannel(ctx context.Context, userID, id string) error {
	err := s.execOne(ctx, apperrors.ErrChannelNotFound, `DELETE FROM channels WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil && !apperrors.HasCode(err, apperrors.CodeNotFound) {
		log.Printf("Error deleting channel %s for user %s: %v", id, userID, err)
	}
	return err
}
