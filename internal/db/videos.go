package db

import (
	"context"

	"yt-planner/internal/models"
)

// UpsertVideo inserts a video or refreshes its counters when the channel
// already has it.
func (s *Store) UpsertVideo(ctx context.Context, v models.Video) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO videos (id, video_id, channel_id, channel_row_id, title, description, published_at, view_count, like_count, comment_count, thumbnail_url, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (channel_row_id, video_id) DO UPDATE SET
			view_count = EXCLUDED.view_count,
			like_count = EXCLUDED.like_count,
			comment_count = EXCLUDED.comment_count`,
		v.ID, v.VideoID, v.ChannelID, v.ChannelRowID, v.Title, v.Description, v.PublishedAt,
		v.ViewCount, v.LikeCount, v.CommentCount, v.ThumbnailURL, v.Tags)
	return err
}

// GetVideosByChannel returns the channel's videos, newest first. A channel
// that does not exist or belongs to someone else yields an empty list.
func (s *Store) GetVideosByChannel(ctx context.Context, userID, channelRowID string) ([]models.Video, error) {
	query := `
		SELECT v.id, v.video_id, v.channel_id, v.channel_row_id, v.title, v.description, v.published_at,
			v.view_count, v.like_count, v.comment_count, v.thumbnail_url, v.tags
		FROM videos v
		JOIN channels c ON c.id = v.channel_row_id
		WHERE v.channel_row_id = $1 AND c.user_id = $2
		ORDER BY v.published_at DESC
	`
	videos := []models.Video{}
	err := s.selectRows(ctx, &videos, query, channelRowID, userID)
	return videos, err
}

func (s *Store) DeleteVideosByChannel(ctx context.Context, channelRowID string) (int64, error) {
	res, err := s.q.ExecContext(ctx, `DELETE FROM videos WHERE channel_row_id = $1`, channelRowID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Store) UpdateVideoStats(ctx context.Context, id string, views, likes, comments int64) error {
	_, err := s.q.ExecContext(ctx, `
		UPDATE videos SET view_count = $1, like_count = $2, comment_count = $3 WHERE id = $4`,
		views, likes, comments, id)
	return err
}
