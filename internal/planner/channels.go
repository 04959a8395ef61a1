package planner

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"yt-planner/internal/db"
	"yt-planner/internal/models"
	apperrors "yt-planner/pkg/errors"
	"yt-planner/pkg/tasks"
)

const (
	defaultChannelID = "demo-channel-id"
	sampleVideoCount = 5
)

// ConnectChannel registers the channel behind channelURL for the user along
// with a first batch of its videos. Statistics are simulated.
func (s *Service) ConnectChannel(ctx context.Context, userID, channelURL string) (*models.Channel, error) {
	if channelURL == "" {
		return nil, apperrors.ErrInvalidChannelURL
	}
	channelID := lastSegment(channelURL, defaultChannelID)

	channel := &models.Channel{
		ID:              uuid.NewString(),
		ChannelID:       channelID,
		UserID:          userID,
		Name:            "Channel " + channelID,
		URL:             channelURL,
		SubscriberCount: s.intn(100000),
		VideoCount:      s.intn(500),
		ViewCount:       s.intn(10000000),
		ThumbnailURL:    fmt.Sprintf("https://picsum.photos/seed/%s/200/200", channelID),
	}

	var stored *models.Channel
	err := s.store.WithTx(ctx, func(tx *db.Store) error {
		var err error
		stored, err = tx.UpsertChannel(ctx, channel)
		if err != nil {
			return err
		}
		for _, v := range s.sampleVideos(stored) {
			if err := tx.UpsertVideo(ctx, v); err != nil {
				return fmt.Errorf("storing video %s: %w", v.VideoID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Connected channel %s for user %s", stored.ChannelID, userID)
	s.enqueue(tasks.NewRefreshInsightsTask(userID))
	return stored, nil
}

func (s *Service) sampleVideos(c *models.Channel) []models.Video {
	now := s.now()
	videos := make([]models.Video, 0, sampleVideoCount)
	for i := 0; i < sampleVideoCount; i++ {
		videoID := fmt.Sprintf("video-%d-%s", i, c.ChannelID)
		videos = append(videos, models.Video{
			ID:           uuid.NewString(),
			VideoID:      videoID,
			ChannelID:    c.ChannelID,
			ChannelRowID: c.ID,
			Title:        fmt.Sprintf("Sample Video %d", i),
			Description:  fmt.Sprintf("This is a sample video description for video %d", i),
			PublishedAt:  now.Add(-time.Duration(i) * 24 * time.Hour),
			ViewCount:    s.intn(50000),
			LikeCount:    s.intn(5000),
			CommentCount: s.intn(500),
			ThumbnailURL: fmt.Sprintf("https://picsum.photos/seed/%s/320/180", videoID),
			Tags:         []string{"sample", "video", fmt.Sprintf("tag-%d", i)},
		})
	}
	return videos
}

func (s *Service) ListChannels(ctx context.Context, userID string) ([]models.Channel, error) {
	return s.store.GetChannelsByUserID(ctx, userID)
}

// ListVideos returns the videos of one of the user's channels, newest first.
func (s *Service) ListVideos(ctx context.Context, userID, channelRowID string) ([]models.Video, error) {
	return s.store.GetVideosByChannel(ctx, userID, channelRowID)
}

// RequestChannelSync queues a background re-sync of one of the user's
// channels.
func (s *Service) RequestChannelSync(ctx context.Context, userID, channelRowID string) error {
	if _, err := s.store.GetChannelByID(ctx, userID, channelRowID); err != nil {
		return err
	}
	if s.enqueuer == nil {
		return s.ResyncChannel(ctx, channelRowID)
	}
	task, err := tasks.NewSyncChannelTask(channelRowID)
	if err != nil {
		return err
	}
	_, err = s.enqueuer.Enqueue(task)
	return err
}

// ResyncChannel refreshes a channel's statistics and the counters of its
// videos. It runs without a user context from the background worker.
func (s *Service) ResyncChannel(ctx context.Context, channelRowID string) error {
	channel, err := s.store.GetChannelByRowID(ctx, channelRowID)
	if err != nil {
		return err
	}

	return s.store.WithTx(ctx, func(tx *db.Store) error {
		if err := tx.UpdateChannelStats(ctx, channel.ID, s.intn(100000), s.intn(500), s.intn(10000000)); err != nil {
			return err
		}
		videos, err := tx.GetVideosByChannel(ctx, channel.UserID, channel.ID)
		if err != nil {
			return err
		}
		for _, v := range videos {
			if err := tx.UpdateVideoStats(ctx, v.ID, s.intn(50000), s.intn(5000), s.intn(500)); err != nil {
				return err
			}
		}
		return tx.MarkChannelAnalyzed(ctx, channel.ID)
	})
}

// DeleteChannel removes the channel and every video that belongs to it.
func (s *Service) DeleteChannel(ctx context.Context, userID, channelRowID string) error {
	return s.store.WithTx(ctx, func(tx *db.Store) error {
		channel, err := tx.GetChannelByID(ctx, userID, channelRowID)
		if err != nil {
			return err
		}
		removed, err := tx.DeleteVideosByChannel(ctx, channel.ID)
		if err != nil {
			return err
		}
		if err := tx.DeleteChannel(ctx, userID, channel.ID); err != nil {
			return err
		}
		log.Printf("Deleted channel %s and %d videos for user %s", channel.ChannelID, removed, userID)
		return nil
	})
}
