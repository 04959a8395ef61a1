package tasks

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	TypeSyncChannel        = "channel:sync"
	TypeSyncAllChannels    = "channels:sync-all"
	TypeSyncCompetitor     = "competitor:sync"
	TypeSyncAllCompetitors = "competitors:sync-all"
	TypeRefreshInsights    = "insights:refresh"
)

type SyncChannelTaskPayload struct {
	ChannelRowID string
}

func NewSyncChannelTask(channelRowID string) (*asynq.Task, error) {
	payload, err := json.Marshal(SyncChannelTaskPayload{ChannelRowID: channelRowID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeSyncChannel, payload), nil
}

func NewSyncAllChannelsTask() (*asynq.Task, error) {
	return asynq.NewTask(TypeSyncAllChannels, nil), nil
}

type SyncCompetitorTaskPayload struct {
	CompetitorID string
}

func NewSyncCompetitorTask(competitorID string) (*asynq.Task, error) {
	payload, err := json.Marshal(SyncCompetitorTaskPayload{CompetitorID: competitorID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeSyncCompetitor, payload), nil
}

func NewSyncAllCompetitorsTask() (*asynq.Task, error) {
	return asynq.NewTask(TypeSyncAllCompetitors, nil), nil
}

type RefreshInsightsTaskPayload struct {
	UserID string
}

// NewRefreshInsightsTask is unique per user for a minute so a burst of
// channel connects refreshes insights once.
func NewRefreshInsightsTask(userID string) (*asynq.Task, error) {
	payload, err := json.Marshal(RefreshInsightsTaskPayload{UserID: userID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeRefreshInsights, payload, asynq.Unique(time.Minute)), nil
}
