package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	log "github.com/sirupsen/logrus"

	"yt-planner/internal/db"
	"yt-planner/internal/planner"
	apperrors "yt-planner/pkg/errors"
	"yt-planner/pkg/tasks"
)

type TaskHandler struct {
	store       *db.Store
	planner     *planner.Service
	asynqClient tasks.TaskEnqueuer
}

func NewTaskHandler(store *db.Store, svc *planner.Service, client tasks.TaskEnqueuer) *TaskHandler {
	return &TaskHandler{store: store, planner: svc, asynqClient: client}
}

// Register wires every task type to its handler.
func (h *TaskHandler) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(tasks.TypeSyncChannel, h.HandleSyncChannelTask)
	mux.HandleFunc(tasks.TypeSyncAllChannels, h.HandleSyncAllChannelsTask)
	mux.HandleFunc(tasks.TypeSyncCompetitor, h.HandleSyncCompetitorTask)
	mux.HandleFunc(tasks.TypeSyncAllCompetitors, h.HandleSyncAllCompetitorsTask)
	mux.HandleFunc(tasks.TypeRefreshInsights, h.HandleRefreshInsightsTask)
}

func (h *TaskHandler) HandleSyncAllChannelsTask(ctx context.Context, t *asynq.Task) error {
	log.Println("Syncing all channels...")

	channels, err := h.store.GetAllChannels(ctx)
	if err != nil {
		return fmt.Errorf("failed to get all channels: %w", err)
	}

	for _, c := range channels {
		task, err := tasks.NewSyncChannelTask(c.ID)
		if err != nil {
			log.Printf("failed to create sync task for channel %s: %v", c.ID, err)
			continue
		}
		if _, err := h.asynqClient.Enqueue(task); err != nil {
			log.Printf("failed to enqueue sync task for channel %s: %v", c.ID, err)
			continue
		}
	}

	log.Printf("Queued sync for %d channels.", len(channels))
	return nil
}

func (h *TaskHandler) HandleSyncChannelTask(ctx context.Context, t *asynq.Task) error {
	var p tasks.SyncChannelTaskPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal task payload: %w", err)
	}
	log.Printf("Syncing channel: %s", p.ChannelRowID)

	err := h.planner.ResyncChannel(ctx, p.ChannelRowID)
	if apperrors.HasCode(err, apperrors.CodeNotFound) {
		// Deleted after the task was queued.
		log.Printf("Channel %s no longer exists, skipping", p.ChannelRowID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to sync channel %s: %w", p.ChannelRowID, err)
	}
	return nil
}

func (h *TaskHandler) HandleSyncAllCompetitorsTask(ctx context.Context, t *asynq.Task) error {
	log.Println("Syncing all competitors...")

	competitors, err := h.store.GetAllCompetitors(ctx)
	if err != nil {
		return fmt.Errorf("failed to get all competitors: %w", err)
	}

	for _, c := range competitors {
		task, err := tasks.NewSyncCompetitorTask(c.ID)
		if err != nil {
			log.Printf("failed to create sync task for competitor %s: %v", c.ID, err)
			continue
		}
		if _, err := h.asynqClient.Enqueue(task); err != nil {
			log.Printf("failed to enqueue sync task for competitor %s: %v", c.ID, err)
		}
	}
	return nil
}

func (h *TaskHandler) HandleSyncCompetitorTask(ctx context.Context, t *asynq.Task) error {
	var p tasks.SyncCompetitorTaskPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal task payload: %w", err)
	}

	err := h.planner.ResyncCompetitor(ctx, p.CompetitorID)
	if apperrors.HasCode(err, apperrors.CodeNotFound) {
		log.Printf("Competitor %s no longer exists, skipping", p.CompetitorID)
		return nil
	}
	return err
}

func (h *TaskHandler) HandleRefreshInsightsTask(ctx context.Context, t *asynq.Task) error {
	var p tasks.RefreshInsightsTaskPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal task payload: %w", err)
	}
	if p.UserID == "" {
		return fmt.Errorf("refresh insights task without user: %w", asynq.SkipRetry)
	}

	n, err := h.planner.RefreshInsights(ctx, p.UserID)
	if err != nil {
		return fmt.Errorf("failed to refresh insights for user %s: %w", p.UserID, err)
	}
	log.WithFields(log.Fields{"user": p.UserID, "insights": n}).Info("Insights refreshed")
	return nil
}
