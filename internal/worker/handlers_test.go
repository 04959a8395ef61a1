package worker

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yt-planner/internal/planner"
	"yt-planner/internal/test"
	"yt-planner/pkg/tasks"
)

var channelCols = []string{"id", "channel_id", "user_id", "name", "url", "subscriber_count", "video_count", "view_count", "thumbnail_url", "is_analyzed", "last_synced_at"}

func newHandler(t *testing.T) (*TaskHandler, sqlmock.Sqlmock, *test.MockTaskEnqueuer) {
	store, mock := test.NewMockDB(t)
	enqueuer := &test.MockTaskEnqueuer{}
	svc := planner.NewService(store, enqueuer, rand.New(rand.NewSource(1)))
	return NewTaskHandler(store, svc, enqueuer), mock, enqueuer
}

func TestHandleSyncAllChannelsTask(t *testing.T) {
	handler, mock, enqueuer := newHandler(t)

	rows := sqlmock.NewRows(channelCols).
		AddRow("row-1", "chan-1", "u1", "One", "", 1, 1, 1, "", false, time.Now()).
		AddRow("row-2", "chan-2", "u2", "Two", "", 1, 1, 1, "", false, time.Now())
	mock.ExpectQuery(`SELECT .* FROM channels ORDER BY last_synced_at`).WillReturnRows(rows)

	task, err := tasks.NewSyncAllChannelsTask()
	require.NoError(t, err)
	require.NoError(t, handler.HandleSyncAllChannelsTask(context.Background(), task))

	require.Len(t, enqueuer.EnqueuedTasks, 2)
	var p tasks.SyncChannelTaskPayload
	require.NoError(t, json.Unmarshal(enqueuer.EnqueuedTasks[1].Payload(), &p))
	assert.Equal(t, "row-2", p.ChannelRowID)
	assert.Equal(t, tasks.TypeSyncChannel, enqueuer.EnqueuedTasks[0].Type())
}

func TestHandleSyncChannelTaskSkipsDeletedChannel(t *testing.T) {
	handler, mock, _ := newHandler(t)
	mock.ExpectQuery(`FROM channels WHERE id = \$1`).WithArgs("gone").WillReturnError(sql.ErrNoRows)

	task, err := tasks.NewSyncChannelTask("gone")
	require.NoError(t, err)
	assert.NoError(t, handler.HandleSyncChannelTask(context.Background(), task))
}

func TestHandleSyncChannelTaskPropagatesDBError(t *testing.T) {
	handler, mock, _ := newHandler(t)
	mock.ExpectQuery(`FROM channels WHERE id = \$1`).WithArgs("row-1").WillReturnError(errors.New("db down"))

	task, err := tasks.NewSyncChannelTask("row-1")
	require.NoError(t, err)
	assert.Error(t, handler.HandleSyncChannelTask(context.Background(), task))
}

func TestHandleSyncCompetitorTask(t *testing.T) {
	handler, mock, _ := newHandler(t)
	a := sqlmock.AnyArg()
	mock.ExpectExec(`UPDATE competitors SET subscriber_count`).WithArgs(a, a, a, "comp-1").WillReturnResult(sqlmock.NewResult(0, 1))

	task, err := tasks.NewSyncCompetitorTask("comp-1")
	require.NoError(t, err)
	assert.NoError(t, handler.HandleSyncCompetitorTask(context.Background(), task))
}

func TestHandleRefreshInsightsTaskRequiresUser(t *testing.T) {
	handler, _, _ := newHandler(t)
	task := asynq.NewTask(tasks.TypeRefreshInsights, mustMarshal(t, tasks.RefreshInsightsTaskPayload{}))

	err := handler.HandleRefreshInsightsTask(context.Background(), task)
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestHandleBadPayload(t *testing.T) {
	handler, _, _ := newHandler(t)
	task := asynq.NewTask(tasks.TypeSyncChannel, []byte("{not json"))
	assert.Error(t, handler.HandleSyncChannelTask(context.Background(), task))
}

func mustMarshal(t *testing.T, v interface{}) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}
	return b
}
