package db

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "yt-planner/pkg/errors"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mockDb.Close()
	})
	return New(sqlx.NewDb(mockDb, "sqlmock")), mock
}

func TestWithTxRollsBack(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM content_ideas WHERE user_id`).WithArgs("u1").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := store.WithTx(context.Background(), func(tx *Store) error {
		if err := tx.DeleteContentIdeasByUser(context.Background(), "u1"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestWithTxCommits(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM trending_topics WHERE user_id`).WithArgs("u1").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := store.WithTx(context.Background(), func(tx *Store) error {
		return tx.DeleteTrendingTopicsByUser(context.Background(), "u1")
	})
	assert.NoError(t, err)
}

func TestExecOneNotFound(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec(`UPDATE users SET is_premium`).WithArgs(true, "ghost").WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.UpdatePremiumStatus(context.Background(), "ghost", true)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}

func TestMigrateRunsEverySchemaStatement(t *testing.T) {
	store, mock := newMockStore(t)
	mock.MatchExpectationsInOrder(true)
	for range schema {
		mock.ExpectExec(`CREATE`).WillReturnResult(sqlmock.NewResult(0, 0))
	}
	assert.NoError(t, store.Migrate(context.Background()))
}

func TestOpenRequiresURL(t *testing.T) {
	_, err := Open("")
	assert.Error(t, err)
}
