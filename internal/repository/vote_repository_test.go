package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVoteRepository_Toggle(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewVoteRepository(sqlxDB)

	ctx := context.Background()
	postID := int64(7)
	userID := uuid.New().String()

	t.Run("Голоса не было - голос ставится", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM post_votes WHERE post_id = $1 AND user_id = $2`).
			WithArgs(postID, userID).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`
				INSERT INTO post_votes (post_id, user_id, created_at)
				VALUES ($1, $2, $3)
				ON CONFLICT (post_id, user_id) DO NOTHING
			`).
			WithArgs(postID, userID, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		liked, err := repo.Toggle(ctx, postID, userID)

		require.NoError(t, err)
		assert.True(t, liked)

		err = mock.ExpectationsWereMet()
		assert.NoError(t, err)
	})

	t.Run("Голос был - голос снимается", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM post_votes WHERE post_id = $1 AND user_id = $2`).
			WithArgs(postID, userID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		liked, err := repo.Toggle(ctx, postID, userID)

		require.NoError(t, err)
		assert.False(t, liked)

		err = mock.ExpectationsWereMet()
		assert.NoError(t, err)
	})

	t.Run("Ошибка при удалении откатывает транзакцию", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM post_votes WHERE post_id = $1 AND user_id = $2`).
			WithArgs(postID, userID).
			WillReturnError(errors.New("connection failed"))
		mock.ExpectRollback()

		liked, err := repo.Toggle(ctx, postID, userID)

		assert.Error(t, err)
		assert.False(t, liked)
		assert.Contains(t, err.Error(), "ошибка при снятии голоса")
	})
}

func TestVoteRepository_Count(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewVoteRepository(sqlxDB)

	ctx := context.Background()
	postID := int64(7)

	t.Run("Успешный подсчёт голосов", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"count"}).AddRow(3)

		mock.ExpectQuery(`SELECT COUNT(*) FROM post_votes WHERE post_id = $1`).
			WithArgs(postID).
			WillReturnRows(rows)

		count, err := repo.Count(ctx, postID)

		require.NoError(t, err)
		assert.Equal(t, 3, count)
	})
}

func TestVoteRepository_Exists(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewVoteRepository(sqlxDB)

	ctx := context.Background()
	postID := int64(7)
	userID := uuid.New().String()

	t.Run("Голос есть", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"count"}).AddRow(1)

		mock.ExpectQuery(`SELECT COUNT(*) FROM post_votes WHERE post_id = $1 AND user_id = $2`).
			WithArgs(postID, userID).
			WillReturnRows(rows)

		exists, err := repo.Exists(ctx, postID, userID)

		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("Голоса нет", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"count"}).AddRow(0)

		mock.ExpectQuery(`SELECT COUNT(*) FROM post_votes WHERE post_id = $1 AND user_id = $2`).
			WithArgs(postID, userID).
			WillReturnRows(rows)

		exists, err := repo.Exists(ctx, postID, userID)

		require.NoError(t, err)
		assert.False(t, exists)
	})
}
