package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

type voteRepository struct {
	db *sqlx.DB
}

func NewVoteRepository(db *sqlx.DB) VoteRepository {
	return &voteRepository{db: db}
}

// Toggle атомарно переключает голос пользователя за пост.
// Проверка и изменение идут в одной транзакции, чтобы двойной клик
// одного пользователя не терял обновления.
func (r *voteRepository) Toggle(ctx context.Context, postID int64, userID string) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("ошибка при открытии транзакции: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`DELETE FROM post_votes WHERE post_id = $1 AND user_id = $2`,
		postID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("ошибка при снятии голоса: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	liked := false
	if rowsAffected == 0 {
		// голоса не было - ставим, дубль при гонке отсекает уникальный индекс
		_, err = tx.ExecContext(ctx, `
			INSERT INTO post_votes (post_id, user_id, created_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (post_id, user_id) DO NOTHING
		`, postID, userID, time.Now())
		if err != nil {
			return false, fmt.Errorf("ошибка при добавлении голоса: %w", err)
		}
		liked = true
	}

	if err = tx.Commit(); err != nil {
		return false, fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	return liked, nil
}

func (r *voteRepository) Count(ctx context.Context, postID int64) (int, error) {
	query := `SELECT COUNT(*) FROM post_votes WHERE post_id = $1`

	var count int
	err := r.db.GetContext(ctx, &count, query, postID)
	if err != nil {
		return 0, fmt.Errorf("ошибка при подсчёте голосов: %w", err)
	}

	return count, nil
}

func (r *voteRepository) Exists(ctx context.Context, postID int64, userID string) (bool, error) {
	query := `SELECT COUNT(*) FROM post_votes WHERE post_id = $1 AND user_id = $2`

	var count int
	err := r.db.GetContext(ctx, &count, query, postID, userID)
	if err != nil {
		return false, fmt.Errorf("ошибка при проверке голоса: %w", err)
	}

	return count > 0, nil
}
