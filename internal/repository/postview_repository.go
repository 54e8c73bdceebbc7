package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

type postViewRepository struct {
	db *sqlx.DB
}

func NewPostViewRepository(db *sqlx.DB) PostViewRepository {
	return &postViewRepository{db: db}
}

// RecordView идемпотентно фиксирует просмотр поста пользователем.
// Уникальность пары (post_id, user_id) держит ограничение в БД,
// поэтому одновременные первые просмотры не создают дублей.
func (r *postViewRepository) RecordView(ctx context.Context, postID int64, userID string) error {
	query := `
		INSERT INTO post_views (post_id, user_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (post_id, user_id) DO NOTHING
	`

	_, err := r.db.ExecContext(ctx, query, postID, userID, time.Now())
	if err != nil {
		return fmt.Errorf("ошибка при записи просмотра: %w", err)
	}

	return nil
}

func (r *postViewRepository) CountByPost(ctx context.Context, postID int64) (int, error) {
	query := `SELECT COUNT(*) FROM post_views WHERE post_id = $1`

	var count int
	err := r.db.GetContext(ctx, &count, query, postID)
	if err != nil {
		return 0, fmt.Errorf("ошибка при подсчёте просмотров: %w", err)
	}

	return count, nil
}
