package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"blogCPT/internal/models"
)

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (post_id, user_id, content, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING comment_id
	`

	comment.CreatedAt = time.Now()

	err := r.db.QueryRowxContext(ctx, query,
		comment.PostID,
		comment.UserID,
		comment.Content,
		comment.CreatedAt,
	).Scan(&comment.CommentID)
	if err != nil {
		return fmt.Errorf("ошибка при создании комментария: %w", err)
	}

	return nil
}

func (r *commentRepository) GetByPostID(ctx context.Context, postID int64) ([]models.Comment, error) {
	query := `
		SELECT cm.comment_id, cm.post_id, cm.user_id, u.email AS user_email, cm.content, cm.created_at
		FROM comments cm
		JOIN users u ON u.user_id = cm.user_id
		WHERE cm.post_id = $1
		ORDER BY cm.created_at ASC
	`

	comments := []models.Comment{}
	err := r.db.SelectContext(ctx, &comments, query, postID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении комментариев: %w", err)
	}

	return comments, nil
}
