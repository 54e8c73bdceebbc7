package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"blogCPT/internal/models"
)

type authorRepository struct {
	db *sqlx.DB
}

func NewAuthorRepository(db *sqlx.DB) AuthorRepository {
	return &authorRepository{db: db}
}

// EnsureAuthor - явный хук, вызывается при регистрации пользователя.
// Повторный вызов для того же пользователя возвращает уже существующую запись.
func (r *authorRepository) EnsureAuthor(ctx context.Context, userID string) (*models.Author, error) {
	existing, err := r.GetByUserID(ctx, userID)
	if err == nil {
		return existing, nil
	}

	author := &models.Author{
		AuthorID:  uuid.New().String(),
		UserID:    userID,
		CreatedAt: time.Now(),
	}

	query := `
		INSERT INTO authors (author_id, user_id, created_at)
		VALUES (:author_id, :user_id, :created_at)
		ON CONFLICT (user_id) DO NOTHING
	`

	_, err = r.db.NamedExecContext(ctx, query, author)
	if err != nil {
		return nil, fmt.Errorf("ошибка при создании автора: %w", err)
	}

	// при гонке двух регистраций вставилась ровно одна строка, перечитываем её
	return r.GetByUserID(ctx, userID)
}

func (r *authorRepository) GetByUserID(ctx context.Context, userID string) (*models.Author, error) {
	var author models.Author

	query := `SELECT * FROM authors WHERE user_id = $1`

	err := r.db.GetContext(ctx, &author, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("автор для пользователя %s не найден", userID)
		}
		return nil, fmt.Errorf("ошибка при получении автора: %w", err)
	}

	return &author, nil
}
