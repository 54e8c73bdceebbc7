package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

type signupRepository struct {
	db *sqlx.DB
}

func NewSignupRepository(db *sqlx.DB) SignupRepository {
	return &signupRepository{db: db}
}

// Create сохраняет адрес из формы подписки. Дубли не отсеиваются.
func (r *signupRepository) Create(ctx context.Context, email string) error {
	query := `INSERT INTO signups (email, created_at) VALUES ($1, $2)`

	_, err := r.db.ExecContext(ctx, query, email, time.Now())
	if err != nil {
		return fmt.Errorf("ошибка при сохранении подписки: %w", err)
	}

	return nil
}
