package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"blogCPT/internal/models"
)

type taxonomyRepository struct {
	db *sqlx.DB
}

func NewTaxonomyRepository(db *sqlx.DB) TaxonomyRepository {
	return &taxonomyRepository{db: db}
}

// CountByCategory считает посты по каждой рубрике.
// Пост с N рубриками учитывается в N счетчиках.
func (r *taxonomyRepository) CountByCategory(ctx context.Context) ([]models.TitleCount, error) {
	query := `
		SELECT c.title AS title, COUNT(*) AS count
		FROM categories c
		JOIN post_categories pc ON pc.category_id = c.category_id
		GROUP BY c.title
		ORDER BY c.title
	`

	counts := []models.TitleCount{}
	err := r.db.SelectContext(ctx, &counts, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка при подсчёте постов по рубрикам: %w", err)
	}

	return counts, nil
}

func (r *taxonomyRepository) CountByTag(ctx context.Context) ([]models.TitleCount, error) {
	query := `
		SELECT t.title AS title, COUNT(*) AS count
		FROM tags t
		JOIN post_tags pt ON pt.tag_id = t.tag_id
		GROUP BY t.title
		ORDER BY t.title
	`

	counts := []models.TitleCount{}
	err := r.db.SelectContext(ctx, &counts, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка при подсчёте постов по тегам: %w", err)
	}

	return counts, nil
}

// SetPostCategories заменяет набор рубрик поста.
// Недостающие рубрики создаются по названию.
func (r *taxonomyRepository) SetPostCategories(ctx context.Context, postID int64, titles []string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ошибка при открытии транзакции: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `DELETE FROM post_categories WHERE post_id = $1`, postID)
	if err != nil {
		return fmt.Errorf("ошибка при очистке рубрик поста: %w", err)
	}

	for _, title := range titles {
		if title == "" {
			continue
		}

		var categoryID int64
		err = tx.QueryRowxContext(ctx, `
			INSERT INTO categories (title) VALUES ($1)
			ON CONFLICT (title) DO UPDATE SET title = EXCLUDED.title
			RETURNING category_id
		`, title).Scan(&categoryID)
		if err != nil {
			return fmt.Errorf("ошибка при создании рубрики %q: %w", title, err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO post_categories (post_id, category_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, postID, categoryID)
		if err != nil {
			return fmt.Errorf("ошибка при привязке рубрики %q: %w", title, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	return nil
}

func (r *taxonomyRepository) SetPostTags(ctx context.Context, postID int64, titles []string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ошибка при открытии транзакции: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `DELETE FROM post_tags WHERE post_id = $1`, postID)
	if err != nil {
		return fmt.Errorf("ошибка при очистке тегов поста: %w", err)
	}

	for _, title := range titles {
		if title == "" {
			continue
		}

		var tagID int64
		err = tx.QueryRowxContext(ctx, `
			INSERT INTO tags (title) VALUES ($1)
			ON CONFLICT (title) DO UPDATE SET title = EXCLUDED.title
			RETURNING tag_id
		`, title).Scan(&tagID)
		if err != nil {
			return fmt.Errorf("ошибка при создании тега %q: %w", title, err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO post_tags (post_id, tag_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, postID, tagID)
		if err != nil {
			return fmt.Errorf("ошибка при привязке тега %q: %w", title, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	return nil
}

func (r *taxonomyRepository) GetPostCategories(ctx context.Context, postID int64) ([]models.Category, error) {
	query := `
		SELECT c.category_id, c.title
		FROM categories c
		JOIN post_categories pc ON pc.category_id = c.category_id
		WHERE pc.post_id = $1
		ORDER BY c.title
	`

	categories := []models.Category{}
	err := r.db.SelectContext(ctx, &categories, query, postID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении рубрик поста: %w", err)
	}

	return categories, nil
}

func (r *taxonomyRepository) GetPostTags(ctx context.Context, postID int64) ([]models.Tag, error) {
	query := `
		SELECT t.tag_id, t.title
		FROM tags t
		JOIN post_tags pt ON pt.tag_id = t.tag_id
		WHERE pt.post_id = $1
		ORDER BY t.title
	`

	tags := []models.Tag{}
	err := r.db.SelectContext(ctx, &tags, query, postID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении тегов поста: %w", err)
	}

	return tags, nil
}
