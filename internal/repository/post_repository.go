package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"blogCPT/internal/models"
)

// psql - построитель запросов с postgres-плейсхолдерами
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type PostRepositoryImpl struct {
	db *sqlx.DB
}

type CreatePostRequest struct {
	UserID        string
	Title         string
	Overview      string
	Content       string
	Featured      bool
	Categories    []string
	Tags          []string
	Thumbnail     []byte
	ThumbnailName string
}

type UpdatePostRequest struct {
	PostID        int64
	UserID        string
	Title         string
	Overview      string
	Content       string
	Featured      bool
	Categories    []string
	Tags          []string
	Thumbnail     []byte
	ThumbnailName string
}

func NewPostRepository(db *sqlx.DB) *PostRepositoryImpl {
	return &PostRepositoryImpl{db: db}
}

func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post) error {
	query := `
        INSERT INTO posts (title, slug, overview, content, thumbnail_url, featured, author_id, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING post_id
    `

	post.CreatedAt = time.Now()

	err := r.db.QueryRowxContext(ctx, query,
		post.Title,
		post.Slug,
		post.Overview,
		post.Content,
		post.ThumbnailURL,
		post.Featured,
		post.AuthorID,
		post.CreatedAt,
	).Scan(&post.PostID)
	if err != nil {
		return fmt.Errorf("ошибка при создании поста: %w", err)
	}

	return nil
}

func (r *PostRepositoryImpl) GetByID(ctx context.Context, postID int64) (*models.Post, error) {
	query := `SELECT * FROM posts WHERE post_id = $1`

	var post models.Post
	err := r.db.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("пост с ID %d не найден", postID)
		}
		return nil, fmt.Errorf("ошибка при получении поста: %w", err)
	}

	return &post, nil
}

func (r *PostRepositoryImpl) Update(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts SET
			title = :title,
			slug = :slug,
			overview = :overview,
			content = :content,
			thumbnail_url = :thumbnail_url,
			featured = :featured
		WHERE post_id = :post_id
	`

	result, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении поста: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("пост с ID %d не найден", post.PostID)
	}

	return nil
}

func (r *PostRepositoryImpl) Delete(ctx context.Context, postID int64) error {
	// комментарии, просмотры, голоса и связи с рубриками/тегами
	// удаляет каскад внешних ключей
	query := `DELETE FROM posts WHERE post_id = $1`

	result, err := r.db.ExecContext(ctx, query, postID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении поста: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("пост с ID %d не найден", postID)
	}

	return nil
}

// applyFilter навешивает условия ленты на запрос по таблице posts p
func applyFilter(builder sq.SelectBuilder, filter PostFilter) sq.SelectBuilder {
	if filter.FeaturedOnly {
		builder = builder.Where(sq.Eq{"p.featured": true})
	}
	if filter.Category != "" {
		builder = builder.
			Join("post_categories pc ON pc.post_id = p.post_id").
			Join("categories c ON c.category_id = pc.category_id").
			Where(sq.Eq{"c.title": filter.Category})
	}
	if filter.Tag != "" {
		builder = builder.
			Join("post_tags pt ON pt.post_id = p.post_id").
			Join("tags t ON t.tag_id = pt.tag_id").
			Where(sq.Eq{"t.title": filter.Tag})
	}
	return builder
}

// List возвращает страницу постов в порядке добавления
func (r *PostRepositoryImpl) List(ctx context.Context, filter PostFilter, limit, offset int) ([]models.Post, error) {
	builder := applyFilter(psql.Select("p.*").From("posts p"), filter).
		OrderBy("p.post_id ASC").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка при сборке запроса списка постов: %w", err)
	}

	posts := []models.Post{}
	err = r.db.SelectContext(ctx, &posts, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении списка постов: %w", err)
	}

	return posts, nil
}

func (r *PostRepositoryImpl) Count(ctx context.Context, filter PostFilter) (int, error) {
	builder := applyFilter(psql.Select("COUNT(DISTINCT p.post_id)").From("posts p"), filter)

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("ошибка при сборке запроса подсчёта постов: %w", err)
	}

	var count int
	err = r.db.GetContext(ctx, &count, query, args...)
	if err != nil {
		return 0, fmt.Errorf("ошибка при подсчёте постов: %w", err)
	}

	return count, nil
}

func (r *PostRepositoryImpl) MostRecent(ctx context.Context, n int) ([]models.Post, error) {
	query := `SELECT * FROM posts ORDER BY created_at DESC LIMIT $1`

	posts := []models.Post{}
	err := r.db.SelectContext(ctx, &posts, query, n)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении последних постов: %w", err)
	}

	return posts, nil
}

// Search ищет подстроку без учета регистра в заголовке или анонсе.
// Пустой запрос возвращает все посты, пагинация здесь не применяется.
func (r *PostRepositoryImpl) Search(ctx context.Context, query string) ([]models.Post, error) {
	builder := psql.Select("p.*").From("posts p").OrderBy("p.post_id ASC")

	if query != "" {
		pattern := "%" + query + "%"
		builder = builder.
			Distinct().
			Where(sq.Or{
				sq.ILike{"p.title": pattern},
				sq.ILike{"p.overview": pattern},
			})
	}

	sqlQuery, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка при сборке поискового запроса: %w", err)
	}

	posts := []models.Post{}
	err = r.db.SelectContext(ctx, &posts, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка при поиске постов: %w", err)
	}

	return posts, nil
}
