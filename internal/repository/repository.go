package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"blogCPT/internal/models"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	VerifyPassword(ctx context.Context, email, password string) (*models.User, error)
	UpdateRefreshToken(ctx context.Context, userID, refreshToken string, expiryTime time.Time) error
	GetUserByRefreshToken(ctx context.Context, refreshToken string) (*models.User, error)
}

type AuthorRepository interface {
	EnsureAuthor(ctx context.Context, userID string) (*models.Author, error)
	GetByUserID(ctx context.Context, userID string) (*models.Author, error)
}

// PostFilter - фильтр выборки постов для лент
type PostFilter struct {
	FeaturedOnly bool
	Category     string
	Tag          string
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, postID int64) (*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, postID int64) error
	List(ctx context.Context, filter PostFilter, limit, offset int) ([]models.Post, error)
	Count(ctx context.Context, filter PostFilter) (int, error)
	MostRecent(ctx context.Context, n int) ([]models.Post, error)
	Search(ctx context.Context, query string) ([]models.Post, error)
}

type TaxonomyRepository interface {
	CountByCategory(ctx context.Context) ([]models.TitleCount, error)
	CountByTag(ctx context.Context) ([]models.TitleCount, error)
	SetPostCategories(ctx context.Context, postID int64, titles []string) error
	SetPostTags(ctx context.Context, postID int64, titles []string) error
	GetPostCategories(ctx context.Context, postID int64) ([]models.Category, error)
	GetPostTags(ctx context.Context, postID int64) ([]models.Tag, error)
}

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByPostID(ctx context.Context, postID int64) ([]models.Comment, error)
}

type PostViewRepository interface {
	RecordView(ctx context.Context, postID int64, userID string) error
	CountByPost(ctx context.Context, postID int64) (int, error)
}

type VoteRepository interface {
	Toggle(ctx context.Context, postID int64, userID string) (bool, error)
	Count(ctx context.Context, postID int64) (int, error)
	Exists(ctx context.Context, postID int64, userID string) (bool, error)
}

type SignupRepository interface {
	Create(ctx context.Context, email string) error
}

type TablesRepository interface {
	CountTablesDB(ctx context.Context) (int, error)
}

type Repository struct {
	User     UserRepository
	Author   AuthorRepository
	Post     PostRepository
	Taxonomy TaxonomyRepository
	Comment  CommentRepository
	PostView PostViewRepository
	Vote     VoteRepository
	Signup   SignupRepository
	Tables   TablesRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:     NewUserRepository(db),
		Author:   NewAuthorRepository(db),
		Post:     NewPostRepository(db),
		Taxonomy: NewTaxonomyRepository(db),
		Comment:  NewCommentRepository(db),
		PostView: NewPostViewRepository(db),
		Vote:     NewVoteRepository(db),
		Signup:   NewSignupRepository(db),
		Tables:   NewTablesRepository(db),
	}
}
