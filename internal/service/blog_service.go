package service

import (
	"context"
	"strconv"

	"blogCPT/internal/models"
	"blogCPT/internal/repository"
)

// Размеры страниц лент
const (
	FeaturedPageSize = 5
	BlogPageSize     = 3
	FilteredPageSize = 4

	mostRecentCount = 3
)

// PostPage - страница ленты вместе с данными сайдбара
type PostPage struct {
	Posts         []models.Post
	Page          int
	TotalPages    int
	MostRecent    []models.Post
	CategoryCount []models.TitleCount
	TagCount      []models.TitleCount
}

func (p *PostPage) HasPrev() bool { return p.Page > 1 }
func (p *PostPage) HasNext() bool { return p.Page < p.TotalPages }
func (p *PostPage) PrevPage() int { return p.Page - 1 }
func (p *PostPage) NextPage() int { return p.Page + 1 }

type BlogService interface {
	Featured(ctx context.Context, page string) (*PostPage, error)
	All(ctx context.Context, page string) (*PostPage, error)
	ByCategory(ctx context.Context, category, page string) (*PostPage, error)
	ByTag(ctx context.Context, tag, page string) (*PostPage, error)
	Search(ctx context.Context, query string) ([]models.Post, error)
}

type blogService struct {
	postRepo     repository.PostRepository
	taxonomyRepo repository.TaxonomyRepository
}

func NewBlogService(postRepo repository.PostRepository, taxonomyRepo repository.TaxonomyRepository) BlogService {
	return &blogService{
		postRepo:     postRepo,
		taxonomyRepo: taxonomyRepo,
	}
}

func (s *blogService) Featured(ctx context.Context, page string) (*PostPage, error) {
	return s.listPage(ctx, repository.PostFilter{FeaturedOnly: true}, page, FeaturedPageSize)
}

func (s *blogService) All(ctx context.Context, page string) (*PostPage, error) {
	return s.listPage(ctx, repository.PostFilter{}, page, BlogPageSize)
}

func (s *blogService) ByCategory(ctx context.Context, category, page string) (*PostPage, error) {
	return s.listPage(ctx, repository.PostFilter{Category: category}, page, FilteredPageSize)
}

func (s *blogService) ByTag(ctx context.Context, tag, page string) (*PostPage, error) {
	return s.listPage(ctx, repository.PostFilter{Tag: tag}, page, FilteredPageSize)
}

func (s *blogService) Search(ctx context.Context, query string) ([]models.Post, error) {
	return s.postRepo.Search(ctx, query)
}

// parsePage: всё, что не целое число больше нуля, превращается в первую страницу
func parsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func (s *blogService) listPage(ctx context.Context, filter repository.PostFilter, rawPage string, pageSize int) (*PostPage, error) {
	total, err := s.postRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	// запрос за последней страницей прижимается к последней
	page := parsePage(rawPage)
	if page > totalPages {
		page = totalPages
	}

	posts, err := s.postRepo.List(ctx, filter, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	mostRecent, err := s.postRepo.MostRecent(ctx, mostRecentCount)
	if err != nil {
		return nil, err
	}

	categoryCount, err := s.taxonomyRepo.CountByCategory(ctx)
	if err != nil {
		return nil, err
	}

	tagCount, err := s.taxonomyRepo.CountByTag(ctx)
	if err != nil {
		return nil, err
	}

	return &PostPage{
		Posts:         posts,
		Page:          page,
		TotalPages:    totalPages,
		MostRecent:    mostRecent,
		CategoryCount: categoryCount,
		TagCount:      tagCount,
	}, nil
}
