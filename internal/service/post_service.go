package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gosimple/slug"

	"blogCPT/internal/models"
	"blogCPT/internal/repository"
	"blogCPT/internal/storage"
)

// PostDetail - пост со всем, что нужно странице детали
type PostDetail struct {
	Post          *models.Post
	Comments      []models.Comment
	Liked         bool
	VoteCount     int
	ViewCount     int
	FirstTag      string
	MostRecent    []models.Post
	CategoryCount []models.TitleCount
	TagCount      []models.TitleCount
}

type PostService interface {
	CreatePost(ctx context.Context, req repository.CreatePostRequest) (*models.Post, error)
	UpdatePost(ctx context.Context, req repository.UpdatePostRequest) (*models.Post, error)
	DeletePost(ctx context.Context, postID int64, userID string) error
	GetDetail(ctx context.Context, postID int64, viewerUserID string) (*PostDetail, error)
}

type postService struct {
	postRepo     repository.PostRepository
	authorRepo   repository.AuthorRepository
	taxonomyRepo repository.TaxonomyRepository
	commentRepo  repository.CommentRepository
	viewRepo     repository.PostViewRepository
	voteRepo     repository.VoteRepository
	storage      storage.Storage
}

func NewPostService(rep *repository.Repository, storage storage.Storage) PostService {
	return &postService{
		postRepo:     rep.Post,
		authorRepo:   rep.Author,
		taxonomyRepo: rep.Taxonomy,
		commentRepo:  rep.Comment,
		viewRepo:     rep.PostView,
		voteRepo:     rep.Vote,
		storage:      storage,
	}
}

func (p *postService) CreatePost(ctx context.Context, req repository.CreatePostRequest) (*models.Post, error) {
	author, err := p.authorRepo.GetByUserID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:    req.Title,
		Slug:     slug.Make(req.Title),
		Overview: req.Overview,
		Content:  req.Content,
		Featured: req.Featured,
		AuthorID: author.AuthorID,
	}

	if len(req.Thumbnail) > 0 {
		thumbnailURL, err := p.uploadThumbnail(ctx, post.Slug, req.ThumbnailName, req.Thumbnail)
		if err != nil {
			return nil, err
		}
		post.ThumbnailURL = thumbnailURL
	}

	err = p.postRepo.Create(ctx, post)
	if err != nil {
		return nil, err
	}

	if err = p.taxonomyRepo.SetPostCategories(ctx, post.PostID, req.Categories); err != nil {
		return nil, err
	}
	if err = p.taxonomyRepo.SetPostTags(ctx, post.PostID, req.Tags); err != nil {
		return nil, err
	}

	return post, nil
}

func (p *postService) UpdatePost(ctx context.Context, req repository.UpdatePostRequest) (*models.Post, error) {
	author, err := p.authorRepo.GetByUserID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	post, err := p.postRepo.GetByID(ctx, req.PostID)
	if err != nil {
		return nil, err
	}

	// менять пост может только его автор
	if post.AuthorID != author.AuthorID {
		return nil, fmt.Errorf("доступ запрещен: пост принадлежит другому автору")
	}

	post.Title = req.Title
	post.Slug = slug.Make(req.Title)
	post.Overview = req.Overview
	post.Content = req.Content
	post.Featured = req.Featured

	if len(req.Thumbnail) > 0 {
		oldThumbnail := post.ThumbnailURL

		thumbnailURL, err := p.uploadThumbnail(ctx, post.Slug, req.ThumbnailName, req.Thumbnail)
		if err != nil {
			return nil, err
		}
		post.ThumbnailURL = thumbnailURL

		if oldThumbnail != "" {
			if err := p.storage.DeleteThumbnail(ctx, oldThumbnail); err != nil {
				log.Printf("Предупреждение: не удалось удалить старую обложку: %v", err)
			}
		}
	}

	err = p.postRepo.Update(ctx, post)
	if err != nil {
		return nil, err
	}

	if err = p.taxonomyRepo.SetPostCategories(ctx, post.PostID, req.Categories); err != nil {
		return nil, err
	}
	if err = p.taxonomyRepo.SetPostTags(ctx, post.PostID, req.Tags); err != nil {
		return nil, err
	}

	return post, nil
}

func (p *postService) DeletePost(ctx context.Context, postID int64, userID string) error {
	author, err := p.authorRepo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}

	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if post.AuthorID != author.AuthorID {
		return fmt.Errorf("доступ запрещен: пост принадлежит другому автору")
	}

	err = p.postRepo.Delete(ctx, postID)
	if err != nil {
		return err
	}

	if post.ThumbnailURL != "" {
		if err := p.storage.DeleteThumbnail(ctx, post.ThumbnailURL); err != nil {
			log.Printf("Предупреждение: не удалось удалить обложку поста %d: %v", postID, err)
		}
	}

	return nil
}

// GetDetail отдает пост по числовому ID. Slug в URL декоративен и не проверяется.
// Авторизованному посетителю идемпотентно записывается просмотр.
func (p *postService) GetDetail(ctx context.Context, postID int64, viewerUserID string) (*PostDetail, error) {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	post.Categories, err = p.taxonomyRepo.GetPostCategories(ctx, postID)
	if err != nil {
		return nil, err
	}

	post.Tags, err = p.taxonomyRepo.GetPostTags(ctx, postID)
	if err != nil {
		return nil, err
	}

	comments, err := p.commentRepo.GetByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}

	liked := false
	if viewerUserID != "" {
		if err = p.viewRepo.RecordView(ctx, postID, viewerUserID); err != nil {
			return nil, err
		}

		liked, err = p.voteRepo.Exists(ctx, postID, viewerUserID)
		if err != nil {
			return nil, err
		}
	}

	voteCount, err := p.voteRepo.Count(ctx, postID)
	if err != nil {
		return nil, err
	}

	viewCount, err := p.viewRepo.CountByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	firstTag := ""
	if len(post.Tags) > 0 {
		firstTag = post.Tags[0].Title
	}

	mostRecent, err := p.postRepo.MostRecent(ctx, mostRecentCount)
	if err != nil {
		return nil, err
	}

	categoryCount, err := p.taxonomyRepo.CountByCategory(ctx)
	if err != nil {
		return nil, err
	}

	tagCount, err := p.taxonomyRepo.CountByTag(ctx)
	if err != nil {
		return nil, err
	}

	return &PostDetail{
		Post:          post,
		Comments:      comments,
		Liked:         liked,
		VoteCount:     voteCount,
		ViewCount:     viewCount,
		FirstTag:      firstTag,
		MostRecent:    mostRecent,
		CategoryCount: categoryCount,
		TagCount:      tagCount,
	}, nil
}

// uploadThumbnail проверяет, что файл действительно картинка, и кладет его в хранилище
func (p *postService) uploadThumbnail(ctx context.Context, postSlug, fileName string, data []byte) (string, error) {
	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", fmt.Errorf("неподдерживаемый тип файла %s, ожидается изображение", mtype.String())
	}

	thumbnailURL, err := p.storage.UploadThumbnail(ctx, postSlug, fileName, mtype.String(), bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("ошибка загрузки обложки: %w", err)
	}

	return thumbnailURL, nil
}
