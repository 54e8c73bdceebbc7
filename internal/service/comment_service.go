package service

import (
	"context"

	"blogCPT/internal/models"
	"blogCPT/internal/repository"
)

type CommentService interface {
	AddComment(ctx context.Context, postID int64, userID, content string) (*models.Comment, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

func (s *commentService) AddComment(ctx context.Context, postID int64, userID, content string) (*models.Comment, error) {
	// проверяем, что пост существует, чтобы не плодить комментарии-сироты
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:  post.PostID,
		UserID:  userID,
		Content: content,
	}

	err = s.commentRepo.Create(ctx, comment)
	if err != nil {
		return nil, err
	}

	return comment, nil
}
