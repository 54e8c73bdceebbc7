package service

import (
	"blogCPT/internal/config"
	"blogCPT/internal/repository"
	"blogCPT/internal/storage"
)

type Service struct {
	Auth    AuthService
	Blog    BlogService
	Post    PostService
	Vote    VoteService
	Comment CommentService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage) *Service {
	return &Service{
		Auth:    NewAuthService(rep.User, rep.Author, cfg),
		Blog:    NewBlogService(rep.Post, rep.Taxonomy),
		Post:    NewPostService(rep, storage),
		Vote:    NewVoteService(rep.Vote, rep.Post),
		Comment: NewCommentService(rep.Comment, rep.Post),
	}
}
