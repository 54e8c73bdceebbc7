package handlers

import (
	"github.com/go-playground/validator/v10"

	"blogCPT/internal/config"
	"blogCPT/internal/mail"
	"blogCPT/internal/repository"
	"blogCPT/internal/service"
)

type Handlers struct {
	AuthService    service.AuthService
	BlogService    service.BlogService
	PostService    service.PostService
	VoteService    service.VoteService
	CommentService service.CommentService
	UserRepo       repository.UserRepository
	SignupRepo     repository.SignupRepository
	TablesRepo     repository.TablesRepository
	Mailer         mail.Mailer
	Cfg            *config.Config
	Validate       *validator.Validate
	Renderer       *Renderer
}

func NewHandlers(repo *repository.Repository, service *service.Service, mailer mail.Mailer, config *config.Config) *Handlers {
	return &Handlers{
		AuthService:    service.Auth,
		BlogService:    service.Blog,
		PostService:    service.Post,
		VoteService:    service.Vote,
		CommentService: service.Comment,
		UserRepo:       repo.User,
		SignupRepo:     repo.Signup,
		TablesRepo:     repo.Tables,
		Mailer:         mailer,
		Cfg:            config,
		Validate:       validator.New(),
		Renderer:       NewRenderer(config.TemplatesDir),
	}
}
