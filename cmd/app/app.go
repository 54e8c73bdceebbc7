package app

import (
	"log"

	"blogCPT/internal/config"
	"blogCPT/internal/database"
	"blogCPT/internal/mail"
	"blogCPT/internal/repository"
	"blogCPT/internal/service"
	"blogCPT/internal/storage"
)

func App(cfg *config.Config) (*database.DB, *repository.Repository, *service.Service, mail.Mailer) {
	// connection DB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}

	// connection MinIO
	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		log.Fatalf("Не удалось инициализировать MinIO: %v", err)
	}

	// SMTP for the contacts form
	mailer := mail.NewSMTPMailer(cfg)

	// enabling dependencies
	repo := repository.NewRepository(db.DB)

	services := service.NewService(repo, cfg, minioClient)

	return db, repo, services, mailer
}
