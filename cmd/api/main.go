package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"blogCPT/cmd/app"
	"blogCPT/internal/config"
	"blogCPT/internal/database"
	handlers "blogCPT/internal/handler"
	"blogCPT/internal/middleware"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY не установлен в .env файле")
	}

	db, repo, services, mailer := app.App(cfg)
	defer database.MethodsDB.CloseDB(db)

	handler := handlers.NewHandlers(repo, services, mailer, cfg)

	router := mux.NewRouter()

	// setting up routes
	router.HandleFunc("/", handler.Index)
	router.HandleFunc("/blog/", handler.PostList)
	router.HandleFunc("/create/", handler.CreatePost)
	router.HandleFunc("/post/{id:[0-9]+}/update/", handler.UpdatePost)
	router.HandleFunc("/post/{id:[0-9]+}/delete/", handler.DeletePost)
	router.HandleFunc("/post/{slug}-{id:[0-9]+}/", handler.PostDetail)
	router.HandleFunc("/searchbycat/{category}/", handler.ByCategory)
	router.HandleFunc("/searchbytag/{tags}/", handler.ByTag)
	router.HandleFunc("/search/", handler.Search)
	router.HandleFunc("/vote/", handler.ToggleVote)
	router.HandleFunc("/email-signup/", handler.SignupEmail)
	router.HandleFunc("/contact/", handler.Contact)

	router.HandleFunc("/health", handler.Health)

	router.HandleFunc("/api/auth/register", handler.Register)
	router.HandleFunc("/api/auth/login", handler.Login)
	router.HandleFunc("/api/auth/refresh-token", handler.RefreshToken)
	router.HandleFunc("/api/auth/logout", handler.Logout)

	router.HandleFunc("/api/me", handler.GetCurrentUser)

	// static files
	router.PathPrefix("/static/").Handler(
		http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir))),
	)

	handlerChain := middleware.Chain(
		router,
		middleware.LoggingMiddleware,
		middleware.CORSMiddleware,
		middleware.MetricsMiddleware,
		middleware.AuthMiddleware(cfg),
	)

	// Starting the server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	fmt.Printf("Сервер запущен на %s\n", addr)
	fmt.Printf("База данных: %s\n", cfg.DB.DbNAME)
	fmt.Printf("Адресс: http://localhost:%d/\n", cfg.ServerPort)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
