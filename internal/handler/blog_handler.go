package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
)

// Index - главная страница: лента избранных постов плюс форма подписки.
// POST с главной - это отправка формы подписки.
func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		h.SignupEmail(w, r)
		return
	}

	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, _ := r.Context().Value("userID").(string)

	page, err := h.BlogService.Featured(r.Context(), r.URL.Query().Get("page"))
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	notice := ""
	if r.URL.Query().Get("subscribed") != "" {
		notice = "Вы успешно подписаны"
	}

	h.Renderer.Render(w, "index.page.html", &HTMLData{
		Title:  "Главная",
		Page:   page,
		Notice: notice,
		UserID: userID,
	})
}

// PostList - полная лента постов с пагинацией
func (h *Handlers) PostList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, _ := r.Context().Value("userID").(string)

	page, err := h.BlogService.All(r.Context(), r.URL.Query().Get("page"))
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.Renderer.Render(w, "blog.page.html", &HTMLData{
		Title:  "Блог",
		Page:   page,
		UserID: userID,
	})
}

// ByCategory - лента постов одной рубрики
func (h *Handlers) ByCategory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, _ := r.Context().Value("userID").(string)
	category := mux.Vars(r)["category"]

	page, err := h.BlogService.ByCategory(r.Context(), category, r.URL.Query().Get("page"))
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.Renderer.Render(w, "blog.page.html", &HTMLData{
		Title:  category,
		Page:   page,
		UserID: userID,
	})
}

// ByTag - лента постов одного тега
func (h *Handlers) ByTag(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, _ := r.Context().Value("userID").(string)
	tag := mux.Vars(r)["tags"]

	page, err := h.BlogService.ByTag(r.Context(), tag, r.URL.Query().Get("page"))
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.Renderer.Render(w, "blog.page.html", &HTMLData{
		Title:  tag,
		Page:   page,
		UserID: userID,
	})
}

// Search - поиск подстроки в заголовке или анонсе, без пагинации
func (h *Handlers) Search(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, _ := r.Context().Value("userID").(string)
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	posts, err := h.BlogService.Search(r.Context(), query)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.Renderer.Render(w, "search.page.html", &HTMLData{
		Title:  "Поиск",
		Posts:  posts,
		Query:  query,
		UserID: userID,
	})
}
