package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"blogCPT/internal/models"
	"blogCPT/internal/repository"
)

type PostForm struct {
	Title    string `validate:"required,max=255"`
	Overview string `validate:"required"`
	Content  string `validate:"required"`
}

type CommentForm struct {
	Content string `validate:"required,min=2"`
}

// PostDetail - страница поста: GET рендерит деталь, POST добавляет комментарий.
// Slug в URL декоративен, пост ищется только по числовому ID.
func (h *Handlers) PostDetail(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	postID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		WriteError(w, "Неверный URL", http.StatusBadRequest)
		return
	}

	userID, _ := r.Context().Value("userID").(string)

	if r.Method == http.MethodPost {
		h.submitComment(w, r, postID, vars["slug"], userID)
		return
	}

	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	detail, err := h.PostService.GetDetail(r.Context(), postID, userID)
	if err != nil {
		if strings.Contains(err.Error(), "не найден") {
			WriteError(w, "Пост не найден", http.StatusNotFound)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	h.Renderer.Render(w, "post.page.html", &HTMLData{
		Title:  detail.Post.Title,
		Detail: detail,
		UserID: userID,
	})
}

func (h *Handlers) submitComment(w http.ResponseWriter, r *http.Request, postID int64, slug, userID string) {
	// комментировать могут только авторизованные
	if userID == "" {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	if err := r.ParseForm(); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	form := CommentForm{Content: strings.TrimSpace(r.FormValue("content"))}

	if err := h.Validate.Struct(form); err != nil {
		// при ошибке валидации ничего не сохраняем,
		// деталь перерисовывается с текстом ошибки
		detail, derr := h.PostService.GetDetail(r.Context(), postID, userID)
		if derr != nil {
			WriteError(w, derr.Error(), http.StatusInternalServerError)
			return
		}
		h.Renderer.Render(w, "post.page.html", &HTMLData{
			Title:     detail.Post.Title,
			Detail:    detail,
			FormError: "Комментарий не может быть пустым",
			FormData:  map[string]string{"content": form.Content},
			UserID:    userID,
		})
		return
	}

	_, err := h.CommentService.AddComment(r.Context(), postID, userID, form.Content)
	if err != nil {
		if strings.Contains(err.Error(), "не найден") {
			WriteError(w, "Пост не найден", http.StatusNotFound)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/post/%s-%d/", slug, postID), http.StatusSeeOther)
}

// CreatePost: GET рендерит форму, POST создает пост и
// редиректит на деталь по паре (slug, id)
func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value("userID").(string)
	if userID == "" {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	if r.Method == http.MethodGet {
		h.Renderer.Render(w, "post_form.page.html", &HTMLData{
			Title:    "Создать",
			FormData: map[string]string{},
			UserID:   userID,
		})
		return
	}

	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	form, thumbnail, thumbnailName, ok := h.parsePostForm(w, r, "Создать", userID)
	if !ok {
		return
	}

	serviceReq := repository.CreatePostRequest{
		UserID:        userID,
		Title:         form.Title,
		Overview:      form.Overview,
		Content:       form.Content,
		Featured:      r.FormValue("featured") != "",
		Categories:    splitTitles(r.FormValue("categories")),
		Tags:          splitTitles(r.FormValue("tags")),
		Thumbnail:     thumbnail,
		ThumbnailName: thumbnailName,
	}

	post, err := h.PostService.CreatePost(r.Context(), serviceReq)
	if err != nil {
		h.writePostError(w, err)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/post/%s-%d/", post.Slug, post.PostID), http.StatusSeeOther)
}

// UpdatePost: GET рендерит форму с текущими значениями, POST сохраняет
func (h *Handlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value("userID").(string)
	if userID == "" {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	postID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		WriteError(w, "Неверный URL", http.StatusBadRequest)
		return
	}

	if r.Method == http.MethodGet {
		// пустой viewer: открытие формы редактирования не считается просмотром
		detail, err := h.PostService.GetDetail(r.Context(), postID, "")
		if err != nil {
			if strings.Contains(err.Error(), "не найден") {
				WriteError(w, "Пост не найден", http.StatusNotFound)
			} else {
				WriteError(w, err.Error(), http.StatusInternalServerError)
			}
			return
		}

		h.Renderer.Render(w, "post_form.page.html", &HTMLData{
			Title:  "Обновить",
			Detail: detail,
			FormData: map[string]string{
				"title":      detail.Post.Title,
				"overview":   detail.Post.Overview,
				"content":    detail.Post.Content,
				"categories": joinCategoryTitles(detail.Post.Categories),
				"tags":       joinTagTitles(detail.Post.Tags),
			},
			UserID: userID,
		})
		return
	}

	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	form, thumbnail, thumbnailName, ok := h.parsePostForm(w, r, "Обновить", userID)
	if !ok {
		return
	}

	serviceReq := repository.UpdatePostRequest{
		PostID:        postID,
		UserID:        userID,
		Title:         form.Title,
		Overview:      form.Overview,
		Content:       form.Content,
		Featured:      r.FormValue("featured") != "",
		Categories:    splitTitles(r.FormValue("categories")),
		Tags:          splitTitles(r.FormValue("tags")),
		Thumbnail:     thumbnail,
		ThumbnailName: thumbnailName,
	}

	post, err := h.PostService.UpdatePost(r.Context(), serviceReq)
	if err != nil {
		h.writePostError(w, err)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/post/%s-%d/", post.Slug, post.PostID), http.StatusSeeOther)
}

// DeletePost удаляет пост вместе с комментариями и просмотрами
func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, _ := r.Context().Value("userID").(string)
	if userID == "" {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	postID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		WriteError(w, "Неверный URL", http.StatusBadRequest)
		return
	}

	if err := h.PostService.DeletePost(r.Context(), postID, userID); err != nil {
		h.writePostError(w, err)
		return
	}

	http.Redirect(w, r, "/blog/", http.StatusSeeOther)
}

// parsePostForm разбирает multipart-форму поста и читает обложку в память.
// При ошибке валидации сам перерисовывает форму и возвращает ok=false.
func (h *Handlers) parsePostForm(w http.ResponseWriter, r *http.Request, title, userID string) (PostForm, []byte, string, bool) {
	var form PostForm

	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		WriteError(w, "Ошибка при обработке формы", http.StatusBadRequest)
		return form, nil, "", false
	}

	form = PostForm{
		Title:    strings.TrimSpace(r.FormValue("title")),
		Overview: strings.TrimSpace(r.FormValue("overview")),
		Content:  r.FormValue("content"),
	}

	if err := h.Validate.Struct(form); err != nil {
		h.Renderer.Render(w, "post_form.page.html", &HTMLData{
			Title:     title,
			FormError: "Заполните заголовок, анонс и текст поста",
			FormData: map[string]string{
				"title":      form.Title,
				"overview":   form.Overview,
				"content":    form.Content,
				"categories": r.FormValue("categories"),
				"tags":       r.FormValue("tags"),
			},
			UserID: userID,
		})
		return form, nil, "", false
	}

	var thumbnail []byte
	thumbnailName := ""

	file, header, err := r.FormFile("thumbnail")
	if err == nil {
		defer file.Close()

		thumbnail, err = io.ReadAll(io.LimitReader(file, h.Cfg.MaxUploadSize))
		if err != nil {
			WriteError(w, "Не удалось прочитать файл обложки", http.StatusBadRequest)
			return form, nil, "", false
		}
		thumbnailName = header.Filename
	}

	return form, thumbnail, thumbnailName, true
}

func (h *Handlers) writePostError(w http.ResponseWriter, err error) {
	switch {
	case strings.Contains(err.Error(), "доступ запрещен"):
		WriteError(w, "Доступ запрещен", http.StatusForbidden)
	case strings.Contains(err.Error(), "не найден"):
		WriteError(w, "Пост не найден", http.StatusNotFound)
	case strings.Contains(err.Error(), "неподдерживаемый тип"):
		WriteError(w, err.Error(), http.StatusBadRequest)
	default:
		WriteError(w, err.Error(), http.StatusInternalServerError)
	}
}

// splitTitles режет строку "go, базы данных" на отдельные названия
func splitTitles(raw string) []string {
	parts := strings.Split(raw, ",")
	titles := make([]string, 0, len(parts))
	for _, part := range parts {
		if title := strings.TrimSpace(part); title != "" {
			titles = append(titles, title)
		}
	}
	return titles
}

func joinCategoryTitles(categories []models.Category) string {
	titles := make([]string, 0, len(categories))
	for _, c := range categories {
		titles = append(titles, c.Title)
	}
	return strings.Join(titles, ", ")
}

func joinTagTitles(tags []models.Tag) string {
	titles := make([]string, 0, len(tags))
	for _, t := range tags {
		titles = append(titles, t.Title)
	}
	return strings.Join(titles, ", ")
}
