package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"blogCPT/internal/models"
	"blogCPT/internal/service"
)

func TestHandlers_PostDetail_CommentUnauthorized(t *testing.T) {
	t.Run("Аноним не может комментировать", func(t *testing.T) {
		commentService := new(MockCommentService)

		h := &Handlers{CommentService: commentService, Validate: validator.New()}

		form := url.Values{}
		form.Set("content", "анонимный комментарий")

		req := formRequest("/post/privet-12/", form)
		req = mux.SetURLVars(req, map[string]string{"slug": "privet", "id": "12"})

		rec := httptest.NewRecorder()
		h.PostDetail(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		commentService.AssertNotCalled(t, "AddComment")
	})
}

func TestHandlers_PostDetail_BadID(t *testing.T) {
	t.Run("Нечисловой ID дает 400", func(t *testing.T) {
		h := &Handlers{Validate: validator.New()}

		req := httptest.NewRequest(http.MethodGet, "/post/privet-abc/", nil)
		req = mux.SetURLVars(req, map[string]string{"slug": "privet", "id": "abc"})

		rec := httptest.NewRecorder()
		h.PostDetail(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandlers_UpdatePost_Form(t *testing.T) {
	t.Run("Открытие формы редактирования не считается просмотром", func(t *testing.T) {
		postService := new(MockPostService)
		// просмотр пишется только при непустом viewer, форма открывается с пустым
		postService.On("GetDetail", mock.Anything, int64(12), "").
			Return(&service.PostDetail{
				Post: &models.Post{PostID: 12, Title: "Привет, мир", Slug: "privet-mir"},
			}, nil)

		h := &Handlers{
			PostService: postService,
			Validate:    validator.New(),
			Renderer:    NewRenderer(filepath.Join("..", "..", "web", "templates")),
		}

		req := httptest.NewRequest(http.MethodGet, "/post/12/update/", nil)
		req = req.WithContext(context.WithValue(req.Context(), "userID", "user-1"))
		req = mux.SetURLVars(req, map[string]string{"id": "12"})

		rec := httptest.NewRecorder()
		h.UpdatePost(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Привет, мир")

		postService.AssertExpectations(t)
	})
}

func TestHandlers_DeletePost_Unauthorized(t *testing.T) {
	t.Run("Аноним не может удалять посты", func(t *testing.T) {
		h := &Handlers{Validate: validator.New()}

		req := httptest.NewRequest(http.MethodPost, "/post/12/delete/", nil)
		req = mux.SetURLVars(req, map[string]string{"id": "12"})

		rec := httptest.NewRecorder()
		h.DeletePost(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestHandlers_Health(t *testing.T) {
	t.Run("Живая база с таблицами дает ok", func(t *testing.T) {
		tablesRepo := new(MockTablesRepository)
		tablesRepo.On("CountTablesDB", mock.Anything).Return(11, nil)

		h := &Handlers{TablesRepo: tablesRepo}

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()
		h.Health(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	})

	t.Run("Пустая база дает 500", func(t *testing.T) {
		tablesRepo := new(MockTablesRepository)
		tablesRepo.On("CountTablesDB", mock.Anything).Return(0, nil)

		h := &Handlers{TablesRepo: tablesRepo}

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()
		h.Health(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
