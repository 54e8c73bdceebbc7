package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func formRequest(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestHandlers_SignupEmail(t *testing.T) {
	t.Run("Подписка сохраняется и возвращает на главную", func(t *testing.T) {
		signupRepo := new(MockSignupRepository)
		signupRepo.On("Create", mock.Anything, "reader@example.com").Return(nil)

		h := &Handlers{SignupRepo: signupRepo, Validate: validator.New()}

		form := url.Values{}
		form.Set("email", "reader@example.com")

		rec := httptest.NewRecorder()
		h.SignupEmail(rec, formRequest("/email-signup/", form))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/?subscribed=1", rec.Header().Get("Location"))

		signupRepo.AssertExpectations(t)
	})

	t.Run("Кривой email отклоняется", func(t *testing.T) {
		signupRepo := new(MockSignupRepository)

		h := &Handlers{SignupRepo: signupRepo, Validate: validator.New()}

		form := url.Values{}
		form.Set("email", "не-почта")

		rec := httptest.NewRecorder()
		h.SignupEmail(rec, formRequest("/email-signup/", form))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		signupRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Повторная подписка тем же адресом тоже проходит", func(t *testing.T) {
		signupRepo := new(MockSignupRepository)
		signupRepo.On("Create", mock.Anything, "reader@example.com").Return(nil).Twice()

		h := &Handlers{SignupRepo: signupRepo, Validate: validator.New()}

		form := url.Values{}
		form.Set("email", "reader@example.com")

		for i := 0; i < 2; i++ {
			rec := httptest.NewRecorder()
			h.SignupEmail(rec, formRequest("/email-signup/", form))
			assert.Equal(t, http.StatusSeeOther, rec.Code)
		}

		signupRepo.AssertExpectations(t)
	})
}

func TestHandlers_Contact_MailFailure(t *testing.T) {
	t.Run("Ошибка почты дает 500", func(t *testing.T) {
		mailer := new(MockMailer)
		mailer.On("Send", "sender@example.com", "Вопрос", mock.Anything).
			Return(assert.AnError)

		h := &Handlers{Mailer: mailer, Validate: validator.New()}

		form := url.Values{}
		form.Set("name", "Иван")
		form.Set("email", "sender@example.com")
		form.Set("subject", "Вопрос")
		form.Set("message", "Текст письма")

		rec := httptest.NewRecorder()
		h.Contact(rec, formRequest("/contact/", form))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
