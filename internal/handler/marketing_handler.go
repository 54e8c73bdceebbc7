package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
)

type SignupForm struct {
	Email string `validate:"required,email"`
}

type ContactForm struct {
	Name    string `validate:"required"`
	Email   string `validate:"required,email"`
	Subject string `validate:"required"`
	Message string `validate:"required"`
}

// SignupEmail сохраняет email подписчика и возвращает на главную.
// Дубли не отсеиваются, каждая отправка формы пишется отдельной строкой.
func (h *Handlers) SignupEmail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseForm(); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	form := SignupForm{Email: strings.TrimSpace(r.FormValue("email"))}

	if err := h.Validate.Struct(form); err != nil {
		WriteError(w, "Укажите корректный email", http.StatusBadRequest)
		return
	}

	if err := h.SignupRepo.Create(r.Context(), form.Email); err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/?subscribed=1", http.StatusSeeOther)
}

// Contact: GET рендерит форму, POST отправляет письмо и
// показывает форму заново с адресом отправителя
func (h *Handlers) Contact(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value("userID").(string)

	if r.Method == http.MethodGet {
		h.Renderer.Render(w, "contacts.page.html", &HTMLData{
			Title:    "Контакты",
			FormData: map[string]string{},
			UserID:   userID,
		})
		return
	}

	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseForm(); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	form := ContactForm{
		Name:    strings.TrimSpace(r.FormValue("name")),
		Email:   strings.TrimSpace(r.FormValue("email")),
		Subject: strings.TrimSpace(r.FormValue("subject")),
		Message: strings.TrimSpace(r.FormValue("message")),
	}

	if err := h.Validate.Struct(form); err != nil {
		h.Renderer.Render(w, "contacts.page.html", &HTMLData{
			Title:     "Контакты",
			FormError: "Заполните все поля формы",
			FormData: map[string]string{
				"name":    form.Name,
				"email":   form.Email,
				"subject": form.Subject,
				"message": form.Message,
			},
			UserID: userID,
		})
		return
	}

	// письмо уходит на адрес, указанный в форме
	body := fmt.Sprintf("От: %s <%s>\n\n%s", form.Name, form.Email, form.Message)
	if err := h.Mailer.Send(form.Email, form.Subject, body); err != nil {
		log.Printf("Ошибка при отправке письма: %v", err)
		WriteError(w, "Не удалось отправить письмо", http.StatusInternalServerError)
		return
	}

	h.Renderer.Render(w, "contacts.page.html", &HTMLData{
		Title:        "Контакты",
		Notice:       "Спасибо, письмо отправлено",
		ContactEmail: form.Email,
		FormData:     map[string]string{},
		UserID:       userID,
	})
}
