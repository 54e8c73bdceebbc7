package handlers

import (
	"net/http"
	"strconv"
	"strings"
)

// VoteResponse - ответ на переключение лайка, уходит в JS на странице поста
type VoteResponse struct {
	Data bool `json:"data"`
}

// ToggleVote ставит либо снимает лайк текущего пользователя.
// Ответ всегда 200 c итоговым состоянием, фронт сам перерисовывает кнопку.
func (h *Handlers) ToggleVote(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, _ := r.Context().Value("userID").(string)
	if userID == "" {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	if err := r.ParseForm(); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	postID, err := strconv.ParseInt(r.FormValue("post_id"), 10, 64)
	if err != nil {
		WriteError(w, "Неверный ID поста", http.StatusBadRequest)
		return
	}

	liked, err := h.VoteService.Toggle(r.Context(), postID, userID)
	if err != nil {
		if strings.Contains(err.Error(), "не найден") {
			WriteError(w, "Пост не найден", http.StatusNotFound)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	WriteSuccess(w, VoteResponse{Data: liked}, http.StatusOK)
}
