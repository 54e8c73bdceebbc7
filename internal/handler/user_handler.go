package handlers

import (
	"encoding/json"
	"net/http"
)

type UserResponse struct {
	UserId string `json:"userId"`
	Email  string `json:"email"`
}

func (h *Handlers) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := r.Context().Value("userID").(string)
	if !ok || userID == "" {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	// get user by id
	user, err := h.UserRepo.GetUserByID(r.Context(), userID)
	if err != nil {
		WriteError(w, err.Error(), http.StatusUnauthorized)
		return
	}

	// forming the response
	response := UserResponse{
		UserId: user.UserID,
		Email:  user.Email,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}
