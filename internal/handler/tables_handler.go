package handlers

import (
	"encoding/json"
	"net/http"
)

type HealthResponse struct {
	Status      string `json:"status"`
	CountTables int    `json:"countTables"`
}

// Health отвечает ok, если база доступна и миграции накатаны
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	count, err := h.TablesRepo.CountTablesDB(r.Context())
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if count == 0 {
		WriteError(w, "База данных пуста, миграции не применены", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(HealthResponse{Status: "ok", CountTables: count})
}
