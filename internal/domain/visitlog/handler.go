package visitlog

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"visitor-desk/internal/middleware"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	// Bitácora de transiciones, solo admin (vista de actividad del dashboard)
	r.Get("/visitors/{visitorID}/log", listEntriesHandler(svc))
}

type entryResponse struct {
	ID         string    `json:"id"`
	VisitorID  string    `json:"visitor_id"`
	From       string    `json:"from,omitempty"`
	To         string    `json:"to"`
	Note       string    `json:"note,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}

func listEntriesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !middleware.IsAdmin(r.Context()) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByVisitor(r.Context(), chi.URLParam(r, "visitorID"))
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]entryResponse, 0, len(items))
		for _, e := range items {
			out = append(out, entryResponse{
				ID:         e.ID,
				VisitorID:  e.VisitorID,
				From:       e.From,
				To:         e.To,
				Note:       e.Note,
				RecordedAt: e.RecordedAt,
			})
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// writeJSON duplicado a propósito (ver nota en visitors/handler.go).
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
