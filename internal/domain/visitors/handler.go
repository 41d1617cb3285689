package visitors

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"visitor-desk/internal/middleware"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/visitors", func(vr chi.Router) {
		// Registro público (formulario de visita)
		vr.Post("/", registerVisitorHandler(svc))

		// Cola de revisión del admin
		vr.Get("/", listVisitorsHandler(svc))
		vr.Get("/{visitorID}", getVisitorHandler(svc))

		// Transiciones: admin (approve/reject) y recepción (check-in/out)
		vr.Put("/{visitorID}", updateStatusHandler(svc))
		vr.Put("/{visitorID}/checkout", checkoutHandler(svc))
		vr.Post("/{visitorID}/scan", scanHandler(svc))

		vr.Delete("/{visitorID}", deleteVisitorHandler(svc))
	})
}

type registerRequest struct {
	Name            string `json:"name"`
	Mobile          string `json:"mobile"`
	Company         string `json:"company"`
	Email           string `json:"email"`
	AppointmentWith string `json:"appointment_with"`
	Purpose         string `json:"purpose"`
	MeetingPerson   string `json:"meeting_person"`
	Photo           string `json:"photo"`
	VisitDate       string `json:"visit_date"` // RFC3339 opcional
}

type updateStatusRequest struct {
	Status          string `json:"status"`
	AppointmentTime string `json:"appointment_time"`
}

type visitorResponse struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Mobile          string     `json:"mobile"`
	Company         string     `json:"company,omitempty"`
	Email           string     `json:"email"`
	AppointmentWith string     `json:"appointment_with"`
	Purpose         string     `json:"purpose"`
	MeetingPerson   string     `json:"meeting_person,omitempty"`
	Photo           string     `json:"photo,omitempty"`
	VisitDate       *time.Time `json:"visit_date,omitempty"`
	Status          string     `json:"status"`
	AppointmentTime string     `json:"appointment_time,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	CheckOutTime    *time.Time `json:"checkOutTime,omitempty"`
}

type scanResponse struct {
	Action  string          `json:"action"`
	Visitor visitorResponse `json:"visitor"`
}

func registerVisitorHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var vd *time.Time
		if strings.TrimSpace(req.VisitDate) != "" {
			t, err := time.Parse(time.RFC3339, req.VisitDate)
			if err != nil {
				http.Error(w, "visit_date must be RFC3339", http.StatusBadRequest)
				return
			}
			vd = &t
		}

		created, err := svc.Register(r.Context(), RegisterInput{
			Name:            req.Name,
			Mobile:          req.Mobile,
			Company:         req.Company,
			Email:           req.Email,
			AppointmentWith: req.AppointmentWith,
			Purpose:         req.Purpose,
			MeetingPerson:   req.MeetingPerson,
			Photo:           req.Photo,
			VisitDate:       vd,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, map[string]string{"id": created.ID})
	}
}

func listVisitorsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !middleware.IsAdmin(r.Context()) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]visitorResponse, 0, len(items))
		for _, v := range items {
			out = append(out, toVisitorResponse(v))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getVisitorHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := svc.GetByID(r.Context(), chi.URLParam(r, "visitorID"))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "visitor not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toVisitorResponse(v))
	}
}

func updateStatusHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !middleware.IsAdmin(r.Context()) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req updateStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		updated, err := svc.ApplyTransition(r.Context(), chi.URLParam(r, "visitorID"), Status(req.Status), req.AppointmentTime)
		if err != nil {
			writeTransitionError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toVisitorResponse(updated))
	}
}

func checkoutHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		updated, err := svc.Checkout(r.Context(), chi.URLParam(r, "visitorID"))
		if err != nil {
			writeTransitionError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toVisitorResponse(updated))
	}
}

func scanHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := svc.Scan(r.Context(), chi.URLParam(r, "visitorID"))
		if err != nil {
			writeTransitionError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, scanResponse{
			Action:  string(res.Action),
			Visitor: toVisitorResponse(res.Record),
		})
	}
}

func deleteVisitorHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !middleware.IsAdmin(r.Context()) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := svc.Delete(r.Context(), chi.URLParam(r, "visitorID")); err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "visitor not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
	}
}

func writeTransitionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, "visitor not found", http.StatusNotFound)
	case errors.Is(err, ErrInvalidTransition):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toVisitorResponse(v Record) visitorResponse {
	return visitorResponse{
		ID:              v.ID,
		Name:            v.Name,
		Mobile:          v.Mobile,
		Company:         v.Company,
		Email:           v.Email,
		AppointmentWith: string(v.AppointmentWith),
		Purpose:         v.Purpose,
		MeetingPerson:   v.MeetingPerson,
		Photo:           v.Photo,
		VisitDate:       v.VisitDate,
		Status:          string(v.Status),
		AppointmentTime: v.AppointmentTime,
		CreatedAt:       v.CreatedAt,
		CheckOutTime:    v.CheckOutTime,
	}
}

// writeJSON vive duplicado en los handlers de cada módulo (visitors/visitlog)
// hasta que tenga sentido extraer un helper común.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
