package doselogs

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"doseup-parent/internal/domain/dosetime"
	"doseup-parent/internal/domain/medicines"
	"doseup-parent/internal/domain/parents"
	"doseup-parent/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, parentsSvc *parents.Service, fallback *time.Location) {
	r.Route("/me/doses", func(dr chi.Router) {
		dr.Post("/", markTakenHandler(svc, parentsSvc, fallback))
		dr.Get("/", listDosesHandler(svc, parentsSvc, fallback))
	})
}

// markTakenRequest marca una toma (medicina + hora) como tomada hoy.
type markTakenRequest struct {
	MedicineID string `json:"medicine_id"`
	DoseTime   string `json:"dose_time"` // "HH:MM", tal cual figura en la medicina
}

type doseLogResponse struct {
	ID         string    `json:"id"`
	MedicineID string    `json:"medicine_id"`
	DoseTime   string    `json:"dose_time"`
	Date       string    `json:"date"`
	TakenAt    time.Time `json:"taken_at"`
}

// markTakenHandler godoc
// @Summary Marcar toma como tomada
// @Description Registra que el familiar tomó la dosis de hoy para (medicina, hora). Solo una vez por día: un segundo intento responde 409. Autenticación: `X-Debug-Parent-ID` + `X-Debug-Admin-ID` (dev) o `Authorization: Bearer <token>`.
// @Tags doses
// @Accept json
// @Produce json
// @Param X-Debug-Parent-ID header string false "Solo en modo dev"
// @Param X-Debug-Admin-ID header string false "Solo en modo dev"
// @Param Authorization header string false "Bearer token"
// @Param payload body markTakenRequest true "Medicina y hora de la toma"
// @Success 201 {object} doseLogResponse
// @Failure 400 {string} string "invalid json / dose_time inválido"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "medicine not found"
// @Failure 409 {string} string "dose already taken for this day"
// @Failure 422 {string} string "dose time is not configured for this medicine"
// @Router /me/doses [post]
func markTakenHandler(svc *Service, parentsSvc *parents.Service, fallback *time.Location) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ref, ok := middleware.ParentRef(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req markTakenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		l, err := svc.MarkTaken(r.Context(), MarkInput{
			Ref:        ref,
			MedicineID: req.MedicineID,
			DoseTime:   req.DoseTime,
			Location:   parentsSvc.LocationOf(r.Context(), ref, fallback),
		})
		switch {
		case err == nil:
		case errors.Is(err, ErrInvalidInput):
			http.Error(w, "medicine_id and dose_time required", http.StatusBadRequest)
			return
		case errors.Is(err, dosetime.ErrInvalidDoseTime):
			http.Error(w, "dose_time must be HH:MM", http.StatusBadRequest)
			return
		case errors.Is(err, medicines.ErrNotFound):
			http.Error(w, "medicine not found", http.StatusNotFound)
			return
		case errors.Is(err, ErrUnknownDose):
			http.Error(w, ErrUnknownDose.Error(), http.StatusUnprocessableEntity)
			return
		case errors.Is(err, ErrAlreadyTaken):
			http.Error(w, ErrAlreadyTaken.Error(), http.StatusConflict)
			return
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, toDoseLogResponse(l))
	}
}

// listDosesHandler godoc
// @Summary Tomas registradas de un día
// @Description Lista los registros de tomas del día indicado (por defecto hoy, en la zona del familiar).
// @Tags doses
// @Produce json
// @Param X-Debug-Parent-ID header string false "Solo en modo dev"
// @Param X-Debug-Admin-ID header string false "Solo en modo dev"
// @Param Authorization header string false "Bearer token"
// @Param date query string false "Día YYYY-MM-DD"
// @Success 200 {array} doseLogResponse
// @Failure 400 {string} string "date must be YYYY-MM-DD"
// @Failure 401 {string} string "unauthorized"
// @Router /me/doses [get]
func listDosesHandler(svc *Service, parentsSvc *parents.Service, fallback *time.Location) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ref, ok := middleware.ParentRef(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		date := strings.TrimSpace(r.URL.Query().Get("date"))
		if date == "" {
			date = dosetime.DateKey(time.Now().In(parentsSvc.LocationOf(r.Context(), ref, fallback)))
		}

		items, err := svc.ListForDay(r.Context(), ref, date)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]doseLogResponse, 0, len(items))
		for _, l := range items {
			out = append(out, toDoseLogResponse(l))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func toDoseLogResponse(l DoseLog) doseLogResponse {
	return doseLogResponse{
		ID:         l.ID,
		MedicineID: l.MedicineID,
		DoseTime:   l.DoseTime,
		Date:       l.Date,
		TakenAt:    l.TakenAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
