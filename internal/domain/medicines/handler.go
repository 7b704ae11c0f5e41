package medicines

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"doseup-parent/internal/domain/dosetime"
	"doseup-parent/internal/domain/parents"
	"doseup-parent/internal/middleware"
	"doseup-parent/internal/platform/markdown"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, parentsSvc *parents.Service, fallback *time.Location) {
	r.Route("/me/medicines", func(mr chi.Router) {
		mr.Get("/", listMedicinesHandler(svc, parentsSvc, fallback))
		mr.Get("/{medicineID}", getMedicineHandler(svc, parentsSvc, fallback))
	})
}

type nextDoseResponse struct {
	DoseTime    string `json:"dose_time"`
	DisplayTime string `json:"display_time"`
	Today       bool   `json:"today"`
}

// medicineResponse es una medicina del familiar con datos derivados para hoy.
type medicineResponse struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Dosage           string            `json:"dosage,omitempty"`
	Notes            string            `json:"notes,omitempty"`
	NotesHTML        string            `json:"notes_html,omitempty"`
	DoseTimes        []string          `json:"dose_times"`
	DisplayTimes     []string          `json:"display_times"`
	Frequency        *Frequency        `json:"frequency,omitempty"`
	ActiveToday      bool              `json:"active_today"`
	TakenTodayLegacy bool              `json:"taken_today_legacy"`
	ReminderInterval int               `json:"reminder_interval,omitempty"`
	NextDose         *nextDoseResponse `json:"next_dose,omitempty"`
}

// listMedicinesHandler godoc
// @Summary Listar medicinas del familiar
// @Description Lista todas las medicinas del familiar autenticado (activas hoy o no). Autenticación: `X-Debug-Parent-ID` + `X-Debug-Admin-ID` (dev) o `Authorization: Bearer <token>`.
// @Tags medicines
// @Produce json
// @Param X-Debug-Parent-ID header string false "Solo en modo dev"
// @Param X-Debug-Admin-ID header string false "Solo en modo dev"
// @Param Authorization header string false "Bearer token"
// @Success 200 {array} medicineResponse
// @Failure 401 {string} string "unauthorized"
// @Router /me/medicines [get]
func listMedicinesHandler(svc *Service, parentsSvc *parents.Service, fallback *time.Location) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ref, ok := middleware.ParentRef(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.List(r.Context(), ref)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		now := time.Now().In(parentsSvc.LocationOf(r.Context(), ref, fallback))
		out := make([]medicineResponse, 0, len(items))
		for _, m := range items {
			out = append(out, toMedicineResponse(m, now, false))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getMedicineHandler godoc
// @Summary Detalle de una medicina
// @Description Devuelve la medicina con su próxima toma, horas en formato 12h y las notas como HTML saneado.
// @Tags medicines
// @Produce json
// @Param X-Debug-Parent-ID header string false "Solo en modo dev"
// @Param X-Debug-Admin-ID header string false "Solo en modo dev"
// @Param Authorization header string false "Bearer token"
// @Param medicineID path string true "ID de la medicina"
// @Success 200 {object} medicineResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "medicine not found"
// @Failure 500 {string} string "internal error"
// @Router /me/medicines/{medicineID} [get]
func getMedicineHandler(svc *Service, parentsSvc *parents.Service, fallback *time.Location) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ref, ok := middleware.ParentRef(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		m, err := svc.Get(r.Context(), ref, chi.URLParam(r, "medicineID"))
		switch {
		case err == nil:
		case errors.Is(err, ErrNotFound):
			http.Error(w, "medicine not found", http.StatusNotFound)
			return
		case errors.Is(err, ErrInvalidInput):
			http.Error(w, "invalid medicine id", http.StatusBadRequest)
			return
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		now := time.Now().In(parentsSvc.LocationOf(r.Context(), ref, fallback))
		writeJSON(w, http.StatusOK, toMedicineResponse(m, now, true))
	}
}

func toMedicineResponse(m Medicine, now time.Time, detail bool) medicineResponse {
	doseTimes := m.DoseTimes
	if doseTimes == nil {
		doseTimes = []string{}
	}
	display := make([]string, 0, len(doseTimes))
	for _, t := range doseTimes {
		display = append(display, dosetime.Display(t))
	}

	resp := medicineResponse{
		ID:               m.ID,
		Name:             m.Name,
		Dosage:           m.Dosage,
		Notes:            m.Notes,
		DoseTimes:        doseTimes,
		DisplayTimes:     display,
		Frequency:        m.Frequency,
		ActiveToday:      IsActiveOn(m.Frequency, now.Weekday()),
		TakenTodayLegacy: m.TakenOnLegacy(now),
		ReminderInterval: m.ReminderInterval,
	}

	if !detail {
		return resp
	}
	if nd, ok := NextDoseOf(m, now); ok {
		resp.NextDose = &nextDoseResponse{
			DoseTime:    nd.DoseTime,
			DisplayTime: dosetime.Display(nd.DoseTime),
			Today:       nd.Today,
		}
	}
	// Si el markdown falla, el cliente se queda con Notes en texto plano.
	if html, err := markdown.ToHTML(m.Notes); err == nil {
		resp.NotesHTML = html
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
