package reminders

import (
	"encoding/json"
	"net/http"

	"doseup-parent/internal/domain/dosetime"
	"doseup-parent/internal/domain/medicines"
	"doseup-parent/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, mgr *Manager, medsSvc *medicines.Service) {
	r.Route("/me/reminders", func(rr chi.Router) {
		rr.Get("/", listRemindersHandler(mgr))
		rr.Post("/sync", syncRemindersHandler(mgr, medsSvc))

		// Logout: cancela todo
		rr.Delete("/", clearRemindersHandler(mgr))
	})
}

// syncResponse resume la pasada de reconciliación.
type syncResponse struct {
	Scheduled   int                 `json:"scheduled"`
	Cancelled   int                 `json:"cancelled"`
	Kept        int                 `json:"kept"`
	Failed      int                 `json:"failed"`
	FullReplace bool                `json:"full_replace"`
	IDs         map[string][]string `json:"ids"`
}

// reminderResponse es un recordatorio registrado en el dispositivo del familiar.
type reminderResponse struct {
	ID          string            `json:"id"`
	MedicineID  string            `json:"medicine_id"`
	DoseTime    string            `json:"dose_time"`
	DisplayTime string            `json:"display_time"`
	Title       string            `json:"title"`
	Body        string            `json:"body"`
	Channel     string            `json:"channel"`
	Data        map[string]string `json:"data"`
}

// syncRemindersHandler godoc
// @Summary Sincronizar recordatorios
// @Description Lleva los recordatorios diarios del familiar al set actual de medicinas (todas las medicinas × todas sus horas). Cancela primero lo que sobra y después agrega lo que falta. Autenticación: `X-Debug-Parent-ID` + `X-Debug-Admin-ID` (dev) o `Authorization: Bearer <token>`.
// @Tags reminders
// @Produce json
// @Param X-Debug-Parent-ID header string false "Solo en modo dev"
// @Param X-Debug-Admin-ID header string false "Solo en modo dev"
// @Param Authorization header string false "Bearer token"
// @Success 200 {object} syncResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 500 {string} string "internal error"
// @Router /me/reminders/sync [post]
func syncRemindersHandler(mgr *Manager, medsSvc *medicines.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ref, ok := middleware.ParentRef(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		meds, err := medsSvc.List(r.Context(), ref)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		rec, err := mgr.For(ref)
		if err != nil {
			http.Error(w, "notifier unavailable", http.StatusInternalServerError)
			return
		}

		res, err := rec.Sync(r.Context(), meds)
		if err != nil {
			http.Error(w, "sync aborted", http.StatusServiceUnavailable)
			return
		}

		writeJSON(w, http.StatusOK, syncResponse{
			Scheduled:   res.Scheduled,
			Cancelled:   res.Cancelled,
			Kept:        res.Kept,
			Failed:      res.Failed,
			FullReplace: res.FullReplace,
			IDs:         res.IDs,
		})
	}
}

// listRemindersHandler godoc
// @Summary Listar recordatorios registrados
// @Description Devuelve lo que el notificador del familiar tiene registrado hoy.
// @Tags reminders
// @Produce json
// @Param X-Debug-Parent-ID header string false "Solo en modo dev"
// @Param X-Debug-Admin-ID header string false "Solo en modo dev"
// @Param Authorization header string false "Bearer token"
// @Success 200 {array} reminderResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 502 {string} string "notifier error"
// @Router /me/reminders [get]
func listRemindersHandler(mgr *Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ref, ok := middleware.ParentRef(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		rec, err := mgr.For(ref)
		if err != nil {
			http.Error(w, "notifier unavailable", http.StatusInternalServerError)
			return
		}

		regs, err := rec.Registered(r.Context())
		if err != nil {
			http.Error(w, "notifier error", http.StatusBadGateway)
			return
		}

		out := make([]reminderResponse, 0, len(regs))
		for _, reg := range regs {
			out = append(out, reminderResponse{
				ID:          reg.ID,
				MedicineID:  reg.Reminder.MedicineID,
				DoseTime:    reg.Reminder.DoseTime,
				DisplayTime: dosetime.Display(reg.Reminder.DoseTime),
				Title:       reg.Reminder.Title(),
				Body:        reg.Reminder.Body(),
				Channel:     Channel,
				Data:        reg.Reminder.Data(),
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// clearRemindersHandler godoc
// @Summary Cancelar todos los recordatorios
// @Description Cancela todos los recordatorios del familiar (se usa al cerrar sesión).
// @Tags reminders
// @Param X-Debug-Parent-ID header string false "Solo en modo dev"
// @Param X-Debug-Admin-ID header string false "Solo en modo dev"
// @Param Authorization header string false "Bearer token"
// @Success 204 "sin contenido"
// @Failure 401 {string} string "unauthorized"
// @Router /me/reminders [delete]
func clearRemindersHandler(mgr *Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ref, ok := middleware.ParentRef(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		rec, err := mgr.For(ref)
		if err != nil {
			http.Error(w, "notifier unavailable", http.StatusInternalServerError)
			return
		}
		if _, err := rec.Clear(r.Context()); err != nil {
			http.Error(w, "clear aborted", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
