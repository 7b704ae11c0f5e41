package schedule

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"doseup-parent/internal/domain/doselogs"
	"doseup-parent/internal/domain/dosetime"
	"doseup-parent/internal/domain/medicines"
	"doseup-parent/internal/domain/parents"
	"doseup-parent/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// Deps agrupa lo que necesita la vista de hoy.
type Deps struct {
	Medicines *medicines.Service
	DoseLogs  *doselogs.Service
	Parents   *parents.Service

	// Zona por defecto si el parent no tiene una.
	Fallback *time.Location
}

func RegisterRoutes(r chi.Router, d Deps) {
	r.Get("/me/schedule", getScheduleHandler(d))
}

type entryResponse struct {
	MedicineID   string `json:"medicine_id"`
	MedicineName string `json:"medicine_name"`
	Dosage       string `json:"dosage,omitempty"`
	DoseTime     string `json:"dose_time"`
	DisplayTime  string `json:"display_time"`
	Taken        bool   `json:"taken"`
	Upcoming     bool   `json:"upcoming"`
}

type progressResponse struct {
	Taken      int     `json:"taken"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// scheduleResponse es la lista de tomas de hoy, ordenada (primero lo que viene).
type scheduleResponse struct {
	Date     string           `json:"date"`
	Progress progressResponse `json:"progress"`
	Entries  []entryResponse  `json:"entries"`
	Next     *entryResponse   `json:"next,omitempty"`
}

// getScheduleHandler godoc
// @Summary Tomas de hoy
// @Description Deriva las tomas del día: filtra medicinas por frecuencia, expande cada hora en su propia fila y ordena primero las próximas y luego las pasadas. Marca las ya tomadas y calcula el progreso. Autenticación: `X-Debug-Parent-ID` + `X-Debug-Admin-ID` (dev) o `Authorization: Bearer <token>`.
// @Tags schedule
// @Produce json
// @Param X-Debug-Parent-ID header string false "Solo en modo dev"
// @Param X-Debug-Admin-ID header string false "Solo en modo dev"
// @Param Authorization header string false "Bearer token"
// @Param at query string false "Instante de referencia RFC3339. Por defecto ahora, en la zona del familiar"
// @Success 200 {object} scheduleResponse
// @Failure 400 {string} string "at must be RFC3339"
// @Failure 401 {string} string "unauthorized"
// @Router /me/schedule [get]
func getScheduleHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ref, ok := middleware.ParentRef(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		loc := d.Parents.LocationOf(r.Context(), ref, d.Fallback)
		now := time.Now().In(loc)
		if raw := strings.TrimSpace(r.URL.Query().Get("at")); raw != "" {
			t, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				http.Error(w, "at must be RFC3339", http.StatusBadRequest)
				return
			}
			now = t.In(loc)
		}

		s, err := Today(r.Context(), d, ref, now)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toScheduleResponse(s))
	}
}

// Today arma el Schedule de now para ref. Lo usan el handler y el CLI.
func Today(ctx context.Context, d Deps, ref parents.Ref, now time.Time) (Schedule, error) {
	meds, err := d.Medicines.List(ctx, ref)
	if err != nil {
		return Schedule{}, err
	}
	date := dosetime.DateKey(now)
	logs, err := d.DoseLogs.ListForDay(ctx, ref, date)
	if err != nil {
		return Schedule{}, err
	}
	return Summarize(BuildDoseRows(meds, now), now, doselogs.TakenOn(logs, date)), nil
}

func toScheduleResponse(s Schedule) scheduleResponse {
	out := scheduleResponse{
		Date: s.Date,
		Progress: progressResponse{
			Taken:      s.Progress.Taken,
			Total:      s.Progress.Total,
			Percentage: s.Progress.Percentage,
		},
		Entries: make([]entryResponse, 0, len(s.Entries)),
	}
	for _, e := range s.Entries {
		out.Entries = append(out.Entries, toEntryResponse(e))
	}
	if s.Next != nil {
		n := toEntryResponse(*s.Next)
		out.Next = &n
	}
	return out
}

func toEntryResponse(e Entry) entryResponse {
	return entryResponse{
		MedicineID:   e.MedicineID,
		MedicineName: e.MedicineName,
		Dosage:       e.Medicine.Dosage,
		DoseTime:     e.DoseTime,
		DisplayTime:  e.Display,
		Taken:        e.Taken,
		Upcoming:     e.Upcoming,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
