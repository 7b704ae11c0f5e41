package router

import (
	"net/http"

	_ "doseup-parent/docs"
	"doseup-parent/internal/app"
	"doseup-parent/internal/domain/doselogs"
	"doseup-parent/internal/domain/medicines"
	"doseup-parent/internal/domain/reminders"
	"doseup-parent/internal/domain/schedule"
	"doseup-parent/internal/domain/sessions"
	"doseup-parent/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	App *app.App
}

func NewRouter(opts Options) http.Handler {
	a := opts.App
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recover(a.Log))
	r.Use(middleware.RequestLog(a.Log))

	// En dev también se aceptan los headers X-Debug-*
	r.Use(middleware.AuthContext(a.Verifier, a.Config.IsDev()))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// Rutas por módulo
	sessions.RegisterRoutes(r, a.Sessions)
	medicines.RegisterRoutes(r, a.Medicines, a.Parents, a.Location)
	doselogs.RegisterRoutes(r, a.DoseLogs, a.Parents, a.Location)
	schedule.RegisterRoutes(r, schedule.Deps{
		Medicines: a.Medicines,
		DoseLogs:  a.DoseLogs,
		Parents:   a.Parents,
		Fallback:  a.Location,
	})
	reminders.RegisterRoutes(r, a.Reminders, a.Medicines)

	return r
}
