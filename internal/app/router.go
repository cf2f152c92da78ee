package app

import (
	"net/http"

	"studyBuddy/internal/config"
	"studyBuddy/internal/handlers"
	"studyBuddy/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const serviceName = "studybuddy-api"

func NewRouter(taskHandler *handlers.TaskHandler, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{"Location", middleware.RequestIDHeader},
		MaxAge:         300,
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(middleware.RateLimit(cfg.RateLimit.RPM))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"Not found"}` + "\n"))
	})

	r.Get("/health", taskHandler.HealthCheck)

	r.Route("/api/tasks", func(r chi.Router) {
		r.Get("/", taskHandler.ListTasks)   // GET /api/tasks
		r.Post("/", taskHandler.CreateTask) // POST /api/tasks

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", taskHandler.GetTask)            // GET /api/tasks/{id}
			r.Patch("/", taskHandler.UpdateTaskStatus) // PATCH /api/tasks/{id}
			r.Delete("/", taskHandler.DeleteTask)      // DELETE /api/tasks/{id}

			r.Route("/timer", func(r chi.Router) {
				r.Post("/start", taskHandler.StartTimer)      // POST /api/tasks/{id}/timer/start
				r.Post("/stop", taskHandler.StopTimer)        // POST /api/tasks/{id}/timer/stop
				r.Get("/active", taskHandler.ActiveTimer)     // GET /api/tasks/{id}/timer/active
				r.Get("/sessions", taskHandler.TimerSessions) // GET /api/tasks/{id}/timer/sessions
			})
		})
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Post("/reset", taskHandler.Reset) // POST /api/admin/reset
	})

	return otelhttp.NewHandler(r, serviceName)
}
