package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/inkstudio/studio-backend-go/internal/config"
	"github.com/inkstudio/studio-backend-go/internal/handler/http/middleware"
	"github.com/inkstudio/studio-backend-go/internal/pkg/jwt"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	timeBlockHandler TimeBlockHandler,
	availabilityHandler AvailabilityHandler,
	trackingHandler TrackingHandler,
	studioHandler StudioHandler,
	commissionHandler CommissionHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "studio-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/time-blocks", func(r chi.Router) {
				r.Get("/", timeBlockHandler.List)
				r.Post("/", timeBlockHandler.Create)
				r.Put("/{blockID}", timeBlockHandler.Update)
				r.Delete("/{blockID}", timeBlockHandler.Delete)
			})

			r.Get("/availability", availabilityHandler.Resolve)

			r.Route("/time-tracking", func(r chi.Router) {
				r.Post("/", trackingHandler.Action)
				r.Get("/sessions", trackingHandler.ListSessions)
				r.Post("/check-location", trackingHandler.CheckLocation)
				r.Get("/events", trackingHandler.StreamEvents)
			})

			r.Route("/studio", func(r chi.Router) {
				r.Get("/geolocation-settings", studioHandler.GetGeolocationSettings)

				// Managers only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/geolocation-settings", studioHandler.UpdateGeolocationSettings)
				})
			})

			r.Route("/financial/commissions", func(r chi.Router) {
				r.Use(middleware.RequireManager)

				r.Get("/", commissionHandler.ListTransactions)
				r.Post("/", commissionHandler.Record)
				r.Get("/summary", commissionHandler.StaffSummaries)
				r.Get("/export", commissionHandler.Export)

				// Owner only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireOwner)
					r.Post("/settle", commissionHandler.MarkPaid)
					r.Get("/studio-summary", commissionHandler.StudioSummary)
				})
			})
		})
	})
	return r
}
