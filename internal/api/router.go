package api

import (
	"net/http"
	"time"

	"github.com/durgeshpatel-dev/Upaj2.0-sub000/internal/api/handler"
	customMiddleware "github.com/durgeshpatel-dev/Upaj2.0-sub000/internal/api/middleware"
	"github.com/durgeshpatel-dev/Upaj2.0-sub000/internal/chat"
	"github.com/durgeshpatel-dev/Upaj2.0-sub000/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates and configures the HTTP router
func NewRouter(manager *chat.Manager, sessionStore *store.SessionStore) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	chatHandler := handler.NewChatHandler(manager)
	sessionHandler := handler.NewSessionHandler(manager, sessionStore)
	analyticsHandler := handler.NewAnalyticsHandler(sessionStore)

	r.Get("/health", handler.HealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/chat", func(r chi.Router) {
			r.Post("/message", chatHandler.SendMessage)
			r.Post("/new", chatHandler.NewChat)
			r.Post("/load/{sessionID}", chatHandler.LoadChat)
			r.Get("/current", chatHandler.Current)
		})

		r.Route("/sessions", func(r chi.Router) {
			r.Get("/", sessionHandler.List)
			r.Delete("/", sessionHandler.Clear)
			r.Post("/cleanup", analyticsHandler.Cleanup)
			r.Route("/{sessionID}", func(r chi.Router) {
				r.Delete("/", sessionHandler.Delete)
				r.Get("/export", sessionHandler.Export)
				r.Get("/analytics", analyticsHandler.Session)
			})
		})

		r.Get("/analytics", analyticsHandler.Overview)
	})

	return r
}
