package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rvidal/doorway/internal/api/handlers"
	"github.com/rvidal/doorway/internal/api/middleware"
	"github.com/rvidal/doorway/internal/config"
	"github.com/rvidal/doorway/internal/service"
	"github.com/rvidal/doorway/internal/token"
	"go.uber.org/zap"
)

func NewRouter(services *service.Services, codec *token.Codec, cfg *config.Config, log *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.Logging(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth, log)

	// Auth routes
	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", authHandler.Signup)
		r.Post("/login", authHandler.Login)
		r.Post("/verify", authHandler.Verify)

		// Protected auth routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(codec))
			r.Get("/me", authHandler.Me)
		})
	})

	// Sign-up page and static assets
	r.Handle("/*", http.FileServer(http.Dir(cfg.StaticDir)))

	return r
}
