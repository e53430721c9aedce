package api

import (
	"net/http"

	"github.com/alec/wallet-auth-backend/internal/api/handlers"
	"github.com/alec/wallet-auth-backend/internal/api/middleware"
	"github.com/alec/wallet-auth-backend/internal/config"
	"github.com/alec/wallet-auth-backend/internal/service"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(services *service.Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS(cfg.CORSOrigin))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	authHandler := handlers.NewAuthHandler(services.Auth)
	userHandler := handlers.NewUserHandler(services.User)

	r.Route("/api/user", func(r chi.Router) {
		// Public lookup routes
		r.Get("/getAllUser", userHandler.GetAll)
		r.Get("/user/{id}", userHandler.Get)
		r.Get("/wallet/{walletAddress}", userHandler.GetByWallet)

		// Wallet authentication routes
		r.Post("/nonce", authHandler.Nonce)
		r.Post("/verify", authHandler.Verify)
		r.Post("/register", authHandler.Register)
		r.Post("/logout", authHandler.Logout)

		// Protected routes
		r.Route("/protected", func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth))
			r.Get("/me", authHandler.Me)
			r.Patch("/profile/{id}", userHandler.UpdateProfile)
			r.Patch("/role/{id}", userHandler.ChangeRole)
			r.Delete("/user/{id}", userHandler.Delete)
		})
	})

	return r
}
