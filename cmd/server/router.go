package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/worthtrust/market-api/internal/api"
	apiMiddleware "github.com/worthtrust/market-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all
// routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	userHandler := api.NewUserHandler(app.userService)
	adHandler := api.NewAdHandler(app.adService)
	requestHandler := api.NewRequestHandler(app.requestService)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService, app.userStore)

	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Post("/register", userHandler.Register)
		r.Post("/token", userHandler.Token)
		r.Get("/verifyemail/{access_token}", userHandler.VerifyEmail)

		// Protected routes: token check first, then the active check
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Use(apiMiddleware.RequireActiveUser)

			r.Get("/user", userHandler.CurrentUser)
			r.Delete("/user/disable", userHandler.Disable)
			r.Post("/verifyemail/resend", userHandler.ResendVerification)

			r.Post("/ad", adHandler.Create)
			r.Get("/ads", adHandler.ListOwned)
			r.Get("/ads/search", adHandler.Search)

			r.Post("/request", requestHandler.Create)
			r.Get("/requests", requestHandler.List)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
