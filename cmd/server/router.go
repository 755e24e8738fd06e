package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/studiumhq/studium-api/internal/api"
	apimiddleware "github.com/studiumhq/studium-api/internal/api/middleware"
)

// setupRouter configures the router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apimiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(
		app.userStore,
		app.settingsStore,
		app.jwtService,
		app.passwordVerifier,
	)
	authMiddleware := apimiddleware.NewAuthMiddleware(app.jwtService)

	subjectHandler := api.NewSubjectHandler(app.subjectStore)
	contentHandler := api.NewContentHandler(app.contentStore, app.schedulerService)
	reviewHandler := api.NewReviewHandler(app.reviewStore, app.schedulerService)
	plannerHandler := api.NewPlannerHandler(app.schedulerService)
	settingsHandler := api.NewSettingsHandler(app.schedulerService)
	suggestionHandler := api.NewSuggestionHandler(app.suggestionService)
	retentionHandler := api.NewRetentionHandler(app.schedulerService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/subjects", subjectHandler.List)
			r.Post("/subjects", subjectHandler.Create)
			r.Delete("/subjects/{id}", subjectHandler.Delete)

			r.Get("/contents", contentHandler.List)
			r.Post("/contents", contentHandler.Create)
			r.Put("/contents/{id}", contentHandler.Update)
			r.Delete("/contents/{id}", contentHandler.Delete)
			r.Post("/contents/{id}/retention", contentHandler.Retention)

			r.Get("/reviews", reviewHandler.List)
			r.Get("/reviews/schedule", reviewHandler.Schedule)
			r.Post("/reviews/{id}/status", reviewHandler.UpdateStatus)

			r.Post("/planner/rebalance", plannerHandler.Rebalance)
			r.Post("/planner/tomorrow-heavy", plannerHandler.TomorrowHeavy)
			r.Post("/planner/pace", plannerHandler.Pace)
			r.Get("/planner/capacity", plannerHandler.Capacity)

			r.Get("/settings", settingsHandler.Get)
			r.Put("/settings", settingsHandler.Update)

			r.Get("/suggestions/next", suggestionHandler.Next)
			r.Get("/retention-events", retentionHandler.List)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
