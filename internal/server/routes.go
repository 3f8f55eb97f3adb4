package server

import (
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"

	"github.com/revaya/roicalc/internal/handler/health"
)

func addRoutes(r chi.Router, deps Deps) {
	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Missed Call ROI API", "/openapi.json", "/docs"))
	r.Mount("/healthz", health.NewHandler(deps.Logger, deps.Health).Routes())

	// Quiz.
	r.Get("/api/quiz", handleQuiz())
	r.Get("/api/industries", handleIndustries())
	r.Get("/api/coverage", handleCoverage(deps.Policy))
	r.Post("/api/calculate", handleCalculate(deps))
	r.Get("/api/results/{id}", handleGetResult(deps.Logger, deps.Results))
	r.Get("/api/results/{id}/report", handleReport(deps))

	// Admin auth.
	r.Post("/api/admin/login", handleAdminLogin(deps.Logger, deps.Admin))
	r.Post("/api/admin/logout", handleAdminLogout(deps.Logger, deps.Admin))
	r.Get("/api/admin/me", handleAdminMe(deps.Admin))

	// Admin lead views.
	r.Group(func(r chi.Router) {
		r.Use(adminAuthMiddleware(deps.Admin))
		r.Get("/api/admin/submissions", handleAdminSubmissions(deps.Logger, deps.Lister))
		r.Get("/api/admin/events", handleLeadEvents(deps.Broker))
	})

	if deps.SPADir != "" {
		if info, err := os.Stat(deps.SPADir); err == nil && info.IsDir() {
			deps.Logger.Info("serving SPA", "dir", deps.SPADir)
			r.NotFound(handleSPA(deps.SPADir))
		}
	}
}
