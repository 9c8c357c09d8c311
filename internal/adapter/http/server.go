// Package adapthttp implements the HTTP adapter for the application.
package adapthttp

import (
	"net/http"

	"questlog/internal/app"
)

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	profiles  *app.ProfileService
	tasks     *app.TaskService
	analytics *app.AnalyticsService
}

// New creates a Server wired to the given application services.
func New(ps *app.ProfileService, ts *app.TaskService, as *app.AnalyticsService) *Server {
	return &Server{profiles: ps, tasks: ts, analytics: as}
}

// Handler returns the root http.Handler for the application. The client is
// hosted separately, so every route is CORS-open and JSON-only.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	mux.HandleFunc("/login", s.handleLogin)
	mux.HandleFunc("/dashboard/", s.handleDashboard)
	mux.HandleFunc("/complete-task", s.handleCompleteTask)
	mux.HandleFunc("/submit-reflection", s.handleSubmitReflection)
	mux.HandleFunc("/analytics/", s.handleAnalytics)

	return s.loggingMiddleware(withCORS(mux))
}
