package adapthttp

import (
	"net/http"
	"time"

	"questlog/internal/domain"
)

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var profile domain.UserProfile
	if err := parseJSON(r, &profile); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	stored, err := s.profiles.Login(r.Context(), profile)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stored)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	username := pathParam(r, "/dashboard/")
	if username == "" {
		http.NotFound(w, r)
		return
	}

	d, err := s.profiles.Dashboard(r.Context(), username, time.Now())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}
