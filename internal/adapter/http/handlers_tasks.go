package adapthttp

import (
	"net/http"
	"time"

	"questlog/internal/domain"
)

func (s *Server) handleCompleteTask(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var body struct {
		Username   string            `json:"username"`
		ActionType domain.ActionType `json:"action_type"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	res, err := s.tasks.CompleteTask(r.Context(), body.Username, body.ActionType, time.Now())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleSubmitReflection(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	username := r.URL.Query().Get("username")
	var entry domain.ReflectionEntry
	if err := parseJSON(r, &entry); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := s.tasks.SubmitReflection(r.Context(), username, entry); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}
