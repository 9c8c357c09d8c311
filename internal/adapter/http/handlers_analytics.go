package adapthttp

import "net/http"

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	username := pathParam(r, "/analytics/")
	if username == "" {
		http.NotFound(w, r)
		return
	}

	charts, err := s.analytics.GetCharts(r.Context(), username)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, charts)
}
