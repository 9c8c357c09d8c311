package adapthttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"questlog/internal/app"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]any{"error": err.Error()})
}

// writeServiceError maps the application error taxonomy onto status codes.
// Anything outside the taxonomy is a storage or infrastructure failure.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, app.ErrUserNotFound):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, app.ErrTaskAlreadyCompleted),
		errors.Is(err, app.ErrInvalidAction),
		errors.Is(err, app.ErrUsernameRequired):
		writeError(w, http.StatusBadRequest, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}

func parseJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	return nil
}

// pathParam extracts the trailing path segment after prefix, e.g. the
// username in /dashboard/{username}.
func pathParam(r *http.Request, prefix string) string {
	rest := strings.TrimPrefix(r.URL.Path, prefix)
	if rest == "" || strings.Contains(rest, "/") {
		return ""
	}
	return rest
}
