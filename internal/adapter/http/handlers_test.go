package adapthttp_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	adapthttp "questlog/internal/adapter/http"
	"questlog/internal/adapter/memory"
	"questlog/internal/app"
)

var start = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	repo := memory.New()
	profiles := app.NewProfileService(repo, start)
	tasks := app.NewTaskService(repo, start)
	analytics := app.NewAnalyticsService(repo)

	ts := httptest.NewServer(adapthttp.New(profiles, tasks, analytics).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, payload any) *http.Response {
	t.Helper()
	b, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(b))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func get(t *testing.T, url string) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return m
}

func login(t *testing.T, ts *httptest.Server, username string) map[string]any {
	t.Helper()
	resp := postJSON(t, ts.URL+"/login", map[string]any{"username": username})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", resp.StatusCode)
	}
	return decodeBody(t, resp)
}

func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp := get(t, ts.URL+"/health")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body := decodeBody(t, resp); body["ok"] != true {
		t.Fatalf("expected ok=true, got %v", body["ok"])
	}
}

func TestLoginCreatesAndIsIdempotent(t *testing.T) {
	ts := newTestServer(t)

	body := login(t, ts, "ada")
	if body["username"] != "ada" || body["level"] != float64(1) || body["xp_limit"] != float64(100) {
		t.Errorf("new profile = %v", body)
	}

	// Earn some XP, then log in again; nothing may reset.
	resp := postJSON(t, ts.URL+"/complete-task", map[string]any{"username": "ada", "action_type": "skill"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("complete-task: expected 200, got %d", resp.StatusCode)
	}

	body = login(t, ts, "ada")
	if body["xp"] != float64(30) {
		t.Errorf("second login reset xp: %v", body["xp"])
	}
	if logs, ok := body["logs"].([]any); !ok || len(logs) != 1 {
		t.Errorf("second login lost logs: %v", body["logs"])
	}
}

func TestLoginRequiresUsername(t *testing.T) {
	ts := newTestServer(t)
	resp := postJSON(t, ts.URL+"/login", map[string]any{})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestDashboard(t *testing.T) {
	ts := newTestServer(t)
	login(t, ts, "ada")

	resp := postJSON(t, ts.URL+"/complete-task", map[string]any{"username": "ada", "action_type": "academic"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("complete-task: expected 200, got %d", resp.StatusCode)
	}

	resp = get(t, ts.URL+"/dashboard/ada")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)

	user, ok := body["user"].(map[string]any)
	if !ok || user["username"] != "ada" {
		t.Errorf("user = %v", body["user"])
	}
	prog, ok := body["progression"].(map[string]any)
	if !ok {
		t.Fatalf("progression = %v", body["progression"])
	}
	for _, field := range []string{"days_passed", "weeks_passed", "gym_sets", "phase_index", "date_str"} {
		if _, ok := prog[field]; !ok {
			t.Errorf("progression missing %q", field)
		}
	}
	locks, ok := body["locks"].(map[string]any)
	if !ok {
		t.Fatalf("locks = %v", body["locks"])
	}
	if locks["academic"] != true {
		t.Errorf("academic should be locked after completion: %v", locks)
	}
	if locks["skill"] != false || locks["workout"] != false || locks["reflection"] != false {
		t.Errorf("unexpected locks: %v", locks)
	}
}

func TestCompleteTaskConflictsOnSecondCall(t *testing.T) {
	ts := newTestServer(t)
	login(t, ts, "ada")

	resp := postJSON(t, ts.URL+"/complete-task", map[string]any{"username": "ada", "action_type": "workout"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("first completion: expected 200, got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["status"] != "success" || body["new_xp"] != float64(30) || body["new_level"] != float64(1) {
		t.Errorf("result = %v", body)
	}

	resp = postJSON(t, ts.URL+"/complete-task", map[string]any{"username": "ada", "action_type": "workout"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("second completion: expected 400, got %d", resp.StatusCode)
	}

	// XP unchanged by the rejected call.
	if body := login(t, ts, "ada"); body["xp"] != float64(30) {
		t.Errorf("xp after rejected call = %v; want 30", body["xp"])
	}
}

func TestCompleteTaskRejectsInvalidAction(t *testing.T) {
	ts := newTestServer(t)
	login(t, ts, "ada")

	for _, action := range []string{"reflection", "gaming", ""} {
		resp := postJSON(t, ts.URL+"/complete-task", map[string]any{"username": "ada", "action_type": action})
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("action %q: expected 400, got %d", action, resp.StatusCode)
		}
	}
}

func TestSubmitReflection(t *testing.T) {
	ts := newTestServer(t)
	login(t, ts, "ada")

	entry := map[string]any{
		"date":           "2026-01-10",
		"academic_topic": "graphs",
		"skill_topic":    "piano",
		"user_notes":     "solid day",
	}
	resp := postJSON(t, ts.URL+"/submit-reflection?username=ada", entry)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body := decodeBody(t, resp); body["status"] != "success" {
		t.Errorf("body = %v", body)
	}

	// Reflections bypass the daily lock; resubmitting succeeds.
	resp = postJSON(t, ts.URL+"/submit-reflection?username=ada", entry)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("second reflection: expected 200, got %d", resp.StatusCode)
	}

	if body := login(t, ts, "ada"); body["xp"] != float64(40) {
		t.Errorf("xp = %v; want 40 after two reflections", body["xp"])
	}
}

func TestAnalytics(t *testing.T) {
	ts := newTestServer(t)
	login(t, ts, "ada")

	resp := postJSON(t, ts.URL+"/complete-task", map[string]any{"username": "ada", "action_type": "skill"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("complete-task: expected 200, got %d", resp.StatusCode)
	}
	resp = postJSON(t, ts.URL+"/submit-reflection?username=ada", map[string]any{"date": "2026-01-10"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("submit-reflection: expected 200, got %d", resp.StatusCode)
	}

	resp = get(t, ts.URL+"/analytics/ada")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)

	xpChart, ok := body["xp_chart"].(map[string]any)
	if !ok {
		t.Fatalf("xp_chart = %v", body["xp_chart"])
	}
	data, ok := xpChart["data"].([]any)
	if !ok || len(data) != 2 {
		t.Fatalf("xp data = %v", xpChart["data"])
	}
	if data[len(data)-1] != float64(50) {
		t.Errorf("final cumulative xp = %v; want 50", data[len(data)-1])
	}

	consistency, ok := body["consistency_chart"].(map[string]any)
	if !ok {
		t.Fatalf("consistency_chart = %v", body["consistency_chart"])
	}
	cData, ok := consistency["data"].([]any)
	if !ok || len(cData) != 1 || cData[0] != float64(1) {
		t.Errorf("consistency data = %v; want [1]", consistency["data"])
	}
}

func TestAnalyticsEmptyHistory(t *testing.T) {
	ts := newTestServer(t)
	login(t, ts, "ada")

	resp := get(t, ts.URL+"/analytics/ada")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	xpChart := body["xp_chart"].(map[string]any)
	if labels, ok := xpChart["labels"].([]any); !ok || len(labels) != 0 {
		t.Errorf("labels = %v; want empty array", xpChart["labels"])
	}
}

func TestUnknownUserIs404Everywhere(t *testing.T) {
	ts := newTestServer(t)

	checks := []struct {
		name string
		resp func() *http.Response
	}{
		{"dashboard", func() *http.Response { return get(t, ts.URL+"/dashboard/nobody") }},
		{"complete-task", func() *http.Response {
			return postJSON(t, ts.URL+"/complete-task", map[string]any{"username": "nobody", "action_type": "skill"})
		}},
		{"submit-reflection", func() *http.Response {
			return postJSON(t, ts.URL+"/submit-reflection?username=nobody", map[string]any{"date": "2026-01-10"})
		}},
		{"analytics", func() *http.Response { return get(t, ts.URL+"/analytics/nobody") }},
	}
	for _, tc := range checks {
		t.Run(tc.name, func(t *testing.T) {
			if resp := tc.resp(); resp.StatusCode != http.StatusNotFound {
				t.Errorf("expected 404, got %d", resp.StatusCode)
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	ts := newTestServer(t)

	if resp := get(t, ts.URL+"/complete-task"); resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("GET /complete-task: expected 405, got %d", resp.StatusCode)
	}
	if resp := postJSON(t, ts.URL+"/dashboard/ada", nil); resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("POST /dashboard: expected 405, got %d", resp.StatusCode)
	}
}

func TestCORS(t *testing.T) {
	ts := newTestServer(t)

	resp := get(t, ts.URL+"/health")
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q; want *", got)
	}

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/complete-task", nil)
	if err != nil {
		t.Fatal(err)
	}
	preflight, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("preflight failed: %v", err)
	}
	defer preflight.Body.Close() //nolint:errcheck
	if preflight.StatusCode != http.StatusNoContent {
		t.Errorf("preflight: expected 204, got %d", preflight.StatusCode)
	}
}
