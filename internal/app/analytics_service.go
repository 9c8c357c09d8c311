package app

import (
	"context"
	"sort"

	"questlog/internal/domain"
)

// AnalyticsService builds chart series from a user's history.
type AnalyticsService struct {
	repo domain.UserRepository
}

// NewAnalyticsService creates an AnalyticsService backed by the given
// repository.
func NewAnalyticsService(repo domain.UserRepository) *AnalyticsService {
	return &AnalyticsService{repo: repo}
}

// ChartSeries is one labeled data series, shaped for the chart widget.
type ChartSeries struct {
	Labels []string `json:"labels"`
	Data   []int    `json:"data"`
}

// Charts holds the analytics payload for one user.
type Charts struct {
	XPChart          ChartSeries `json:"xp_chart"`
	ConsistencyChart ChartSeries `json:"consistency_chart"`
}

// GetCharts returns the cumulative XP series and the reflection consistency
// series in ascending date order. Entries sharing a date keep their append
// order. A user with no history gets empty series.
func (s *AnalyticsService) GetCharts(ctx context.Context, username string) (*Charts, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	logs := make([]domain.LogEntry, len(user.Logs))
	copy(logs, user.Logs)
	sort.SliceStable(logs, func(i, j int) bool { return logs[i].Date < logs[j].Date })

	xp := ChartSeries{
		Labels: make([]string, 0, len(logs)),
		Data:   make([]int, 0, len(logs)),
	}
	running := 0
	for _, e := range logs {
		running += e.XP
		xp.Labels = append(xp.Labels, e.Date)
		xp.Data = append(xp.Data, running)
	}

	refs := make([]domain.ReflectionEntry, len(user.Reflections))
	copy(refs, user.Reflections)
	sort.SliceStable(refs, func(i, j int) bool { return refs[i].Date < refs[j].Date })

	// Reflections have no score; each one charts as 1 to show consistency.
	consistency := ChartSeries{
		Labels: make([]string, 0, len(refs)),
		Data:   make([]int, 0, len(refs)),
	}
	for _, r := range refs {
		consistency.Labels = append(consistency.Labels, r.Date)
		consistency.Data = append(consistency.Data, 1)
	}

	return &Charts{XPChart: xp, ConsistencyChart: consistency}, nil
}
