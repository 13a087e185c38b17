package handlers_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/ebay-catalog-importer/internal/api/handlers"
	"github.com/donaldgifford/ebay-catalog-importer/internal/engine"
	domain "github.com/donaldgifford/ebay-catalog-importer/pkg/types"
)

// mockJobsProvider is a test double for JobsProvider.
type mockJobsProvider struct {
	latestRuns []domain.JobRun
	history    []domain.JobRun
	err        error
	gotTask    string
	gotLimit   int
}

func (m *mockJobsProvider) ListLatestJobRuns(_ context.Context) ([]domain.JobRun, error) {
	return m.latestRuns, m.err
}

func (m *mockJobsProvider) ListJobRuns(_ context.Context, task string, limit int) ([]domain.JobRun, error) {
	m.gotTask = task
	m.gotLimit = limit
	return m.history, m.err
}

type stubRunner struct {
	err error
	ran []string
}

func (s *stubRunner) RunNow(_ context.Context, name string) error {
	s.ran = append(s.ran, name)
	return s.err
}

func sampleJobRun(task, status string) domain.JobRun {
	now := time.Now().Truncate(time.Second)
	return domain.JobRun{
		ID:        "job-run-id-1",
		JobName:   task,
		StartedAt: now,
		Status:    status,
	}
}

func TestListJobs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		provider   *mockJobsProvider
		wantStatus int
		wantBody   []string
	}{
		{
			name: "latest run per task",
			provider: &mockJobsProvider{latestRuns: []domain.JobRun{
				sampleJobRun(engine.TaskQuotaSweep, "succeeded"),
				sampleJobRun(engine.TaskStuckReaper, "failed"),
			}},
			wantStatus: http.StatusOK,
			wantBody:   []string{engine.TaskQuotaSweep, engine.TaskStuckReaper, `"jobName"`},
		},
		{
			name:       "nil runs render as empty list",
			provider:   &mockJobsProvider{},
			wantStatus: http.StatusOK,
			wantBody:   []string{"[]"},
		},
		{
			name:       "store error",
			provider:   &mockJobsProvider{err: errors.New("db down")},
			wantStatus: http.StatusInternalServerError,
			wantBody:   []string{"listing scheduler runs failed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, api := humatest.New(t)
			handlers.RegisterJobRoutes(api, handlers.NewJobsHandler(tt.provider, nil))

			resp := api.Get("/ops/v1/scheduler/runs")
			require.Equal(t, tt.wantStatus, resp.Code)
			for _, want := range tt.wantBody {
				assert.Contains(t, resp.Body.String(), want)
			}
		})
	}
}

func TestGetJobHistory(t *testing.T) {
	t.Parallel()

	provider := &mockJobsProvider{history: []domain.JobRun{
		sampleJobRun(engine.TaskQueueCleanup, "succeeded"),
		sampleJobRun(engine.TaskQueueCleanup, "failed"),
	}}

	_, api := humatest.New(t)
	handlers.RegisterJobRoutes(api, handlers.NewJobsHandler(provider, nil))

	resp := api.Get("/ops/v1/scheduler/runs/" + engine.TaskQueueCleanup)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, engine.TaskQueueCleanup, provider.gotTask)
	assert.Equal(t, 20, provider.gotLimit)
	assert.Contains(t, resp.Body.String(), `"failed"`)
}

func TestRunTask(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		runner     *stubRunner
		task       string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "runs the task",
			runner:     &stubRunner{},
			task:       engine.TaskQuotaSweep,
			wantStatus: http.StatusOK,
			wantBody:   "quota_window_sweep completed",
		},
		{
			name:       "unknown task",
			runner:     &stubRunner{err: fmt.Errorf("%w: %q", engine.ErrUnknownTask, "nope")},
			task:       "nope",
			wantStatus: http.StatusNotFound,
			wantBody:   "unknown scheduler task",
		},
		{
			name:       "task failure",
			runner:     &stubRunner{err: errors.New("lock table missing")},
			task:       engine.TaskStuckReaper,
			wantStatus: http.StatusInternalServerError,
			wantBody:   "lock table missing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, api := humatest.New(t)
			handlers.RegisterJobRoutes(api, handlers.NewJobsHandler(&mockJobsProvider{}, tt.runner))

			resp := api.Post("/ops/v1/scheduler/runs/" + tt.task)
			require.Equal(t, tt.wantStatus, resp.Code)
			assert.Contains(t, resp.Body.String(), tt.wantBody)
			assert.Equal(t, []string{tt.task}, tt.runner.ran)
		})
	}
}

func TestRunTask_NoScheduler(t *testing.T) {
	t.Parallel()

	_, api := humatest.New(t)
	handlers.RegisterJobRoutes(api, handlers.NewJobsHandler(&mockJobsProvider{}, nil))

	resp := api.Post("/ops/v1/scheduler/runs/" + engine.TaskQuotaSweep)
	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
}
