package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/ebay-catalog-importer/internal/engine"
	domain "github.com/donaldgifford/ebay-catalog-importer/pkg/types"
)

// JobsProvider defines the store methods required by the scheduler handler.
type JobsProvider interface {
	ListLatestJobRuns(ctx context.Context) ([]domain.JobRun, error)
	ListJobRuns(ctx context.Context, jobName string, limit int) ([]domain.JobRun, error)
}

// TaskRunner runs a scheduled task on demand. *engine.Scheduler implements it.
type TaskRunner interface {
	RunNow(ctx context.Context, name string) error
}

// JobsHandler handles scheduler run history and manual triggers.
type JobsHandler struct {
	store  JobsProvider
	runner TaskRunner
}

// NewJobsHandler creates a new JobsHandler. runner may be nil on API-only
// deployments, in which case manual triggers are rejected.
func NewJobsHandler(s JobsProvider, runner TaskRunner) *JobsHandler {
	return &JobsHandler{store: s, runner: runner}
}

// ListJobsOutput is the response body for listing the latest job runs.
type ListJobsOutput struct {
	Body []domain.JobRun
}

// GetJobHistoryInput is the request path for job history.
type GetJobHistoryInput struct {
	Task string `path:"task" doc:"Scheduled task name (e.g. quota_window_sweep, stuck_job_reaper)"`
}

// GetJobHistoryOutput is the response body for a single task's history.
type GetJobHistoryOutput struct {
	Body []domain.JobRun
}

// RunTaskOutput is the response body for a manual trigger.
type RunTaskOutput struct {
	Body StatusResponse
}

const defaultJobHistoryLimit = 20

// ListJobs returns the most recent run for each scheduled task.
func (h *JobsHandler) ListJobs(ctx context.Context, _ *struct{}) (*ListJobsOutput, error) {
	runs, err := h.store.ListLatestJobRuns(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("listing scheduler runs failed: " + err.Error())
	}

	if runs == nil {
		runs = []domain.JobRun{}
	}

	return &ListJobsOutput{Body: runs}, nil
}

// GetJobHistory returns the run history for one scheduled task.
func (h *JobsHandler) GetJobHistory(ctx context.Context, input *GetJobHistoryInput) (*GetJobHistoryOutput, error) {
	runs, err := h.store.ListJobRuns(ctx, input.Task, defaultJobHistoryLimit)
	if err != nil {
		return nil, huma.Error500InternalServerError("fetching scheduler history failed: " + err.Error())
	}

	if runs == nil {
		runs = []domain.JobRun{}
	}

	return &GetJobHistoryOutput{Body: runs}, nil
}

// RunTask runs a scheduled task immediately and waits for it.
func (h *JobsHandler) RunTask(ctx context.Context, input *GetJobHistoryInput) (*RunTaskOutput, error) {
	if h.runner == nil {
		return nil, huma.Error503ServiceUnavailable("scheduler is not running in this process")
	}

	if err := h.runner.RunNow(ctx, input.Task); err != nil {
		if errors.Is(err, engine.ErrUnknownTask) {
			return nil, huma.Error404NotFound(err.Error())
		}
		return nil, huma.Error500InternalServerError(input.Task + " failed: " + err.Error())
	}

	return &RunTaskOutput{Body: StatusResponse{Status: input.Task + " completed"}}, nil
}

// operatorSecurity marks operations served under /ops/, which take the
// operator token instead of a storefront session.
var operatorSecurity = []map[string][]string{{"operatorToken": {}}}

// RegisterJobRoutes registers the operator-only scheduler endpoints with the
// Huma API.
func RegisterJobRoutes(api huma.API, h *JobsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-scheduler-runs",
		Method:      http.MethodGet,
		Path:        "/ops/v1/scheduler/runs",
		Summary:     "List latest scheduler runs",
		Description: "Returns the most recent run record for each scheduled task.",
		Tags:        []string{"scheduler"},
		Security:    operatorSecurity,
		Errors:      []int{http.StatusInternalServerError},
	}, h.ListJobs)

	huma.Register(api, huma.Operation{
		OperationID: "get-scheduler-history",
		Method:      http.MethodGet,
		Path:        "/ops/v1/scheduler/runs/{task}",
		Summary:     "Get scheduler task history",
		Description: "Returns the run history for a scheduled task (newest first).",
		Tags:        []string{"scheduler"},
		Security:    operatorSecurity,
		Errors:      []int{http.StatusInternalServerError},
	}, h.GetJobHistory)

	huma.Register(api, huma.Operation{
		OperationID: "run-scheduler-task",
		Method:      http.MethodPost,
		Path:        "/ops/v1/scheduler/runs/{task}",
		Summary:     "Run a scheduler task now",
		Tags:        []string{"scheduler"},
		Security:    operatorSecurity,
		Errors:      []int{http.StatusNotFound, http.StatusInternalServerError, http.StatusServiceUnavailable},
	}, h.RunTask)
}
