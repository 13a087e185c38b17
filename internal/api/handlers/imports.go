package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/donaldgifford/ebay-catalog-importer/internal/engine"
	"github.com/donaldgifford/ebay-catalog-importer/internal/store"
	domain "github.com/donaldgifford/ebay-catalog-importer/pkg/types"
)

// ImportStarter starts a quota-charged import. *engine.Service implements it.
type ImportStarter interface {
	StartImport(ctx context.Context, shop string, options domain.ImportOptions) (*engine.IntakeResult, error)
}

// ImportJobReader defines the store methods required to report job status.
type ImportJobReader interface {
	GetImportJob(ctx context.Context, id string) (*domain.ImportJob, error)
	ListImportJobs(ctx context.Context, q *store.JobQuery) ([]domain.ImportJob, int, error)
}

// ImportsHandler handles import job requests.
type ImportsHandler struct {
	svc  ImportStarter
	jobs ImportJobReader
}

// NewImportsHandler creates a new ImportsHandler.
func NewImportsHandler(svc ImportStarter, jobs ImportJobReader) *ImportsHandler {
	return &ImportsHandler{svc: svc, jobs: jobs}
}

// StartImportInput is the request body for starting an import.
type StartImportInput struct {
	Body struct {
		ImportOptions domain.ImportOptions `json:"importOptions,omitempty" doc:"Opaque import options forwarded with the job"`
	}
}

// StartImportOutput is 202 with a job id when work was queued, or 200 with
// a message when the seller had nothing to import.
type StartImportOutput struct {
	Status int
	Body   struct {
		JobID      string     `json:"jobId,omitempty"   example:"5f0c6b0e-3a53-4a4b-9d2e-6c1f1c1a7f10"`
		TotalItems int        `json:"totalItems"        example:"120"`
		ETA        *time.Time `json:"eta,omitempty"     example:"2026-10-17T12:00:18Z"`
		Message    string     `json:"message,omitempty" example:"No items found to import"`
	}
}

// StartImport probes the seller and queues an import job.
func (h *ImportsHandler) StartImport(ctx context.Context, input *StartImportInput) (*StartImportOutput, error) {
	shop, err := shopFrom(ctx)
	if err != nil {
		return nil, err
	}

	res, err := h.svc.StartImport(ctx, shop, input.Body.ImportOptions)
	if err != nil {
		return nil, statusError("starting import", err)
	}

	resp := &StartImportOutput{}
	if res.TotalItems == 0 {
		resp.Status = http.StatusOK
		resp.Body.Message = "No items found to import"
		return resp, nil
	}

	eta := res.ETA.UTC()
	resp.Status = http.StatusAccepted
	resp.Body.JobID = res.JobID
	resp.Body.TotalItems = res.TotalItems
	resp.Body.ETA = &eta
	return resp, nil
}

// ListImportsInput holds the query parameters for listing jobs.
type ListImportsInput struct {
	Status string `query:"status" required:"false" enum:"queued,running,completed,partially_failed,failed" doc:"Filter by status"`
	Limit  int    `query:"limit"  required:"false" minimum:"0" maximum:"200"                                 doc:"Page size (default 50)"`
	Offset int    `query:"offset" required:"false" minimum:"0"                                               doc:"Jobs to skip"`
}

// ListImportsOutput is the response body for listing jobs.
type ListImportsOutput struct {
	Body struct {
		Jobs  []domain.ImportJob `json:"jobs"`
		Total int                `json:"total" example:"3"`
	}
}

// ListImports returns the tenant's import jobs, newest first.
func (h *ImportsHandler) ListImports(ctx context.Context, input *ListImportsInput) (*ListImportsOutput, error) {
	shop, err := shopFrom(ctx)
	if err != nil {
		return nil, err
	}

	q := &store.JobQuery{ShopDomain: shop, Limit: input.Limit, Offset: input.Offset}
	if input.Status != "" {
		s := domain.JobStatus(input.Status)
		q.Status = &s
	}

	jobs, total, err := h.jobs.ListImportJobs(ctx, q)
	if err != nil {
		return nil, huma.Error500InternalServerError("listing import jobs failed: " + err.Error())
	}
	if jobs == nil {
		jobs = []domain.ImportJob{}
	}

	resp := &ListImportsOutput{}
	resp.Body.Jobs = jobs
	resp.Body.Total = total
	return resp, nil
}

// GetImportInput is the request path for a single job.
type GetImportInput struct {
	ID string `path:"id" doc:"Import job id"`
}

// GetImportOutput is the response body for a single job.
type GetImportOutput struct {
	Body *domain.ImportJob
}

// GetImport returns one job with its progress and page failures. Jobs of
// other shops read as not found.
func (h *ImportsHandler) GetImport(ctx context.Context, input *GetImportInput) (*GetImportOutput, error) {
	shop, err := shopFrom(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := uuid.Parse(input.ID); err != nil {
		return nil, huma.Error404NotFound("import job not found")
	}

	job, err := h.jobs.GetImportJob(ctx, input.ID)
	if errors.Is(err, domain.ErrJobNotFound) {
		return nil, huma.Error404NotFound("import job not found")
	}
	if err != nil {
		return nil, huma.Error500InternalServerError("getting import job failed: " + err.Error())
	}
	if job.ShopDomain != shop {
		return nil, huma.Error404NotFound("import job not found")
	}
	if job.PageFailures == nil {
		job.PageFailures = []domain.PageFailure{}
	}

	return &GetImportOutput{Body: job}, nil
}

// RegisterImportRoutes registers import endpoints with the Huma API.
func RegisterImportRoutes(api huma.API, h *ImportsHandler) {
	huma.Register(api, huma.Operation{
		OperationID:   "start-import",
		Method:        http.MethodPost,
		Path:          "/api/v1/imports",
		Summary:       "Start an import",
		Description:   "Counts the seller's listings and queues an import job. Charged against the tenant quota.",
		Tags:          []string{"imports"},
		DefaultStatus: http.StatusAccepted,
		Errors: []int{
			http.StatusBadRequest,
			http.StatusUnauthorized,
			http.StatusTooManyRequests,
			http.StatusInternalServerError,
		},
	}, h.StartImport)

	huma.Register(api, huma.Operation{
		OperationID: "list-imports",
		Method:      http.MethodGet,
		Path:        "/api/v1/imports",
		Summary:     "List import jobs",
		Tags:        []string{"imports"},
		Errors:      []int{http.StatusUnauthorized, http.StatusInternalServerError},
	}, h.ListImports)

	huma.Register(api, huma.Operation{
		OperationID: "get-import",
		Method:      http.MethodGet,
		Path:        "/api/v1/imports/{id}",
		Summary:     "Get an import job",
		Description: "Returns job progress, item counts and the list of failed pages.",
		Tags:        []string{"imports"},
		Errors:      []int{http.StatusUnauthorized, http.StatusNotFound, http.StatusInternalServerError},
	}, h.GetImport)
}
