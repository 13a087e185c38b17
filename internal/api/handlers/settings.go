package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"

	domain "github.com/donaldgifford/ebay-catalog-importer/pkg/types"
)

// SettingsStore defines the store methods required by the settings handler.
type SettingsStore interface {
	GetTenant(ctx context.Context, shop string) (*domain.Tenant, error)
	SaveTenantSettings(ctx context.Context, shop, sellerUsername string, window time.Duration) (*domain.Tenant, error)
}

// SettingsHandler handles tenant settings requests.
type SettingsHandler struct {
	store  SettingsStore
	window time.Duration
}

// NewSettingsHandler creates a new SettingsHandler. window is the quota
// window a newly created tenant starts with.
func NewSettingsHandler(s SettingsStore, window time.Duration) *SettingsHandler {
	return &SettingsHandler{store: s, window: window}
}

// SaveSettingsInput is the request body for saving settings.
type SaveSettingsInput struct {
	Body struct {
		EbaySellerUsername string `json:"ebaySellerUsername" required:"false" example:"acme-surplus" doc:"eBay seller whose listings are imported"`
	}
}

// SaveSettingsOutput is the response body for saving settings.
type SaveSettingsOutput struct {
	Body struct {
		Success bool   `json:"success" example:"true"`
		Message string `json:"message" example:"Settings saved successfully"`
	}
}

// GetSettingsOutput is the response body for reading settings.
type GetSettingsOutput struct {
	Body struct {
		EbaySellerUsername string          `json:"ebaySellerUsername" example:"acme-surplus"`
		Plan               domain.PlanTier `json:"plan"               example:"free"`
		Configured         bool            `json:"configured"         example:"true"`
	}
}

// SaveSettings stores the tenant's eBay seller, creating the tenant on
// first save.
func (h *SettingsHandler) SaveSettings(ctx context.Context, input *SaveSettingsInput) (*SaveSettingsOutput, error) {
	shop, err := shopFrom(ctx)
	if err != nil {
		return nil, err
	}

	seller := strings.TrimSpace(input.Body.EbaySellerUsername)
	if seller == "" {
		return nil, huma.Error400BadRequest("eBay seller username is required")
	}

	if _, err := h.store.SaveTenantSettings(ctx, shop, seller, h.window); err != nil {
		return nil, huma.Error500InternalServerError("saving settings failed: " + err.Error())
	}

	resp := &SaveSettingsOutput{}
	resp.Body.Success = true
	resp.Body.Message = "Settings saved successfully"
	return resp, nil
}

// GetSettings returns the tenant's settings. A shop that never saved any
// reads as unconfigured on the free plan.
func (h *SettingsHandler) GetSettings(ctx context.Context, _ *struct{}) (*GetSettingsOutput, error) {
	shop, err := shopFrom(ctx)
	if err != nil {
		return nil, err
	}

	resp := &GetSettingsOutput{}
	resp.Body.Plan = domain.PlanFree

	t, err := h.store.GetTenant(ctx, shop)
	if errors.Is(err, domain.ErrTenantNotFound) {
		return resp, nil
	}
	if err != nil {
		return nil, huma.Error500InternalServerError("loading settings failed: " + err.Error())
	}

	resp.Body.EbaySellerUsername = t.EbaySellerUsername
	resp.Body.Plan = t.Plan
	resp.Body.Configured = t.Configured()
	return resp, nil
}

// RegisterSettingsRoutes registers settings endpoints with the Huma API.
func RegisterSettingsRoutes(api huma.API, h *SettingsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "save-settings",
		Method:      http.MethodPost,
		Path:        "/api/v1/settings",
		Summary:     "Save tenant settings",
		Description: "Stores the eBay seller username listings are imported from.",
		Tags:        []string{"settings"},
		Errors:      []int{http.StatusBadRequest, http.StatusUnauthorized, http.StatusInternalServerError},
	}, h.SaveSettings)

	huma.Register(api, huma.Operation{
		OperationID: "get-settings",
		Method:      http.MethodGet,
		Path:        "/api/v1/settings",
		Summary:     "Get tenant settings",
		Tags:        []string{"settings"},
		Errors:      []int{http.StatusUnauthorized, http.StatusInternalServerError},
	}, h.GetSettings)
}
