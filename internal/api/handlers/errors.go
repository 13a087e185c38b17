package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/ebay-catalog-importer/internal/auth"
	domain "github.com/donaldgifford/ebay-catalog-importer/pkg/types"
)

// QuotaExceededBody is the 429 response body. Used and Limit let the
// storefront render the usage without parsing the message.
type QuotaExceededBody struct {
	Message string `json:"error" example:"quota exceeded"`
	Used    int    `json:"used"  example:"250"`
	Limit   int    `json:"limit" example:"250"`
}

func (e *QuotaExceededBody) Error() string {
	return fmt.Sprintf("%s (%d/%d)", e.Message, e.Used, e.Limit)
}

// GetStatus implements huma.StatusError.
func (*QuotaExceededBody) GetStatus() int {
	return http.StatusTooManyRequests
}

// shopFrom returns the authenticated shop or a 401.
func shopFrom(ctx context.Context) (string, error) {
	shop, ok := auth.ShopFrom(ctx)
	if !ok {
		return "", huma.Error401Unauthorized("missing session")
	}
	return shop, nil
}

// statusError maps engine errors onto HTTP responses. op names the failed
// operation in 500 messages.
func statusError(op string, err error) error {
	var qe *domain.QuotaExceededError
	switch {
	case errors.As(err, &qe):
		return &QuotaExceededBody{Message: "Monthly quota exceeded. Upgrade your plan to continue.", Used: qe.Used, Limit: qe.Limit}
	case errors.Is(err, domain.ErrNotConfigured):
		return huma.Error400BadRequest("eBay seller username not configured")
	case errors.Is(err, domain.ErrCredentials):
		return huma.Error500InternalServerError("eBay credentials not configured")
	case errors.Is(err, domain.ErrUpstreamAuth):
		return huma.Error500InternalServerError(op + " failed: eBay authentication failed")
	default:
		return huma.Error500InternalServerError(op + " failed: " + err.Error())
	}
}
