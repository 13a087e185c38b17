package handlers_test

import (
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"

	"github.com/donaldgifford/ebay-catalog-importer/internal/auth"
)

const testShop = "acme.myshopify.com"

// newTenantAPI returns a test API whose requests carry shop as the
// authenticated tenant, the way the session middleware leaves them. An
// empty shop leaves requests unauthenticated.
func newTenantAPI(t *testing.T, shop string) humatest.TestAPI {
	t.Helper()

	_, api := humatest.New(t)
	if shop != "" {
		api.UseMiddleware(func(ctx huma.Context, next func(huma.Context)) {
			next(huma.WithContext(ctx, auth.WithShop(ctx.Context(), shop)))
		})
	}
	return api
}
