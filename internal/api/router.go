// Package api assembles the HTTP surface of the catalog importer: the Echo
// middleware stack, the Huma operations, and the operational endpoints.
package api

import (
	"log/slog"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/donaldgifford/ebay-catalog-importer/api/openapi"
	"github.com/donaldgifford/ebay-catalog-importer/internal/api/handlers"
	mw "github.com/donaldgifford/ebay-catalog-importer/internal/api/middleware"
)

// Deps are the handlers mounted by NewRouter.
type Deps struct {
	Verifier    mw.TokenVerifier
	CORSOrigins []string
	Version     string
	Logger      *slog.Logger
	// OperatorToken guards /ops/. Empty closes those routes.
	OperatorToken string

	Health   *handlers.HealthHandler
	Settings *handlers.SettingsHandler
	Lookup   *handlers.LookupHandler
	Imports  *handlers.ImportsHandler
	Quota    *handlers.QuotaHandler
	Jobs     *handlers.JobsHandler
}

// NewRouter builds the Echo instance and the Huma API registered on it.
func NewRouter(d Deps) (*echo.Echo, huma.API) {
	log := d.Logger
	if log == nil {
		log = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(mw.Recovery(log))
	e.Use(mw.RequestLog(log))
	e.Use(mw.Metrics())
	if len(d.CORSOrigins) > 0 {
		e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
			AllowOrigins:  d.CORSOrigins,
			AllowHeaders:  []string{echo.HeaderAuthorization, echo.HeaderContentType, "X-Request-ID"},
			ExposeHeaders: []string{"X-Request-ID"},
		}))
	}
	if d.Verifier != nil {
		e.Use(mw.Session(d.Verifier, log))
	}
	e.Use(mw.Operator(d.OperatorToken, log))

	if d.Health != nil {
		e.GET("/healthz", d.Health.Healthz)
		e.GET("/readyz", d.Health.Readyz)
	}
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	openapi.RegisterRoutes(e)

	version := d.Version
	if version == "" {
		version = "dev"
	}
	cfg := huma.DefaultConfig("eBay Catalog Importer API", version)
	cfg.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"sessionToken":  {Type: "http", Scheme: "bearer", BearerFormat: "JWT"},
		"operatorToken": {Type: "http", Scheme: "bearer"},
	}
	cfg.Security = []map[string][]string{{"sessionToken": {}}}
	humaAPI := humaecho.New(e, cfg)

	if d.Settings != nil {
		handlers.RegisterSettingsRoutes(humaAPI, d.Settings)
	}
	if d.Lookup != nil {
		handlers.RegisterLookupRoutes(humaAPI, d.Lookup)
	}
	if d.Imports != nil {
		handlers.RegisterImportRoutes(humaAPI, d.Imports)
	}
	if d.Quota != nil {
		handlers.RegisterQuotaRoutes(humaAPI, d.Quota)
	}
	if d.Jobs != nil {
		handlers.RegisterJobRoutes(humaAPI, d.Jobs)
	}

	return e, humaAPI
}
