// Package openapi exports the OpenAPI 3.1 document of the catalog importer
// API and keeps the legacy /swagger paths pointing at the interactive docs.
package openapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/labstack/echo/v4"
)

// Formats accepted by Write.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// RegisterRoutes redirects the /swagger paths to Huma's docs page.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/swagger", redirectToDocs)
	e.GET("/swagger/", redirectToDocs)
	e.GET("/swagger/index.html", redirectToDocs)
}

func redirectToDocs(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, "/docs")
}

// Write renders the API's OpenAPI document to w.
func Write(w io.Writer, api huma.API, format string) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatYAML:
		data, err = api.OpenAPI().YAML()
	case FormatJSON, "":
		data, err = json.MarshalIndent(api.OpenAPI(), "", "  ")
	default:
		return fmt.Errorf("unknown format %q (want json or yaml)", format)
	}
	if err != nil {
		return fmt.Errorf("rendering OpenAPI document: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing OpenAPI document: %w", err)
	}
	return nil
}
