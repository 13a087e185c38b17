// Package handlers implements the HTTP operations of the catalog importer
// API. Tenant-scoped operations read the calling shop from the request
// context populated by the session middleware.
package handlers

// ErrorResponse is the standard error response body.
type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

// StatusResponse is a generic status response body.
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}
