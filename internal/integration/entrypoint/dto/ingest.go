// Package dto defines data transfer objects for API requests and responses.
package dto

// ImportRequest carries raw exported rows. Column names are normalized
// server-side, so the maps can use whatever headers the export produced.
type ImportRequest struct {
	Rows []map[string]string `json:"filas" binding:"required"`
}

// ImportResponse summarizes an import run.
type ImportResponse struct {
	Created int `json:"creados"`
	Updated int `json:"actualizados,omitempty"`
	Skipped int `json:"omitidos"`
}
