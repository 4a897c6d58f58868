// Package dto defines data transfer objects for API requests and responses.
package dto

// ReminderRunResponse summarizes a manual reminder run.
type ReminderRunResponse struct {
	Queued  int `json:"encolados"`
	Skipped int `json:"omitidos"`
	Failed  int `json:"fallidos"`
}
