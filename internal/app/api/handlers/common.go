package handlers

import "time"

// ErrorResponse is the plain error body of the mobile-facing endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}
