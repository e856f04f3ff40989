// internal/models/validation.go
package models

// ValidationResult is produced fresh on every validation call.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// ValidationError identifies the first failing rule for a step. The wizard
// surfaces one error at a time, so Errors carries at most one entry.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}
