// internal/wizard/submitter/outcome.go
package submitter

import (
	stderrors "errors"
	"net/http"

	"carrier-portal/internal/common/errors"
)

// OutcomeKind classifies the result of a step submission.
type OutcomeKind string

const (
	// Accepted means the upstream API took the step data. ApplicationID may
	// still be empty on step 1 if the response carried no known identifier
	// key; later steps will then fail their precondition.
	Accepted OutcomeKind = "accepted"

	// Rejected means HTTP completed but the upstream API returned a
	// structured validation failure.
	Rejected OutcomeKind = "rejected"

	// TransportFailure covers network errors, timeouts, non-JSON responses
	// and auth failures.
	TransportFailure OutcomeKind = "transport_failure"
)

// Outcome is the interpreted result of one step submission.
type Outcome struct {
	Kind          OutcomeKind         `json:"kind"`
	ApplicationID string              `json:"applicationId,omitempty"`
	FieldErrors   map[string][]string `json:"fieldErrors,omitempty"`
	Reason        string              `json:"reason,omitempty"`
	StatusCode    int                 `json:"statusCode,omitempty"`
	AuthExpired   bool                `json:"authExpired,omitempty"`
	TimedOut      bool                `json:"timedOut,omitempty"`
}

// AsError maps a non-accepted outcome onto the portal error taxonomy, for
// logging and failure metrics. Accepted outcomes map to nil.
func (o *Outcome) AsError(step int) *errors.StandardError {
	switch {
	case o.Kind == Accepted:
		return nil
	case o.AuthExpired:
		return errors.NewAuthTokenExpiredError(o.Reason)
	case o.Kind == Rejected:
		return errors.NewStepRejectedError(step, o.Reason)
	case o.TimedOut:
		return errors.NewSubmitTimeoutError(step)
	case o.StatusCode == http.StatusForbidden:
		return errors.NewPermissionDeniedError(o.Reason)
	case o.StatusCode >= 500:
		return errors.NewServerError(o.StatusCode)
	default:
		return errors.NewTransportFailureError(stderrors.New(o.Reason))
	}
}

// FinalizeResult is the interpreted result of the finalize call.
type FinalizeResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
