// internal/wizard/submitter/client.go

// Package submitter is the async boundary between the wizard and the remote
// staffing API. It serializes each step into the shape the API expects,
// bounds every call with a timeout, and reduces the response to one of three
// outcomes: accepted, rejected, or transport failure. It never retries.
package submitter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	chttp "carrier-portal/internal/common/http"
	"carrier-portal/internal/common/logger"
	"carrier-portal/internal/models"
)

// ErrMissingApplicationID is returned when a step 2-7 submission is attempted
// without an application identifier. The engine prevents this state; the
// guard here keeps the precondition from ever reaching the network.
var ErrMissingApplicationID = errors.New("application identifier required for steps 2-7")

// identifierKeys is the priority order for extracting the server-assigned
// application identifier from a step-1 response.
var identifierKeys = []string{"application_id", "id", "applicationId"}

type Client struct {
	baseURL       string
	httpClient    *chttp.Client
	submitTimeout time.Duration
	uploadTimeout time.Duration
	logger        logger.Logger
}

func NewClient(baseURL string, submitTimeout, uploadTimeout time.Duration, log logger.Logger) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		// Per-call bounds come from the request context; no client-level cap.
		httpClient:    chttp.NewClient(0),
		submitTimeout: submitTimeout,
		uploadTimeout: uploadTimeout,
		logger:        log.WithFields(map[string]interface{}{"component": "submitter"}),
	}
}

// Submit sends one step's fields upstream. Step 1 targets the create
// endpoint; steps 2-7 target the per-application step endpoint and require a
// non-empty applicationID.
func (c *Client) Submit(ctx context.Context, step int, form *models.ApplicationForm, applicationID, authToken string) (*Outcome, error) {
	if step != 1 && applicationID == "" {
		return nil, ErrMissingApplicationID
	}

	var url string
	if step == 1 {
		url = fmt.Sprintf("%s/api/application/step1", c.baseURL)
	} else {
		url = fmt.Sprintf("%s/api/application/%s/step%d", c.baseURL, applicationID, step)
	}

	timeout := c.submitTimeout
	if stepCarriesFiles(step, form) {
		timeout = c.uploadTimeout
	}

	body, err := json.Marshal(payloadForStep(step, form))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal step %d payload: %w", step, err)
	}

	outcome := c.post(ctx, url, bytes.NewReader(body), authToken, timeout)

	if outcome.Kind == Accepted && step == 1 && outcome.ApplicationID == "" {
		// The API accepted the create call but returned none of the known
		// identifier keys. Later steps will fail their precondition.
		c.logger.Warn("step 1 accepted without an application identifier", map[string]interface{}{
			"status": outcome.StatusCode,
		})
	}

	c.logger.Info("step submitted", map[string]interface{}{
		"step":    step,
		"outcome": string(outcome.Kind),
		"status":  outcome.StatusCode,
	})

	return outcome, nil
}

// Finalize marks the application complete upstream. No body.
func (c *Client) Finalize(ctx context.Context, applicationID, authToken string) (*FinalizeResult, error) {
	if applicationID == "" {
		return nil, ErrMissingApplicationID
	}

	url := fmt.Sprintf("%s/api/application/%s/finalize", c.baseURL, applicationID)
	outcome := c.post(ctx, url, nil, authToken, c.submitTimeout)

	switch outcome.Kind {
	case Accepted:
		return &FinalizeResult{Success: true, Message: outcome.Reason}, nil
	default:
		msg := outcome.Reason
		if msg == "" {
			msg = "finalization failed"
		}
		return &FinalizeResult{Success: false, Message: msg}, nil
	}
}

// post issues the call and reduces the response to an Outcome. Every failure
// mode maps to a value, never a returned error: the wizard's policy decisions
// live in the engine, not here.
func (c *Client) post(ctx context.Context, url string, body io.Reader, authToken string, timeout time.Duration) *Outcome {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequest(http.MethodPost, url, body)
	if err != nil {
		return &Outcome{Kind: TransportFailure, Reason: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}

	resp, err := c.httpClient.DoWithContext(ctx, req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return &Outcome{Kind: TransportFailure, Reason: "timeout", TimedOut: true}
		}
		return &Outcome{Kind: TransportFailure, Reason: "connection problem, please check your network and try again"}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Outcome{Kind: TransportFailure, Reason: "failed to read server response", StatusCode: resp.StatusCode}
	}

	// Content type is checked before any parse attempt: an HTML error page
	// must surface as a transport failure, not a decode error.
	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		return c.nonJSONOutcome(resp.StatusCode)
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return c.nonJSONOutcome(resp.StatusCode)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return &Outcome{
			Kind:        TransportFailure,
			Reason:      "session expired, please sign in again",
			StatusCode:  resp.StatusCode,
			AuthExpired: true,
		}
	}

	if fieldErrors := extractFieldErrors(parsed); len(fieldErrors) > 0 {
		return &Outcome{
			Kind:        Rejected,
			FieldErrors: fieldErrors,
			Reason:      stringField(parsed, "message"),
			StatusCode:  resp.StatusCode,
		}
	}

	if explicitFailure(parsed) {
		reason := stringField(parsed, "message")
		if reason == "" {
			reason = "the server rejected the submitted data"
		}
		return &Outcome{Kind: Rejected, Reason: reason, StatusCode: resp.StatusCode}
	}

	if resp.StatusCode >= 400 {
		return c.nonJSONOutcome(resp.StatusCode)
	}

	// Anything else counts as accepted, including responses that omit a
	// status flag entirely.
	return &Outcome{
		Kind:          Accepted,
		ApplicationID: extractApplicationID(parsed),
		Reason:        stringField(parsed, "message"),
		StatusCode:    resp.StatusCode,
	}
}

// nonJSONOutcome maps a status code to the human message shown for
// unstructured responses.
func (c *Client) nonJSONOutcome(status int) *Outcome {
	out := &Outcome{Kind: TransportFailure, StatusCode: status}
	switch {
	case status == http.StatusUnauthorized:
		out.Reason = "session expired, please sign in again"
		out.AuthExpired = true
	case status == http.StatusForbidden:
		out.Reason = "you do not have permission to perform this action"
	case status >= 500:
		out.Reason = "server error, please try again later"
	default:
		out.Reason = "unexpected response from the server, please try again"
	}
	return out
}

// extractApplicationID looks up the identifier under the documented priority
// order: application_id, data.application_id, id, applicationId.
func extractApplicationID(parsed map[string]interface{}) string {
	if id := identifierValue(parsed["application_id"]); id != "" {
		return id
	}
	if data, ok := parsed["data"].(map[string]interface{}); ok {
		if id := identifierValue(data["application_id"]); id != "" {
			return id
		}
	}
	for _, key := range identifierKeys[1:] {
		if id := identifierValue(parsed[key]); id != "" {
			return id
		}
	}
	return ""
}

func identifierValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return fmt.Sprintf("%.0f", val)
	default:
		return ""
	}
}

// extractFieldErrors reads the structured errors map the API returns on
// validation rejections: {"errors": {"field": ["msg", ...] | "msg"}}.
func extractFieldErrors(parsed map[string]interface{}) map[string][]string {
	rawErrors, ok := parsed["errors"].(map[string]interface{})
	if !ok {
		return nil
	}

	out := make(map[string][]string, len(rawErrors))
	for field, v := range rawErrors {
		switch val := v.(type) {
		case string:
			out[field] = []string{val}
		case []interface{}:
			for _, item := range val {
				if s, ok := item.(string); ok {
					out[field] = append(out[field], s)
				}
			}
		}
	}
	return out
}

// explicitFailure reports whether the response carries status:false or
// success:false.
func explicitFailure(parsed map[string]interface{}) bool {
	for _, key := range []string{"status", "success"} {
		if b, ok := parsed[key].(bool); ok && !b {
			return true
		}
	}
	return false
}

func stringField(parsed map[string]interface{}, key string) string {
	s, _ := parsed[key].(string)
	return s
}
