// internal/wizard/engine/engine.go

// Package engine coordinates the application wizard: step transitions,
// per-step validation, upstream submission, and write-through persistence of
// progress. One Engine owns one candidate's wizard state; the gateway holds
// one per authenticated session.
package engine

import (
	"context"
	stderrors "errors"
	"strconv"
	"sync"
	"time"

	"carrier-portal/internal/common/auth"
	"carrier-portal/internal/common/errors"
	"carrier-portal/internal/common/logger"
	"carrier-portal/internal/common/metrics"
	"carrier-portal/internal/models"
	"carrier-portal/internal/wizard/progress"
	"carrier-portal/internal/wizard/submitter"
	"carrier-portal/internal/wizard/validator"
)

// ErrSubmissionInFlight is returned when Next is called while a previous
// submission has not resolved. At most one submission is outstanding per
// engine.
var ErrSubmissionInFlight = stderrors.New("a submission is already in flight")

// ErrUnknownField is returned by Edit for a field name outside the form.
var ErrUnknownField = stderrors.New("unknown form field")

// StepSubmitter is the engine's view of the upstream boundary.
type StepSubmitter interface {
	Submit(ctx context.Context, step int, form *models.ApplicationForm, applicationID, authToken string) (*submitter.Outcome, error)
}

type Config struct {
	Email     string
	Token     string
	Guard     *auth.Guard
	Store     progress.Store
	Submitter StepSubmitter
	Logger    logger.Logger
}

type Engine struct {
	mu      sync.Mutex
	email   string
	token   string
	guard   *auth.Guard
	store   progress.Store
	submit  StepSubmitter
	logger  logger.Logger
	state   *models.WizardProgress
	loading bool
}

func New(cfg Config) *Engine {
	return &Engine{
		email:  cfg.Email,
		token:  cfg.Token,
		guard:  cfg.Guard,
		store:  cfg.Store,
		submit: cfg.Submitter,
		logger: cfg.Logger.WithFields(map[string]interface{}{"component": "wizard-engine"}),
	}
}

// NextResult reports what happened on one Next call. Exactly one of
// ValidationError or Outcome is set when the call returned nil error.
type NextResult struct {
	Advanced        bool                     `json:"advanced"`
	ValidationError *models.ValidationError  `json:"validationError,omitempty"`
	Outcome         *submitter.Outcome       `json:"outcome,omitempty"`
	MissingFields   []string                 `json:"missingFields,omitempty"`
	EnteredSummary  bool                     `json:"enteredSummary"`
}

// Snapshot is a copy of the engine state safe to render from.
type Snapshot struct {
	Email          string                 `json:"email"`
	CurrentStep    int                    `json:"currentStep"`
	CompletedSteps []int                  `json:"completedSteps"`
	ApplicationID  string                 `json:"applicationId,omitempty"`
	InSummary      bool                   `json:"inSummary"`
	Form           models.ApplicationForm `json:"form"`
}

// Start checks the session token and restores persisted progress for the
// candidate, creating a fresh record on first visit. An absent or expired
// token is fatal before any store state is touched.
func (e *Engine) Start(ctx context.Context) error {
	claims, err := e.guard.DecodeAndValidateToken(e.token)
	if err != nil {
		return err
	}
	if e.email == "" {
		e.email = claims.Email
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	restored, err := e.store.Get(ctx, progress.Key(e.email))
	if err != nil {
		return errors.NewProgressLoadFailedError(err)
	}

	if restored != nil {
		e.state = restored
		e.logger.Info("wizard progress restored", map[string]interface{}{
			"email":       e.email,
			"currentStep": restored.CurrentStep,
			"completed":   len(restored.CompletedSteps),
		})
		return nil
	}

	e.state = models.NewWizardProgress()
	e.state.Form.Email = e.email
	return e.persistLocked(ctx)
}

// Next validates the current step, submits it upstream, and advances. Local
// validation failure surfaces one error and never reaches the network.
// Upstream rejection and transport failure are surfaced but do not block
// advancement; only auth expiry is fatal.
func (e *Engine) Next(ctx context.Context) (*NextResult, error) {
	e.mu.Lock()
	if e.loading {
		e.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}
	if _, err := e.guard.DecodeAndValidateToken(e.token); err != nil {
		e.mu.Unlock()
		return nil, err
	}

	step := e.state.CurrentStep
	if step > models.MaxStep {
		e.mu.Unlock()
		return &NextResult{EnteredSummary: true}, nil
	}

	if vr := validator.Validate(step, &e.state.Form); !vr.Valid {
		e.mu.Unlock()
		metrics.WizardStepFailures.WithLabelValues(strconv.Itoa(step), string(errors.ErrCodeValidationFailed)).Inc()
		return &NextResult{ValidationError: &vr.Errors[0]}, nil
	}

	// The submitter reads the copy outside the lock while edits keep landing
	// on the live form, so it must not share backing arrays.
	formCopy := e.state.Form.Clone()
	applicationID := e.state.ApplicationID
	e.loading = true
	e.mu.Unlock()

	started := time.Now()
	outcome, err := e.submit.Submit(ctx, step, &formCopy, applicationID, e.token)
	metrics.WizardSubmitDuration.WithLabelValues(strconv.Itoa(step)).Observe(time.Since(started).Seconds())

	e.mu.Lock()
	defer e.mu.Unlock()
	e.loading = false

	if err != nil {
		// Precondition violation: steps 2-7 without an identifier. The
		// candidate stays on the step.
		e.logger.Error("step submission precondition failed", map[string]interface{}{
			"step":  step,
			"error": err.Error(),
		})
		return nil, err
	}

	metrics.WizardStepsSubmitted.WithLabelValues(strconv.Itoa(step), string(outcome.Kind)).Inc()

	if outcome.AuthExpired {
		return nil, errors.NewAuthTokenExpiredError("rejected by upstream API")
	}

	if stepErr := outcome.AsError(step); stepErr != nil {
		e.logger.Warn("step submission did not succeed upstream, advancing locally", map[string]interface{}{
			"step":    step,
			"outcome": string(outcome.Kind),
			"code":    string(stepErr.Code),
			"reason":  outcome.Reason,
		})
		metrics.WizardStepFailures.WithLabelValues(strconv.Itoa(step), string(stepErr.Code)).Inc()
	}

	if e.state.ApplicationID == "" && outcome.ApplicationID != "" {
		e.state.ApplicationID = outcome.ApplicationID
	}

	e.state.CompletedSteps.Add(step)

	result := &NextResult{Advanced: true, Outcome: outcome}
	if step == models.MaxStep {
		result.MissingFields = validator.MissingImportantFields(&e.state.Form)
		result.EnteredSummary = true
		e.state.CurrentStep = models.MaxStep + 1
	} else {
		e.state.CurrentStep = step + 1
	}

	if err := e.persistLocked(ctx); err != nil {
		e.logger.Warn("progress write-through failed", map[string]interface{}{
			"email": e.email,
			"error": err.Error(),
		})
	}

	return result, nil
}

// Prev moves back one step without validation or resubmission. No-op at the
// first step.
func (e *Engine) Prev(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.CurrentStep <= models.MinStep {
		return nil
	}
	e.state.CurrentStep--
	return e.persistLocked(ctx)
}

// GoToStep jumps to step n if n is the first step or the previous step is
// complete. Otherwise the call is a no-op and moved is false.
func (e *Engine) GoToStep(ctx context.Context, n int) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if n < models.MinStep || n > models.MaxStep {
		return false, nil
	}
	if n != models.MinStep && !e.state.CompletedSteps.Contains(n-1) {
		return false, nil
	}

	e.state.CurrentStep = n
	return true, e.persistLocked(ctx)
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	completed := make([]int, len(e.state.CompletedSteps))
	copy(completed, e.state.CompletedSteps)

	return Snapshot{
		Email:          e.email,
		CurrentStep:    e.state.CurrentStep,
		CompletedSteps: completed,
		ApplicationID:  e.state.ApplicationID,
		InSummary:      e.state.InSummary(),
		Form:           e.state.Form.Clone(),
	}
}

// Progress returns a copy of the persisted record, for the summary handoff.
func (e *Engine) Progress() models.WizardProgress {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone()
}

// Email returns the candidate email owning this session.
func (e *Engine) Email() string {
	return e.email
}

// Token returns the session bearer token.
func (e *Engine) Token() string {
	return e.token
}

func (e *Engine) persistLocked(ctx context.Context) error {
	e.state.Timestamp = time.Now().UTC()
	if err := e.store.Put(ctx, progress.Key(e.email), e.state); err != nil {
		return errors.NewProgressSaveFailedError(err)
	}
	return nil
}
