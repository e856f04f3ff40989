// internal/wizard/summary/summary.go

// Package summary renders the post-wizard review screen and drives
// finalization. Finalization degrades gracefully: the candidate always sees a
// confirmation, with a warning attached when the upstream call failed.
package summary

import (
	"context"
	stderrors "errors"

	"carrier-portal/internal/common/errors"
	"carrier-portal/internal/common/logger"
	"carrier-portal/internal/common/metrics"
	"carrier-portal/internal/models"
	"carrier-portal/internal/notify"
	"carrier-portal/internal/wizard/progress"
	"carrier-portal/internal/wizard/submitter"
	"carrier-portal/pkg/steps"
)

// PendingReference is shown when no application identifier was ever assigned.
const PendingReference = "PENDING"

// Finalizer is the summary service's view of the upstream boundary.
type Finalizer interface {
	Finalize(ctx context.Context, applicationID, authToken string) (*submitter.FinalizeResult, error)
}

// StepLine is one row of the review screen.
type StepLine struct {
	Number    int    `json:"number"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// View is the rendered summary.
type View struct {
	Reference string     `json:"reference"`
	Steps     []StepLine `json:"steps"`
}

// Confirmation is the terminal screen after finalization.
type Confirmation struct {
	Reference string `json:"reference"`
	Message   string `json:"message"`
	Warning   string `json:"warning,omitempty"`
}

type Service struct {
	finalize Finalizer
	store    progress.Store
	notifier notify.Notifier
	logger   logger.Logger
}

func NewService(finalizer Finalizer, store progress.Store, notifier notify.Notifier, log logger.Logger) *Service {
	return &Service{
		finalize: finalizer,
		store:    store,
		notifier: notifier,
		logger:   log.WithFields(map[string]interface{}{"component": "wizard-summary"}),
	}
}

// Render builds the review screen from persisted progress.
func (s *Service) Render(state *models.WizardProgress) View {
	lines := make([]StepLine, 0, steps.Count())
	for _, step := range steps.All() {
		lines = append(lines, StepLine{
			Number:    step.Number,
			Title:     step.Title,
			Completed: state.CompletedSteps.Contains(step.Number),
		})
	}
	return View{Reference: referenceFor(state.ApplicationID), Steps: lines}
}

// Finalize marks the application submitted upstream, clears persisted
// progress, and sends the confirmation email. Upstream failure is reported as
// a warning on the confirmation, never as an error to the candidate.
func (s *Service) Finalize(ctx context.Context, state *models.WizardProgress, authToken string) Confirmation {
	conf := Confirmation{
		Reference: referenceFor(state.ApplicationID),
		Message:   "Your application has been submitted. Our team will review it and reach out shortly.",
	}

	result, err := s.finalize.Finalize(ctx, state.ApplicationID, authToken)
	if err != nil || !result.Success {
		if err == nil {
			err = stderrors.New(result.Message)
		}
		ferr := errors.NewFinalizeFailedError(state.ApplicationID, err)
		s.logger.Warn("finalization did not complete upstream", map[string]interface{}{
			"applicationId": state.ApplicationID,
			"code":          string(ferr.Code),
			"reason":        ferr.Details,
		})
		metrics.WizardFinalizations.WithLabelValues("failed").Inc()
		conf.Warning = "We could not confirm your submission with our system. Your answers are saved; our team will follow up."
		return conf
	}

	metrics.WizardFinalizations.WithLabelValues("succeeded").Inc()

	if err := s.store.Delete(ctx, progress.Key(state.Form.Email)); err != nil {
		s.logger.Warn("failed to clear persisted progress after finalization", map[string]interface{}{
			"email": state.Form.Email,
			"error": err.Error(),
		})
	}

	if s.notifier != nil {
		if err := s.notifier.SendConfirmation(ctx, state.Form.Email, state.Form.FullName, conf.Reference); err != nil {
			s.logger.Warn("confirmation email not sent", map[string]interface{}{
				"email": state.Form.Email,
				"error": err.Error(),
			})
		}
	}

	return conf
}

func referenceFor(applicationID string) string {
	if applicationID == "" {
		return PendingReference
	}
	return applicationID
}
