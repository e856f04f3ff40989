// internal/models/progress.go
package models

import "time"

// MinStep and MaxStep bound the wizard's step states. A CurrentStep beyond
// MaxStep means the summary pseudo-state.
const (
	MinStep = 1
	MaxStep = 7
)

// StepSet holds completed step numbers with set semantics over a JSON-friendly
// slice. Order is insertion order.
type StepSet []int

// Add inserts a step number if not already present.
func (s *StepSet) Add(step int) {
	if s.Contains(step) {
		return
	}
	*s = append(*s, step)
}

// Contains reports whether the step number is in the set.
func (s StepSet) Contains(step int) bool {
	for _, n := range s {
		if n == step {
			return true
		}
	}
	return false
}

// WizardProgress is the per-candidate persisted wizard state. One record per
// user email; written through on every mutation.
type WizardProgress struct {
	Form           ApplicationForm `json:"form"`
	CompletedSteps StepSet         `json:"completedSteps"`
	CurrentStep    int             `json:"currentStep"`
	ApplicationID  string          `json:"applicationId,omitempty"`
	Timestamp      time.Time       `json:"timestamp"`
}

// NewWizardProgress returns the state of a first wizard visit: empty form,
// step 1, nothing completed.
func NewWizardProgress() *WizardProgress {
	return &WizardProgress{
		CurrentStep: MinStep,
		Timestamp:   time.Now().UTC(),
	}
}

// Clone returns a deep copy of the record, safe to read or encode without
// holding whatever lock guards the original.
func (p *WizardProgress) Clone() WizardProgress {
	out := *p
	out.Form = p.Form.Clone()
	out.CompletedSteps = append(StepSet(nil), p.CompletedSteps...)
	return out
}

// InSummary reports whether the restored state has moved past the last step.
func (p *WizardProgress) InSummary() bool {
	return p.CurrentStep > MaxStep
}
