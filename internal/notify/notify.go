// internal/notify/notify.go

// Package notify sends candidate-facing notifications after finalization.
package notify

import "context"

// Notifier delivers the submission confirmation to a candidate.
type Notifier interface {
	SendConfirmation(ctx context.Context, toEmail, candidateName, reference string) error
}

// NoOpNotifier discards notifications. Used when email delivery is disabled.
type NoOpNotifier struct{}

func NewNoOpNotifier() *NoOpNotifier { return &NoOpNotifier{} }

func (n *NoOpNotifier) SendConfirmation(ctx context.Context, toEmail, candidateName, reference string) error {
	return nil
}
