// Package task runs background work on a bounded worker pool. The mail
// pipeline submits delivery tasks here so HTTP handlers never block on
// SMTP round-trips.
package task

import (
	"context"

	"github.com/google/uuid"
)

// Task type constants
const (
	// TaskTypeVerificationMail represents the task type for sending
	// email verification messages.
	TaskTypeVerificationMail = "verification_mail"
)

// Task represents a unit of background work to be processed
type Task interface {
	// ID returns the task's unique identifier
	ID() uuid.UUID

	// Type returns the task type identifier
	Type() string

	// Execute runs the task logic
	Execute(ctx context.Context) error
}
