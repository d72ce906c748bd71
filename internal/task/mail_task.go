package task

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/worthtrust/market-api/internal/email"
)

// VerificationMailTask delivers one email verification message.
type VerificationMailTask struct {
	id       uuid.UUID
	notifier email.Notifier
	data     email.VerificationData
}

// Ensure VerificationMailTask implements Task
var _ Task = (*VerificationMailTask)(nil)

// NewVerificationMailTask creates a task that sends the verification
// message described by data through the given notifier.
func NewVerificationMailTask(
	notifier email.Notifier,
	data email.VerificationData,
) (*VerificationMailTask, error) {
	if notifier == nil {
		return nil, fmt.Errorf("notifier cannot be nil")
	}
	if data.Email == "" {
		return nil, fmt.Errorf("recipient email cannot be empty")
	}

	return &VerificationMailTask{
		id:       uuid.New(),
		notifier: notifier,
		data:     data,
	}, nil
}

// ID implements Task.ID
func (t *VerificationMailTask) ID() uuid.UUID {
	return t.id
}

// Type implements Task.Type
func (t *VerificationMailTask) Type() string {
	return TaskTypeVerificationMail
}

// Execute implements Task.Execute
func (t *VerificationMailTask) Execute(ctx context.Context) error {
	return t.notifier.SendVerification(ctx, t.data)
}
