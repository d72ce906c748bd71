package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/worthtrust/market-api/internal/email"
	"github.com/worthtrust/market-api/internal/events"
)

// VerificationMailPayload is the event payload services emit when a user
// needs a verification message. Services serialize it into an
// events.Event so they never import this package directly.
type VerificationMailPayload struct {
	Email     string `json:"email"`
	GivenName string `json:"given_name"`
	VerifyURL string `json:"verify_url"`
}

// MailEventHandler implements the events.EventHandler interface.
// It converts verification mail events into delivery tasks and submits
// them to the runner, so sending happens off the request goroutine.
type MailEventHandler struct {
	notifier email.Notifier
	runner   *Runner
	logger   *slog.Logger
}

// Ensure MailEventHandler implements events.EventHandler
var _ events.EventHandler = (*MailEventHandler)(nil)

// NewMailEventHandler creates an event handler that builds mail tasks
// from events and submits them to the provided runner.
func NewMailEventHandler(
	notifier email.Notifier,
	runner *Runner,
	logger *slog.Logger,
) *MailEventHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &MailEventHandler{
		notifier: notifier,
		runner:   runner,
		logger:   logger.With(slog.String("component", "mail_event_handler")),
	}
}

// HandleEvent processes verification mail events. Events of other types
// are ignored so additional handlers can share the same emitter.
func (h *MailEventHandler) HandleEvent(ctx context.Context, event *events.Event) error {
	if event.Type != TaskTypeVerificationMail {
		h.logger.Debug("ignoring event with unsupported type",
			"event_type", event.Type,
			"event_id", event.ID)
		return nil
	}

	var payload VerificationMailPayload
	if err := event.UnmarshalPayload(&payload); err != nil {
		h.logger.Error("failed to unmarshal payload", "error", err, "event_id", event.ID)
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	mailTask, err := NewVerificationMailTask(h.notifier, email.VerificationData{
		Email:     payload.Email,
		GivenName: payload.GivenName,
		VerifyURL: payload.VerifyURL,
	})
	if err != nil {
		h.logger.Error("failed to create mail task", "error", err, "event_id", event.ID)
		return fmt.Errorf("failed to create mail task: %w", err)
	}

	if err := h.runner.Submit(ctx, mailTask); err != nil {
		h.logger.Error("failed to submit mail task",
			"error", err,
			"task_id", mailTask.ID(),
			"event_id", event.ID)
		return fmt.Errorf("failed to submit mail task: %w", err)
	}

	h.logger.Debug("mail task submitted",
		"task_id", mailTask.ID(),
		"event_id", event.ID)
	return nil
}
