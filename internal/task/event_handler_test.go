package task

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/worthtrust/market-api/internal/email"
	"github.com/worthtrust/market-api/internal/events"
)

// captureNotifier records verification sends for assertions.
type captureNotifier struct {
	sent chan email.VerificationData
	err  error
}

func newCaptureNotifier() *captureNotifier {
	return &captureNotifier{sent: make(chan email.VerificationData, 10)}
}

func (n *captureNotifier) SendVerification(ctx context.Context, data email.VerificationData) error {
	n.sent <- data
	return n.err
}

func TestMailEventHandler_DeliversThroughRunner(t *testing.T) {
	notifier := newCaptureNotifier()
	runner := NewRunner(RunnerConfig{WorkerCount: 1, QueueSize: 10}, nil)
	runner.Start()
	defer runner.Stop()

	handler := NewMailEventHandler(notifier, runner, nil)

	event, err := events.NewEvent(TaskTypeVerificationMail, VerificationMailPayload{
		Email:     "jane@example.com",
		GivenName: "jane",
		VerifyURL: "https://api.example.com/api/verifyemail/sometoken",
	})
	require.NoError(t, err)

	require.NoError(t, handler.HandleEvent(context.Background(), event))

	select {
	case data := <-notifier.sent:
		assert.Equal(t, "jane@example.com", data.Email)
		assert.Equal(t, "jane", data.GivenName)
		assert.Equal(t, "https://api.example.com/api/verifyemail/sometoken", data.VerifyURL)
	case <-time.After(5 * time.Second):
		t.Fatal("verification mail was not sent")
	}
}

func TestMailEventHandler_IgnoresOtherEventTypes(t *testing.T) {
	notifier := newCaptureNotifier()
	runner := NewRunner(RunnerConfig{WorkerCount: 1, QueueSize: 10}, nil)
	runner.Start()
	defer runner.Stop()

	handler := NewMailEventHandler(notifier, runner, nil)

	event, err := events.NewEvent("something_else", nil)
	require.NoError(t, err)

	require.NoError(t, handler.HandleEvent(context.Background(), event))
	assert.Empty(t, notifier.sent)
}

func TestMailEventHandler_RejectsEmptyRecipient(t *testing.T) {
	notifier := newCaptureNotifier()
	runner := NewRunner(RunnerConfig{WorkerCount: 1, QueueSize: 10}, nil)
	handler := NewMailEventHandler(notifier, runner, nil)

	event, err := events.NewEvent(TaskTypeVerificationMail, VerificationMailPayload{
		GivenName: "jane",
	})
	require.NoError(t, err)

	assert.Error(t, handler.HandleEvent(context.Background(), event))
}

func TestNewVerificationMailTask_Validation(t *testing.T) {
	notifier := newCaptureNotifier()

	_, err := NewVerificationMailTask(nil, email.VerificationData{Email: "jane@example.com"})
	assert.Error(t, err)

	_, err = NewVerificationMailTask(notifier, email.VerificationData{})
	assert.Error(t, err)

	mailTask, err := NewVerificationMailTask(notifier, email.VerificationData{Email: "jane@example.com"})
	require.NoError(t, err)
	assert.Equal(t, TaskTypeVerificationMail, mailTask.Type())
	assert.NotEqual(t, "", mailTask.ID().String())
}
