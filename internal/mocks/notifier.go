package mocks

import (
	"context"
	"sync"

	"github.com/worthtrust/market-api/internal/email"
	"github.com/worthtrust/market-api/internal/events"
)

// MockNotifier implements email.Notifier for testing
type MockNotifier struct {
	SendVerificationFn func(ctx context.Context, data email.VerificationData) error

	mu        sync.Mutex
	Sent      []email.VerificationData
	SendError error
}

// Ensure MockNotifier implements email.Notifier
var _ email.Notifier = (*MockNotifier)(nil)

// SendVerification implements the Notifier interface
func (m *MockNotifier) SendVerification(ctx context.Context, data email.VerificationData) error {
	if m.SendVerificationFn != nil {
		return m.SendVerificationFn(ctx, data)
	}

	if m.SendError != nil {
		return m.SendError
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, data)
	return nil
}

// SentCount returns how many verification messages were recorded.
func (m *MockNotifier) SentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Sent)
}

// MockEventEmitter implements events.EventEmitter for testing
type MockEventEmitter struct {
	EmitEventFn func(ctx context.Context, event *events.Event) error

	mu        sync.Mutex
	Emitted   []*events.Event
	EmitError error
}

// Ensure MockEventEmitter implements events.EventEmitter
var _ events.EventEmitter = (*MockEventEmitter)(nil)

// EmitEvent implements the EventEmitter interface
func (m *MockEventEmitter) EmitEvent(ctx context.Context, event *events.Event) error {
	if m.EmitEventFn != nil {
		return m.EmitEventFn(ctx, event)
	}

	if m.EmitError != nil {
		return m.EmitError
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.Emitted = append(m.Emitted, event)
	return nil
}

// EmittedOfType returns the recorded events matching the given type.
func (m *MockEventEmitter) EmittedOfType(eventType string) []*events.Event {
	m.mu.Lock()
	defer m.mu.Unlock()

	matches := make([]*events.Event, 0)
	for _, event := range m.Emitted {
		if event.Type == eventType {
			matches = append(matches, event)
		}
	}
	return matches
}
