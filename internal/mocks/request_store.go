package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/worthtrust/market-api/internal/domain"
	"github.com/worthtrust/market-api/internal/store"
)

// MockRequestStore implements store.RequestStore for testing
type MockRequestStore struct {
	// Function fields for customizable behavior
	CreateFn     func(ctx context.Context, req *domain.AdRequest) error
	ListByUserFn func(ctx context.Context, userID uuid.UUID, status domain.RequestStatus) ([]*domain.AdRequest, error)

	// Data for default implementation
	Requests []*domain.AdRequest

	// KnownAds simulates the foreign key to ads; when non-nil, creating a
	// request against an ad not in the set fails with ErrInvalidReference.
	KnownAds map[uuid.UUID]bool

	CreateError error
	ListError   error
}

// Ensure MockRequestStore implements store.RequestStore
var _ store.RequestStore = (*MockRequestStore)(nil)

// NewMockRequestStore creates a new mock store with initialized defaults
func NewMockRequestStore() *MockRequestStore {
	return &MockRequestStore{
		Requests: make([]*domain.AdRequest, 0),
	}
}

// Create implements the RequestStore interface
func (m *MockRequestStore) Create(ctx context.Context, req *domain.AdRequest) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, req)
	}

	if m.CreateError != nil {
		return m.CreateError
	}

	if m.KnownAds != nil && !m.KnownAds[req.AdID] {
		return store.ErrInvalidReference
	}

	for _, existing := range m.Requests {
		if existing.UserID == req.UserID && existing.AdID == req.AdID {
			return store.ErrDuplicateRequest
		}
	}

	m.Requests = append(m.Requests, req)
	return nil
}

// ListByUser implements the RequestStore interface
func (m *MockRequestStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	status domain.RequestStatus,
) ([]*domain.AdRequest, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID, status)
	}

	if m.ListError != nil {
		return nil, m.ListError
	}

	matches := make([]*domain.AdRequest, 0)
	for _, req := range m.Requests {
		if req.UserID != userID {
			continue
		}
		if status != "" && req.Status != status {
			continue
		}
		matches = append(matches, req)
	}
	return matches, nil
}

// WithTx implements the RequestStore interface for transaction support
func (m *MockRequestStore) WithTx(tx *sql.Tx) store.RequestStore {
	// For mock purposes, just return the same mock
	return m
}
