package mocks

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"github.com/worthtrust/market-api/internal/domain"
	"github.com/worthtrust/market-api/internal/store"
)

// MockAdStore implements store.AdStore for testing
type MockAdStore struct {
	// Function fields for customizable behavior
	CreateFn  func(ctx context.Context, ad *domain.Ad) error
	GetByIDFn func(ctx context.Context, id uuid.UUID) (*domain.Ad, error)
	ListFn    func(ctx context.Context, filter store.AdFilter) ([]*domain.Ad, error)

	// Data for default implementation
	Ads []*domain.Ad

	CreateError error
	ListError   error
}

// Ensure MockAdStore implements store.AdStore
var _ store.AdStore = (*MockAdStore)(nil)

// NewMockAdStore creates a new mock store with initialized defaults
func NewMockAdStore() *MockAdStore {
	return &MockAdStore{
		Ads: make([]*domain.Ad, 0),
	}
}

// Create implements the AdStore interface
func (m *MockAdStore) Create(ctx context.Context, ad *domain.Ad) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, ad)
	}

	if m.CreateError != nil {
		return m.CreateError
	}

	m.Ads = append(m.Ads, ad)
	return nil
}

// GetByID implements the AdStore interface
func (m *MockAdStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Ad, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	for _, ad := range m.Ads {
		if ad.ID == id {
			return ad, nil
		}
	}
	return nil, store.ErrAdNotFound
}

// List implements the AdStore interface.
// The default implementation applies the filter the same way the
// PostgreSQL store does: owner scope, exact type match, case-sensitive
// title substring.
func (m *MockAdStore) List(ctx context.Context, filter store.AdFilter) ([]*domain.Ad, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, filter)
	}

	if m.ListError != nil {
		return nil, m.ListError
	}

	matches := make([]*domain.Ad, 0)
	for _, ad := range m.Ads {
		if filter.AddedBy != uuid.Nil && ad.AddedBy != filter.AddedBy {
			continue
		}
		if filter.AdType != "" && ad.AdType != filter.AdType {
			continue
		}
		if filter.TitleContains != "" && !strings.Contains(ad.Title, filter.TitleContains) {
			continue
		}
		matches = append(matches, ad)
	}
	return matches, nil
}

// WithTx implements the AdStore interface for transaction support
func (m *MockAdStore) WithTx(tx *sql.Tx) store.AdStore {
	// For mock purposes, just return the same mock
	return m
}
