package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/worthtrust/market-api/internal/domain"
)

// AdFilter narrows List results. Zero values mean "no filter".
type AdFilter struct {
	// AddedBy restricts results to ads owned by the given user.
	AddedBy uuid.UUID

	// AdType, when non-empty, matches the ad type exactly.
	AdType domain.AdType

	// TitleContains, when non-empty, matches ads whose title contains the
	// value as a case-sensitive substring.
	TitleContains string
}

// AdStore defines the interface for ad data persistence.
type AdStore interface {
	// Create saves a new ad to the store.
	// Returns ErrInvalidReference if the owner does not exist.
	// Returns validation errors from the domain Ad if data is invalid.
	Create(ctx context.Context, ad *domain.Ad) error

	// GetByID retrieves an ad by its unique ID.
	// Returns ErrAdNotFound if the ad does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Ad, error)

	// List retrieves ads matching the filter, newest first.
	// An empty filter returns every ad.
	List(ctx context.Context, filter AdFilter) ([]*domain.Ad, error)

	// WithTx returns a new AdStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) AdStore
}
