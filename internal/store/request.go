package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/worthtrust/market-api/internal/domain"
)

// RequestStore defines the interface for ad request persistence.
type RequestStore interface {
	// Create saves a new ad request to the store.
	// Returns ErrDuplicateRequest if the user already requested the ad.
	// Returns ErrInvalidReference if the referenced ad or user does not exist.
	// Returns validation errors from the domain AdRequest if data is invalid.
	Create(ctx context.Context, req *domain.AdRequest) error

	// ListByUser retrieves all requests filed by the given user, newest
	// first. When status is non-empty only requests in that status are
	// returned.
	ListByUser(
		ctx context.Context,
		userID uuid.UUID,
		status domain.RequestStatus,
	) ([]*domain.AdRequest, error)

	// WithTx returns a new RequestStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) RequestStore
}
