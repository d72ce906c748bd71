package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/worthtrust/market-api/internal/domain"
	"github.com/worthtrust/market-api/internal/store"
)

// CreateAdParams carries the fields accepted when publishing an ad.
type CreateAdParams struct {
	Title           string
	City            string
	ZipCode         string
	Description     string
	ValueEstimation float64
	AdType          domain.AdType
}

// AdService provides ad publishing and discovery operations.
type AdService interface {
	// Create publishes a new ad owned by the given user.
	Create(ctx context.Context, ownerID uuid.UUID, params CreateAdParams) (*domain.Ad, error)

	// ListOwned returns the caller's own ads, optionally narrowed by an
	// exact ad type match and a case-sensitive title substring.
	ListOwned(ctx context.Context, ownerID uuid.UUID, adType domain.AdType, titleContains string) ([]*domain.Ad, error)

	// Search returns ads from every user with the same optional filters.
	Search(ctx context.Context, adType domain.AdType, titleContains string) ([]*domain.Ad, error)
}

// AdServiceImpl implements the AdService interface
type AdServiceImpl struct {
	adStore store.AdStore
	db      *sql.DB
	logger  *slog.Logger
}

// Ensure AdServiceImpl implements AdService
var _ AdService = (*AdServiceImpl)(nil)

// NewAdService creates a new AdService
func NewAdService(adStore store.AdStore, db *sql.DB, logger *slog.Logger) *AdServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}

	return &AdServiceImpl{
		adStore: adStore,
		db:      db,
		logger:  logger.With("component", "ad_service"),
	}
}

// Create publishes a new ad inside a single transaction.
func (s *AdServiceImpl) Create(
	ctx context.Context,
	ownerID uuid.UUID,
	params CreateAdParams,
) (*domain.Ad, error) {
	ad, err := domain.NewAd(
		ownerID,
		params.Title,
		params.City,
		params.ZipCode,
		params.Description,
		params.ValueEstimation,
		params.AdType,
	)
	if err != nil {
		s.logger.Debug("failed to build ad from params", "error", err)
		return nil, err
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.adStore.WithTx(tx).Create(ctx, ad)
	})
	if err != nil {
		s.logger.Error("failed to save ad", "error", err, "owner_id", ownerID)
		return nil, err
	}

	s.logger.Info("ad created", "ad_id", ad.ID, "owner_id", ownerID)
	return ad, nil
}

// ListOwned returns the caller's own ads.
func (s *AdServiceImpl) ListOwned(
	ctx context.Context,
	ownerID uuid.UUID,
	adType domain.AdType,
	titleContains string,
) ([]*domain.Ad, error) {
	ads, err := s.adStore.List(ctx, store.AdFilter{
		AddedBy:       ownerID,
		AdType:        adType,
		TitleContains: titleContains,
	})
	if err != nil {
		s.logger.Error("failed to list owned ads", "error", err, "owner_id", ownerID)
		return nil, fmt.Errorf("failed to list ads: %w", err)
	}
	return ads, nil
}

// Search returns ads from every user.
func (s *AdServiceImpl) Search(
	ctx context.Context,
	adType domain.AdType,
	titleContains string,
) ([]*domain.Ad, error) {
	ads, err := s.adStore.List(ctx, store.AdFilter{
		AdType:        adType,
		TitleContains: titleContains,
	})
	if err != nil {
		s.logger.Error("failed to search ads", "error", err)
		return nil, fmt.Errorf("failed to search ads: %w", err)
	}
	return ads, nil
}
