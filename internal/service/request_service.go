package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/worthtrust/market-api/internal/domain"
	"github.com/worthtrust/market-api/internal/store"
)

// RequestDetail is one entry of a request listing: the request status,
// the ad it targets, and the public identity of the ad's owner.
type RequestDetail struct {
	Status  domain.RequestStatus
	Ad      *domain.Ad
	AdOwner *domain.User
}

// RequestService provides operations for filing and listing ad requests.
type RequestService interface {
	// Create files a pending request from the user against the ad.
	// Returns store.ErrInvalidReference if the ad does not exist and
	// store.ErrDuplicateRequest if the user already requested it.
	Create(ctx context.Context, userID, adID uuid.UUID) (*domain.AdRequest, error)

	// List returns the user's requests with the target ad and its owner
	// resolved, optionally narrowed to one status. Every matching
	// request is returned.
	List(ctx context.Context, userID uuid.UUID, status domain.RequestStatus) ([]*RequestDetail, error)
}

// RequestServiceImpl implements the RequestService interface
type RequestServiceImpl struct {
	requestStore store.RequestStore
	adStore      store.AdStore
	userStore    store.UserStore
	db           *sql.DB
	logger       *slog.Logger
}

// Ensure RequestServiceImpl implements RequestService
var _ RequestService = (*RequestServiceImpl)(nil)

// NewRequestService creates a new RequestService
func NewRequestService(
	requestStore store.RequestStore,
	adStore store.AdStore,
	userStore store.UserStore,
	db *sql.DB,
	logger *slog.Logger,
) *RequestServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}

	return &RequestServiceImpl{
		requestStore: requestStore,
		adStore:      adStore,
		userStore:    userStore,
		db:           db,
		logger:       logger.With("component", "request_service"),
	}
}

// Create files a pending request inside a single transaction. Existence
// of the ad is enforced by the foreign key rather than a prior read, so
// concurrent ad deletion cannot race the insert.
func (s *RequestServiceImpl) Create(
	ctx context.Context,
	userID, adID uuid.UUID,
) (*domain.AdRequest, error) {
	req, err := domain.NewAdRequest(userID, adID)
	if err != nil {
		s.logger.Debug("failed to build request", "error", err)
		return nil, err
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.requestStore.WithTx(tx).Create(ctx, req)
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicateRequest):
			s.logger.Debug("duplicate request",
				"user_id", userID, "ad_id", adID)
		case errors.Is(err, store.ErrInvalidReference):
			s.logger.Debug("request against unknown ad",
				"user_id", userID, "ad_id", adID)
		default:
			s.logger.Error("failed to save request",
				"error", err, "user_id", userID, "ad_id", adID)
		}
		return nil, err
	}

	s.logger.Info("request created", "user_id", userID, "ad_id", adID)
	return req, nil
}

// List returns every request of the user matching the optional status,
// with the target ad and owner resolved for each entry.
func (s *RequestServiceImpl) List(
	ctx context.Context,
	userID uuid.UUID,
	status domain.RequestStatus,
) ([]*RequestDetail, error) {
	requests, err := s.requestStore.ListByUser(ctx, userID, status)
	if err != nil {
		s.logger.Error("failed to list requests", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}

	details := make([]*RequestDetail, 0, len(requests))
	for _, req := range requests {
		ad, err := s.adStore.GetByID(ctx, req.AdID)
		if err != nil {
			s.logger.Error("failed to resolve ad for request",
				"error", err, "ad_id", req.AdID)
			return nil, fmt.Errorf("failed to resolve ad: %w", err)
		}

		owner, err := s.userStore.GetByID(ctx, ad.AddedBy)
		if err != nil {
			s.logger.Error("failed to resolve ad owner",
				"error", err, "user_id", ad.AddedBy)
			return nil, fmt.Errorf("failed to resolve ad owner: %w", err)
		}

		details = append(details, &RequestDetail{
			Status:  req.Status,
			Ad:      ad,
			AdOwner: owner,
		})
	}

	return details, nil
}
