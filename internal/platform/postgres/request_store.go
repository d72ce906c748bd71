package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/worthtrust/market-api/internal/domain"
	"github.com/worthtrust/market-api/internal/platform/logger"
	"github.com/worthtrust/market-api/internal/store"
)

// PostgresRequestStore implements the store.RequestStore interface
// using a PostgreSQL database as the storage backend.
type PostgresRequestStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresRequestStore creates a new PostgreSQL implementation of the RequestStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresRequestStore(db store.DBTX, logger *slog.Logger) *PostgresRequestStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresRequestStore{
		db:     db,
		logger: logger.With(slog.String("component", "request_store")),
	}
}

// Ensure PostgresRequestStore implements store.RequestStore interface
var _ store.RequestStore = (*PostgresRequestStore)(nil)

// WithTx implements store.RequestStore.WithTx
// It returns a new store bound to the given transaction.
func (s *PostgresRequestStore) WithTx(tx *sql.Tx) store.RequestStore {
	return &PostgresRequestStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.RequestStore.Create
// The (user_id, ad_id) primary key makes repeat requests a unique
// violation, which surfaces as store.ErrDuplicateRequest.
// Returns store.ErrInvalidReference if the ad or user does not exist.
func (s *PostgresRequestStore) Create(ctx context.Context, req *domain.AdRequest) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := req.Validate(); err != nil {
		log.Warn("request validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", req.UserID.String()),
			slog.String("ad_id", req.AdID.String()))
		return err
	}

	query := `
		INSERT INTO requests (user_id, ad_id, status, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		req.UserID,
		req.AdID,
		req.Status,
		req.CreatedAt,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("duplicate request",
				slog.String("user_id", req.UserID.String()),
				slog.String("ad_id", req.AdID.String()))
			return MapUniqueViolation(err, store.ErrDuplicateRequest)
		}

		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during request creation",
				slog.String("user_id", req.UserID.String()),
				slog.String("ad_id", req.AdID.String()))
			return fmt.Errorf("%w: ad with ID %s not found",
				store.ErrInvalidReference, req.AdID)
		}

		log.Error("failed to create request",
			slog.String("error", err.Error()),
			slog.String("user_id", req.UserID.String()),
			slog.String("ad_id", req.AdID.String()))
		return MapError(err)
	}

	log.Info("request created successfully",
		slog.String("user_id", req.UserID.String()),
		slog.String("ad_id", req.AdID.String()),
		slog.String("status", string(req.Status)))
	return nil
}

// ListByUser implements store.RequestStore.ListByUser
// Returns every request filed by the user, optionally narrowed to one
// status, newest first.
func (s *PostgresRequestStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	status domain.RequestStatus,
) ([]*domain.AdRequest, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT user_id, ad_id, status, created_at
		FROM requests
		WHERE user_id = $1
	`
	args := []any{userID}

	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list requests",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	requests := make([]*domain.AdRequest, 0)
	for rows.Next() {
		var req domain.AdRequest

		err := rows.Scan(
			&req.UserID,
			&req.AdID,
			&req.Status,
			&req.CreatedAt,
		)
		if err != nil {
			log.Error("failed to scan request row",
				slog.String("error", err.Error()))
			return nil, MapError(err)
		}

		requests = append(requests, &req)
	}

	if err := rows.Err(); err != nil {
		log.Error("error iterating request rows",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	log.Debug("requests listed",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(requests)))
	return requests, nil
}
