package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/worthtrust/market-api/internal/domain"
	"github.com/worthtrust/market-api/internal/platform/logger"
	"github.com/worthtrust/market-api/internal/store"
)

// PostgresAdStore implements the store.AdStore interface
// using a PostgreSQL database as the storage backend.
type PostgresAdStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresAdStore creates a new PostgreSQL implementation of the AdStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresAdStore(db store.DBTX, logger *slog.Logger) *PostgresAdStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresAdStore{
		db:     db,
		logger: logger.With(slog.String("component", "ad_store")),
	}
}

// Ensure PostgresAdStore implements store.AdStore interface
var _ store.AdStore = (*PostgresAdStore)(nil)

// WithTx implements store.AdStore.WithTx
// It returns a new store bound to the given transaction.
func (s *PostgresAdStore) WithTx(tx *sql.Tx) store.AdStore {
	return &PostgresAdStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.AdStore.Create
// Returns store.ErrInvalidReference if the owner does not exist (foreign key violation).
func (s *PostgresAdStore) Create(ctx context.Context, ad *domain.Ad) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := ad.Validate(); err != nil {
		log.Warn("ad validation failed during create",
			slog.String("error", err.Error()),
			slog.String("ad_id", ad.ID.String()))
		return err
	}

	query := `
		INSERT INTO ads (id, added_by, title, city, zip_code, description,
			value_estimation, ad_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		ad.ID,
		ad.AddedBy,
		ad.Title,
		ad.City,
		ad.ZipCode,
		nullString(ad.Description),
		ad.ValueEstimation,
		ad.AdType,
		ad.CreatedAt,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during ad creation",
				slog.String("ad_id", ad.ID.String()),
				slog.String("added_by", ad.AddedBy.String()))
			return fmt.Errorf("%w: user with ID %s not found",
				store.ErrInvalidReference, ad.AddedBy)
		}

		log.Error("failed to create ad",
			slog.String("error", err.Error()),
			slog.String("ad_id", ad.ID.String()))
		return MapError(err)
	}

	log.Info("ad created successfully",
		slog.String("ad_id", ad.ID.String()),
		slog.String("added_by", ad.AddedBy.String()),
		slog.String("ad_type", string(ad.AdType)))
	return nil
}

// GetByID implements store.AdStore.GetByID
// Returns store.ErrAdNotFound if the ad does not exist.
func (s *PostgresAdStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Ad, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving ad by ID", slog.String("ad_id", id.String()))

	query := `
		SELECT id, added_by, title, city, zip_code, description, value_estimation,
			ad_type, created_at
		FROM ads
		WHERE id = $1
	`

	var ad domain.Ad
	var description sql.NullString

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&ad.ID,
		&ad.AddedBy,
		&ad.Title,
		&ad.City,
		&ad.ZipCode,
		&description,
		&ad.ValueEstimation,
		&ad.AdType,
		&ad.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("ad not found", slog.String("ad_id", id.String()))
			return nil, store.ErrAdNotFound
		}
		log.Error("failed to get ad by ID",
			slog.String("error", err.Error()),
			slog.String("ad_id", id.String()))
		return nil, MapError(err)
	}

	ad.Description = description.String

	return &ad, nil
}

// List implements store.AdStore.List
// It builds the WHERE clause from the filter's non-zero fields. Title
// matching is a case-sensitive substring search (LIKE, not ILIKE).
func (s *PostgresAdStore) List(ctx context.Context, filter store.AdFilter) ([]*domain.Ad, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, added_by, title, city, zip_code, description, value_estimation,
			ad_type, created_at
		FROM ads
	`

	var conditions []string
	var args []any

	if filter.AddedBy != uuid.Nil {
		args = append(args, filter.AddedBy)
		conditions = append(conditions, fmt.Sprintf("added_by = $%d", len(args)))
	}
	if filter.AdType != "" {
		args = append(args, filter.AdType)
		conditions = append(conditions, fmt.Sprintf("ad_type = $%d", len(args)))
	}
	if filter.TitleContains != "" {
		args = append(args, "%"+escapeLike(filter.TitleContains)+"%")
		conditions = append(conditions, fmt.Sprintf("title LIKE $%d", len(args)))
	}

	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list ads",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	ads := make([]*domain.Ad, 0)
	for rows.Next() {
		var ad domain.Ad
		var description sql.NullString

		err := rows.Scan(
			&ad.ID,
			&ad.AddedBy,
			&ad.Title,
			&ad.City,
			&ad.ZipCode,
			&description,
			&ad.ValueEstimation,
			&ad.AdType,
			&ad.CreatedAt,
		)
		if err != nil {
			log.Error("failed to scan ad row",
				slog.String("error", err.Error()))
			return nil, MapError(err)
		}

		ad.Description = description.String
		ads = append(ads, &ad)
	}

	if err := rows.Err(); err != nil {
		log.Error("error iterating ad rows",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	log.Debug("ads listed", slog.Int("count", len(ads)))
	return ads, nil
}

// escapeLike escapes LIKE metacharacters so filter values match literally.
func escapeLike(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '%', '_', '\\':
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}
