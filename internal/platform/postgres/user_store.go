package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/worthtrust/market-api/internal/domain"
	"github.com/worthtrust/market-api/internal/platform/logger"
	"github.com/worthtrust/market-api/internal/store"
)

// userColumns is the canonical column list shared by all user queries.
const userColumns = `id, given_name, last_name, email, hashed_password, disabled, verified,
	auth_token, city, country, address, zip_code, birthday, phone_prefix, phone_number,
	created_at, updated_at`

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the UserStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresUserStore(db store.DBTX, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// WithTx implements store.UserStore.WithTx
// It returns a new store bound to the given transaction.
func (s *PostgresUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &PostgresUserStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.UserStore.Create
// It saves a new user to the database. The HashedPassword must already be
// set by the caller; the store never sees the plaintext password.
// Returns store.ErrEmailExists if the email is already taken.
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return err
	}

	if user.HashedPassword == "" {
		return domain.ErrEmptyHashedPassword
	}

	query := `
		INSERT INTO users (id, given_name, last_name, email, hashed_password, disabled,
			verified, auth_token, city, country, address, zip_code, birthday,
			phone_prefix, phone_number, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		user.ID,
		user.GivenName,
		user.LastName,
		user.Email,
		user.HashedPassword,
		user.Disabled,
		user.Verified,
		nullString(user.AuthToken),
		user.City,
		user.Country,
		nullString(user.Address),
		user.ZipCode,
		nullString(user.Birthday),
		nullString(user.PhonePrefix),
		nullString(user.PhoneNumber),
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("duplicate email during user creation",
				slog.String("user_id", user.ID.String()))
			return MapUniqueViolation(err, store.ErrEmailExists)
		}

		log.Error("failed to create user",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return MapError(err)
	}

	log.Info("user created successfully",
		slog.String("user_id", user.ID.String()))
	return nil
}

// GetByID implements store.UserStore.GetByID
// Returns store.ErrUserNotFound if the user does not exist.
func (s *PostgresUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving user by ID", slog.String("user_id", id.String()))

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := s.scanUser(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found", slog.String("user_id", id.String()))
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user by ID",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return nil, MapError(err)
	}

	return user, nil
}

// GetByEmail implements store.UserStore.GetByEmail
// Returns store.ErrUserNotFound if the user does not exist.
func (s *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving user by email")

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := s.scanUser(s.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found by email")
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user by email",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return user, nil
}

// GetByAuthToken implements store.UserStore.GetByAuthToken
// Returns store.ErrUserNotFound if no user carries the token.
func (s *PostgresUserStore) GetByAuthToken(ctx context.Context, token string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving user by auth token")

	query := `SELECT ` + userColumns + ` FROM users WHERE auth_token = $1`

	user, err := s.scanUser(s.db.QueryRowContext(ctx, query, token))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found by auth token")
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user by auth token",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return user, nil
}

// Update implements store.UserStore.Update
// It saves the complete user state and refreshes updated_at.
// Returns store.ErrUserNotFound if the user does not exist.
// Returns store.ErrEmailExists if updating to an email that already exists.
func (s *PostgresUserStore) Update(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during update",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return err
	}

	user.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE users
		SET given_name = $1, last_name = $2, email = $3, hashed_password = $4,
			disabled = $5, verified = $6, auth_token = $7, city = $8, country = $9,
			address = $10, zip_code = $11, birthday = $12, phone_prefix = $13,
			phone_number = $14, updated_at = $15
		WHERE id = $16
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		user.GivenName,
		user.LastName,
		user.Email,
		user.HashedPassword,
		user.Disabled,
		user.Verified,
		nullString(user.AuthToken),
		user.City,
		user.Country,
		nullString(user.Address),
		user.ZipCode,
		nullString(user.Birthday),
		nullString(user.PhonePrefix),
		nullString(user.PhoneNumber),
		user.UpdatedAt,
		user.ID,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("duplicate email during user update",
				slog.String("user_id", user.ID.String()))
			return MapUniqueViolation(err, store.ErrEmailExists)
		}

		log.Error("failed to update user",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "user"); err != nil {
		log.Debug("user not found for update",
			slog.String("user_id", user.ID.String()))
		return store.ErrUserNotFound
	}

	log.Info("user updated successfully",
		slog.String("user_id", user.ID.String()))
	return nil
}

// scanUser scans one row into a domain.User, converting nullable columns.
func (s *PostgresUserStore) scanUser(row *sql.Row) (*domain.User, error) {
	var user domain.User
	var authToken, address, birthday, phonePrefix, phoneNumber sql.NullString

	err := row.Scan(
		&user.ID,
		&user.GivenName,
		&user.LastName,
		&user.Email,
		&user.HashedPassword,
		&user.Disabled,
		&user.Verified,
		&authToken,
		&user.City,
		&user.Country,
		&address,
		&user.ZipCode,
		&birthday,
		&phonePrefix,
		&phoneNumber,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.AuthToken = authToken.String
	user.Address = address.String
	user.Birthday = birthday.String
	user.PhonePrefix = phonePrefix.String
	user.PhoneNumber = phoneNumber.String

	return &user, nil
}

// nullString converts an empty string to a SQL NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
