package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/worthtrust/market-api/internal/domain"
	"github.com/worthtrust/market-api/internal/events"
	"github.com/worthtrust/market-api/internal/service/auth"
	"github.com/worthtrust/market-api/internal/store"
)

// verificationMailEventType names the event the mail pipeline listens for.
// Kept as a string literal mirror of the task package constant to avoid a
// service -> task dependency.
const verificationMailEventType = "verification_mail"

// RegisterParams carries the fields accepted at registration.
type RegisterParams struct {
	GivenName   string
	LastName    string
	Email       string
	Password    string
	City        string
	Country     string
	Address     string
	ZipCode     string
	Birthday    string
	PhonePrefix string
	PhoneNumber string
}

// UserService provides account lifecycle operations.
type UserService interface {
	// Register creates a new user account. The password is hashed, an
	// initial token is issued and stored, and a verification mail event
	// is emitted after the transaction commits.
	// Returns store.ErrEmailExists if the email is already taken.
	Register(ctx context.Context, params RegisterParams) (*domain.User, error)

	// Login verifies the credentials and returns a fresh access token.
	// The token is persisted as the user's current auth token.
	// Returns auth.ErrInvalidCredentials if the pair does not match.
	Login(ctx context.Context, email, password string) (string, error)

	// GetUser retrieves a user by their ID.
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)

	// GetUserByEmail retrieves a user by their email address.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// Disable marks the account as disabled. Disabling an already
	// disabled account is a no-op, keeping the operation idempotent.
	Disable(ctx context.Context, userID uuid.UUID) error

	// VerifyEmail marks the account carrying the given token as verified.
	// Returns domain.ErrAlreadyVerified if verification already happened;
	// in that case the user record is left untouched.
	// Returns store.ErrUserNotFound if no account carries the token.
	VerifyEmail(ctx context.Context, token string) (*domain.User, error)

	// ResendVerification reissues the user's token, persists it and emits
	// a fresh verification mail event.
	ResendVerification(ctx context.Context, userID uuid.UUID) error
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore     store.UserStore
	jwtService    auth.JWTService
	hasher        auth.PasswordHasher
	verifier      auth.PasswordVerifier
	emitter       events.EventEmitter
	db            *sql.DB
	verifyBaseURL string
	logger        *slog.Logger
}

// Ensure UserServiceImpl implements UserService
var _ UserService = (*UserServiceImpl)(nil)

// NewUserService creates a new UserService
func NewUserService(
	userStore store.UserStore,
	jwtService auth.JWTService,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	emitter events.EventEmitter,
	db *sql.DB,
	verifyBaseURL string,
	logger *slog.Logger,
) *UserServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}

	return &UserServiceImpl{
		userStore:     userStore,
		jwtService:    jwtService,
		hasher:        hasher,
		verifier:      verifier,
		emitter:       emitter,
		db:            db,
		verifyBaseURL: verifyBaseURL,
		logger:        logger.With("component", "user_service"),
	}
}

// Register creates a new user account inside a single transaction.
func (s *UserServiceImpl) Register(ctx context.Context, params RegisterParams) (*domain.User, error) {
	user, err := domain.NewUser(params.GivenName, params.LastName, params.Email, params.Password)
	if err != nil {
		s.logger.Debug("failed to build user from registration params",
			"error", err)
		return nil, err
	}

	user.City = params.City
	user.Country = params.Country
	user.Address = params.Address
	user.ZipCode = params.ZipCode
	user.Birthday = params.Birthday
	user.PhonePrefix = params.PhonePrefix
	user.PhoneNumber = params.PhoneNumber

	// Hash the password; the plaintext never leaves this function.
	hashed, err := s.hasher.Hash(user.Password)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.HashedPassword = hashed
	user.Password = ""

	// Issue the initial token; it doubles as the verification nonce.
	token, err := s.jwtService.GenerateToken(ctx, user)
	if err != nil {
		s.logger.Error("failed to generate initial token", "error", err)
		return nil, fmt.Errorf("failed to generate initial token: %w", err)
	}
	user.AuthToken = token

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.userStore.WithTx(tx).Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			s.logger.Debug("attempted to register with existing email")
		} else {
			s.logger.Error("failed to save user", "error", err)
		}
		return nil, err
	}

	s.logger.Info("user registered", "user_id", user.ID)

	// Emit the verification mail event only after the commit, so a
	// rolled-back registration never produces mail. Delivery is
	// best-effort: a failed emit is logged and the registration stands.
	s.emitVerificationMail(ctx, user)

	return user, nil
}

// Login verifies the credentials and rotates the user's auth token.
func (s *UserServiceImpl) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("login attempt for unknown email")
			return "", auth.ErrInvalidCredentials
		}
		s.logger.Error("failed to look up user for login", "error", err)
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		s.logger.Debug("login attempt with wrong password", "user_id", user.ID)
		return "", auth.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(ctx, user)
	if err != nil {
		s.logger.Error("failed to generate token", "error", err, "user_id", user.ID)
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		current, err := txStore.GetByID(ctx, user.ID)
		if err != nil {
			return fmt.Errorf("failed to retrieve user for token update: %w", err)
		}

		current.AuthToken = token
		return txStore.Update(ctx, current)
	})
	if err != nil {
		s.logger.Error("failed to persist token", "error", err, "user_id", user.ID)
		return "", err
	}

	s.logger.Info("user logged in", "user_id", user.ID)
	return token, nil
}

// GetUser retrieves a user by their ID
func (s *UserServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		s.logger.Error("failed to retrieve user", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return user, nil
}

// GetUserByEmail retrieves a user by their email address
func (s *UserServiceImpl) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("user not found by email")
		} else {
			s.logger.Error("failed to retrieve user by email", "error", err)
		}
		return nil, fmt.Errorf("failed to retrieve user by email: %w", err)
	}
	return user, nil
}

// Disable marks the account as disabled.
func (s *UserServiceImpl) Disable(ctx context.Context, userID uuid.UUID) error {
	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		user, err := txStore.GetByID(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to retrieve user for disable: %w", err)
		}

		// Already disabled: nothing to write, stay idempotent.
		if user.Disabled {
			s.logger.Debug("disable requested for already disabled account",
				"user_id", userID)
			return nil
		}

		user.Disabled = true
		if err := txStore.Update(ctx, user); err != nil {
			return fmt.Errorf("failed to disable user: %w", err)
		}

		s.logger.Info("user disabled", "user_id", userID)
		return nil
	})
}

// VerifyEmail marks the account carrying the token as verified.
func (s *UserServiceImpl) VerifyEmail(ctx context.Context, token string) (*domain.User, error) {
	var verified *domain.User

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		user, err := txStore.GetByAuthToken(ctx, token)
		if err != nil {
			return err
		}

		// Verification is one-shot: a second visit reports the conflict
		// and leaves the record (including updated_at) untouched.
		if user.Verified {
			s.logger.Debug("verification attempted on verified account",
				"user_id", user.ID)
			return domain.ErrAlreadyVerified
		}

		user.Verified = true
		if err := txStore.Update(ctx, user); err != nil {
			return fmt.Errorf("failed to mark user verified: %w", err)
		}

		verified = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("email verified", "user_id", verified.ID)
	return verified, nil
}

// ResendVerification reissues the user's token and emits a new mail event.
func (s *UserServiceImpl) ResendVerification(ctx context.Context, userID uuid.UUID) error {
	var updated *domain.User

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		user, err := txStore.GetByID(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to retrieve user for resend: %w", err)
		}

		token, err := s.jwtService.GenerateToken(ctx, user)
		if err != nil {
			return fmt.Errorf("failed to generate token: %w", err)
		}

		user.AuthToken = token
		if err := txStore.Update(ctx, user); err != nil {
			return fmt.Errorf("failed to persist token: %w", err)
		}

		updated = user
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("verification mail reissued", "user_id", userID)
	s.emitVerificationMail(ctx, updated)
	return nil
}

// emitVerificationMail publishes a mail event for the user's current
// token. Failures are logged and swallowed; mail is best-effort.
func (s *UserServiceImpl) emitVerificationMail(ctx context.Context, user *domain.User) {
	payload := struct {
		Email     string `json:"email"`
		GivenName string `json:"given_name"`
		VerifyURL string `json:"verify_url"`
	}{
		Email:     user.Email,
		GivenName: user.GivenName,
		VerifyURL: fmt.Sprintf("%s/%s", s.verifyBaseURL, user.AuthToken),
	}

	event, err := events.NewEvent(verificationMailEventType, payload)
	if err != nil {
		s.logger.Error("failed to build verification mail event",
			"error", err, "user_id", user.ID)
		return
	}

	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		s.logger.Error("failed to emit verification mail event",
			"error", err, "user_id", user.ID)
	}
}
