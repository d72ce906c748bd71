package mocks

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/worthtrust/market-api/internal/domain"
	"github.com/worthtrust/market-api/internal/service"
	"github.com/worthtrust/market-api/internal/service/auth"
	"github.com/worthtrust/market-api/internal/store"
)

// MockUserService implements service.UserService for handler testing.
// Set the function fields to script behavior; unset fields fall back to
// a small in-memory default.
type MockUserService struct {
	RegisterFn           func(ctx context.Context, params service.RegisterParams) (*domain.User, error)
	LoginFn              func(ctx context.Context, email, password string) (string, error)
	GetUserFn            func(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	GetUserByEmailFn     func(ctx context.Context, email string) (*domain.User, error)
	DisableFn            func(ctx context.Context, userID uuid.UUID) error
	VerifyEmailFn        func(ctx context.Context, token string) (*domain.User, error)
	ResendVerificationFn func(ctx context.Context, userID uuid.UUID) error

	// Users collects registrations made through the default Register.
	Users map[string]*domain.User

	// DisabledIDs records the IDs passed to the default Disable.
	DisabledIDs []uuid.UUID

	// ResentIDs records the IDs passed to the default ResendVerification.
	ResentIDs []uuid.UUID
}

var _ service.UserService = (*MockUserService)(nil)

// NewMockUserService creates a mock user service with initialized defaults.
func NewMockUserService() *MockUserService {
	return &MockUserService{
		Users: make(map[string]*domain.User),
	}
}

// Register implements the UserService interface
func (m *MockUserService) Register(
	ctx context.Context,
	params service.RegisterParams,
) (*domain.User, error) {
	if m.RegisterFn != nil {
		return m.RegisterFn(ctx, params)
	}

	user, err := domain.NewUser(params.GivenName, params.LastName, params.Email, params.Password)
	if err != nil {
		return nil, err
	}
	if _, exists := m.Users[user.Email]; exists {
		return nil, store.ErrEmailExists
	}

	user.HashedPassword = "hashed:" + params.Password
	user.Password = ""
	user.AuthToken = "token-" + uuid.NewString()
	user.City = params.City
	user.Country = params.Country
	user.Address = params.Address
	user.ZipCode = params.ZipCode
	user.Birthday = params.Birthday
	user.PhonePrefix = params.PhonePrefix
	user.PhoneNumber = params.PhoneNumber

	m.Users[user.Email] = user
	return user, nil
}

// Login implements the UserService interface
func (m *MockUserService) Login(ctx context.Context, email, password string) (string, error) {
	if m.LoginFn != nil {
		return m.LoginFn(ctx, email, password)
	}

	user, ok := m.Users[email]
	if !ok || user.HashedPassword != "hashed:"+password {
		return "", auth.ErrInvalidCredentials
	}
	return user.AuthToken, nil
}

// GetUser implements the UserService interface
func (m *MockUserService) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	if m.GetUserFn != nil {
		return m.GetUserFn(ctx, userID)
	}

	for _, user := range m.Users {
		if user.ID == userID {
			return user, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// GetUserByEmail implements the UserService interface
func (m *MockUserService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetUserByEmailFn != nil {
		return m.GetUserByEmailFn(ctx, email)
	}

	user, ok := m.Users[email]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return user, nil
}

// Disable implements the UserService interface
func (m *MockUserService) Disable(ctx context.Context, userID uuid.UUID) error {
	if m.DisableFn != nil {
		return m.DisableFn(ctx, userID)
	}

	m.DisabledIDs = append(m.DisabledIDs, userID)
	for _, user := range m.Users {
		if user.ID == userID {
			user.Disabled = true
			return nil
		}
	}
	return store.ErrUserNotFound
}

// VerifyEmail implements the UserService interface
func (m *MockUserService) VerifyEmail(ctx context.Context, token string) (*domain.User, error) {
	if m.VerifyEmailFn != nil {
		return m.VerifyEmailFn(ctx, token)
	}

	for _, user := range m.Users {
		if user.AuthToken == token {
			if user.Verified {
				return nil, domain.ErrAlreadyVerified
			}
			user.Verified = true
			return user, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// ResendVerification implements the UserService interface
func (m *MockUserService) ResendVerification(ctx context.Context, userID uuid.UUID) error {
	if m.ResendVerificationFn != nil {
		return m.ResendVerificationFn(ctx, userID)
	}

	m.ResentIDs = append(m.ResentIDs, userID)
	return nil
}

// MockAdService implements service.AdService for handler testing.
type MockAdService struct {
	CreateFn    func(ctx context.Context, ownerID uuid.UUID, params service.CreateAdParams) (*domain.Ad, error)
	ListOwnedFn func(ctx context.Context, ownerID uuid.UUID, adType domain.AdType, titleContains string) ([]*domain.Ad, error)
	SearchFn    func(ctx context.Context, adType domain.AdType, titleContains string) ([]*domain.Ad, error)

	// Ads backs the default implementations.
	Ads []*domain.Ad
}

var _ service.AdService = (*MockAdService)(nil)

// NewMockAdService creates a mock ad service with initialized defaults.
func NewMockAdService() *MockAdService {
	return &MockAdService{
		Ads: make([]*domain.Ad, 0),
	}
}

// Create implements the AdService interface
func (m *MockAdService) Create(
	ctx context.Context,
	ownerID uuid.UUID,
	params service.CreateAdParams,
) (*domain.Ad, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, ownerID, params)
	}

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
		return nil, err
	}
	m.Ads = append(m.Ads, ad)
	return ad, nil
}

// ListOwned implements the AdService interface
func (m *MockAdService) ListOwned(
	ctx context.Context,
	ownerID uuid.UUID,
	adType domain.AdType,
	titleContains string,
) ([]*domain.Ad, error) {
	if m.ListOwnedFn != nil {
		return m.ListOwnedFn(ctx, ownerID, adType, titleContains)
	}

	matches := make([]*domain.Ad, 0)
	for _, ad := range m.Ads {
		if ad.AddedBy == ownerID && matchesAdFilters(ad, adType, titleContains) {
			matches = append(matches, ad)
		}
	}
	return matches, nil
}

// Search implements the AdService interface
func (m *MockAdService) Search(
	ctx context.Context,
	adType domain.AdType,
	titleContains string,
) ([]*domain.Ad, error) {
	if m.SearchFn != nil {
		return m.SearchFn(ctx, adType, titleContains)
	}

	matches := make([]*domain.Ad, 0)
	for _, ad := range m.Ads {
		if matchesAdFilters(ad, adType, titleContains) {
			matches = append(matches, ad)
		}
	}
	return matches, nil
}

// MockRequestService implements service.RequestService for handler testing.
type MockRequestService struct {
	CreateFn func(ctx context.Context, userID, adID uuid.UUID) (*domain.AdRequest, error)
	ListFn   func(ctx context.Context, userID uuid.UUID, status domain.RequestStatus) ([]*service.RequestDetail, error)

	// Requests collects creations made through the default Create.
	Requests []*domain.AdRequest

	// Details is returned by the default List.
	Details []*service.RequestDetail
}

var _ service.RequestService = (*MockRequestService)(nil)

// NewMockRequestService creates a mock request service with initialized defaults.
func NewMockRequestService() *MockRequestService {
	return &MockRequestService{
		Requests: make([]*domain.AdRequest, 0),
		Details:  make([]*service.RequestDetail, 0),
	}
}

// Create implements the RequestService interface
func (m *MockRequestService) Create(
	ctx context.Context,
	userID, adID uuid.UUID,
) (*domain.AdRequest, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, userID, adID)
	}

	req, err := domain.NewAdRequest(userID, adID)
	if err != nil {
		return nil, err
	}
	m.Requests = append(m.Requests, req)
	return req, nil
}

// List implements the RequestService interface
func (m *MockRequestService) List(
	ctx context.Context,
	userID uuid.UUID,
	status domain.RequestStatus,
) ([]*service.RequestDetail, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, userID, status)
	}

	matches := make([]*service.RequestDetail, 0)
	for _, d := range m.Details {
		if status != "" && d.Status != status {
			continue
		}
		matches = append(matches, d)
	}
	return matches, nil
}

func matchesAdFilters(ad *domain.Ad, adType domain.AdType, titleContains string) bool {
	if adType != "" && ad.AdType != adType {
		return false
	}
	if titleContains != "" && !strings.Contains(ad.Title, titleContains) {
		return false
	}
	return true
}
