package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/worthtrust/market-api/internal/domain"
	"github.com/worthtrust/market-api/internal/service/auth"
)

// MockJWTService implements auth.JWTService for testing
type MockJWTService struct {
	// Function fields for customizable behavior
	GenerateTokenFn func(ctx context.Context, user *domain.User) (string, error)
	ValidateTokenFn func(ctx context.Context, tokenString string) (*auth.Claims, error)

	// Data for default implementation
	Token         string
	GenerateError error
	ValidateError error

	// Issued maps token strings to the users they were generated for,
	// letting the default ValidateToken round-trip.
	Issued map[string]*domain.User
}

// Ensure MockJWTService implements auth.JWTService
var _ auth.JWTService = (*MockJWTService)(nil)

// NewMockJWTService creates a new mock service with initialized defaults
func NewMockJWTService() *MockJWTService {
	return &MockJWTService{
		Token:  "mock-token",
		Issued: make(map[string]*domain.User),
	}
}

// GenerateToken implements the JWTService interface
func (m *MockJWTService) GenerateToken(ctx context.Context, user *domain.User) (string, error) {
	if m.GenerateTokenFn != nil {
		return m.GenerateTokenFn(ctx, user)
	}

	if m.GenerateError != nil {
		return "", m.GenerateError
	}

	token := m.Token + "-" + uuid.New().String()
	m.Issued[token] = user
	return token, nil
}

// ValidateToken implements the JWTService interface
func (m *MockJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, tokenString)
	}

	if m.ValidateError != nil {
		return nil, m.ValidateError
	}

	user, ok := m.Issued[tokenString]
	if !ok {
		return nil, auth.ErrInvalidToken
	}

	now := time.Now().UTC()
	return &auth.Claims{
		UserID:    user.ID,
		Subject:   user.Email,
		IssuedAt:  now,
		ExpiresAt: now.Add(15 * time.Minute),
		ID:        uuid.New().String(),
	}, nil
}
