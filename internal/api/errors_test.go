package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/worthtrust/market-api/internal/domain"
	"github.com/worthtrust/market-api/internal/service/auth"
	"github.com/worthtrust/market-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"missing token", auth.ErrMissingToken, http.StatusUnauthorized},
		{"bad credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized},
		{"already verified", domain.ErrAlreadyVerified, http.StatusForbidden},
		{"disabled account", domain.ErrAccountDisabled, http.StatusBadRequest},
		{"duplicate email", store.ErrEmailExists, http.StatusConflict},
		{"duplicate request", store.ErrDuplicateRequest, http.StatusConflict},
		{"unknown ad reference", store.ErrInvalidReference, http.StatusConflict},
		{"invalid entity", store.ErrInvalidEntity, http.StatusUnprocessableEntity},
		{"invalid ad type", domain.ErrInvalidAdType, http.StatusUnprocessableEntity},
		{"short password", domain.ErrPasswordTooShort, http.StatusUnprocessableEntity},
		{"user not found", store.ErrUserNotFound, http.StatusNotFound},
		{"ad not found", store.ErrAdNotFound, http.StatusNotFound},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestMapErrorToStatusCode_WrappedErrors(t *testing.T) {
	// Wrapping must not change the mapping
	wrapped := fmt.Errorf("create user: %w", store.ErrEmailExists)
	assert.Equal(t, http.StatusConflict, MapErrorToStatusCode(wrapped))

	validation := domain.NewValidationError("email", "has invalid format", domain.ErrInvalidEmail)
	assert.Equal(t, http.StatusUnprocessableEntity, MapErrorToStatusCode(validation))
}

func TestMapErrorToStatusCode_ConstraintViolationsConflict(t *testing.T) {
	// Foreign-key violations are constraint violations like duplicates,
	// not invalid input: both classes answer 409.
	fk := fmt.Errorf("save request: %w", store.ErrInvalidReference)
	assert.Equal(t, http.StatusConflict, MapErrorToStatusCode(fk))
	assert.Equal(t, MapErrorToStatusCode(store.ErrDuplicateRequest), MapErrorToStatusCode(fk))
}

func TestGetSafeErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil error", nil, "An unexpected error occurred"},
		{"expired token", auth.ErrExpiredToken, "Token expired"},
		{"bad credentials", auth.ErrInvalidCredentials, "Invalid credentials"},
		{"duplicate email", store.ErrEmailExists, "Email already exists"},
		{"duplicate request", store.ErrDuplicateRequest, "Request already exists for this ad"},
		{"unknown reference", store.ErrInvalidReference, "Referenced resource does not exist"},
		{"already verified", domain.ErrAlreadyVerified, "Account already verified"},
		{"disabled", domain.ErrAccountDisabled, "Account is disabled"},
		{"internal detail hidden", errors.New("pq: deadlock detected"), "An unexpected error occurred"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, GetSafeErrorMessage(tc.err))
		})
	}
}

func TestGetSafeErrorMessage_ValidationNamesField(t *testing.T) {
	msg := GetSafeErrorMessage(domain.ErrNegativeValue)
	assert.Contains(t, msg, "value estimation")
}

func TestHandleAPIError_BearerChallenge(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/user", nil)

	HandleAPIError(w, r, auth.ErrExpiredToken, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
	assert.Contains(t, w.Body.String(), "Token expired")
}

func TestHandleAPIError_NoChallengeOnOtherStatuses(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/register", nil)

	HandleAPIError(w, r, store.ErrEmailExists, "")

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Empty(t, w.Header().Get("WWW-Authenticate"))
}

func TestHandleAPIError_MessageOverride(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/verifyemail/x", nil)

	HandleAPIError(w, r, domain.ErrUnauthorized, "Invalid verification token")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid verification token")
}
