package api

import (
	"errors"
	"net/http"

	"github.com/worthtrust/market-api/internal/api/shared"
	"github.com/worthtrust/market-api/internal/domain"
	"github.com/worthtrust/market-api/internal/service/auth"
	"github.com/worthtrust/market-api/internal/store"
)

// domainValidationErrors lists the sentinels that mark semantically
// invalid entity data, as opposed to a malformed request body.
var domainValidationErrors = []error{
	domain.ErrValidation,
	domain.ErrInvalidID,
	domain.ErrInvalidEmail,
	domain.ErrInvalidAdType,
	domain.ErrInvalidRequestStatus,
	domain.ErrEmptyUserID,
	domain.ErrEmptyEmail,
	domain.ErrEmptyGivenName,
	domain.ErrEmptyLastName,
	domain.ErrEmptyPassword,
	domain.ErrEmptyHashedPassword,
	domain.ErrPasswordTooShort,
	domain.ErrPasswordTooLong,
	domain.ErrEmptyAdID,
	domain.ErrEmptyAdOwner,
	domain.ErrEmptyAdTitle,
	domain.ErrEmptyAdCity,
	domain.ErrEmptyAdZipCode,
	domain.ErrNegativeValue,
	domain.ErrEmptyRequestUser,
	domain.ErrEmptyRequestAd,
}

func isDomainValidationError(err error) bool {
	for _, sentinel := range domainValidationErrors {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// MapErrorToStatusCode maps internal errors to appropriate HTTP status
// codes based on the error type. This prevents leaking internal error
// types or messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Repeated verification of the same account
	case errors.Is(err, domain.ErrAlreadyVerified):
		return http.StatusForbidden

	// Disabled accounts are rejected before the operation runs
	case errors.Is(err, domain.ErrAccountDisabled):
		return http.StatusBadRequest

	// Database constraint violations: duplicate email, duplicate request
	// pair, or an insert whose foreign key points at a missing row
	case errors.Is(err, store.ErrDuplicate),
		errors.Is(err, store.ErrInvalidReference):
		return http.StatusConflict

	// Semantically invalid entity data
	case errors.Is(err, store.ErrInvalidEntity),
		isDomainValidationError(err):
		return http.StatusUnprocessableEntity

	// Not found errors
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return "Invalid token"

	case errors.Is(err, auth.ErrMissingToken):
		return "Authorization required"

	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid credentials"

	case errors.Is(err, domain.ErrUnauthorized):
		return "Unauthorized"

	case errors.Is(err, domain.ErrAlreadyVerified):
		return "Account already verified"

	case errors.Is(err, domain.ErrAccountDisabled):
		return "Account is disabled"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, store.ErrDuplicateRequest):
		return "Request already exists for this ad"

	case errors.Is(err, store.ErrDuplicate):
		return "Resource already exists"

	case errors.Is(err, store.ErrInvalidReference):
		return "Referenced resource does not exist"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrAdNotFound):
		return "Ad not found"

	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	case isDomainValidationError(err), errors.Is(err, store.ErrInvalidEntity):
		// Domain validation messages name the failing field without any
		// user data, so they are safe to echo.
		return "Invalid data: " + err.Error()

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError is the single translation point from internal errors to
// HTTP responses. It maps the error to a status code, picks a sanitized
// message (userMessage overrides when non-empty), and adds the bearer
// challenge on authentication failures.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, userMessage string) {
	status := MapErrorToStatusCode(err)
	if userMessage == "" {
		userMessage = GetSafeErrorMessage(err)
	}

	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}

	shared.RespondWithErrorAndLog(w, r, status, userMessage, err)
}
