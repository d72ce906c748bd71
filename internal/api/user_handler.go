package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/worthtrust/market-api/internal/api/shared"
	"github.com/worthtrust/market-api/internal/domain"
	"github.com/worthtrust/market-api/internal/service"
	"github.com/worthtrust/market-api/internal/store"
)

// UserHandler handles registration, authentication, and account-state
// HTTP requests.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new UserHandler with the given dependencies.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Register handles POST /api/register requests.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	user, err := h.userService.Register(r.Context(), service.RegisterParams{
		GivenName:   req.GivenName,
		LastName:    req.LastName,
		Email:       req.Email,
		Password:    req.Password,
		City:        req.City,
		Country:     req.Country,
		Address:     req.Address,
		ZipCode:     req.ZipCode,
		Birthday:    req.Birthday,
		PhonePrefix: req.PhonePrefix,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, userToResponse(user))
}

// Token handles POST /api/token requests. The endpoint consumes an
// OAuth2 password-grant form: username carries the email.
func (h *UserHandler) Token(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	email := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if email == "" || password == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "username and password are required")
		return
	}

	token, err := h.userService.Login(r.Context(), email, password)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusAccepted, TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// VerifyEmail handles GET /api/verifyemail/{access_token} requests.
func (h *UserHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "access_token")
	if token == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Verification token is required")
		return
	}

	user, err := h.userService.VerifyEmail(r.Context(), token)
	if err != nil {
		// An unknown token is an authentication failure, not a missing
		// resource: the URL itself is the credential.
		if errors.Is(err, store.ErrUserNotFound) {
			err = fmt.Errorf("%w: unknown verification token", domain.ErrUnauthorized)
			HandleAPIError(w, r, err, "Invalid verification token")
			return
		}
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}

// CurrentUser handles GET /api/user requests, returning the public
// projection of the authenticated caller.
func (h *UserHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := shared.UserFromContext(r.Context())
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}

// Disable handles DELETE /api/user/disable requests. Disabling twice is
// accepted and changes nothing.
func (h *UserHandler) Disable(w http.ResponseWriter, r *http.Request) {
	user, ok := shared.UserFromContext(r.Context())
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	if err := h.userService.Disable(r.Context(), user.ID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusAccepted, map[string]string{
		"status": "accepted",
	})
}

// ResendVerification handles POST /api/verifyemail/resend requests.
// A fresh token is issued and mailed regardless of the previous one.
func (h *UserHandler) ResendVerification(w http.ResponseWriter, r *http.Request) {
	user, ok := shared.UserFromContext(r.Context())
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	if err := h.userService.ResendVerification(r.Context(), user.ID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusAccepted, map[string]string{
		"status": "accepted",
	})
}
