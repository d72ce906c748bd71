package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/worthtrust/market-api/internal/api/shared"
	"github.com/worthtrust/market-api/internal/domain"
	"github.com/worthtrust/market-api/internal/service"
)

// RequestHandler handles HTTP requests for filing and listing ad requests.
type RequestHandler struct {
	requestService service.RequestService
}

// NewRequestHandler creates a new RequestHandler with the given dependencies.
func NewRequestHandler(requestService service.RequestService) *RequestHandler {
	return &RequestHandler{requestService: requestService}
}

// Create handles POST /api/request requests, filing a pending request
// from the caller against the ad named in the body.
func (h *RequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := shared.UserFromContext(r.Context())
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	var req CreateRequestRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	adID, err := uuid.Parse(req.AdGUID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid ad_guid format")
		return
	}

	created, err := h.requestService.Create(r.Context(), user.ID, adID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, CreateRequestResponse{
		AdGUID: created.AdID,
		Status: string(created.Status),
	})
}

// List handles GET /api/requests requests, returning the caller's
// requests with the target ad and owner embedded. The optional status
// query parameter narrows the listing.
func (h *RequestHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := shared.UserFromContext(r.Context())
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	status := domain.RequestStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		HandleAPIError(w, r, domain.ErrInvalidRequestStatus, "")
		return
	}

	details, err := h.requestService.List(r.Context(), user.ID, status)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, requestDetailsToResponse(details))
}
