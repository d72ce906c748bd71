package api

import (
	"net/http"

	"github.com/worthtrust/market-api/internal/api/shared"
	"github.com/worthtrust/market-api/internal/domain"
	"github.com/worthtrust/market-api/internal/service"
)

// AdHandler handles ad publishing and discovery HTTP requests.
type AdHandler struct {
	adService service.AdService
}

// NewAdHandler creates a new AdHandler with the given dependencies.
func NewAdHandler(adService service.AdService) *AdHandler {
	return &AdHandler{adService: adService}
}

// Create handles POST /api/ad requests. The created ad is always bound
// to the authenticated caller.
func (h *AdHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := shared.UserFromContext(r.Context())
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	var req CreateAdRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	ad, err := h.adService.Create(r.Context(), user.ID, service.CreateAdParams{
		Title:           req.Title,
		City:            req.City,
		ZipCode:         req.ZipCode,
		Description:     req.Description,
		ValueEstimation: req.ValueEstimation,
		AdType:          domain.AdType(req.AdType),
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, adToResponse(ad))
}

// ListOwned handles GET /api/ads requests, returning only the caller's
// own ads with optional ad_type and title filters.
func (h *AdHandler) ListOwned(w http.ResponseWriter, r *http.Request) {
	user, ok := shared.UserFromContext(r.Context())
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	adType, titleContains, err := adQueryFilters(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	ads, err := h.adService.ListOwned(r.Context(), user.ID, adType, titleContains)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, adsToResponse(ads))
}

// Search handles GET /api/ads/search requests, returning ads from every
// user with the same optional filters.
func (h *AdHandler) Search(w http.ResponseWriter, r *http.Request) {
	adType, titleContains, err := adQueryFilters(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	ads, err := h.adService.Search(r.Context(), adType, titleContains)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, adsToResponse(ads))
}

// adQueryFilters extracts the optional ad_type and title query filters,
// rejecting unknown ad types.
func adQueryFilters(r *http.Request) (domain.AdType, string, error) {
	adType := domain.AdType(r.URL.Query().Get("ad_type"))
	if adType != "" && !adType.Valid() {
		return "", "", domain.ErrInvalidAdType
	}
	return adType, r.URL.Query().Get("title"), nil
}
