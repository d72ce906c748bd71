package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/worthtrust/market-api/internal/domain"
	"github.com/worthtrust/market-api/internal/mocks"
	"github.com/worthtrust/market-api/internal/service"
	"github.com/worthtrust/market-api/internal/store"
)

func TestRequestHandlerCreate(t *testing.T) {
	t.Parallel()

	requestService := mocks.NewMockRequestService()
	handler := NewRequestHandler(requestService)
	user := testUser(t)
	adID := uuid.New()

	recorder := httptest.NewRecorder()
	req := withUser(postJSON(t, "/api/request", map[string]string{"ad_guid": adID.String()}), user)
	handler.Create(recorder, req)

	assert.Equal(t, http.StatusCreated, recorder.Code)

	var resp CreateRequestResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.Equal(t, adID, resp.AdGUID)
	assert.Equal(t, "pending", resp.Status)
	assert.Len(t, requestService.Requests, 1)
}

func TestRequestHandlerCreate_BadBody(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		payload interface{}
	}{
		{"missing ad_guid", map[string]string{}},
		{"malformed uuid", map[string]string{"ad_guid": "not-a-uuid"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewRequestHandler(mocks.NewMockRequestService())

			recorder := httptest.NewRecorder()
			req := withUser(postJSON(t, "/api/request", tt.payload), testUser(t))
			handler.Create(recorder, req)

			assert.Equal(t, http.StatusBadRequest, recorder.Code)
		})
	}
}

func TestRequestHandlerCreate_UnknownAd(t *testing.T) {
	t.Parallel()

	requestService := mocks.NewMockRequestService()
	requestService.CreateFn = func(ctx context.Context, userID, adID uuid.UUID) (*domain.AdRequest, error) {
		return nil, store.ErrInvalidReference
	}
	handler := NewRequestHandler(requestService)

	recorder := httptest.NewRecorder()
	req := withUser(postJSON(t, "/api/request", map[string]string{"ad_guid": uuid.NewString()}), testUser(t))
	handler.Create(recorder, req)

	assert.Equal(t, http.StatusConflict, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Referenced resource does not exist")
}

func TestRequestHandlerCreate_Duplicate(t *testing.T) {
	t.Parallel()

	requestService := mocks.NewMockRequestService()
	requestService.CreateFn = func(ctx context.Context, userID, adID uuid.UUID) (*domain.AdRequest, error) {
		return nil, store.ErrDuplicateRequest
	}
	handler := NewRequestHandler(requestService)

	recorder := httptest.NewRecorder()
	req := withUser(postJSON(t, "/api/request", map[string]string{"ad_guid": uuid.NewString()}), testUser(t))
	handler.Create(recorder, req)

	assert.Equal(t, http.StatusConflict, recorder.Code)
}

func TestRequestHandlerList(t *testing.T) {
	t.Parallel()

	requestService := mocks.NewMockRequestService()
	handler := NewRequestHandler(requestService)

	owner := testUser(t)
	ad, err := domain.NewAd(owner.ID, "Lawn mowing", "Austin", "78701", "", 10, domain.AdTypeService)
	require.NoError(t, err)

	requestService.Details = []*service.RequestDetail{
		{Status: domain.RequestStatusPending, Ad: ad, AdOwner: owner},
		{Status: domain.RequestStatusAccepted, Ad: ad, AdOwner: owner},
	}

	recorder := httptest.NewRecorder()
	req := withUser(httptest.NewRequest(http.MethodGet, "/api/requests", nil), testUser(t))
	handler.List(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)

	var details []RequestDetailResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&details))
	require.Len(t, details, 2)
	assert.Equal(t, "pending", details[0].Status)
	assert.Equal(t, ad.ID, details[0].Ad.GUID)
	assert.Equal(t, owner.ID, details[0].AddedBy.ID)

	// Status filter narrows the listing
	recorder = httptest.NewRecorder()
	req = withUser(httptest.NewRequest(http.MethodGet, "/api/requests?status=accepted", nil), testUser(t))
	handler.List(recorder, req)

	details = nil
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&details))
	require.Len(t, details, 1)
	assert.Equal(t, "accepted", details[0].Status)
}

func TestRequestHandlerList_InvalidStatus(t *testing.T) {
	t.Parallel()

	handler := NewRequestHandler(mocks.NewMockRequestService())

	recorder := httptest.NewRecorder()
	req := withUser(httptest.NewRequest(http.MethodGet, "/api/requests?status=bogus", nil), testUser(t))
	handler.List(recorder, req)

	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
}

func TestRequestHandlerList_OwnerProjectionIsSafe(t *testing.T) {
	t.Parallel()

	requestService := mocks.NewMockRequestService()
	handler := NewRequestHandler(requestService)

	owner := testUser(t)
	owner.HashedPassword = "hashed:password123"
	owner.AuthToken = "owner-secret-token"

	ad, err := domain.NewAd(owner.ID, "Lawn mowing", "Austin", "78701", "", 10, domain.AdTypeService)
	require.NoError(t, err)
	requestService.Details = []*service.RequestDetail{
		{Status: domain.RequestStatusPending, Ad: ad, AdOwner: owner},
	}

	recorder := httptest.NewRecorder()
	req := withUser(httptest.NewRequest(http.MethodGet, "/api/requests", nil), testUser(t))
	handler.List(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "owner-secret-token")
	assert.NotContains(t, recorder.Body.String(), "hashed:")
}
