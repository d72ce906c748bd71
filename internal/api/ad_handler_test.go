package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/worthtrust/market-api/internal/domain"
	"github.com/worthtrust/market-api/internal/mocks"
)

func adPayload() map[string]interface{} {
	return map[string]interface{}{
		"title":            "Lawn mowing",
		"city":             "Austin",
		"zip_code":         "78701",
		"description":      "Weekly service",
		"value_estimation": 40.0,
		"ad_type":          "service",
	}
}

func testUser(t *testing.T) *domain.User {
	t.Helper()
	user, err := domain.NewUser("Jane", "Doe", "jane@example.com", "password123")
	require.NoError(t, err)
	return user
}

func TestAdHandlerCreate(t *testing.T) {
	t.Parallel()

	adService := mocks.NewMockAdService()
	handler := NewAdHandler(adService)
	user := testUser(t)

	recorder := httptest.NewRecorder()
	handler.Create(recorder, withUser(postJSON(t, "/api/ad", adPayload()), user))

	assert.Equal(t, http.StatusCreated, recorder.Code)

	var resp AdResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.Equal(t, user.ID, resp.AddedBy)
	assert.Equal(t, "Lawn mowing", resp.Title)
	assert.Equal(t, "service", resp.AdType)
	assert.Len(t, adService.Ads, 1)
}

func TestAdHandlerCreate_InvalidBody(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		mutate     func(p map[string]interface{})
		wantStatus int
	}{
		{
			name:       "missing title",
			mutate:     func(p map[string]interface{}) { delete(p, "title") },
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "negative value",
			mutate:     func(p map[string]interface{}) { p["value_estimation"] = -5.0 },
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown ad type",
			mutate:     func(p map[string]interface{}) { p["ad_type"] = "rental" },
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewAdHandler(mocks.NewMockAdService())

			payload := adPayload()
			tt.mutate(payload)

			recorder := httptest.NewRecorder()
			handler.Create(recorder, withUser(postJSON(t, "/api/ad", payload), testUser(t)))

			assert.Equal(t, tt.wantStatus, recorder.Code)
		})
	}
}

func TestAdHandlerCreate_Unauthenticated(t *testing.T) {
	t.Parallel()

	handler := NewAdHandler(mocks.NewMockAdService())

	recorder := httptest.NewRecorder()
	handler.Create(recorder, postJSON(t, "/api/ad", adPayload()))

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestAdHandlerListOwned(t *testing.T) {
	t.Parallel()

	adService := mocks.NewMockAdService()
	handler := NewAdHandler(adService)
	user := testUser(t)
	other := testUser(t)

	mustAd := func(owner *domain.User, title string, adType domain.AdType) {
		ad, err := domain.NewAd(owner.ID, title, "Austin", "78701", "", 10, adType)
		require.NoError(t, err)
		adService.Ads = append(adService.Ads, ad)
	}
	mustAd(user, "Lawn mowing", domain.AdTypeService)
	mustAd(user, "Used bike", domain.AdTypeItem)
	mustAd(other, "Lawn care", domain.AdTypeService)

	recorder := httptest.NewRecorder()
	req := withUser(httptest.NewRequest(http.MethodGet, "/api/ads", nil), user)
	handler.ListOwned(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)

	var ads []AdResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&ads))
	assert.Len(t, ads, 2)

	// ad_type narrows to an exact match
	recorder = httptest.NewRecorder()
	req = withUser(httptest.NewRequest(http.MethodGet, "/api/ads?ad_type=item", nil), user)
	handler.ListOwned(recorder, req)

	ads = nil
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&ads))
	require.Len(t, ads, 1)
	assert.Equal(t, "Used bike", ads[0].Title)

	// title filter is a case-sensitive substring
	recorder = httptest.NewRecorder()
	req = withUser(httptest.NewRequest(http.MethodGet, "/api/ads?title=Lawn", nil), user)
	handler.ListOwned(recorder, req)

	ads = nil
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&ads))
	assert.Len(t, ads, 1)
}

func TestAdHandlerListOwned_InvalidAdType(t *testing.T) {
	t.Parallel()

	handler := NewAdHandler(mocks.NewMockAdService())

	recorder := httptest.NewRecorder()
	req := withUser(httptest.NewRequest(http.MethodGet, "/api/ads?ad_type=rental", nil), testUser(t))
	handler.ListOwned(recorder, req)

	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
}

func TestAdHandlerListOwned_EmptyIsArray(t *testing.T) {
	t.Parallel()

	handler := NewAdHandler(mocks.NewMockAdService())

	recorder := httptest.NewRecorder()
	req := withUser(httptest.NewRequest(http.MethodGet, "/api/ads", nil), testUser(t))
	handler.ListOwned(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, "[]", recorder.Body.String())
}

func TestAdHandlerSearch_SpansOwners(t *testing.T) {
	t.Parallel()

	adService := mocks.NewMockAdService()
	handler := NewAdHandler(adService)

	for _, title := range []string{"Lawn mowing", "Used bike"} {
		ad, err := domain.NewAd(testUser(t).ID, title, "Austin", "78701", "", 10, domain.AdTypeService)
		require.NoError(t, err)
		adService.Ads = append(adService.Ads, ad)
	}

	recorder := httptest.NewRecorder()
	req := withUser(httptest.NewRequest(http.MethodGet, "/api/ads/search", nil), testUser(t))
	handler.Search(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)

	var ads []AdResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&ads))
	assert.Len(t, ads, 2)
}
