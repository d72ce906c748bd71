package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/worthtrust/market-api/internal/config"
	"github.com/worthtrust/market-api/internal/domain"
	"github.com/worthtrust/market-api/internal/mocks"
)

// newTestApplication builds an application over mocks, enough for
// routing and middleware tests without a database.
func newTestApplication(t *testing.T) (*application, *mocks.MockUserService, *mocks.MockJWTService, *mocks.MockUserStore) {
	t.Helper()

	userService := mocks.NewMockUserService()
	jwtService := mocks.NewMockJWTService()
	userStore := mocks.NewMockUserStore()

	app := &application{
		config: &config.Config{
			Server: config.ServerConfig{Port: 8080, LogLevel: "info"},
		},
		logger:         slog.Default(),
		userStore:      userStore,
		adStore:        mocks.NewMockAdStore(),
		requestStore:   mocks.NewMockRequestStore(),
		jwtService:     jwtService,
		userService:    userService,
		adService:      mocks.NewMockAdService(),
		requestService: mocks.NewMockRequestService(),
	}
	return app, userService, jwtService, userStore
}

func routerTestUser(t *testing.T) *domain.User {
	t.Helper()
	user, err := domain.NewUser("Jane", "Doe", "jane@example.com", "password123")
	require.NoError(t, err)
	user.HashedPassword = "hashed:password123"
	user.Password = ""
	return user
}

func TestRouterHealth(t *testing.T) {
	t.Parallel()

	app, _, _, _ := newTestApplication(t)
	router := app.setupRouter()

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "OK", recorder.Body.String())
}

func TestRouterPublicEndpoints(t *testing.T) {
	t.Parallel()

	app, userService, _, _ := newTestApplication(t)
	router := app.setupRouter()

	// Register
	body, err := json.Marshal(map[string]string{
		"given_name": "Jane",
		"last_name":  "Doe",
		"email":      "jane@example.com",
		"password":   "password123",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	require.Equal(t, http.StatusCreated, recorder.Code)

	// Token
	form := url.Values{"username": {"jane@example.com"}, "password": {"password123"}}
	req = httptest.NewRequest(http.MethodPost, "/api/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusAccepted, recorder.Code)

	// Verify email via the token stored at registration
	token := userService.Users["jane@example.com"].AuthToken
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/verifyemail/"+token, nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestRouterProtectedEndpointsRequireAuth(t *testing.T) {
	t.Parallel()

	app, _, _, _ := newTestApplication(t)
	router := app.setupRouter()

	protected := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/user"},
		{http.MethodDelete, "/api/user/disable"},
		{http.MethodPost, "/api/verifyemail/resend"},
		{http.MethodPost, "/api/ad"},
		{http.MethodGet, "/api/ads"},
		{http.MethodGet, "/api/ads/search"},
		{http.MethodPost, "/api/request"},
		{http.MethodGet, "/api/requests"},
	}

	for _, ep := range protected {
		t.Run(ep.method+" "+ep.path, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, httptest.NewRequest(ep.method, ep.path, nil))

			assert.Equal(t, http.StatusUnauthorized, recorder.Code)
			assert.Equal(t, "Bearer", recorder.Header().Get("WWW-Authenticate"))
		})
	}
}

func TestRouterAuthenticatedFlow(t *testing.T) {
	t.Parallel()

	app, _, jwtService, userStore := newTestApplication(t)
	router := app.setupRouter()

	user := routerTestUser(t)
	userStore.Users[user.Email] = user
	token, err := jwtService.GenerateToken(context.Background(), user)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "jane@example.com")
}

func TestRouterDisabledAccountBlocked(t *testing.T) {
	t.Parallel()

	app, _, jwtService, userStore := newTestApplication(t)
	router := app.setupRouter()

	user := routerTestUser(t)
	user.Disabled = true
	userStore.Users[user.Email] = user
	token, err := jwtService.GenerateToken(context.Background(), user)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/ads", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
