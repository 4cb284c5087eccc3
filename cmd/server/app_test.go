package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OPpuolitaival/tasklist/internal/api"
	"github.com/OPpuolitaival/tasklist/internal/config"
	"github.com/OPpuolitaival/tasklist/internal/mocks"
	"github.com/OPpuolitaival/tasklist/internal/service/auth"
)

const testJWTSecret = "test-secret-key-thats-at-least-32-chars"

// newTestApplication wires an application around in-memory stores and a
// real JWT service, so router tests cover the same token path as
// production without a database.
func newTestApplication(t *testing.T) *application {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{Port: 8080, LogLevel: "error"},
		Auth: config.AuthConfig{
			JWTSecret:                   testJWTSecret,
			TokenLifetimeMinutes:        15,
			RefreshTokenLifetimeMinutes: 7 * 24 * 60,
			PasswordMinLength:           8,
		},
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	require.NoError(t, err)

	verifier := &mocks.MockPasswordVerifier{}

	return &application{
		config:           cfg,
		logger:           slog.New(slog.DiscardHandler),
		userStore:        mocks.NewMockUserStore(),
		taskStore:        mocks.NewMockTaskStore(),
		jwtService:       jwtService,
		passwordVerifier: verifier,
		passwordHasher:   verifier,
	}
}

func doJSON(
	t *testing.T,
	router http.Handler,
	method, path, bearer string,
	payload interface{},
) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeInto(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(v))
}

// registerUser registers a user through the API and returns the tokens.
func registerUser(t *testing.T, router http.Handler, username, password string) api.AuthResponse {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/api/auth/register/", "", api.RegisterRequest{
		Username:        username,
		Password:        password,
		PasswordConfirm: password,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp api.AuthResponse
	decodeInto(t, rec, &resp)
	return resp
}

func TestTaskLifecycle(t *testing.T) {
	t.Parallel()

	app := newTestApplication(t)
	router := app.setupRouter()

	// Register and log in.
	registerUser(t, router, "alice", "supersecret1")

	rec := doJSON(t, router, http.MethodPost, "/api/auth/login/", "", api.LoginRequest{
		Username: "alice",
		Password: "supersecret1",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var login api.AuthResponse
	decodeInto(t, rec, &login)
	token := login.Tokens.Access
	require.NotEmpty(t, token)

	// Create a task.
	rec = doJSON(t, router, http.MethodPost, "/api/tasks/", token, api.CreateTaskRequest{
		Title:       "Buy milk",
		Description: "2 liters",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created api.TaskResponse
	decodeInto(t, rec, &created)
	assert.Equal(t, "Buy milk", created.Title)
	assert.False(t, created.Completed)

	// It shows up in the list.
	rec = doJSON(t, router, http.MethodGet, "/api/tasks/", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var tasks []api.TaskResponse
	decodeInto(t, rec, &tasks)
	require.Len(t, tasks, 1)
	assert.Equal(t, created.ID, tasks[0].ID)

	// Fetch, complete, delete.
	rec = doJSON(t, router, http.MethodGet, "/api/tasks/"+created.ID.String()+"/", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	completed := true
	rec = doJSON(t, router, http.MethodPatch, "/api/tasks/"+created.ID.String()+"/", token,
		api.UpdateTaskRequest{Completed: &completed})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated api.TaskResponse
	decodeInto(t, rec, &updated)
	assert.True(t, updated.Completed)
	assert.Equal(t, "Buy milk", updated.Title)

	rec = doJSON(t, router, http.MethodDelete, "/api/tasks/"+created.ID.String()+"/", token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/tasks/", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	tasks = nil
	decodeInto(t, rec, &tasks)
	assert.Empty(t, tasks)
}

func TestTaskIsolationBetweenUsers(t *testing.T) {
	t.Parallel()

	app := newTestApplication(t)
	router := app.setupRouter()

	alice := registerUser(t, router, "alice", "supersecret1")
	bob := registerUser(t, router, "bob", "supersecret2")

	rec := doJSON(t, router, http.MethodPost, "/api/tasks/", alice.Tokens.Access,
		api.CreateTaskRequest{Title: "Alice task"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created api.TaskResponse
	decodeInto(t, rec, &created)
	taskPath := "/api/tasks/" + created.ID.String() + "/"

	// Bob cannot see Alice's task in his list.
	rec = doJSON(t, router, http.MethodGet, "/api/tasks/", bob.Tokens.Access, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var bobTasks []api.TaskResponse
	decodeInto(t, rec, &bobTasks)
	assert.Empty(t, bobTasks)

	// Direct access answers 404, never 403: the task's existence is not
	// disclosed to non-owners.
	title := "Hijacked"
	for _, tc := range []struct {
		method  string
		payload interface{}
	}{
		{http.MethodGet, nil},
		{http.MethodPatch, api.UpdateTaskRequest{Title: &title}},
		{http.MethodDelete, nil},
	} {
		rec = doJSON(t, router, tc.method, taskPath, bob.Tokens.Access, tc.payload)
		assert.Equal(t, http.StatusNotFound, rec.Code, tc.method)
	}

	// Alice still owns the intact task.
	rec = doJSON(t, router, http.MethodGet, taskPath, alice.Tokens.Access, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var task api.TaskResponse
	decodeInto(t, rec, &task)
	assert.Equal(t, "Alice task", task.Title)
}

func TestTaskEndpointsRequireAuth(t *testing.T) {
	t.Parallel()

	app := newTestApplication(t)
	router := app.setupRouter()
	alice := registerUser(t, router, "alice", "supersecret1")

	tests := []struct {
		name   string
		bearer string
	}{
		{"no token", ""},
		{"garbage token", "not-a-jwt"},
		{"refresh token as access token", alice.Tokens.Refresh},
	}

	for _, tt := range tests {
		rec := doJSON(t, router, http.MethodGet, "/api/tasks/", tt.bearer, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, tt.name)
	}
}

func TestRefreshFlow(t *testing.T) {
	t.Parallel()

	app := newTestApplication(t)
	router := app.setupRouter()
	alice := registerUser(t, router, "alice", "supersecret1")

	rec := doJSON(t, router, http.MethodPost, "/api/auth/refresh/", "",
		api.RefreshTokenRequest{RefreshToken: alice.Tokens.Refresh})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var pair api.TokenPair
	decodeInto(t, rec, &pair)
	require.NotEmpty(t, pair.Access)
	require.NotEmpty(t, pair.Refresh)

	// The fresh access token works against the protected API.
	rec = doJSON(t, router, http.MethodGet, "/api/tasks/", pair.Access, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// An access token is not accepted where a refresh token is expected.
	rec = doJSON(t, router, http.MethodPost, "/api/auth/refresh/", "",
		api.RefreshTokenRequest{RefreshToken: alice.Tokens.Access})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTrailingSlashOptional(t *testing.T) {
	t.Parallel()

	app := newTestApplication(t)
	router := app.setupRouter()
	alice := registerUser(t, router, "alice", "supersecret1")

	// Both spellings of the collection path work.
	for _, path := range []string{"/api/tasks", "/api/tasks/"} {
		rec := doJSON(t, router, http.MethodGet, path, alice.Tokens.Access, nil)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	t.Parallel()

	app := newTestApplication(t)
	router := app.setupRouter()
	registerUser(t, router, "alice", "supersecret1")

	rec := doJSON(t, router, http.MethodPost, "/api/auth/login/", "", api.LoginRequest{
		Username: "alice",
		Password: "wrong-password",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid credentials")
}

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()

	app := newTestApplication(t)
	router := app.setupRouter()

	rec := doJSON(t, router, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestCORSHeaders(t *testing.T) {
	t.Parallel()

	app := newTestApplication(t)
	router := app.setupRouter()

	// Cross-origin request carries the allow-origin header.
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://example.com")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	// Preflight for an authenticated endpoint.
	req = httptest.NewRequest(http.MethodOptions, "/api/tasks/", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
}

func TestAccessTokenTTL(t *testing.T) {
	t.Parallel()

	app := newTestApplication(t)
	assert.Equal(t, 15*time.Minute, app.accessTokenTTL())
}
