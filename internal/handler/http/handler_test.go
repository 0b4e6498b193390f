package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-user-directory/internal/config"
	"github.com/MKhiriev/go-user-directory/internal/logger"
	"github.com/MKhiriev/go-user-directory/internal/service"
	"github.com/MKhiriev/go-user-directory/internal/store"
	"github.com/MKhiriev/go-user-directory/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

const (
	adminLogin    = "Admin"
	adminPassword = "Admin123"
)

type credentials struct {
	login, password string
}

var asAdmin = &credentials{adminLogin, adminPassword}

// newTestRouter wires the real services over an in-memory store seeded
// with the bootstrap administrator.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	return newTestRouterWithLogger(t, logger.Nop())
}

// newTestRouterWithLogger is newTestRouter with log as the base logger of
// the handler and services.
func newTestRouterWithLogger(t *testing.T, log *logger.Logger) http.Handler {
	t.Helper()
	ctx := context.Background()

	storages, err := store.NewStorages(ctx, config.DB{Driver: config.DriverMemory}, nil, log)
	require.NoError(t, err)

	services, err := service.NewServices(storages, config.App{Version: "test"}, models.AppBuildInfo{}, nil, log)
	require.NoError(t, err)
	require.NoError(t, service.SeedAdministrator(ctx, services.AccountService, config.Admin{Login: adminLogin, Password: adminPassword}, log))

	return NewHandler(services, config.Server{RequestTimeout: 5 * time.Second}, log).Init()
}

func doRequest(t *testing.T, router http.Handler, method, path string, body any, auth *credentials) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if auth != nil {
		req.SetBasicAuth(auth.login, auth.password)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decodeBody[models.ErrorResponse](t, rec).Error
}

func createAccount(t *testing.T, router http.Handler, req models.CreateAccountRequest) models.AccountFullView {
	t.Helper()
	rec := doRequest(t, router, http.MethodPost, "/api/users", req, asAdmin)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeBody[models.AccountFullView](t, rec)
}

// ─────────────────────────────────────────────
// NewHandler
// ─────────────────────────────────────────────

func TestNewHandler(t *testing.T) {
	svcs := &service.Services{}
	h := NewHandler(svcs, config.Server{RequestTimeout: time.Second}, logger.Nop())

	require.NotNil(t, h)
	assert.Same(t, svcs, h.services)
	assert.Equal(t, time.Second, h.requestTimeout)
}

func TestInit_UnknownRouteIsJSON404(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/nothing", nil, nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, codeNotFound, errorCode(t, rec))
}

func TestInit_UnregisteredMethodIs404(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPatch, "/api/users/Admin", nil, asAdmin)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInit_TraceIDHeader(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/version", nil, nil)

	assert.NotEmpty(t, rec.Header().Get(traceIDHeader))
}
