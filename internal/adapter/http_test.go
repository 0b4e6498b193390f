// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-user-directory/internal/logger"
	"github.com/MKhiriev/go-user-directory/models"
)

// newTestClient returns a DirectoryClient pointed at serverURL.
func newTestClient(t *testing.T, serverURL string) DirectoryClient {
	t.Helper()
	c, err := NewHTTPDirectoryClient(serverURL, 5*time.Second, logger.Nop())
	require.NoError(t, err)
	return c
}

func writeErrorBody(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(models.ErrorResponse{Error: code, Message: message})
}

// ─────────────────────────────────────────────
// Construction
// ─────────────────────────────────────────────

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "host and port", raw: "localhost:8080", want: "http://localhost:8080"},
		{name: "with scheme", raw: "https://dir.example.com", want: "https://dir.example.com"},
		{name: "trailing slash", raw: "http://localhost:8080/", want: "http://localhost:8080"},
		{name: "surrounding spaces", raw: "  localhost:8080 ", want: "http://localhost:8080"},
		{name: "empty", raw: "", wantErr: true},
		{name: "blank", raw: "   ", wantErr: true},
		{name: "no host", raw: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewHTTPDirectoryClient_InvalidAddress(t *testing.T) {
	_, err := NewHTTPDirectoryClient("", time.Second, logger.Nop())
	assert.Error(t, err)
}

// ─────────────────────────────────────────────
// Requests
// ─────────────────────────────────────────────

func TestVersion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/version", r.URL.Path)
		_, _ = w.Write([]byte("Build version: 1.0.0"))
	}))
	defer srv.Close()

	got, err := newTestClient(t, srv.URL).Version(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Build version: 1.0.0", got)
}

func TestCredentialsAndLanguageAreSent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		login, password, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "admin", login)
		assert.Equal(t, "secret", password)
		assert.Equal(t, "en", r.Header.Get("Accept-Language"))
		assert.Equal(t, "/api/users/bob", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.AccountFullView{Login: "bob", Gender: "Male", IsActive: true})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	c.SetCredentials("admin", "secret")
	c.SetLanguage("en")

	view, err := c.GetByLogin(context.Background(), "bob")

	require.NoError(t, err)
	assert.Equal(t, "bob", view.Login)
	assert.Equal(t, "Male", view.Gender)
}

func TestClearedCredentialsAreNotSent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _, ok := r.BasicAuth()
		assert.False(t, ok)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("[]"))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	c.SetCredentials("admin", "secret")
	c.SetCredentials("", "")

	_, err := c.ListActive(context.Background())
	require.NoError(t, err)
}

func TestDelete_SendsHardDeleteFlag(t *testing.T) {
	tests := []struct {
		name string
		hard bool
		want string
	}{
		{name: "soft", hard: false, want: "false"},
		{name: "hard", hard: true, want: "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodDelete, r.Method)
				assert.Equal(t, "/api/users/bob", r.URL.Path)
				assert.Equal(t, tt.want, r.URL.Query().Get("hardDelete"))
				w.WriteHeader(http.StatusNoContent)
			}))
			defer srv.Close()

			err := newTestClient(t, srv.URL).Delete(context.Background(), "bob", tt.hard)
			assert.NoError(t, err)
		})
	}
}

func TestListOlderThan_PathCarriesAge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/users/older-than/30", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]models.AccountView{{Login: "carol"}})
	}))
	defer srv.Close()

	views, err := newTestClient(t, srv.URL).ListOlderThan(context.Background(), 30)

	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "carol", views[0].Login)
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := newTestClient(t, url).ListActive(context.Background())
	assert.Error(t, err)
}

// ─────────────────────────────────────────────
// Error mapping
// ─────────────────────────────────────────────

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		code    string
		rawBody string
		want    error
	}{
		{name: "invalid input", status: http.StatusBadRequest, code: "invalid_input", want: ErrBadRequest},
		{name: "invalid state", status: http.StatusBadRequest, code: "invalid_state", want: ErrInvalidState},
		{name: "unauthenticated", status: http.StatusUnauthorized, code: "unauthenticated", want: ErrUnauthorized},
		{name: "invalid credentials", status: http.StatusUnauthorized, code: "invalid_credentials", want: ErrInvalidCredentials},
		{name: "forbidden", status: http.StatusForbidden, code: "forbidden", want: ErrForbidden},
		{name: "not found", status: http.StatusNotFound, code: "not_found", want: ErrNotFound},
		{name: "conflict", status: http.StatusConflict, code: "conflict", want: ErrConflict},
		{name: "unavailable", status: http.StatusServiceUnavailable, code: "unavailable", want: ErrServiceUnavailable},
		{name: "plain text body", status: http.StatusInternalServerError, rawBody: "boom", want: ErrInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.rawBody != "" {
					w.WriteHeader(tt.status)
					_, _ = w.Write([]byte(tt.rawBody))
					return
				}
				writeErrorBody(w, tt.status, tt.code, "details")
			}))
			defer srv.Close()

			_, err := newTestClient(t, srv.URL).Restore(context.Background(), "bob")

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestErrorMapping_UnknownStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).Version(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "418")
	assert.Contains(t, err.Error(), http.StatusText(http.StatusTeapot))
}
