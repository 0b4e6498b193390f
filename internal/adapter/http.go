package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-user-directory/internal/logger"
	"github.com/MKhiriev/go-user-directory/internal/utils"
	"github.com/MKhiriev/go-user-directory/models"
)

type httpDirectoryClient struct {
	client *utils.HTTPClient

	mu       sync.RWMutex
	login    string
	password string
	lang     string

	logger *logger.Logger
}

// NewHTTPDirectoryClient constructs a [DirectoryClient] for the server at
// address, which may omit the http:// scheme.
//
// Returns an error if address is empty or cannot be parsed as a URL.
func NewHTTPDirectoryClient(address string, timeout time.Duration, logger *logger.Logger) (DirectoryClient, error) {
	baseURL, err := normalizeBaseURL(address)
	if err != nil {
		return nil, fmt.Errorf("invalid directory address: %w", err)
	}

	return &httpDirectoryClient{
		client: utils.NewHTTPClient(baseURL, timeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpDirectoryClient) SetCredentials(login, password string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.login, h.password = login, password
}

func (h *httpDirectoryClient) SetLanguage(lang string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lang = lang
}

// request builds a request carrying the stored credentials and language.
func (h *httpDirectoryClient) request(ctx context.Context) *resty.Request {
	h.mu.RLock()
	defer h.mu.RUnlock()

	req := h.client.R().SetContext(ctx)
	if h.login != "" {
		req.SetBasicAuth(h.login, h.password)
	}
	if h.lang != "" {
		req.SetHeader("Accept-Language", h.lang)
	}
	return req
}

func (h *httpDirectoryClient) Version(ctx context.Context) (string, error) {
	resp, err := h.request(ctx).Get("/api/version")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return string(resp.Body()), nil
}

func (h *httpDirectoryClient) Authenticate(ctx context.Context, credentials models.Credentials) (models.AccountFullView, error) {
	var view models.AccountFullView
	resp, err := h.request(ctx).
		SetBody(credentials).
		SetResult(&view).
		Post("/api/users/auth")

	return view, h.result(resp, err, "authenticate")
}

func (h *httpDirectoryClient) Create(ctx context.Context, req models.CreateAccountRequest) (models.AccountFullView, error) {
	var view models.AccountFullView
	resp, err := h.request(ctx).
		SetBody(req).
		SetResult(&view).
		Post("/api/users")

	return view, h.result(resp, err, "create")
}

func (h *httpDirectoryClient) UpdateInfo(ctx context.Context, req models.UpdateInfoRequest) (models.AccountFullView, error) {
	var view models.AccountFullView
	resp, err := h.request(ctx).
		SetBody(req).
		SetResult(&view).
		Put("/api/users/info")

	return view, h.result(resp, err, "update info")
}

func (h *httpDirectoryClient) ChangePassword(ctx context.Context, req models.UpdatePasswordRequest) (models.AccountFullView, error) {
	var view models.AccountFullView
	resp, err := h.request(ctx).
		SetBody(req).
		SetResult(&view).
		Put("/api/users/password")

	return view, h.result(resp, err, "change password")
}

func (h *httpDirectoryClient) ChangeLogin(ctx context.Context, req models.UpdateLoginRequest) (models.AccountFullView, error) {
	var view models.AccountFullView
	resp, err := h.request(ctx).
		SetBody(req).
		SetResult(&view).
		Put("/api/users/login")

	return view, h.result(resp, err, "change login")
}

func (h *httpDirectoryClient) ListActive(ctx context.Context) ([]models.AccountView, error) {
	var views []models.AccountView
	resp, err := h.request(ctx).
		SetResult(&views).
		Get("/api/users")

	return views, h.result(resp, err, "list active")
}

func (h *httpDirectoryClient) GetByLogin(ctx context.Context, login string) (models.AccountFullView, error) {
	var view models.AccountFullView
	resp, err := h.request(ctx).
		SetPathParam("login", login).
		SetResult(&view).
		Get("/api/users/{login}")

	return view, h.result(resp, err, "get by login")
}

func (h *httpDirectoryClient) ListOlderThan(ctx context.Context, age int) ([]models.AccountView, error) {
	var views []models.AccountView
	resp, err := h.request(ctx).
		SetPathParam("age", strconv.Itoa(age)).
		SetResult(&views).
		Get("/api/users/older-than/{age}")

	return views, h.result(resp, err, "list older than")
}

func (h *httpDirectoryClient) Delete(ctx context.Context, login string, hardDelete bool) error {
	resp, err := h.request(ctx).
		SetPathParam("login", login).
		SetQueryParam("hardDelete", strconv.FormatBool(hardDelete)).
		Delete("/api/users/{login}")

	return h.result(resp, err, "delete")
}

func (h *httpDirectoryClient) Restore(ctx context.Context, login string) (models.AccountFullView, error) {
	var view models.AccountFullView
	resp, err := h.request(ctx).
		SetPathParam("login", login).
		SetResult(&view).
		Post("/api/users/{login}/restore")

	return view, h.result(resp, err, "restore")
}

func (h *httpDirectoryClient) result(resp *resty.Response, err error, op string) error {
	if err != nil {
		h.logger.Err(err).Str("op", op).Msg("directory request failed")
		return fmt.Errorf("%s request: %w", op, err)
	}

	return mapHTTPError(resp)
}
