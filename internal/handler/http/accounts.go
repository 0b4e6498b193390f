package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-user-directory/internal/logger"
	"github.com/MKhiriev/go-user-directory/internal/policy"
	"github.com/MKhiriev/go-user-directory/internal/utils"
	"github.com/MKhiriev/go-user-directory/models"
)

const hardDeleteQueryParam = "hardDelete"

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return nil
}

func accountLocation(login string) string {
	return "/api/users/" + url.PathEscape(login)
}

func (h *Handler) createAccount(w http.ResponseWriter, r *http.Request) {
	principal, ok := authorize(w, r, policy.OperationCreate, "")
	if !ok {
		return
	}

	var req models.CreateAccountRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	account, err := h.services.AccountService.Create(r.Context(), req, principal.Login)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Location", accountLocation(account.Login))
	utils.WriteJSON(w, account.FullView(requestLanguage(r)), http.StatusCreated)
}

func (h *Handler) updateAccountInfo(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateInfoRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	principal, ok := authorize(w, r, policy.OperationUpdateInfo, req.Login)
	if !ok {
		return
	}

	account, err := h.services.AccountService.UpdateInfo(r.Context(), req, principal.Login)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, account.FullView(requestLanguage(r)), http.StatusOK)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	var req models.UpdatePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	principal, ok := authorize(w, r, policy.OperationChangePassword, req.Login)
	if !ok {
		return
	}

	account, err := h.services.AccountService.ChangePassword(r.Context(), req, principal.Login, policy.ActingAsAdmin(principal))
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, account.FullView(requestLanguage(r)), http.StatusOK)
}

func (h *Handler) changeLogin(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateLoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	principal, ok := authorize(w, r, policy.OperationChangeLogin, req.OldLogin)
	if !ok {
		return
	}

	account, err := h.services.AccountService.ChangeLogin(r.Context(), req, principal.Login, policy.ActingAsAdmin(principal))
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Location", accountLocation(account.Login))
	utils.WriteJSON(w, account.FullView(requestLanguage(r)), http.StatusOK)
}

func (h *Handler) listActiveAccounts(w http.ResponseWriter, r *http.Request) {
	if _, ok := authorize(w, r, policy.OperationListActive, ""); !ok {
		return
	}

	accounts, err := h.services.AccountService.ListActive(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.Views(accounts, requestLanguage(r)), http.StatusOK)
}

func (h *Handler) getAccount(w http.ResponseWriter, r *http.Request) {
	login := chi.URLParam(r, "login")
	if _, ok := authorize(w, r, policy.OperationGetByLogin, login); !ok {
		return
	}

	account, err := h.services.AccountService.GetByLogin(r.Context(), login)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, account.FullView(requestLanguage(r)), http.StatusOK)
}

// authenticate checks the credentials in the body. It is not gated: the
// credentials being checked are the caller's own.
func (h *Handler) authenticate(w http.ResponseWriter, r *http.Request) {
	var credentials models.Credentials
	if err := decodeJSON(r, &credentials); err != nil {
		writeError(w, r, err)
		return
	}

	account, err := h.services.AccountService.Authenticate(r.Context(), credentials)
	if err != nil {
		writeError(w, r, err)
		return
	}
	logger.FromRequest(r).Debug().Str("login", account.Login).Msg("credentials accepted")

	utils.WriteJSON(w, account.FullView(requestLanguage(r)), http.StatusOK)
}

func (h *Handler) listAccountsOlderThan(w http.ResponseWriter, r *http.Request) {
	if _, ok := authorize(w, r, policy.OperationListOlderThan, ""); !ok {
		return
	}

	age, err := strconv.Atoi(chi.URLParam(r, "age"))
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidAge, err))
		return
	}

	accounts, err := h.services.AccountService.ListOlderThan(r.Context(), age)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.Views(accounts, requestLanguage(r)), http.StatusOK)
}

func (h *Handler) deleteAccount(w http.ResponseWriter, r *http.Request) {
	login := chi.URLParam(r, "login")
	principal, ok := authorize(w, r, policy.OperationDelete, login)
	if !ok {
		return
	}

	hardDelete := false
	if raw := r.URL.Query().Get(hardDeleteQueryParam); raw != "" {
		var err error
		if hardDelete, err = strconv.ParseBool(raw); err != nil {
			writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidHardDelete, err))
			return
		}
	}

	if err := h.services.AccountService.Delete(r.Context(), login, principal.Login, hardDelete); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) restoreAccount(w http.ResponseWriter, r *http.Request) {
	login := chi.URLParam(r, "login")
	if _, ok := authorize(w, r, policy.OperationRestore, login); !ok {
		return
	}

	account, err := h.services.AccountService.Restore(r.Context(), login)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, account.FullView(requestLanguage(r)), http.StatusOK)
}
