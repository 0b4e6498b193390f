package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-user-directory/internal/logger"
	"github.com/MKhiriev/go-user-directory/internal/policy"
	"github.com/MKhiriev/go-user-directory/internal/service"
	"github.com/MKhiriev/go-user-directory/internal/utils"
	"github.com/MKhiriev/go-user-directory/internal/validators"
	"github.com/MKhiriev/go-user-directory/models"
)

// Error codes carried in [models.ErrorResponse].
const (
	codeNotFound           = "not_found"
	codeConflict           = "conflict"
	codeInvalidState       = "invalid_state"
	codeInvalidCredentials = "invalid_credentials"
	codeUnauthenticated    = "unauthenticated"
	codeForbidden          = "forbidden"
	codeInvalidInput       = "invalid_input"
	codeUnavailable        = "unavailable"
)

type errorMapping struct {
	status int
	code   string
}

var errorStatusMap = map[error]errorMapping{
	service.ErrNotFound:           {http.StatusNotFound, codeNotFound},
	service.ErrConflict:           {http.StatusConflict, codeConflict},
	service.ErrInvalidState:       {http.StatusBadRequest, codeInvalidState},
	service.ErrInvalidCredentials: {http.StatusUnauthorized, codeInvalidCredentials},

	policy.ErrUnauthenticated: {http.StatusUnauthorized, codeUnauthenticated},
	policy.ErrForbidden:       {http.StatusForbidden, codeForbidden},

	validators.ErrInvalidInput: {http.StatusBadRequest, codeInvalidInput},
	ErrInvalidJSON:             {http.StatusBadRequest, codeInvalidInput},
	ErrInvalidAge:              {http.StatusBadRequest, codeInvalidInput},
	ErrInvalidHardDelete:       {http.StatusBadRequest, codeInvalidInput},
	ErrInvalidGzip:             {http.StatusBadRequest, codeInvalidInput},
}

var unavailable = errorMapping{http.StatusServiceUnavailable, codeUnavailable}

func mappingFromError(err error) errorMapping {
	for target, mapping := range errorStatusMap {
		if errors.Is(err, target) {
			return mapping
		}
	}
	return unavailable
}

func statusFromError(err error) int {
	return mappingFromError(err).status
}

// writeError renders err as a [models.ErrorResponse]. Fatal errors are
// logged and their text is not exposed to the caller.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	mapping := mappingFromError(err)
	log := logger.FromRequest(r)

	message := err.Error()
	if mapping == unavailable {
		log.Err(err).Msg("request failed")
		message = http.StatusText(mapping.status)
	} else {
		log.Debug().Err(err).Int("status", mapping.status).Msg("request rejected")
	}

	if mapping.status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", `Basic realm="user-directory"`)
	}

	utils.WriteJSON(w, models.ErrorResponse{Error: mapping.code, Message: message}, mapping.status)
}
