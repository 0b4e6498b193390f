package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-user-directory/models"
)

// Error codes the server puts in models.ErrorResponse that refine a status.
const (
	codeInvalidState       = "invalid_state"
	codeInvalidCredentials = "invalid_credentials"
)

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	code, message := decodeErrorBody(resp)

	switch resp.StatusCode() {
	case http.StatusBadRequest:
		if code == codeInvalidState {
			return fmt.Errorf("%w: %s", ErrInvalidState, message)
		}
		return fmt.Errorf("%w: %s", ErrBadRequest, message)
	case http.StatusUnauthorized:
		if code == codeInvalidCredentials {
			return fmt.Errorf("%w: %s", ErrInvalidCredentials, message)
		}
		return fmt.Errorf("%w: %s", ErrUnauthorized, message)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrForbidden, message)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, message)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrConflict, message)
	case http.StatusServiceUnavailable:
		return fmt.Errorf("%w: %s", ErrServiceUnavailable, message)
	case http.StatusInternalServerError:
		return fmt.Errorf("%w: %s", ErrInternalServerError, message)
	default:
		return fmt.Errorf("http %d: %s", resp.StatusCode(), message)
	}
}

// decodeErrorBody reads a models.ErrorResponse, falling back to the raw
// body and then to the status text.
func decodeErrorBody(resp *resty.Response) (code, message string) {
	var body models.ErrorResponse
	if err := json.Unmarshal(resp.Body(), &body); err == nil && body.Error != "" {
		return body.Error, body.Message
	}

	message = strings.TrimSpace(string(resp.Body()))
	if message == "" {
		message = http.StatusText(resp.StatusCode())
	}
	return "", message
}
