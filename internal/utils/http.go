package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ContentTypeJSON is the Content-Type of every JSON response. The charset is
// explicit because gender labels are Cyrillic by default.
const ContentTypeJSON = "application/json; charset=utf-8"

// encodingFailure is written instead of a body that cannot be marshalled.
var encodingFailure = []byte(`{"error":"internal","message":"response could not be encoded"}`)

// WriteJSON marshals data and writes it with statusCode.
//
// Account data is never cached by intermediaries, so every response carries
// Cache-Control: no-store. If data cannot be marshalled, a 500
// [models.ErrorResponse] is written instead and the marshalling error is
// returned.
//
//	WriteJSON(w, account.FullView(lang), http.StatusCreated)
//	WriteJSON(w, models.ErrorResponse{Error: "not_found", Message: msg}, http.StatusNotFound)
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	w.Header().Set("Content-Type", ContentTypeJSON)
	w.Header().Set("Cache-Control", "no-store")

	body, err := json.Marshal(data)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write(encodingFailure)
		return 0, fmt.Errorf("error encoding JSON response: %w", err)
	}

	w.WriteHeader(statusCode)
	return w.Write(body)
}
