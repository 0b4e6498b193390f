package models

// ErrorResponse is the JSON body of every non-2xx API response.
type ErrorResponse struct {
	// Error is a stable machine-readable code such as "not_found" or
	// "forbidden".
	Error string `json:"error"`

	// Message is a human-readable description. Fatal errors carry only the
	// HTTP status text.
	Message string `json:"message"`
}
