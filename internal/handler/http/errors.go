// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors for malformed requests that never reach the service
// layer. All of them map to HTTP 400.
var (
	// ErrInvalidJSON is returned when the request body cannot be decoded
	// into the expected request type.
	ErrInvalidJSON = errors.New("invalid JSON was passed")

	// ErrInvalidAge is returned when the {age} path segment is not an
	// integer.
	ErrInvalidAge = errors.New("age must be an integer")

	// ErrInvalidHardDelete is returned when the hardDelete query flag is
	// not a boolean.
	ErrInvalidHardDelete = errors.New("hardDelete must be a boolean")

	// ErrInvalidGzip is returned when a request declares gzip encoding but
	// its body is not valid gzip data.
	ErrInvalidGzip = errors.New("invalid gzip data")
)
