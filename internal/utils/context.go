// Package utils provides helpers shared by the transport layers: typed
// context keys for the acting principal, JSON response writing and the
// resty-based HTTP client.
package utils

import (
	"context"

	"github.com/MKhiriev/go-user-directory/models"
)

// contextKey is a private type for context keys so they cannot collide
// with string keys set by other packages.
type contextKey string

func (c contextKey) String() string {
	return string(c)
}

// PrincipalCtxKey stores the *models.Account resolved from the request
// credentials.
var PrincipalCtxKey = contextKey("principal")

// WithPrincipal returns a copy of ctx carrying principal.
func WithPrincipal(ctx context.Context, principal *models.Account) context.Context {
	return context.WithValue(ctx, PrincipalCtxKey, principal)
}

// GetPrincipalFromContext returns the principal stored by [WithPrincipal].
// ok is false when the request carried no resolvable credentials.
func GetPrincipalFromContext(ctx context.Context) (*models.Account, bool) {
	principal, ok := ctx.Value(PrincipalCtxKey).(*models.Account)
	if !ok || principal == nil {
		return nil, false
	}

	return principal, true
}
