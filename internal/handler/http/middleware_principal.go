package http

import (
	"net/http"

	"github.com/MKhiriev/go-user-directory/internal/logger"
	"github.com/MKhiriev/go-user-directory/internal/policy"
	"github.com/MKhiriev/go-user-directory/internal/utils"
	"github.com/MKhiriev/go-user-directory/models"
	"github.com/rs/zerolog"
)

// withPrincipal resolves the Basic credentials of the request into the
// acting principal and stores it under [utils.PrincipalCtxKey].
//
// Missing or unresolvable credentials are not rejected here: the request
// continues without a principal and the policy check of the handler
// answers 401. Only a store failure during resolution aborts the request.
func (h *Handler) withPrincipal(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		login, password, ok := r.BasicAuth()
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		principal, resolved, err := h.services.IdentityResolver.Resolve(ctx, models.Credentials{Login: login, Password: password})
		if err != nil {
			writeError(w, r, err)
			return
		}
		if !resolved {
			log.Debug().Str("login", login).Msg("credentials did not resolve to an active account")
			next.ServeHTTP(w, r)
			return
		}

		l := log.GetChildLogger()
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("principal", principal.Login)
		})
		ctx = utils.WithPrincipal(l.WithContext(ctx), &principal)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// authorize runs the policy gate of op against the request principal and
// writes the rejection itself when the gate closes.
func authorize(w http.ResponseWriter, r *http.Request, op policy.Operation, targetLogin string) (*models.Account, bool) {
	principal, _ := utils.GetPrincipalFromContext(r.Context())
	if err := policy.Authorize(principal, op, targetLogin); err != nil {
		writeError(w, r, err)
		return nil, false
	}

	return principal, true
}
