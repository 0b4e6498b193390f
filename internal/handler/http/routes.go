package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID, h.withLogging, middleware.Recoverer, h.withGZip)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/api/version", h.getServerVersion)
		r.Post("/api/users/auth", h.authenticate)
	})

	// routes gated by the authorization policy
	router.Group(func(r chi.Router) {
		r.Use(h.withPrincipal)

		r.Post("/api/users", h.createAccount)
		r.Get("/api/users", h.listActiveAccounts)
		r.Put("/api/users/info", h.updateAccountInfo)
		r.Put("/api/users/password", h.changePassword)
		r.Put("/api/users/login", h.changeLogin)
		r.Get("/api/users/older-than/{age}", h.listAccountsOlderThan)
		r.Get("/api/users/{login}", h.getAccount)
		r.Delete("/api/users/{login}", h.deleteAccount)
		r.Post("/api/users/{login}/restore", h.restoreAccount)
	})

	router.NotFound(notFound)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
