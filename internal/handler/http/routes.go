package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the chi router with the full API surface. Authentication
// gates everything except the health endpoint and the auth bootstrap
// routes; admin checks happen in the service layer against storage, not
// here.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/api/health", h.health)

		r.Get("/api/auth/registration-status", h.registrationStatus)
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)

		r.Get("/api/auth/recovery-status", h.recoveryStatus)
		r.Post("/api/auth/recover", h.recover)
	})

	// routes behind bearer-token authentication
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/auth/change-password", h.changePassword)

		r.Get("/api/users/me", h.currentUser)
		r.Get("/api/users", h.listUsers)
		r.Post("/api/users", h.createUser)
		r.Put("/api/users/{userID}/role", h.changeRole)
		r.Put("/api/users/{userID}/password", h.resetPassword)
		r.Delete("/api/users/{userID}", h.deleteUser)

		r.Get("/api/vault", h.listEntries)
		r.Post("/api/vault", h.createEntry)
		r.Get("/api/vault/{itemID}", h.getEntry)
		r.Put("/api/vault/{itemID}", h.updateEntry)
		r.Delete("/api/vault/{itemID}", h.deleteEntry)

		r.Get("/api/icons/suggest", h.suggestIcons)
		r.Get("/api/icons/{iconRef}", h.serveIcon)
		r.Post("/api/vault/{itemID}/icon", h.uploadIcon)
		r.Post("/api/vault/{itemID}/icon/import", h.importIcon)
	})

	return router
}
