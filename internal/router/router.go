// Package router sets up all HTTP routes and middleware chains for the
// Sweet Creations API. Public catalog routes sit next to the bearer-token
// protected admin operations.
package router

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"

	"sweetcreations/internal/handlers"
	"sweetcreations/internal/middleware"
	"sweetcreations/internal/session"
	"sweetcreations/web"
)

// Handlers bundles the handler groups the router wires up.
type Handlers struct {
	Portfolio    *handlers.Portfolio
	Testimonials *handlers.Testimonials
	Contacts     *handlers.Contacts
	Auth         *handlers.Auth
	Stats        *handlers.Stats
	Uploads      *handlers.Uploads
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(sessionStore *session.Store, h Handlers) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request. LoadSession runs before
	// Logger so authenticated requests are logged with their account.
	r.Use(middleware.Recoverer)
	r.Use(middleware.LoadSession(sessionStore))
	r.Use(middleware.Logger)

	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		// Portfolio catalog — public reads, admin mutations.
		r.Route("/portfolio", func(r chi.Router) {
			r.Get("/", h.Portfolio.List)
			r.Get("/categories/list", h.Portfolio.Categories)
			r.Get("/{id}", h.Portfolio.Get)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth, middleware.RequireAdmin)
				r.Post("/", h.Portfolio.Create)
				r.Put("/{id}", h.Portfolio.Update)
				r.Delete("/{id}", h.Portfolio.Delete)
			})
		})

		// Testimonials — public approved listing, admin moderation.
		r.Route("/testimonials", func(r chi.Router) {
			r.Get("/", h.Testimonials.List)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth, middleware.RequireAdmin)
				r.Post("/", h.Testimonials.Create)
				r.Get("/{id}", h.Testimonials.Get)
				r.Put("/{id}", h.Testimonials.Update)
				r.Patch("/{id}/approve", h.Testimonials.ToggleApproval)
				r.Delete("/{id}", h.Testimonials.Delete)
			})
		})

		// Contact — public submissions, admin inbox.
		r.Route("/contact", func(r chi.Router) {
			r.Post("/", h.Contacts.Submit)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth, middleware.RequireAdmin)
				r.Get("/", h.Contacts.List)
				r.Get("/{id}", h.Contacts.Get)
				r.Patch("/{id}", h.Contacts.UpdateStatus)
				r.Delete("/{id}", h.Contacts.Delete)
			})
		})

		// Auth — login is open, the rest needs a session.
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Post("/logout", h.Auth.Logout)
				r.Get("/me", h.Auth.Me)
				r.Put("/updatepassword", h.Auth.UpdatePassword)
				r.Post("/2fa/setup", h.Auth.TwoFASetup)
				r.Post("/2fa/verify", h.Auth.TwoFAVerify)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth, middleware.RequireAdmin)
				r.Post("/register", h.Auth.Register)
			})
		})

		// Stats — admin dashboard aggregates.
		r.Route("/stats", func(r chi.Router) {
			r.Use(middleware.RequireAuth, middleware.RequireAdmin)
			r.Get("/", h.Stats.Dashboard)
			r.Get("/portfolio", h.Stats.Portfolio)
		})

		// Uploads — portfolio image storage.
		r.Route("/uploads", func(r chi.Router) {
			r.Use(middleware.RequireAuth, middleware.RequireAdmin)
			r.Post("/", h.Uploads.Upload)
			r.Delete("/", h.Uploads.Delete)
		})
	})

	// Embedded site shell and assets.
	staticFS, _ := fs.Sub(web.StaticFS, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.FileServer(http.FS(staticFS)).ServeHTTP(w, r)
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
