// internal/app/features/levels/routes.go
package levels

import "github.com/go-chi/chi/v5"

// Routes returns the levels subrouter, mounted at /api/levels.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)
	return r
}
