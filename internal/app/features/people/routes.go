// internal/app/features/people/routes.go
package people

import (
	"github.com/arenaops/venuehub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the people subrouter, mounted at /api/people.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)
	r.With(auth.RequireSignedIn).Post("/", h.HandleCreate)
	return r
}
