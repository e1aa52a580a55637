// internal/app/features/assignments/routes.go
package assignments

import (
	"github.com/arenaops/venuehub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the assignments subrouter, mounted at /api/assignments.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)
	r.With(auth.RequireSignedIn).Post("/", h.HandleCreate)
	r.With(auth.RequireSignedIn).Delete("/{assignmentID}", h.HandleArchive)
	return r
}
