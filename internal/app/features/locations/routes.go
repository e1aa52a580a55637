// internal/app/features/locations/routes.go
package locations

import (
	"github.com/arenaops/venuehub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the locations subrouter, mounted at /api/locations.
// The method shapes (PUT create, POST move) mirror the original map
// API so the map widget keeps working unchanged.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)
	r.With(auth.RequireSignedIn).Put("/", h.HandleCreate)
	r.With(auth.RequireSignedIn).Post("/", h.HandleMove)
	r.With(auth.RequireSignedIn).Patch("/{locationID}", h.HandlePatch)
	r.With(auth.RequireSignedIn).Delete("/{locationID}", h.HandleArchive)
	return r
}
