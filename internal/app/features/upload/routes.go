// internal/app/features/upload/routes.go
package upload

import (
	"github.com/arenaops/venuehub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the upload subrouter, mounted at /api/upload.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.With(auth.RequireSignedIn).Post("/", h.HandleUpload)
	return r
}
