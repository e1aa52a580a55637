// internal/app/features/departments/routes.go
package departments

import "github.com/go-chi/chi/v5"

// Routes returns the departments subrouter, mounted at /api/departments.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)
	r.Get("/{departmentID}/hierarchy", h.ServeHierarchy)
	return r
}
