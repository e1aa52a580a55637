// internal/app/features/departments/handler.go
package departments

import (
	"context"
	"errors"
	"net/http"

	uierrors "github.com/arenaops/venuehub/internal/app/features/errors"
	"github.com/arenaops/venuehub/internal/app/hierarchy"
	departmentstore "github.com/arenaops/venuehub/internal/app/store/departments"
	"github.com/arenaops/venuehub/internal/app/system/timeouts"
	"github.com/arenaops/venuehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler serves the department list and the per-department org chart.
type Handler struct {
	Departments *departmentstore.Store
	Engine      *hierarchy.Service
	ErrLog      *uierrors.ErrorLogger
	Log         *zap.Logger
}

func NewHandler(departments *departmentstore.Store, engine *hierarchy.Service, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Departments: departments,
		Engine:      engine,
		ErrLog:      errLog,
		Log:         logger,
	}
}

// departmentView exposes the routing slug as the department's id and
// the store-native id separately, for relation filters.
type departmentView struct {
	ID          string `json:"id"`
	StoreID     string `json:"storeId"`
	Code        string `json:"code,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func viewOf(d models.Department) departmentView {
	return departmentView{
		ID:          d.Slug,
		StoreID:     d.ID.Hex(),
		Code:        d.Code,
		Name:        d.Name,
		Description: d.Description,
	}
}

// ServeList handles GET /api/departments.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	departments, err := h.Departments.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "departments: list", err, "Unable to load departments.")
		return
	}

	views := make([]departmentView, 0, len(departments))
	for _, d := range departments {
		views = append(views, viewOf(d))
	}
	uierrors.JSON(w, http.StatusOK, views)
}

// ServeHierarchy handles GET /api/departments/{departmentID}/hierarchy.
// {departmentID} accepts either the store-native hex id or the slug.
func (h *Handler) ServeHierarchy(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	deptID, err := h.resolveDepartment(ctx, chi.URLParam(r, "departmentID"))
	if errors.Is(err, departmentstore.ErrNotFound) {
		uierrors.WriteError(w, http.StatusNotFound, "Department not found.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "departments: resolve", err, "Unable to load department.")
		return
	}

	forest, err := h.Engine.Forest(ctx, deptID)
	switch {
	case errors.Is(err, hierarchy.ErrStoreUnavailable):
		h.ErrLog.LogUnavailable(w, r, "departments: hierarchy read", err, "The directory is temporarily unavailable.")
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "departments: hierarchy read", err, "Unable to build the org chart.")
		return
	}

	uierrors.JSON(w, http.StatusOK, forest)
}

// resolveDepartment turns a path identifier into a store-native id.
func (h *Handler) resolveDepartment(ctx context.Context, ref string) (primitive.ObjectID, error) {
	if oid, err := primitive.ObjectIDFromHex(ref); err == nil {
		if _, err := h.Departments.GetByID(ctx, oid); err != nil {
			return primitive.NilObjectID, err
		}
		return oid, nil
	}
	d, err := h.Departments.GetBySlug(ctx, ref)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return d.ID, nil
}
