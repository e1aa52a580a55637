// internal/app/features/assignments/handler.go
package assignments

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	uierrors "github.com/arenaops/venuehub/internal/app/features/errors"
	"github.com/arenaops/venuehub/internal/app/hierarchy"
	assignmentstore "github.com/arenaops/venuehub/internal/app/store/assignments"
	"github.com/arenaops/venuehub/internal/app/system/timeouts"
	"github.com/arenaops/venuehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler serves the flat assignment records and the mutation paths.
// All sequencing rules live in the engine; this layer only translates
// HTTP to engine calls and engine errors to statuses.
type Handler struct {
	Assignments *assignmentstore.Store
	Engine      *hierarchy.Service
	ErrLog      *uierrors.ErrorLogger
	Log         *zap.Logger
}

func NewHandler(assignments *assignmentstore.Store, engine *hierarchy.Service, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Assignments: assignments,
		Engine:      engine,
		ErrLog:      errLog,
		Log:         logger,
	}
}

type assignmentView struct {
	ID           string `json:"id"`
	DepartmentID string `json:"departmentId"`
	PersonID     string `json:"personId"`
	Role         string `json:"role"`
	ReportsTo    string `json:"reportsTo,omitempty"`
}

func viewOf(a models.Assignment) assignmentView {
	v := assignmentView{
		ID:           a.ID.Hex(),
		DepartmentID: a.DepartmentID.Hex(),
		PersonID:     a.PersonID.Hex(),
		Role:         string(a.Role),
	}
	if a.ReportsTo != nil {
		v.ReportsTo = a.ReportsTo.Hex()
	}
	return v
}

// ServeList handles GET /api/assignments?departmentId=&personId=.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	filter := assignmentstore.FilterFromHex(
		r.URL.Query().Get("departmentId"),
		r.URL.Query().Get("personId"),
	)

	records, err := h.Assignments.List(ctx, filter)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "assignments: list", err, "Unable to load assignments.")
		return
	}

	views := make([]assignmentView, 0, len(records))
	for _, a := range records {
		views = append(views, viewOf(a))
	}
	uierrors.JSON(w, http.StatusOK, views)
}

type createRequest struct {
	PersonID     string `json:"personId"`
	DepartmentID string `json:"departmentId"`
	Role         string `json:"role"`
	ReportsTo    string `json:"reportsTo"`
}

// HandleCreate handles POST /api/assignments.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "assignments: decode create body", err, "Invalid request body.")
		return
	}

	personID, err := primitive.ObjectIDFromHex(req.PersonID)
	if err != nil {
		uierrors.WriteError(w, http.StatusBadRequest, "Invalid person reference.")
		return
	}
	departmentID, err := primitive.ObjectIDFromHex(req.DepartmentID)
	if err != nil {
		uierrors.WriteError(w, http.StatusBadRequest, "Invalid department reference.")
		return
	}

	proposal := hierarchy.Proposal{
		DepartmentID: departmentID,
		PersonID:     personID,
		Role:         models.Role(req.Role),
	}
	if req.ReportsTo != "" {
		parentID, err := primitive.ObjectIDFromHex(req.ReportsTo)
		if err != nil {
			uierrors.WriteError(w, http.StatusBadRequest, "Invalid parent assignment reference.")
			return
		}
		proposal.ReportsTo = &parentID
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Engine.ProposeAssignment(ctx, proposal)
	if err != nil {
		h.writeEngineError(w, r, err)
		return
	}

	uierrors.JSON(w, http.StatusCreated, viewOf(created))
}

// HandleArchive handles DELETE /api/assignments/{assignmentID}.
func (h *Handler) HandleArchive(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "assignmentID"))
	if err != nil {
		uierrors.WriteError(w, http.StatusBadRequest, "Invalid assignment id.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Engine.Archive(ctx, id); err != nil {
		h.writeEngineError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeEngineError maps engine errors to HTTP statuses. Validation
// failures carry the engine's message: it names the rule and the ids,
// which is exactly what the caller needs to display.
func (h *Handler) writeEngineError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, hierarchy.ErrValidation):
		uierrors.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, hierarchy.ErrInvalidRootRole),
		errors.Is(err, hierarchy.ErrRoleSequence):
		uierrors.WriteError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, hierarchy.ErrParentNotFound),
		errors.Is(err, hierarchy.ErrNotFound):
		uierrors.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, hierarchy.ErrDuplicateOverseer):
		uierrors.WriteError(w, http.StatusConflict, err.Error())
	case errors.Is(err, hierarchy.ErrStoreUnavailable):
		h.ErrLog.LogUnavailable(w, r, "assignments: store unreachable", err, "The directory is temporarily unavailable.")
	default:
		h.ErrLog.LogServerError(w, r, "assignments: engine call failed", err, "A server error occurred.")
	}
}
