// internal/app/features/locations/handler.go
package locations

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	uierrors "github.com/arenaops/venuehub/internal/app/features/errors"
	locationstore "github.com/arenaops/venuehub/internal/app/store/locations"
	"github.com/arenaops/venuehub/internal/app/system/normalize"
	"github.com/arenaops/venuehub/internal/app/system/timeouts"
	"github.com/arenaops/venuehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler serves the floor-plan map pins. Coordinates are percentages
// of the floor image, carried through unchanged.
type Handler struct {
	Locations *locationstore.Store
	ErrLog    *uierrors.ErrorLogger
	Log       *zap.Logger
}

func NewHandler(locations *locationstore.Store, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Locations: locations,
		ErrLog:    errLog,
		Log:       logger,
	}
}

type locationView struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Color    string  `json:"color,omitempty"`
	Level    string  `json:"level"`
	Category string  `json:"category,omitempty"`
}

func viewOf(l models.Location) locationView {
	return locationView{
		ID:       l.ID.Hex(),
		Name:     l.Name,
		Lat:      l.Lat,
		Lng:      l.Lng,
		Color:    l.Color,
		Level:    l.Level,
		Category: l.Category,
	}
}

// ServeList handles GET /api/locations?level=.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	pins, err := h.Locations.List(ctx, r.URL.Query().Get("level"))
	if err != nil {
		h.ErrLog.LogServerError(w, r, "locations: list", err, "Unable to load locations.")
		return
	}

	views := make([]locationView, 0, len(pins))
	for _, l := range pins {
		views = append(views, viewOf(l))
	}
	uierrors.JSON(w, http.StatusOK, views)
}

type createRequest struct {
	Name     string  `json:"name"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Color    string  `json:"color"`
	Level    string  `json:"level"`
	Category string  `json:"category"`
}

// HandleCreate handles PUT /api/locations. The method shape comes from
// the original map API: PUT places a new pin.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "locations: decode create body", err, "Invalid request body.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	created, err := h.Locations.Create(ctx, models.Location{
		Name:     normalize.Name(req.Name),
		Lat:      req.Lat,
		Lng:      req.Lng,
		Color:    req.Color,
		Level:    req.Level,
		Category: req.Category,
	})
	if errors.Is(err, locationstore.ErrValidation) {
		uierrors.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "locations: create", err, "Unable to create location.")
		return
	}

	h.Log.Info("location created", zap.String("location_id", created.ID.Hex()))
	uierrors.JSON(w, http.StatusCreated, viewOf(created))
}

type moveRequest struct {
	ID  string  `json:"id"`
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// HandleMove handles POST /api/locations: a pin drag updates only the
// coordinates.
func (h *Handler) HandleMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "locations: decode move body", err, "Invalid request body.")
		return
	}

	id, err := primitive.ObjectIDFromHex(req.ID)
	if err != nil {
		uierrors.WriteError(w, http.StatusBadRequest, "Invalid location id.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	err = h.Locations.Move(ctx, id, req.Lat, req.Lng)
	switch {
	case errors.Is(err, locationstore.ErrNotFound):
		uierrors.WriteError(w, http.StatusNotFound, "Location not found.")
	case errors.Is(err, locationstore.ErrValidation):
		uierrors.WriteError(w, http.StatusBadRequest, "Pin coordinates must be inside the floor image.")
	case err != nil:
		h.ErrLog.LogServerError(w, r, "locations: move", err, "Unable to move location.")
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

type patchRequest struct {
	Name     *string `json:"name"`
	Color    *string `json:"color"`
	Level    *string `json:"level"`
	Category *string `json:"category"`
}

// HandlePatch handles PATCH /api/locations/{locationID}. Only fields
// present in the body are updated.
func (h *Handler) HandlePatch(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "locationID"))
	if err != nil {
		uierrors.WriteError(w, http.StatusBadRequest, "Invalid location id.")
		return
	}

	var req patchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "locations: decode patch body", err, "Invalid request body.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	updated, err := h.Locations.Update(ctx, id, locationstore.Patch{
		Name:     req.Name,
		Color:    req.Color,
		Level:    req.Level,
		Category: req.Category,
	})
	switch {
	case errors.Is(err, locationstore.ErrNotFound):
		uierrors.WriteError(w, http.StatusNotFound, "Location not found.")
	case err != nil:
		h.ErrLog.LogServerError(w, r, "locations: update", err, "Unable to update location.")
	default:
		uierrors.JSON(w, http.StatusOK, viewOf(updated))
	}
}

// HandleArchive handles DELETE /api/locations/{locationID}.
func (h *Handler) HandleArchive(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "locationID"))
	if err != nil {
		uierrors.WriteError(w, http.StatusBadRequest, "Invalid location id.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	err = h.Locations.Archive(ctx, id)
	switch {
	case errors.Is(err, locationstore.ErrNotFound):
		uierrors.WriteError(w, http.StatusNotFound, "Location not found.")
	case err != nil:
		h.ErrLog.LogServerError(w, r, "locations: archive", err, "Unable to delete location.")
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}
