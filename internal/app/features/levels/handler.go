// internal/app/features/levels/handler.go
package levels

import (
	"context"
	"net/http"

	uierrors "github.com/arenaops/venuehub/internal/app/features/errors"
	levelstore "github.com/arenaops/venuehub/internal/app/store/levels"
	"github.com/arenaops/venuehub/internal/app/system/timeouts"
	"github.com/arenaops/venuehub/internal/domain/models"
	"go.uber.org/zap"
)

// Handler serves the floor levels and their plan images.
type Handler struct {
	Levels *levelstore.Store
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(levels *levelstore.Store, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Levels: levels,
		ErrLog: errLog,
		Log:    logger,
	}
}

type levelView struct {
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
}

// ServeList handles GET /api/levels. Every level gets an image URL,
// falling back to the default floor plan when none was uploaded.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	floors, err := h.Levels.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "levels: list", err, "Unable to load floor levels.")
		return
	}

	views := make([]levelView, 0, len(floors))
	for _, l := range floors {
		v := levelView{Name: l.Name, ImageURL: l.ImageURL}
		if v.ImageURL == "" {
			v.ImageURL = models.DefaultFloorImage
		}
		views = append(views, v)
	}
	uierrors.JSON(w, http.StatusOK, views)
}
