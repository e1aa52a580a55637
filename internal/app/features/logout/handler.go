// internal/app/features/logout/handler.go
package logout

import (
	"net/http"

	"github.com/arenaops/venuehub/internal/app/system/auth"
	"go.uber.org/zap"
)

type Handler struct {
	Log *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

// HandleLogout handles POST /api/logout. Clearing an absent session is
// fine; logout is idempotent.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := auth.SignOut(w, r); err != nil {
		h.Log.Error("logout: clear session", zap.Error(err))
	}
	w.WriteHeader(http.StatusNoContent)
}
