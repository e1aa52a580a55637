// internal/app/features/login/handler.go
package login

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	uierrors "github.com/arenaops/venuehub/internal/app/features/errors"
	peoplestore "github.com/arenaops/venuehub/internal/app/store/people"
	"github.com/arenaops/venuehub/internal/app/system/auth"
	"github.com/arenaops/venuehub/internal/app/system/normalize"
	"github.com/arenaops/venuehub/internal/app/system/timeouts"
	"github.com/arenaops/venuehub/internal/domain/models"
	"go.uber.org/zap"
)

// Handler implements email-trust sign-in: a person signs in by email
// alone, provided a matching active person record exists. There are no
// passwords; access control is record existence.
type Handler struct {
	People *peoplestore.Store
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(people *peoplestore.Store, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		People: people,
		ErrLog: errLog,
		Log:    logger,
	}
}

type loginRequest struct {
	Email string `json:"email"`
}

// sessionResponse mirrors what GET /api/session returns.
type sessionResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Photo string `json:"photo,omitempty"`
}

// HandleLogin handles POST /api/login.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode login body", err, "Invalid request body.")
		return
	}

	email := normalize.Email(req.Email)
	if email == "" {
		uierrors.WriteError(w, http.StatusBadRequest, "Please enter your email.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.People.GetByEmail(ctx, email)
	if errors.Is(err, peoplestore.ErrNotFound) {
		uierrors.WriteError(w, http.StatusUnauthorized, "No account found for that email.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "login: lookup person", err, "A server error occurred.")
		return
	}

	if p.Status == models.PersonInactive {
		uierrors.WriteError(w, http.StatusForbidden, "This account is inactive.")
		return
	}

	u := &auth.SessionUser{
		ID:    p.ID.Hex(),
		Name:  p.Name,
		Email: p.Email,
		Photo: p.Photo,
	}
	if err := auth.SignIn(w, r, u); err != nil {
		h.ErrLog.LogServerError(w, r, "login: save session", err, "Unable to create session.")
		return
	}

	h.Log.Info("person signed in",
		zap.String("person_id", u.ID),
		zap.String("email", email))

	uierrors.JSON(w, http.StatusOK, sessionResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Photo: u.Photo,
	})
}

// ServeSession handles GET /api/session. Returns the signed-in user or
// 401 when there is no session.
func (h *Handler) ServeSession(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		uierrors.WriteError(w, http.StatusUnauthorized, "Not signed in.")
		return
	}
	uierrors.JSON(w, http.StatusOK, sessionResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Photo: u.Photo,
	})
}
