// internal/app/features/people/handler.go
package people

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	uierrors "github.com/arenaops/venuehub/internal/app/features/errors"
	peoplestore "github.com/arenaops/venuehub/internal/app/store/people"
	"github.com/arenaops/venuehub/internal/app/system/htmlsanitize"
	"github.com/arenaops/venuehub/internal/app/system/normalize"
	"github.com/arenaops/venuehub/internal/app/system/timeouts"
	"github.com/arenaops/venuehub/internal/domain/models"
	"go.uber.org/zap"
)

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

// personView is the JSON shape a person is returned as.
type personView struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email,omitempty"`
	Phone  string `json:"phone,omitempty"`
	Photo  string `json:"photo,omitempty"`
	Status string `json:"status"`
	Notes  string `json:"notes,omitempty"`
}

func viewOf(p models.Person) personView {
	return personView{
		ID:     p.ID.Hex(),
		Name:   p.Name,
		Email:  p.Email,
		Phone:  p.Phone,
		Photo:  p.Photo,
		Status: p.Status,
		Notes:  p.Notes,
	}
}

// ServeList handles GET /api/people?search=.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	people, err := h.People.Search(ctx, r.URL.Query().Get("search"))
	if err != nil {
		h.ErrLog.LogServerError(w, r, "people: list", err, "Unable to load people.")
		return
	}

	views := make([]personView, 0, len(people))
	for _, p := range people {
		views = append(views, viewOf(p))
	}
	uierrors.JSON(w, http.StatusOK, views)
}

type createRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Photo string `json:"photo"`
	Notes string `json:"notes"`
}

// HandleCreate handles POST /api/people.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "people: decode create body", err, "Invalid request body.")
		return
	}

	name := normalize.Name(req.Name)
	if name == "" {
		uierrors.WriteError(w, http.StatusBadRequest, "Name is required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	created, err := h.People.Create(ctx, models.Person{
		Name:  name,
		Email: normalize.Email(req.Email),
		Phone: normalize.Phone(req.Phone),
		Photo: htmlsanitize.PlainText(req.Photo),
		Notes: htmlsanitize.Sanitize(req.Notes),
	})
	if errors.Is(err, peoplestore.ErrDuplicateEmail) {
		uierrors.WriteError(w, http.StatusConflict, "A person with this email already exists.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "people: create", err, "Unable to create person.")
		return
	}

	h.Log.Info("person created", zap.String("person_id", created.ID.Hex()))
	uierrors.JSON(w, http.StatusCreated, viewOf(created))
}
