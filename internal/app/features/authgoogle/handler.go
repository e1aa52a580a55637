// internal/app/features/authgoogle/handler.go
package authgoogle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	peoplestore "github.com/arenaops/venuehub/internal/app/store/people"
	"github.com/arenaops/venuehub/internal/app/system/auth"
	"github.com/arenaops/venuehub/internal/app/system/timeouts"
	"github.com/arenaops/venuehub/internal/domain/models"
	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const stateCookieName = "venuehub_oauth_state"

// Handler handles Google OAuth sign-in. Google only proves the email;
// access still requires a matching active person record, the same rule
// as the plain email login.
type Handler struct {
	People *peoplestore.Store
	Log    *zap.Logger

	ClientID     string
	ClientSecret string
	RedirectURL  string

	// sc signs the short-lived state cookie so the callback can verify
	// the flow started here.
	sc *securecookie.SecureCookie
}

// NewHandler creates a new Google OAuth handler. sessionKey signs the
// state cookie; it is the same key the session store uses.
func NewHandler(people *peoplestore.Store, clientID, clientSecret, baseURL, sessionKey string, logger *zap.Logger) *Handler {
	return &Handler{
		People:       people,
		Log:          logger,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  baseURL + "/auth/google/callback",
		sc:           securecookie.New([]byte(sessionKey), nil),
	}
}

// oauth2Config returns the Google OAuth2 configuration.
func (h *Handler) oauth2Config() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     h.ClientID,
		ClientSecret: h.ClientSecret,
		RedirectURL:  h.RedirectURL,
		Scopes: []string{
			"openid",
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}

// IsConfigured returns true if Google OAuth is configured.
func (h *Handler) IsConfigured() bool {
	return h.ClientID != "" && h.ClientSecret != ""
}

// ServeLogin handles GET /auth/google: redirects to Google's consent
// screen with a signed state token.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if !h.IsConfigured() {
		h.Log.Warn("Google OAuth not configured")
		http.Redirect(w, r, "/?error=google_not_configured", http.StatusSeeOther)
		return
	}

	state := uuid.NewString()
	encoded, err := h.sc.Encode(stateCookieName, state)
	if err != nil {
		h.Log.Error("encode OAuth state cookie", zap.Error(err))
		http.Redirect(w, r, "/?error=internal", http.StatusSeeOther)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    encoded,
		Path:     "/auth/google",
		MaxAge:   int((10 * time.Minute).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	url := h.oauth2Config().AuthCodeURL(state, oauth2.AccessTypeOffline)

	h.Log.Debug("initiating Google OAuth flow", zap.String("redirect_url", url))

	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

// ServeCallback handles GET /auth/google/callback: verifies state,
// exchanges the code, fetches the Google profile, and signs the person
// in if their email matches an active person record.
func (h *Handler) ServeCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if errParam := r.URL.Query().Get("error"); errParam != "" {
		h.Log.Warn("Google OAuth error",
			zap.String("error", errParam),
			zap.String("description", r.URL.Query().Get("error_description")))
		http.Redirect(w, r, "/?error=google_denied", http.StatusSeeOther)
		return
	}

	state := r.URL.Query().Get("state")
	if state == "" || !h.validState(r, state) {
		h.Log.Warn("invalid or missing OAuth state")
		http.Redirect(w, r, "/?error=invalid_state", http.StatusSeeOther)
		return
	}
	h.clearStateCookie(w)

	code := r.URL.Query().Get("code")
	if code == "" {
		h.Log.Warn("missing OAuth code parameter")
		http.Redirect(w, r, "/?error=invalid_code", http.StatusSeeOther)
		return
	}

	token, err := h.oauth2Config().Exchange(ctx, code)
	if err != nil {
		h.Log.Error("failed to exchange OAuth code", zap.Error(err))
		http.Redirect(w, r, "/?error=token_exchange", http.StatusSeeOther)
		return
	}

	googleUser, err := fetchGoogleUserInfo(ctx, token)
	if err != nil {
		h.Log.Error("failed to fetch Google user info", zap.Error(err))
		http.Redirect(w, r, "/?error=user_info", http.StatusSeeOther)
		return
	}

	lookupCtx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	p, err := h.People.GetByEmail(lookupCtx, googleUser.Email)
	if errors.Is(err, peoplestore.ErrNotFound) {
		h.Log.Info("Google OAuth: no person record for email",
			zap.String("email", googleUser.Email))
		http.Redirect(w, r, "/?error=no_account", http.StatusSeeOther)
		return
	}
	if err != nil {
		h.Log.Error("Google OAuth: person lookup failed", zap.Error(err))
		http.Redirect(w, r, "/?error=internal", http.StatusSeeOther)
		return
	}
	if p.Status == models.PersonInactive {
		h.Log.Info("Google OAuth: person inactive", zap.String("email", googleUser.Email))
		http.Redirect(w, r, "/?error=account_inactive", http.StatusSeeOther)
		return
	}

	photo := p.Photo
	if photo == "" {
		photo = googleUser.Picture
	}
	u := &auth.SessionUser{
		ID:    p.ID.Hex(),
		Name:  p.Name,
		Email: p.Email,
		Photo: photo,
	}
	if err := auth.SignIn(w, r, u); err != nil {
		h.Log.Error("Google OAuth: save session", zap.Error(err))
		http.Redirect(w, r, "/?error=session", http.StatusSeeOther)
		return
	}

	h.Log.Info("person signed in via Google OAuth",
		zap.String("person_id", u.ID),
		zap.String("email", u.Email))

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// validState checks the callback state against the signed cookie.
func (h *Handler) validState(r *http.Request, state string) bool {
	c, err := r.Cookie(stateCookieName)
	if err != nil {
		return false
	}
	var want string
	if err := h.sc.Decode(stateCookieName, c.Value, &want); err != nil {
		return false
	}
	return want == state
}

func (h *Handler) clearStateCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    "",
		Path:     "/auth/google",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// googleUserInfo represents user info returned from Google.
type googleUserInfo struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// fetchGoogleUserInfo retrieves user information from Google's userinfo endpoint.
func fetchGoogleUserInfo(ctx context.Context, token *oauth2.Token) (*googleUserInfo, error) {
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))

	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}

	return &info, nil
}
