package auth

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Session constants & globals                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

const (
	isAuthKey   = "is_authenticated"
	personIDKey = "person_id"
	personName  = "person_name"
	personEmail = "person_email"
	personPhoto = "person_photo"
)

// SessionName is the cookie name; InitSessionStore may override it from config.
var SessionName = "venuehub-session"

// Store is initialised once via InitSessionStore.
var Store *sessions.CookieStore

/*─────────────────────────────────────────────────────────────────────────────*
| Current-User helper                                                          |
*─────────────────────────────────────────────────────────────────────────────*/

// SessionUser is what we cache in the session & inject into r.Context().
// ID is the person's store-native id (ObjectID hex).
type SessionUser struct {
	ID    string
	Name  string
	Email string
	Photo string
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the user & “found?” flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

// LoadSessionUser injects the user into context if they are logged in.
// If the session store has not been initialized yet, it is a no-op.
func LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if Store == nil {
			next.ServeHTTP(w, r)
			return
		}

		sess, _ := Store.Get(r, SessionName)

		if isAuth, _ := sess.Values[isAuthKey].(bool); isAuth {
			u := &SessionUser{
				ID:    getString(sess, personIDKey),
				Name:  getString(sess, personName),
				Email: getString(sess, personEmail),
				Photo: getString(sess, personPhoto),
			}
			r = withUser(r, u)
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSignedIn ensures there is a user in context (set by LoadSessionUser).
// The API surface is JSON, so unauthenticated callers get a plain 401.
func RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); ok {
			next.ServeHTTP(w, r)
			return
		}
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	})
}

// SignIn stores the user in the session cookie.
func SignIn(w http.ResponseWriter, r *http.Request, u *SessionUser) error {
	if Store == nil {
		return fmt.Errorf("session store not initialized")
	}
	sess, _ := Store.Get(r, SessionName)
	sess.Values[isAuthKey] = true
	sess.Values[personIDKey] = u.ID
	sess.Values[personName] = u.Name
	sess.Values[personEmail] = u.Email
	sess.Values[personPhoto] = u.Photo
	return sess.Save(r, w)
}

// SignOut clears the session.
func SignOut(w http.ResponseWriter, r *http.Request) error {
	if Store == nil {
		return nil
	}
	sess, _ := Store.Get(r, SessionName)
	sess.Values = map[interface{}]interface{}{}
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

// InitSessionStore initializes the global session Store using the provided
// session key, cookie name, and domain. The `secure` flag controls whether
// cookies are marked Secure and which SameSite mode is used.
//
// In production (secure=true), cookies are Secure + SameSite=None.
// In local dev over http://localhost, use secure=false so cookies are accepted.
func InitSessionStore(sessionKey, cookieName, domain string, secure bool, logger *zap.Logger) error {
	if sessionKey == "" {
		return fmt.Errorf("session key is empty; provide ≥32 random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}
	if cookieName != "" {
		SessionName = cookieName
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		Secure:   secure,
		HttpOnly: true,
	}

	if secure {
		opts.SameSite = http.SameSiteNoneMode
	} else {
		opts.SameSite = http.SameSiteLaxMode
	}

	store.Options = opts
	Store = store

	logger.Info("session store initialized",
		zap.Bool("secure", secure),
		zap.String("domain", domain))

	return nil
}

// WithTestUser injects a session user directly into the request context.
// Handler tests use this to bypass the session middleware.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

// helpers

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// getString safely extracts a string from a session value.
func getString(s *sessions.Session, key string) string {
	if v, ok := s.Values[key].(string); ok {
		return v
	}
	return ""
}
