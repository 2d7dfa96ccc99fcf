// Package session wraps the cookie-backed session store and provides the
// authentication guard for protected views. The session is the only state
// this service owns directly: a signed cookie carrying the user identifier
// set at login.
package session

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/refhub/order-management-backend/interfaces"
)

// CookieName is the session cookie name.
const CookieName = "_session"

// userKey is the session value holding the authenticated user identifier.
const userKey = "user"

type contextKey struct{}

// Manager resolves, updates, and serializes sessions backed by a signed
// cookie. The secret comes from process configuration; cookies are
// HttpOnly, SameSite=Lax, path "/", and Secure in production.
type Manager struct {
	store     *sessions.CookieStore
	entryPath string
	log       *slog.Logger
}

// NewManager creates a session manager signing cookies with secret.
// Unauthenticated requests to guarded views are redirected to entryPath.
func NewManager(secret []byte, secure bool, entryPath string, log *slog.Logger) *Manager {
	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &Manager{store: store, entryPath: entryPath, log: log}
}

// User reads the user identifier from the request's session. The second
// return is false when no session exists or it carries no user.
func (m *Manager) User(r *http.Request) (interfaces.UserID, bool) {
	// Get never fails fatally for cookie stores; a bad signature just
	// yields a fresh empty session.
	sess, err := m.store.Get(r, CookieName)
	if err != nil {
		m.log.Debug("Session cookie could not be decoded", "err", err)
		return "", false
	}
	raw, ok := sess.Values[userKey].(string)
	if !ok || raw == "" {
		return "", false
	}
	return interfaces.UserID(raw), true
}

// SetUser stores the user identifier in the session and writes the updated
// cookie to the response. Called once per successful login.
func (m *Manager) SetUser(w http.ResponseWriter, r *http.Request, user interfaces.UserID) error {
	sess, _ := m.store.Get(r, CookieName)
	sess.Values[userKey] = user.String()
	return sess.Save(r, w)
}

// Clear drops the session by expiring the cookie.
func (m *Manager) Clear(w http.ResponseWriter, r *http.Request) error {
	sess, _ := m.store.Get(r, CookieName)
	delete(sess.Values, userKey)
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

// RequireUser gates protected views. Requests without a session user are
// redirected to the entry view without rendering; otherwise the user
// identifier is attached to the request context for the view.
func (m *Manager) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := m.User(r)
		if !ok {
			http.Redirect(w, r, m.entryPath, http.StatusFound)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

// WithUser returns a context carrying the authenticated user identifier.
func WithUser(ctx context.Context, user interfaces.UserID) context.Context {
	return context.WithValue(ctx, contextKey{}, user)
}

// UserFromContext retrieves the identifier placed by RequireUser.
func UserFromContext(ctx context.Context) (interfaces.UserID, bool) {
	user, ok := ctx.Value(contextKey{}).(interfaces.UserID)
	return user, ok
}
