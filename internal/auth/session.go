package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/secondli/secondli-be/internal/models"
	"github.com/secondli/secondli-be/internal/storage"
)

type contextKey string

// userKey is the context key under which Authenticate stashes the current user.
const userKey = contextKey("currentUser")

// SessionReader is the slice of the store the session manager depends on.
type SessionReader interface {
	storage.SessionStore
	GetUser(id int) (models.User, bool)
}

// Manager issues, resolves and tears down cookie-backed sessions, and
// provides the route guards used in the route table.
type Manager struct {
	store      SessionReader
	cookieName string
	ttl        time.Duration
	secure     bool
}

// NewManager creates a session manager. secure controls the cookie's Secure
// flag and should be true in production.
func NewManager(store SessionReader, cookieName string, ttl time.Duration, secure bool) *Manager {
	return &Manager{store: store, cookieName: cookieName, ttl: ttl, secure: secure}
}

// Issue creates a server-side session for the user and sets the cookie.
func (m *Manager) Issue(w http.ResponseWriter, userID int) {
	session := m.store.CreateSession(userID, m.ttl)
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    session.Token,
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
	})
}

// Clear deletes the session referenced by the request cookie, if any, and
// expires the cookie. Safe to call on anonymous requests.
func (m *Manager) Clear(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(m.cookieName); err == nil {
		m.store.DeleteSession(cookie.Value)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
	})
}

// Authenticate resolves the session cookie to a full user record and stashes
// it in the request context. Anonymous and stale-cookie requests pass
// through unchanged; the guards below decide whether that is acceptable.
func (m *Manager) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(m.cookieName)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		session, ok := m.store.GetSession(cookie.Value)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		user, ok := m.store.GetUser(session.UserID)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		ctx := context.WithValue(r.Context(), userKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuth rejects anonymous requests with 401.
func (m *Manager) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserFrom(r.Context()); !ok {
			denyJSON(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole rejects requests whose user (if any) does not carry the role.
// Anonymous requests get 403 as well, matching the coarse admin gates.
func (m *Manager) RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFrom(r.Context())
			if !ok || user.UserType != role {
				denyJSON(w, http.StatusForbidden, "Insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// UserFrom returns the authenticated user stashed by Authenticate.
func UserFrom(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(userKey).(models.User)
	return user, ok
}

// CanModify reports whether the user may modify a resource owned by ownerID:
// the owner themselves, or any admin.
func CanModify(user models.User, ownerID int) bool {
	return user.ID == ownerID || user.UserType == models.UserTypeAdmin
}

func denyJSON(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
