package auth

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"yatube/storage"
	"yatube/storage/models"

	log "github.com/sirupsen/logrus"
)

type contextKey struct{}

func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, contextKey{}, user)
}

// UserFromContext returns the signed-in user, or nil for anonymous requests.
func UserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(contextKey{}).(*models.User)
	return user
}

type Authenticator struct {
	sessions *Sessions
	store    storage.Store
	loginURL string
}

func NewAuthenticator(sessions *Sessions, store storage.Store, loginURL string) *Authenticator {
	return &Authenticator{
		sessions: sessions,
		store:    store,
		loginURL: loginURL,
	}
}

// Middleware attaches the session user, if any, to the request context.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		userID, err := a.sessions.Parse(cookie.Value)
		if err != nil {
			log.Debugf("Dropping session: %v", err)
			a.sessions.ClearCookie(w)
			next.ServeHTTP(w, r)
			return
		}

		user, err := a.store.GetUserByID(r.Context(), userID)
		if err != nil {
			if !errors.Is(err, storage.ErrNotFound) {
				log.Errorf("Error loading session user %d: %v", userID, err)
			}
			a.sessions.ClearCookie(w)
			next.ServeHTTP(w, r)
			return
		}
		user.PasswordHash = ""

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), &user)))
	})
}

// LoginRedirect sends an anonymous caller to the login page, remembering
// where they were going.
func (a *Authenticator) LoginRedirect(w http.ResponseWriter, r *http.Request) {
	target := a.loginURL + "?" + url.Values{"next": {r.URL.RequestURI()}}.Encode()
	http.Redirect(w, r, target, http.StatusFound)
}

// RequireLogin wraps handlers that need a signed-in user.
func (a *Authenticator) RequireLogin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if UserFromContext(r.Context()) == nil {
			a.LoginRedirect(w, r)
			return
		}
		next(w, r)
	}
}
