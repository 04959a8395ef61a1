package middleware

import (
	"context"
	"net/http"

	log "github.com/sirupsen/logrus"

	"yt-planner/internal/auth"
	"yt-planner/internal/models"
	"yt-planner/internal/planner"
	apperrors "yt-planner/pkg/errors"
)

// AuthContextHeader reports which auth context served the response.
const AuthContextHeader = "X-Auth-Context"

// Authenticator attaches the auth facade to each request and, for API
// routes, the stored user behind it.
type Authenticator struct {
	selector *auth.Selector
	planner  *planner.Service
}

func NewAuthenticator(selector *auth.Selector, svc *planner.Service) *Authenticator {
	return &Authenticator{selector: selector, planner: svc}
}

// Resolve picks the facade for this request. Signed-out requests pass
// through; provider failures do not fall back to demo data.
func (a *Authenticator) Resolve(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		facade, kind, err := a.selector.Resolve(r)
		if err != nil {
			status := apperrors.HTTPStatus(err)
			if status == http.StatusInternalServerError {
				log.Printf("Auth: resolving %s context failed: %v", kind, err)
			}
			http.Error(w, apperrors.PublicMessage(err), status)
			return
		}

		w.Header().Set(AuthContextHeader, string(kind))
		next.ServeHTTP(w, r.WithContext(auth.WithAuth(r.Context(), facade)))
	})
}

// RequireUser rejects signed-out requests and upserts the signed-in user,
// storing it in the context under models.UserContextKey. It must run after
// Resolve.
func (a *Authenticator) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		facade, ok := auth.FromContext(r.Context())
		if !ok || !facade.IsSignedIn() {
			http.Error(w, "Not signed in", http.StatusUnauthorized)
			return
		}

		// In demo deployments the demo identity starts with the plan its
		// metadata advertises. Embedded previews elsewhere always start free.
		initialPremium := a.selector.Demo() && facade.Demo() && a.selector.MockSource().IsPremium()
		user, err := a.planner.SignIn(r.Context(), facade.User(), initialPremium)
		if err != nil {
			http.Error(w, "Failed to authenticate user", http.StatusInternalServerError)
			return
		}

		ctx := context.WithValue(r.Context(), models.UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Middleware is Resolve followed by RequireUser.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return a.Resolve(a.RequireUser(next))
}

// UserFromContext returns the user stored by RequireUser.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(models.UserContextKey).(*models.User)
	return user, ok
}
