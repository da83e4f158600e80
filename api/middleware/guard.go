package middleware

import (
	"context"
	"net/http"
	"net/url"

	"github.com/thalilabs/storefront/api/responses"
	"github.com/thalilabs/storefront/internal/guard"
	pkgerrors "github.com/thalilabs/storefront/pkg/errors"
	"github.com/thalilabs/storefront/pkg/logger"
)

const loginPath = "/login"

// SessionResolver yields the guard's view of the visitor's session.
type SessionResolver interface {
	Resolve(ctx context.Context, visitorID string) (guard.Session, error)
}

// Guard recomputes the route decision from current session state on
// every navigation.
func Guard(resolver SessionResolver, req guard.Requirements, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			visitorID := VisitorIDFromContext(r.Context())
			sess, err := resolver.Resolve(r.Context(), visitorID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve session"))
				return
			}

			decision := guard.Decide(sess, r.URL.Path, req)
			switch decision.Action {
			case guard.ActionLoading:
				responses.WriteSuccessStatus(w, http.StatusAccepted, map[string]string{"state": "loading"})
			case guard.ActionRedirectLogin:
				target := loginPath + "?from=" + url.QueryEscape(decision.ReturnPath)
				http.Redirect(w, r, target, http.StatusSeeOther)
			case guard.ActionRedirectHome:
				http.Redirect(w, r, "/", http.StatusSeeOther)
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

// RequireAuth guards destinations that need a signed-in visitor.
func RequireAuth(resolver SessionResolver, logg *logger.Logger) func(http.Handler) http.Handler {
	return Guard(resolver, guard.Requirements{Auth: true}, logg)
}

// RequireAdmin guards the admin console.
func RequireAdmin(resolver SessionResolver, logg *logger.Logger) func(http.Handler) http.Handler {
	return Guard(resolver, guard.Requirements{Admin: true}, logg)
}
