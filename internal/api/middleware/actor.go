package middleware

import (
	"context"
	"net/http"

	"github.com/devtrails/bootcamp-directory/internal/domain/entities"
	"github.com/devtrails/bootcamp-directory/internal/domain/policy"
)

// The API trusts an upstream gateway to authenticate callers and forward
// their identity in these headers. Anything without them is anonymous.
const (
	HeaderUserID   = "X-User-Id"
	HeaderUserRole = "X-User-Role"
)

type contextKey string

const actorContextKey contextKey = "actor"

// ActorMiddleware extracts the caller's identity headers into a policy.Actor
// stored on the request context. Requests without the headers pass through
// without an actor; the per-route guards decide whether that is acceptable.
func ActorMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get(HeaderUserID)
		if userID == "" {
			next.ServeHTTP(w, r)
			return
		}

		role := entities.Role(r.Header.Get(HeaderUserRole))
		if role != entities.RoleAdmin {
			role = entities.RoleUser
		}

		actor := policy.Actor{ID: userID, Role: role}
		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
	})
}

// WithActor returns a context carrying the actor. Handler tests use this to
// sidestep the middleware.
func WithActor(ctx context.Context, actor policy.Actor) context.Context {
	return context.WithValue(ctx, actorContextKey, actor)
}

// ActorFrom returns the actor stored by ActorMiddleware, if any.
func ActorFrom(ctx context.Context) (policy.Actor, bool) {
	actor, ok := ctx.Value(actorContextKey).(policy.Actor)
	return actor, ok
}
