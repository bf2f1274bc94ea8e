package middleware

import (
	"context"
	"net/http"
	"strings"

	"bramble/app/auth"
)

// Viewer is the authenticated identity attached to a request. A zero ID
// means the request is unauthenticated.
type Viewer struct {
	ID       int
	Username string
}

type contextKey string

const viewerKey contextKey = "viewer"

// LoginPath is where unauthenticated mutation attempts get redirected.
const LoginPath = "/auth/login"

// CurrentViewer resolves the request's token (Authorization bearer header
// or session cookie) into a Viewer in the request context. Requests with a
// missing or invalid token pass through unauthenticated; guarding is
// RequireAuth's job.
func CurrentViewer(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := tokenFromRequest(r)
			if raw != "" {
				if claims, err := tokens.ValidateToken(raw); err == nil {
					viewer := Viewer{ID: claims.UserID, Username: claims.Username}
					r = r.WithContext(context.WithValue(r.Context(), viewerKey, viewer))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth redirects unauthenticated requests to the login page.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ViewerFrom(r.Context()); !ok {
			http.Redirect(w, r, LoginPath, http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ViewerFrom extracts the viewer from the context. The second return value
// reports whether the request is authenticated.
func ViewerFrom(ctx context.Context) (Viewer, bool) {
	viewer, ok := ctx.Value(viewerKey).(Viewer)
	return viewer, ok
}

// WithViewer returns a context carrying the viewer. Exposed for tests.
func WithViewer(ctx context.Context, viewer Viewer) context.Context {
	return context.WithValue(ctx, viewerKey, viewer)
}

func tokenFromRequest(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := r.Cookie("session"); err == nil {
		return cookie.Value
	}
	return ""
}
