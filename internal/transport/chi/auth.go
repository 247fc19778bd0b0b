package chi

import (
	"context"
	"net/http"
	"strings"
)

type guestCtxKey struct{}

// IsGuest reports whether the request runs in guest context. Defaults to
// guest when no viewer middleware ran.
func IsGuest(ctx context.Context) bool {
	if guest, ok := ctx.Value(guestCtxKey{}).(bool); ok {
		return guest
	}
	return true
}

// withGuest marks the request's guest state in the context.
func withGuest(ctx context.Context, guest bool) context.Context {
	return context.WithValue(ctx, guestCtxKey{}, guest)
}

// ViewerMiddleware resolves the caller's identity from an optional Bearer
// token. No token means guest context (author-identifying matches are
// restricted downstream); a token that fails validation is rejected. With an
// empty key list every request is a guest.
func ViewerMiddleware(apiKeys []string) func(http.Handler) http.Handler {
	validKeys := make(map[string]struct{}, len(apiKeys))
	for _, k := range apiKeys {
		if k != "" {
			validKeys[k] = struct{}{}
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" || len(validKeys) == 0 {
				next.ServeHTTP(w, r.WithContext(withGuest(r.Context(), true)))
				return
			}

			const bearerPrefix = "Bearer "
			if !strings.HasPrefix(auth, bearerPrefix) {
				writeError(w, http.StatusUnauthorized, "authorization header must use Bearer scheme")
				return
			}

			token := auth[len(bearerPrefix):]
			if _, ok := validKeys[token]; !ok {
				writeError(w, http.StatusUnauthorized, "invalid api key")
				return
			}

			next.ServeHTTP(w, r.WithContext(withGuest(r.Context(), false)))
		})
	}
}
