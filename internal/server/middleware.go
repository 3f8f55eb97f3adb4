package server

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey int

const ctxKeyAdmin ctxKey = iota

// frameAncestors allows the quiz to be embedded as an iframe by the listed
// origins only.
func frameAncestors(sources []string) func(http.Handler) http.Handler {
	if len(sources) == 0 {
		sources = []string{"'self'"}
	}
	policy := "frame-ancestors " + strings.Join(sources, " ")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Security-Policy", policy)
			next.ServeHTTP(w, r)
		})
	}
}

func adminAuthMiddleware(admin AdminStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := adminFromRequest(r, admin)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "not authenticated")
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyAdmin, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func adminFrom(r *http.Request) adminSession {
	return r.Context().Value(ctxKeyAdmin).(adminSession)
}
