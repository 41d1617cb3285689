package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"
)

type ctxKey string

const adminKey ctxKey = "admin"

// AdminContext:
// - Si token == "" => modo dev: todo request cuenta como admin.
// - Si token viene configurado => exige header X-Admin-Token igual.
// - No corta el request: los handlers deciden si exigen admin.
func AdminContext(token string) func(http.Handler) http.Handler {
	token = strings.TrimSpace(token)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			isAdmin := false

			if token == "" {
				isAdmin = true
			} else {
				got := strings.TrimSpace(r.Header.Get("X-Admin-Token"))
				if got != "" && subtle.ConstantTimeCompare([]byte(got), []byte(token)) == 1 {
					isAdmin = true
				}
			}

			ctx := context.WithValue(r.Context(), adminKey, isAdmin)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func IsAdmin(ctx context.Context) bool {
	v, ok := ctx.Value(adminKey).(bool)
	return ok && v
}
