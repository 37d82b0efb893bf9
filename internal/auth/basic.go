package auth

import (
	"context"
	"crypto/subtle"
	"net/http"
)

// Credentials is the one account the widget accepts. The zero value
// disables the check.
type Credentials struct {
	User     string
	Password string
}

// Enabled reports whether both halves are set.
func (c Credentials) Enabled() bool {
	return c.User != "" && c.Password != ""
}

func (c Credentials) match(user, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(c.User)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(c.Password)) == 1
	return userOK && passOK
}

type userKey struct{}

// Middleware requires Basic credentials on every path except /health and
// records the verified user in the request context. With disabled
// credentials it passes requests through and records no user.
func Middleware(c Credentials) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !c.Enabled() {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/health" {
				next.ServeHTTP(w, r)
				return
			}
			user, password, ok := r.BasicAuth()
			if !ok || !c.match(user, password) {
				w.Header().Set("WWW-Authenticate", `Basic realm="quotewidget", charset="UTF-8"`)
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey{}, user)))
		})
	}
}

// User returns the user Middleware verified for this request.
func User(ctx context.Context) (string, bool) {
	user, ok := ctx.Value(userKey{}).(string)
	return user, ok
}
