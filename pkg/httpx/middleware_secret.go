package httpx

import (
	"crypto/subtle"
	"net/http"

	"github.com/aussiebroadwan/verify/pkg/slogx"
)

// SecretHeader is the header carrying the shared secret for trusted callers.
const SecretHeader = "X-Api-Secret"

// RequireSecret guards an endpoint with a shared secret supplied via the
// X-Api-Secret header. Comparison is constant-time. If secret is empty the
// guard is disabled, which is only acceptable in dev environments.
func RequireSecret(secret string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				next.ServeHTTP(w, r)
				return
			}

			provided := r.Header.Get(SecretHeader)
			if subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
				log := slogx.FromContext(r.Context())
				log.Warn("rejected request with missing or invalid api secret",
					"endpoint", r.URL.Path,
				)
				WriteJSON(w, http.StatusUnauthorized, map[string]string{
					"error":             "unauthorized",
					"error_description": "Missing or invalid API secret",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
