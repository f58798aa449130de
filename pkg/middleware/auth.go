package middleware

import (
	"net/http"
	"strings"

	"studio-booking/pkg/utils"

	"go.uber.org/zap"
)

const AdminCredentialHeader = "X-Admin-Password"

// AdminCredential moves the admin header into the request context. It does
// not judge the value; the admin service does that on every call.
func AdminCredential(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			credential := strings.TrimSpace(r.Header.Get(AdminCredentialHeader))
			if credential == "" {
				logger.Warn("Admin request without credential",
					zap.String("path", r.URL.Path),
					zap.String("method", r.Method))
			}

			ctx := utils.SetCredentialContext(r.Context(), credential)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
