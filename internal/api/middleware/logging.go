package middleware

import (
	"log/slog"
	"net/http"

	"github.com/padelmixer/padelmixer-admin/internal/middleware"
)

// Logging tags API requests with an X-Request-ID and logs them under the api component
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Logging(logger.With(slog.String("component", "api")))
}
