package middleware

import (
	"log/slog"
	"net/http"

	"github.com/padelmixer/padelmixer-admin/internal/api/apierr"
	"github.com/padelmixer/padelmixer-admin/internal/middleware"
)

// Recovery turns handler panics into the INTERNAL_ERROR envelope. The request
// id set by the logging middleware stays on the response for correlation.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger.With(slog.String("component", "api")), writePanic)
}

func writePanic(w http.ResponseWriter, _ *http.Request, _ any) {
	apierr.WriteError(w, apierr.NewInternalError())
}
