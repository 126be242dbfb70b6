package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/padelmixer/padelmixer-admin/internal/api/handler"
	"github.com/padelmixer/padelmixer-admin/internal/api/middleware"
	"github.com/padelmixer/padelmixer-admin/internal/api/response"
	"github.com/padelmixer/padelmixer-admin/internal/session"
	"github.com/padelmixer/padelmixer-admin/internal/storage"
)

// PathPrefix is where the API is mounted
const PathPrefix = "/api"

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger        *slog.Logger
	Players       storage.Storage
	Authenticator *session.TableAuthenticator
	Tokens        *session.TokenIssuer
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	playerHandler := handler.NewPlayerHandler(cfg.Players)
	authHandler := handler.NewAuthHandler(cfg.Authenticator)

	authMiddleware := middleware.Auth(cfg.Tokens)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	api := r.PathPrefix(PathPrefix).Subrouter()
	// Logging is outermost so recovered panics are logged with their request id and status
	api.Use(loggingMiddleware)
	api.Use(recoveryMiddleware)

	// Sign-in is the only unauthenticated write
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.Handle("/auth/me", authMiddleware(http.HandlerFunc(authHandler.Me))).Methods(http.MethodGet)

	players := api.PathPrefix("/players").Subrouter()
	players.Use(authMiddleware)
	players.HandleFunc("", playerHandler.List).Methods(http.MethodGet)
	players.HandleFunc("", playerHandler.Create).Methods(http.MethodPost)
	players.HandleFunc("/{id:[0-9]+}", playerHandler.Get).Methods(http.MethodGet)
	players.HandleFunc("/{id:[0-9]+}", playerHandler.Update).Methods(http.MethodPut)
	players.HandleFunc("/{id:[0-9]+}", playerHandler.Delete).Methods(http.MethodDelete)

	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, response.Health{Status: "ok"})
}
