package transport

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
)

// maxErrorBody caps how much of an error response is kept
const maxErrorBody = 64 << 10

// RoundTrip sends a request and returns its response
type RoundTrip func(req *http.Request) (*http.Response, error)

// Interceptor wraps a round trip. It may change the request it forwards, or
// inspect and replace the outcome of next.
type Interceptor func(req *http.Request, next RoundTrip) (*http.Response, error)

// chain composes interceptors so the first registered runs outermost
func chain(interceptors []Interceptor, final RoundTrip) RoundTrip {
	rt := final
	for i := len(interceptors) - 1; i >= 0; i-- {
		ic, next := interceptors[i], rt
		rt = func(req *http.Request) (*http.Response, error) {
			return ic(req, next)
		}
	}
	return rt
}

// CredentialSource supplies the bearer credential, or "" when there is none
type CredentialSource interface {
	Credential() string
}

// SessionTerminator ends the current session
type SessionTerminator interface {
	Logout()
}

type skipCredentialsKey struct{}

// WithoutCredentials marks requests made with ctx so BearerAuth leaves them alone
func WithoutCredentials(ctx context.Context) context.Context {
	return context.WithValue(ctx, skipCredentialsKey{}, true)
}

func credentialsSkipped(ctx context.Context) bool {
	skip, _ := ctx.Value(skipCredentialsKey{}).(bool)
	return skip
}

// BearerAuth attaches "Authorization: Bearer <credential>" to a copy of every
// outbound request when a credential is available. The caller's request is never modified.
func BearerAuth(src CredentialSource) Interceptor {
	return func(req *http.Request, next RoundTrip) (*http.Response, error) {
		if credentialsSkipped(req.Context()) {
			return next(req)
		}
		token := src.Credential()
		if token == "" {
			return next(req)
		}
		authed := req.Clone(req.Context())
		authed.Header.Set("Authorization", "Bearer "+token)
		return next(authed)
	}
}

// ClassifyErrors turns every failure of next into one *Error. A 401 on a
// request that presented a credential also ends the session through term.
func ClassifyErrors(term SessionTerminator, logger *slog.Logger) Interceptor {
	logger = logger.With(slog.String("component", "transport"))
	return func(req *http.Request, next RoundTrip) (*http.Response, error) {
		resp, err := next(req)
		if err != nil {
			terr := newClientError(err)
			level := slog.LevelError
			if errors.Is(err, context.Canceled) {
				level = slog.LevelDebug
			}
			logger.Log(req.Context(), level, "request failed",
				slog.String("method", req.Method),
				slog.String("url", req.URL.Redacted()),
				slog.String("error", err.Error()))
			return nil, terr
		}
		if resp.StatusCode < http.StatusBadRequest {
			return resp, nil
		}

		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		_ = resp.Body.Close()
		terr := newServerError(resp.StatusCode, body)

		logger.Warn("request rejected",
			slog.String("method", req.Method),
			slog.String("url", req.URL.Redacted()),
			slog.Int("status", resp.StatusCode),
			slog.String("message", terr.Message))

		if resp.StatusCode == http.StatusUnauthorized && req.Header.Get("Authorization") != "" && term != nil {
			logger.Info("credential rejected, ending session")
			term.Logout()
		}
		return nil, terr
	}
}
