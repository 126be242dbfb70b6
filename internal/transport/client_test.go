package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/padelmixer/padelmixer-admin/internal/model"
	"github.com/padelmixer/padelmixer-admin/internal/testutil"
)

// fakeSession stands in for the session store
type fakeSession struct {
	mu      sync.Mutex
	token   string
	logouts int
}

func (f *fakeSession) Credential() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

func (f *fakeSession) Logout() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = ""
	f.logouts++
}

func (f *fakeSession) logoutCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.logouts
}

type ClientSuite struct {
	suite.Suite
	server  *httptest.Server
	session *fakeSession
	client  *Client
	ctx     context.Context

	mu       sync.Mutex
	lastAuth []string
}

func (s *ClientSuite) recordAuth(r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastAuth = r.Header.Values("Authorization")
}

func (s *ClientSuite) seenAuth() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAuth
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientSuite))
}

func (s *ClientSuite) SetupTest() {
	mux := http.NewServeMux()
	mux.HandleFunc("/echo", func(w http.ResponseWriter, r *http.Request) {
		s.recordAuth(r)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"method": r.Method})
	})
	mux.HandleFunc("/status/", func(w http.ResponseWriter, r *http.Request) {
		s.recordAuth(r)
		switch strings.TrimPrefix(r.URL.Path, "/status/") {
		case "401":
			w.WriteHeader(http.StatusUnauthorized)
		case "403":
			w.WriteHeader(http.StatusForbidden)
		case "404":
			w.WriteHeader(http.StatusNotFound)
		case "500":
			w.WriteHeader(http.StatusInternalServerError)
		case "409":
			w.WriteHeader(http.StatusConflict)
			_, _ = w.Write([]byte(`{"error":{"code":"HAS_MATCHES","message":"player has matches"}}`))
		case "422":
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"message":"email is taken"}`))
		default:
			w.WriteHeader(http.StatusTeapot)
		}
	})
	s.server = httptest.NewServer(mux)

	s.session = &fakeSession{token: "tok"}
	s.client = NewClient(s.server.URL, 0)
	s.client.Use(BearerAuth(s.session), ClassifyErrors(s.session, testutil.NopLogger()))
	s.ctx = context.Background()
}

func (s *ClientSuite) TearDownTest() {
	s.server.Close()
}

func (s *ClientSuite) TestAttachesSingleBearerHeader() {
	var out map[string]string
	s.Require().NoError(s.client.Get(s.ctx, "/echo", &out))

	s.Equal("GET", out["method"])
	s.Equal([]string{"Bearer tok"}, s.seenAuth())
}

func (s *ClientSuite) TestNoCredentialNoHeader() {
	s.session.Logout()

	s.Require().NoError(s.client.Get(s.ctx, "/echo", nil))
	s.Empty(s.seenAuth())
}

func (s *ClientSuite) TestWithoutCredentialsSkipsHeader() {
	s.Require().NoError(s.client.Post(WithoutCredentials(s.ctx), "/echo", map[string]string{"a": "b"}, nil))
	s.Empty(s.seenAuth())
}

func (s *ClientSuite) TestUnauthorizedEndsSession() {
	err := s.client.Get(s.ctx, "/status/401", nil)

	var terr *Error
	s.Require().True(errors.As(err, &terr))
	s.Equal(KindServer, terr.Kind)
	s.Equal(http.StatusUnauthorized, terr.Status)
	s.Equal("session expired, please sign in again", err.Error())
	s.ErrorIs(err, model.ErrSessionExpired)
	s.Equal(1, s.session.logoutCount())
}

func (s *ClientSuite) TestUnauthorizedWithoutCredentialKeepsSession() {
	err := s.client.Get(WithoutCredentials(s.ctx), "/status/401", nil)

	s.ErrorIs(err, model.ErrSessionExpired)
	s.Equal(0, s.session.logoutCount())
}

func (s *ClientSuite) TestStatusMessages() {
	tests := []struct {
		path    string
		message string
		target  error
	}{
		{"/status/403", "forbidden", ErrForbidden},
		{"/status/404", "not found", ErrNotFound},
		{"/status/500", "internal error", ErrServer},
		{"/status/409", "player has matches", ErrRequest},
		{"/status/422", "email is taken", ErrRequest},
		{"/status/418", "error 418: I'm a teapot", ErrRequest},
	}
	for _, tt := range tests {
		err := s.client.Get(s.ctx, tt.path, nil)
		s.Require().Error(err, tt.path)
		s.Equal(tt.message, err.Error(), tt.path)
		s.ErrorIs(err, tt.target, tt.path)
	}
	s.Equal(0, s.session.logoutCount())
}

func (s *ClientSuite) TestErrorKeepsCodeAndBody() {
	err := s.client.Delete(s.ctx, "/status/409")

	var terr *Error
	s.Require().True(errors.As(err, &terr))
	s.Equal("HAS_MATCHES", terr.Code)
	s.Contains(string(terr.Body), "HAS_MATCHES")
}

func (s *ClientSuite) TestNetworkFailureIsClientError() {
	s.server.Close()

	err := s.client.Get(s.ctx, "/echo", nil)

	var terr *Error
	s.Require().True(errors.As(err, &terr))
	s.Equal(KindClient, terr.Kind)
	s.True(strings.HasPrefix(err.Error(), "client error: "))
	s.ErrorIs(err, ErrTransport)
	s.Equal(0, s.session.logoutCount())
}

func (s *ClientSuite) TestCancelledContext() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	err := s.client.Get(ctx, "/echo", nil)

	s.ErrorIs(err, ErrTransport)
	s.ErrorIs(err, context.Canceled)
}

func TestClientWithoutClassifier(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	err := NewClient(server.URL, 0).Get(context.Background(), "/anything", nil)

	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
