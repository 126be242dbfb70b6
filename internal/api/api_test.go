package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/padelmixer/padelmixer-admin/internal/api"
	"github.com/padelmixer/padelmixer-admin/internal/api/apierr"
	"github.com/padelmixer/padelmixer-admin/internal/api/response"
	"github.com/padelmixer/padelmixer-admin/internal/dependencies/mocks"
	"github.com/padelmixer/padelmixer-admin/internal/middleware"
	"github.com/padelmixer/padelmixer-admin/internal/model"
	"github.com/padelmixer/padelmixer-admin/internal/session"
	"github.com/padelmixer/padelmixer-admin/internal/storage/memory"
	"github.com/padelmixer/padelmixer-admin/internal/testutil"
)

type APISuite struct {
	suite.Suite
	clock   *mocks.MockClock
	handler http.Handler
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}

func (s *APISuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	rnd := mocks.NewMockRandom()

	tokens := session.NewTokenIssuer([]byte("test-secret"), 0, s.clock)
	authenticator, err := session.NewTableAuthenticator(tokens, s.clock, session.TableConfig{BcryptCost: bcrypt.MinCost})
	s.Require().NoError(err)

	s.handler = api.NewRouter(api.RouterConfig{
		Logger:        testutil.NopLogger(),
		Players:       memory.NewSeeded(s.clock, rnd, 0, 0),
		Authenticator: authenticator,
		Tokens:        tokens,
	})
}

func (s *APISuite) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&reqBody).Encode(body))
	}

	req := httptest.NewRequest(method, path, &reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)
	return rr
}

func (s *APISuite) decode(rr *httptest.ResponseRecorder, dst any) {
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), dst), rr.Body.String())
}

func (s *APISuite) errorCode(rr *httptest.ResponseRecorder) apierr.APIError {
	var resp apierr.ErrorResponse
	s.decode(rr, &resp)
	return resp.Error
}

func (s *APISuite) login() string {
	rr := s.request(http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "admin@padelmixer.com",
		"password": "admin123",
	}, "")
	s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())

	var resp response.Login
	s.decode(rr, &resp)
	return resp.Token
}

func (s *APISuite) TestHealthCheck() {
	rr := s.request(http.MethodGet, "/api/health", nil, "")
	s.Equal(http.StatusOK, rr.Code)
	s.JSONEq(`{"status":"ok"}`, rr.Body.String())
}

func (s *APISuite) TestRequestsAreLoggedWithRequestID() {
	logger, buf := testutil.BufferLogger()
	tokens := session.NewTokenIssuer([]byte("test-secret"), 0, s.clock)
	authenticator, err := session.NewTableAuthenticator(tokens, s.clock, session.TableConfig{BcryptCost: bcrypt.MinCost})
	s.Require().NoError(err)
	handler := api.NewRouter(api.RouterConfig{
		Logger:        logger,
		Players:       memory.NewSeeded(s.clock, mocks.NewMockRandom(), 0, 0),
		Authenticator: authenticator,
		Tokens:        tokens,
	})

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	s.Equal(http.StatusOK, rr.Code)
	id := rr.Header().Get(middleware.RequestIDHeader)
	s.NotEmpty(id)
	s.Contains(buf.String(), `"component":"api"`)
	s.Contains(buf.String(), `"request_id":"`+id+`"`)
	s.Contains(buf.String(), `"path":"/api/health"`)
}

func (s *APISuite) TestLogin() {
	rr := s.request(http.MethodPost, "/api/auth/login", map[string]any{
		"email":       "Admin@PadelMixer.com ",
		"password":    "admin123",
		"remember_me": true,
	}, "")
	s.Require().Equal(http.StatusOK, rr.Code)

	var resp response.Login
	s.decode(rr, &resp)
	s.NotEmpty(resp.Token)
	s.Equal(model.RoleAdmin, resp.User.Role)
	s.Equal("Admin PadelMixer", resp.User.DisplayName)
	s.Equal(86400, resp.ExpiresIn)
}

func (s *APISuite) TestLoginRejectsWrongSecret() {
	rr := s.request(http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "admin@padelmixer.com",
		"password": "wrong",
	}, "")
	s.Equal(http.StatusUnauthorized, rr.Code)
	s.Equal(apierr.CodeInvalidCredentials, s.errorCode(rr).Code)
}

func (s *APISuite) TestLoginValidation() {
	rr := s.request(http.MethodPost, "/api/auth/login", map[string]string{"password": "x"}, "")
	s.Equal(http.StatusBadRequest, rr.Code)
	s.Equal(apierr.CodeInvalidRequest, s.errorCode(rr).Code)

	rr = s.request(http.MethodPost, "/api/auth/login", map[string]string{"username": "admin"}, "")
	s.Equal(http.StatusBadRequest, rr.Code)
}

func (s *APISuite) TestMe() {
	token := s.login()

	rr := s.request(http.MethodGet, "/api/auth/me", nil, token)
	s.Require().Equal(http.StatusOK, rr.Code)

	var me response.Identity
	s.decode(rr, &me)
	s.Equal("1", me.ID)
	s.Equal(model.RoleAdmin, me.Role)
	s.True(me.ExpiresAt.Equal(s.clock.Now().Add(session.DefaultTokenTTL)))
}

func (s *APISuite) TestPlayersRequireToken() {
	rr := s.request(http.MethodGet, "/api/players", nil, "")
	s.Equal(http.StatusUnauthorized, rr.Code)
	s.Equal(apierr.CodeUnauthorized, s.errorCode(rr).Code)

	rr = s.request(http.MethodGet, "/api/players", nil, "not-a-jwt")
	s.Equal(http.StatusUnauthorized, rr.Code)
}

func (s *APISuite) TestExpiredTokenIsRejected() {
	token := s.login()
	s.clock.Advance(session.DefaultTokenTTL + time.Minute)

	rr := s.request(http.MethodGet, "/api/players", nil, token)
	s.Equal(http.StatusUnauthorized, rr.Code)
	s.Equal(apierr.CodeUnauthorized, s.errorCode(rr).Code)
}

func (s *APISuite) TestListAndGet() {
	token := s.login()

	rr := s.request(http.MethodGet, "/api/players", nil, token)
	s.Require().Equal(http.StatusOK, rr.Code)
	var players []model.Player
	s.decode(rr, &players)
	s.Len(players, 15)
	s.Equal(model.PlayerID(1), players[0].ID)

	rr = s.request(http.MethodGet, "/api/players/3", nil, token)
	s.Require().Equal(http.StatusOK, rr.Code)
	var player model.Player
	s.decode(rr, &player)
	s.Equal("Juan", player.FirstName)
	s.Equal(model.SkillProfessional, player.SkillLevel)

	rr = s.request(http.MethodGet, "/api/players/99", nil, token)
	s.Equal(http.StatusNotFound, rr.Code)
	s.Equal(apierr.CodePlayerNotFound, s.errorCode(rr).Code)
}

func (s *APISuite) TestCreate() {
	token := s.login()

	rr := s.request(http.MethodPost, "/api/players", map[string]any{
		"first_name":  "Zoe",
		"last_name":   "Navarro",
		"email":       "zoe@email.com",
		"birth_date":  "1999-05-01",
		"skill_level": "MEDIO",
	}, token)
	s.Require().Equal(http.StatusCreated, rr.Code, rr.Body.String())

	var player model.Player
	s.decode(rr, &player)
	s.Equal(model.PlayerID(16), player.ID)
	s.True(player.Active)
	s.True(player.RegisteredAt.Equal(s.clock.Now()))
}

func (s *APISuite) TestCreateRejectsInvalidPlayer() {
	token := s.login()

	rr := s.request(http.MethodPost, "/api/players", map[string]any{
		"last_name":   "Navarro",
		"email":       "zoe@email.com",
		"birth_date":  "1999-05-01",
		"skill_level": "MEDIO",
	}, token)
	s.Equal(http.StatusBadRequest, rr.Code)
	apiErr := s.errorCode(rr)
	s.Equal(apierr.CodeInvalidPlayer, apiErr.Code)
	s.Equal("first name is required", apiErr.Message)
}

func (s *APISuite) TestCreateRejectsUnknownFields() {
	token := s.login()

	rr := s.request(http.MethodPost, "/api/players", map[string]any{"nickname": "Z"}, token)
	s.Equal(http.StatusBadRequest, rr.Code)
	s.Equal(apierr.CodeInvalidRequest, s.errorCode(rr).Code)
}

func (s *APISuite) TestUpdate() {
	token := s.login()

	rr := s.request(http.MethodPut, "/api/players/4", map[string]any{
		"skill_level": "MEDIO",
		"active":      false,
	}, token)
	s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())

	var player model.Player
	s.decode(rr, &player)
	s.Equal("Ana", player.FirstName)
	s.Equal(model.SkillIntermediate, player.SkillLevel)
	s.False(player.Active)

	rr = s.request(http.MethodPut, "/api/players/404", map[string]any{"notes": "x"}, token)
	s.Equal(http.StatusNotFound, rr.Code)
}

func (s *APISuite) TestDeleteRestricted() {
	token := s.login()

	rr := s.request(http.MethodDelete, "/api/players/1", nil, token)
	s.Require().Equal(http.StatusConflict, rr.Code)
	s.JSONEq(`{"error":{
		"code":"HAS_MATCHES",
		"message":"player cannot be deleted: 4 associated matches",
		"details":{"matches_count":4}
	}}`, rr.Body.String())

	rr = s.request(http.MethodGet, "/api/players/1", nil, token)
	s.Equal(http.StatusOK, rr.Code)
}

func (s *APISuite) TestDelete() {
	token := s.login()

	rr := s.request(http.MethodDelete, "/api/players/2", nil, token)
	s.Require().Equal(http.StatusNoContent, rr.Code)
	s.Empty(rr.Body.String())

	rr = s.request(http.MethodGet, "/api/players/2", nil, token)
	s.Equal(http.StatusNotFound, rr.Code)

	rr = s.request(http.MethodDelete, "/api/players/2", nil, token)
	s.Equal(http.StatusNotFound, rr.Code)
}
