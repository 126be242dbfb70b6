package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/padelmixer/padelmixer-admin/internal/guard"
	"github.com/padelmixer/padelmixer-admin/internal/model"
)

type CLISuite struct {
	suite.Suite
	sessionFile string
}

func TestCLISuite(t *testing.T) {
	suite.Run(t, new(CLISuite))
}

func (s *CLISuite) SetupTest() {
	s.T().Setenv("PADELMIXER_SIMULATE_LATENCY", "false")
	s.T().Setenv("PADELMIXER_BACKEND", "memory")
	s.sessionFile = filepath.Join(s.T().TempDir(), "session.json")
}

// run executes one CLI invocation in-process, like a separate process would
func (s *CLISuite) run(args ...string) (string, error) {
	root, err := NewRootCmd()
	s.Require().NoError(err)

	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--session-file", s.sessionFile}, args...))

	err = root.Execute()
	return out.String(), err
}

func (s *CLISuite) login() {
	_, err := s.run("login", "--email", "admin@padelmixer.com", "--password", "admin123")
	s.Require().NoError(err)
}

func (s *CLISuite) TestGuardedCommandNeedsLogin() {
	_, err := s.run("players", "list")

	var redirect *guard.RedirectError
	s.Require().ErrorAs(err, &redirect)
	s.Equal(guard.LoginPath, redirect.Redirect.Path)
	s.Equal("/jugadores", redirect.Redirect.ReturnURL())
}

func (s *CLISuite) TestLoginAndWhoami() {
	out, err := s.run("-o", "json", "login", "--email", "ADMIN@padelmixer.com", "--password", "admin123")
	s.Require().NoError(err)

	var id Identity
	s.Require().NoError(json.Unmarshal([]byte(out), &id))
	s.Equal(model.RoleAdmin, id.Role)
	s.NotNil(id.ExpiresAt)

	out, err = s.run("whoami")
	s.Require().NoError(err)
	s.Contains(out, "Signed in as Admin PadelMixer <admin@padelmixer.com>")
	s.Contains(out, "Role: admin")
}

func (s *CLISuite) TestLoginRejected() {
	_, err := s.run("login", "--email", "admin@padelmixer.com", "--password", "nope")
	s.ErrorIs(err, model.ErrInvalidCredentials)

	_, err = s.run("whoami")
	s.Error(err)
}

func (s *CLISuite) TestLoginWithoutRememberIsNotKept() {
	_, err := s.run("login", "--email", "admin@padelmixer.com", "--password", "admin123", "--no-remember")
	s.Require().NoError(err)

	_, err = s.run("whoami")
	var redirect *guard.RedirectError
	s.ErrorAs(err, &redirect)
}

func (s *CLISuite) TestLoggedInUserCannotLoginAgain() {
	s.login()

	_, err := s.run("login", "--email", "admin@padelmixer.com", "--password", "admin123")
	var redirect *guard.RedirectError
	s.Require().ErrorAs(err, &redirect)
	s.Equal(guard.DashboardPath, redirect.Redirect.Path)
}

func (s *CLISuite) TestListText() {
	s.login()

	out, err := s.run("players", "list", "--search", "garcia")
	s.Require().NoError(err)
	s.Contains(out, "ID  NAME")
	s.Contains(out, "Carlos García López")
	s.Contains(out, "Avanzado")
	s.Contains(out, "1 player(s)")
}

func (s *CLISuite) TestListFiltersIntersect() {
	s.login()

	out, err := s.run("-o", "json", "players", "list", "--level", "PROFESIONAL")
	s.Require().NoError(err)
	var players []model.Player
	s.Require().NoError(json.Unmarshal([]byte(out), &players))
	s.Len(players, 3)

	out, err = s.run("-o", "json", "players", "list", "--level", "professional", "--search", "david")
	s.Require().NoError(err)
	s.Require().NoError(json.Unmarshal([]byte(out), &players))
	s.Require().Len(players, 1)
	s.Equal(model.PlayerID(7), players[0].ID)

	_, err = s.run("players", "list", "--level", "legend")
	s.ErrorIs(err, model.ErrInvalidPlayer)
}

func (s *CLISuite) TestGetAndCreate() {
	s.login()

	out, err := s.run("players", "get", "4")
	s.Require().NoError(err)
	s.Contains(out, "Ana López Martín (4)")
	s.Contains(out, "Iniciación")

	out, err = s.run("-o", "json", "players", "create",
		"--first-name", "Zoe", "--last-name", "Navarro", "--email", "zoe@email.com",
		"--birth-date", "1999-05-01", "--level", "MEDIO")
	s.Require().NoError(err)
	var zoe model.Player
	s.Require().NoError(json.Unmarshal([]byte(out), &zoe))
	s.Equal(model.PlayerID(16), zoe.ID)
	s.True(zoe.Active)

	_, err = s.run("players", "create",
		"--first-name", "Zoe", "--last-name", "Navarro", "--email", "zoe@email.com",
		"--birth-date", "01/05/1999", "--level", "MEDIO")
	s.Error(err)

	_, err = s.run("players", "get", "abc")
	s.Error(err)
}

func (s *CLISuite) TestUpdateOnlyChangedFields() {
	s.login()

	out, err := s.run("-o", "json", "players", "update", "2", "--phone", "+34 699 000 111")
	s.Require().NoError(err)
	var player model.Player
	s.Require().NoError(json.Unmarshal([]byte(out), &player))
	s.Equal("+34 699 000 111", player.Phone)
	s.Equal("María", player.FirstName)
	s.True(player.Active)

	_, err = s.run("players", "update", "2", "--first-name", " ")
	s.ErrorIs(err, model.ErrInvalidPlayer)
}

func (s *CLISuite) TestDelete() {
	s.login()

	_, err := s.run("players", "delete", "10")
	var restriction *model.DeleteRestrictionError
	s.Require().ErrorAs(err, &restriction)
	s.Equal(model.RestrictionHasReservations, restriction.Code)
	s.Equal(1, restriction.Count())

	out, err := s.run("players", "delete", "2")
	s.Require().NoError(err)
	s.Equal("Player 2 deleted\n", out)

	_, err = s.run("players", "delete", "99")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *CLISuite) TestLogout() {
	s.login()

	out, err := s.run("logout")
	s.Require().NoError(err)
	s.Equal("Signed out\n", out)

	_, err = s.run("whoami")
	var redirect *guard.RedirectError
	s.ErrorAs(err, &redirect)
}

func (s *CLISuite) TestPrintErrorCarriesRestriction() {
	var errOut bytes.Buffer
	o := NewOutput(FormatJSON, &bytes.Buffer{}, &errOut)

	o.PrintError(model.Dependencies{Matches: 4}.Restriction())

	s.JSONEq(`{"error":{
		"message":"player cannot be deleted: 4 associated matches",
		"code":"HAS_MATCHES",
		"count":4
	}}`, errOut.String())
}

func (s *CLISuite) TestUnknownOutputFormat() {
	_, err := s.run("-o", "yaml", "whoami")
	s.ErrorContains(err, "unknown output format")
}
