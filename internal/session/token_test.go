package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padelmixer/padelmixer-admin/internal/dependencies/mocks"
	"github.com/padelmixer/padelmixer-admin/internal/model"
)

var testPrincipal = model.Principal{
	ID:          "1",
	Email:       "admin@padelmixer.com",
	DisplayName: "Admin PadelMixer",
	Role:        model.RoleAdmin,
}

func TestTokenIssuer_IssueAndVerify(t *testing.T) {
	clk := mocks.NewMockClock(time.Date(2024, 1, 17, 9, 0, 0, 0, time.UTC))
	issuer := NewTokenIssuer([]byte("secret"), 0, clk)

	token, err := issuer.Issue(testPrincipal)
	require.NoError(t, err)

	claims, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "1", claims.Subject)
	assert.Equal(t, model.RoleAdmin, claims.Role)
	assert.NotEmpty(t, claims.ID)

	exp, ok := TokenExpiry(token)
	require.True(t, ok)
	assert.True(t, clk.Now().Add(24*time.Hour).Equal(exp))
}

func TestTokenIssuer_RejectsExpiredToken(t *testing.T) {
	clk := mocks.NewMockClock(time.Date(2024, 1, 17, 9, 0, 0, 0, time.UTC))
	issuer := NewTokenIssuer([]byte("secret"), time.Hour, clk)

	token, err := issuer.Issue(testPrincipal)
	require.NoError(t, err)

	clk.Advance(2 * time.Hour)
	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_RejectsForeignSignature(t *testing.T) {
	clk := mocks.NewMockClock(time.Date(2024, 1, 17, 9, 0, 0, 0, time.UTC))
	token, err := NewTokenIssuer([]byte("one"), 0, clk).Issue(testPrincipal)
	require.NoError(t, err)

	_, err = NewTokenIssuer([]byte("two"), 0, clk).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenExpiry_NonJWT(t *testing.T) {
	_, ok := TokenExpiry("mock_token_admin")
	assert.False(t, ok)
}
