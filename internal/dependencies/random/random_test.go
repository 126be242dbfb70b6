package random

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCryptoRandom_String(t *testing.T) {
	s := New().String(32, Alphanumeric)

	assert.Len(t, s, 32)
	for _, r := range s {
		assert.True(t, strings.ContainsRune(Alphanumeric, r))
	}
	assert.Empty(t, New().String(0, Alphanumeric))
}

func TestJitter(t *testing.T) {
	r := New()
	for i := 0; i < 20; i++ {
		j := Jitter(r, 100*time.Millisecond)
		assert.GreaterOrEqual(t, j, time.Duration(0))
		assert.Less(t, j, 100*time.Millisecond)
	}
	assert.Zero(t, Jitter(r, 0))
}
