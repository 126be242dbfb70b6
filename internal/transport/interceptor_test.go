package transport

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBearerAuth_DoesNotMutateOriginal(t *testing.T) {
	req, err := http.NewRequest(http.MethodGet, "http://example.test/players", nil)
	require.NoError(t, err)

	var forwarded *http.Request
	_, err = BearerAuth(&fakeSession{token: "abc"})(req, func(r *http.Request) (*http.Response, error) {
		forwarded = r
		return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody}, nil
	})
	require.NoError(t, err)

	require.NotNil(t, forwarded)
	assert.NotSame(t, req, forwarded)
	assert.Equal(t, []string{"Bearer abc"}, forwarded.Header.Values("Authorization"))
	assert.Empty(t, req.Header.Get("Authorization"))
}

func TestBearerAuth_PassesThroughWithoutCredential(t *testing.T) {
	req, err := http.NewRequest(http.MethodGet, "http://example.test/players", nil)
	require.NoError(t, err)

	var forwarded *http.Request
	_, err = BearerAuth(&fakeSession{})(req, func(r *http.Request) (*http.Response, error) {
		forwarded = r
		return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody}, nil
	})
	require.NoError(t, err)

	assert.Same(t, req, forwarded)
}

func TestChain_RunsInRegistrationOrder(t *testing.T) {
	var order []string
	record := func(name string) Interceptor {
		return func(req *http.Request, next RoundTrip) (*http.Response, error) {
			order = append(order, name+" out")
			resp, err := next(req)
			order = append(order, name+" back")
			return resp, err
		}
	}

	rt := chain([]Interceptor{record("first"), record("second")}, func(*http.Request) (*http.Response, error) {
		order = append(order, "network")
		return nil, errors.New("boom")
	})
	req, _ := http.NewRequest(http.MethodGet, "http://example.test", nil)
	_, err := rt(req)

	assert.Error(t, err)
	assert.Equal(t, []string{"first out", "second out", "network", "second back", "first back"}, order)
}
