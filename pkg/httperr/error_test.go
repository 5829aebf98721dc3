package httperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heat1q/httperrgen/pkg/httperr"
)

func TestErrorRendering(t *testing.T) {
	type testCase struct {
		err      *httperr.Error
		expected string
	}
	for testNo, test := range []testCase{
		{httperr.New(), "HTTPError(500 Internal Server Error)"},
		{httperr.FromStatusCode(404), "HTTPError(404 Not Found)"},
		{httperr.FromStatusCode(400).WithReason("invalid payload"),
			"HTTPError(400 Bad Request): invalid payload"},
		{httperr.New().WithCause(errors.New("boom")),
			"HTTPError(500 Internal Server Error): cause: boom"},
		{httperr.FromStatusCode(502).WithReason("upstream").WithCause(errors.New("dial refused")),
			"HTTPError(502 Bad Gateway): upstream, cause: dial refused"},
		/* Unregistered three-digit codes have empty status text. */
		{httperr.FromStatusCode(599), "HTTPError(599 )"},
	} {
		t.Run(fmt.Sprint(`case `, testNo), func(t *testing.T) {
			assert.Equal(t, test.expected, test.err.Error())
		})
	}
}

func TestFromErrorNil(t *testing.T) {
	assert.Nil(t, httperr.FromError(nil))
}

func TestFromErrorRecoversThroughChain(t *testing.T) {
	orig := httperr.FromStatusCode(403).WithReason("denied")
	wrapped := fmt.Errorf("handler: %w", orig)
	assert.Same(t, orig, httperr.FromError(wrapped))
}

func TestFromErrorWrapsForeignError(t *testing.T) {
	cause := errors.New("disk full")
	httpErr := httperr.FromError(cause)
	require.NotNil(t, httpErr)
	assert.Equal(t, 500, httpErr.StatusCode())
	assert.Same(t, cause, httpErr.Cause())
	_, ok := httpErr.Reason()
	assert.False(t, ok)
}

func TestReason(t *testing.T) {
	_, ok := httperr.New().Reason()
	assert.False(t, ok)

	reason, ok := httperr.New().WithReason("").Reason()
	assert.True(t, ok, "an explicitly set empty reason counts as set")
	assert.Empty(t, reason)
}

func TestDataPayload(t *testing.T) {
	httpErr := httperr.FromStatusCode(429).
		WithKeyValue("limit", 100).
		WithKeyValue("scope", "global").
		WithKeyValue("limit", 250)

	v, ok := httpErr.Get("limit")
	require.True(t, ok)
	assert.Equal(t, 250, v)

	_, ok = httpErr.Get("absent")
	assert.False(t, ok)

	data := httpErr.Data()
	assert.Equal(t, map[string]any{"limit": 250, "scope": "global"}, data)

	data["limit"] = 0
	v, _ = httpErr.Get("limit")
	assert.Equal(t, 250, v, "Data must return a copy")
}

func TestDataEmpty(t *testing.T) {
	assert.Nil(t, httperr.New().Data())
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root")
	httpErr := httperr.New().WithCause(cause)
	assert.True(t, errors.Is(httpErr, cause))
	assert.Nil(t, errors.Unwrap(httperr.New()))
}

func TestValidStatus(t *testing.T) {
	assert.False(t, httperr.ValidStatus(99))
	assert.True(t, httperr.ValidStatus(100))
	assert.True(t, httperr.ValidStatus(999))
	assert.False(t, httperr.ValidStatus(1000))
	assert.False(t, httperr.ValidStatus(-1))
}
