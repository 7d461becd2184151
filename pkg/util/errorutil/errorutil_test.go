package errorutil

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainError(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))
	assert.NoError(t, MapError(nil))

	de := ToDomainError(pgx.ErrNoRows)
	assert.Equal(t, CodeNotFound, de.Code)
	assert.Equal(t, http.StatusNotFound, de.HTTPStatus)

	de = ToDomainError(errors.New("boom"))
	assert.Equal(t, CodeInternal, de.Code)
	assert.Equal(t, "boom", de.Details["error"])

	original := NewForbidden("")
	assert.Same(t, original, ToDomainError(original))
}

func TestWithRedirect_DoesNotMutateOriginal(t *testing.T) {
	base := NewValidationError("", map[string]any{"field": "x"})
	redirected := ToDomainError(WithRedirect(base, "/manager/login"))

	assert.Equal(t, "/manager/login", redirected.Details["redirect"])
	assert.Equal(t, "x", redirected.Details["field"])
	assert.NotContains(t, ToDomainError(base).Details, "redirect")
}

func TestConstructors(t *testing.T) {
	cases := []struct {
		err    error
		code   string
		status int
	}{
		{NewUnauthorized(""), CodeUnauthorized, http.StatusUnauthorized},
		{NewInvalidCredentials(), CodeInvalidCredentials, http.StatusUnauthorized},
		{NewForbidden(""), CodeForbidden, http.StatusForbidden},
		{NewSessionLoading(), CodeSessionLoading, http.StatusServiceUnavailable},
		{NewProductNotFound(3), CodeProductNotFound, http.StatusNotFound},
		{NewUpstreamError("cms", errors.New("timeout")), CodeUpstream, http.StatusBadGateway},
	}
	for _, tc := range cases {
		de := ToDomainError(tc.err)
		require.NotNil(t, de)
		assert.Equal(t, tc.code, de.Code)
		assert.Equal(t, tc.status, de.HTTPStatus)
		assert.NotEmpty(t, de.Message)
	}
}

func TestUpstreamErrorUnwraps(t *testing.T) {
	cause := errors.New("timeout")
	assert.ErrorIs(t, NewUpstreamError("cms", cause), cause)
}
