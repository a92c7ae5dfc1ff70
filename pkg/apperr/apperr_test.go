package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeNotFound, CodeOf(NotFound("gone")))
	assert.Equal(t, CodeInvalidArgument, CodeOf(InvalidArg("bad")))
	assert.Equal(t, CodeUnknown, CodeOf(errors.New("plain")))
	assert.Equal(t, CodeUnknown, CodeOf(nil))

	// Codes survive wrapping.
	wrapped := fmt.Errorf("outer: %w", NotFound("gone"))
	assert.Equal(t, CodeNotFound, CodeOf(wrapped))
}

func TestError_IncludesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal("saving message", cause)

	assert.Contains(t, err.Error(), "saving message")
	assert.Contains(t, err.Error(), "connection refused")
	assert.ErrorIs(t, err, cause)
}

func TestIsCode(t *testing.T) {
	err := Unauthenticated("no token")
	assert.True(t, IsCode(err, CodeUnauthenticated))
	assert.False(t, IsCode(err, CodeNotFound))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{InvalidArg("bad"), http.StatusBadRequest},
		{NotFound("gone"), http.StatusNotFound},
		{AlreadyExists("dup"), http.StatusBadRequest},
		{Unauthenticated("who"), http.StatusUnauthorized},
		{Forbidden("no"), http.StatusForbidden},
		{Internal("boom", errors.New("x")), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatus(tt.err), "err=%v", tt.err)
	}
}
