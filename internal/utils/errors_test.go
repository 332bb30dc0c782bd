package utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		code Code
		want int
	}{
		{CodeInvalidArgument, http.StatusBadRequest},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeForbidden, http.StatusForbidden},
		{CodeNotFound, http.StatusNotFound},
		{CodeConflict, http.StatusConflict},
		{CodeResourceExhausted, http.StatusTooManyRequests},
		{CodeUnavailable, http.StatusServiceUnavailable},
		{CodeTimeout, http.StatusGatewayTimeout},
		{CodeInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, HTTPStatus(E(tc.code, "Op", "msg", nil)), string(tc.code))
	}
}

func TestHTTPStatusFallbacks(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, HTTPStatus(fmt.Errorf("wrap: %w", ErrNotFound)))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("mystery")))
}

func TestIsCode(t *testing.T) {
	err := E(CodeNotFound, "CompanionService.Get", "companion not found", ErrNotFound)

	assert.True(t, IsCode(err, CodeNotFound))
	assert.False(t, IsCode(err, CodeInternal))
	assert.False(t, IsCode(errors.New("plain"), CodeNotFound))
}

func TestAppErrorMessage(t *testing.T) {
	err := E(CodeInternal, "ChatService.Respond", "model generation failed", errors.New("boom"))
	assert.Equal(t, "ChatService.Respond: model generation failed: boom", err.Error())

	var ae *AppError
	assert.True(t, errors.As(err, &ae))
	assert.Equal(t, "boom", ae.Unwrap().Error())
}
