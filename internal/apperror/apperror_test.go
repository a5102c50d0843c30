package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAppErrorUnwrap(t *testing.T) {
	err := NotFound("Project not found")
	if !errors.Is(err, ErrNotFound) {
		t.Error("NotFound error should unwrap to ErrNotFound")
	}
	if errors.Is(err, ErrConflict) {
		t.Error("NotFound error should not match ErrConflict")
	}
}

func TestAppErrorWrappedThroughFmt(t *testing.T) {
	inner := Conflict("user", "email already exists")
	wrapped := fmt.Errorf("register: %w", inner)
	if !errors.Is(wrapped, ErrConflict) {
		t.Error("wrapped conflict should still match ErrConflict")
	}
}

func TestStatusCode(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{ValidationFailed("name", "name is required"), http.StatusBadRequest},
		{Unauthorized("Invalid credentials"), http.StatusUnauthorized},
		{NotFound("Project not found"), http.StatusNotFound},
		{Conflict("user", "email already exists"), http.StatusConflict},
		{Upstream("GitHub authentication failed"), http.StatusBadGateway},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		if got := StatusCode(tc.err); got != tc.want {
			t.Errorf("StatusCode(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}
