package errors

import (
	"net/http"
	"testing"
)

func TestErrorConstructors(t *testing.T) {
	cases := []struct {
		name       string
		err        *Error
		code       Code
		statusCode int
	}{
		{"validation", Validation("bad period"), CodeValidation, http.StatusBadRequest},
		{"not found", NotFound("unknown tracker"), CodeNotFound, http.StatusBadRequest},
		{"internal", Internal(), CodeInternal, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Code != tc.code {
				t.Fatalf("expected code %s, got %s", tc.code, tc.err.Code)
			}
			if tc.err.StatusCode != tc.statusCode {
				t.Fatalf("expected status %d, got %d", tc.statusCode, tc.err.StatusCode)
			}
			if tc.err.Error() == "" {
				t.Fatal("expected a non-empty message")
			}
		})
	}
}

func TestInternalHidesDetail(t *testing.T) {
	if msg := Internal().Error(); msg != "An internal error occurred" {
		t.Fatalf("expected generic message, got %q", msg)
	}
}
