package response

import (
	stderrors "errors"
	"net/http"
	"testing"

	"FormUp/pkg/errors"
)

// Every registered business error must map to a deliberate status, never the
// 500 fallback.
func TestEveryDefinitionHasStatusMapping(t *testing.T) {
	for code, def := range errors.Lookup {
		if got := errorToHTTPStatus(def); got == http.StatusInternalServerError {
			t.Errorf("code %s falls through to 500", code)
		}
		if resolved := errors.Get(code); resolved != def {
			t.Errorf("Get(%s) = %+v, want %+v", code, resolved, def)
		}
	}
}

func TestErrorToHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unauthorized", errors.Unauthorized, http.StatusUnauthorized},
		{"forbidden", errors.Forbidden, http.StatusForbidden},
		{"not found", errors.BookingNotFound, http.StatusNotFound},
		{"conflict", errors.BookingOverlap, http.StatusConflict},
		{"bad request", errors.BookingInvalidWindow, http.StatusBadRequest},
		{"rate limited", errors.RateLimited, http.StatusTooManyRequests},
		{"unknown code", errors.Get("SOMETHING_NEW"), http.StatusInternalServerError},
		{"plain error", stderrors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errorToHTTPStatus(tt.err); got != tt.want {
				t.Errorf("errorToHTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}
