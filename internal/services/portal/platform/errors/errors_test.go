package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want int
	}{
		{err: nil, want: http.StatusOK},
		{err: E(KindInvalidInput, "bad"), want: http.StatusBadRequest},
		{err: E(KindUnauthorized, "who"), want: http.StatusUnauthorized},
		{err: E(KindForbidden, "no"), want: http.StatusForbidden},
		{err: E(KindNotFound, "missing"), want: http.StatusNotFound},
		{err: E(KindConflict, "dup"), want: http.StatusConflict},
		{err: E(KindUnavailable, "down"), want: http.StatusServiceUnavailable},
		{err: fmt.Errorf("list contacts: %w", E(KindForbidden, "no")), want: http.StatusForbidden},
		{err: stderrors.New("plain"), want: http.StatusInternalServerError},
	}
	for _, tc := range tests {
		if got := HTTPStatus(tc.err); got != tc.want {
			t.Fatalf("HTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestFromStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status int
		want   Kind
	}{
		{status: http.StatusBadRequest, want: KindInvalidInput},
		{status: http.StatusUnprocessableEntity, want: KindInvalidInput},
		{status: http.StatusUnauthorized, want: KindUnauthorized},
		{status: http.StatusForbidden, want: KindForbidden},
		{status: http.StatusNotFound, want: KindNotFound},
		{status: http.StatusConflict, want: KindConflict},
		{status: http.StatusBadGateway, want: KindUnavailable},
		{status: http.StatusTeapot, want: KindUnknown},
	}
	for _, tc := range tests {
		if got := KindOf(FromStatus(tc.status, "")); got != tc.want {
			t.Fatalf("KindOf(FromStatus(%d)) = %q, want %q", tc.status, got, tc.want)
		}
	}
	if got := FromStatus(http.StatusNotFound, "").Error(); got != "not found" {
		t.Fatalf("message = %q, want %q", got, "not found")
	}
}

func TestLocalizationKey(t *testing.T) {
	t.Parallel()

	if got := LocalizationKey(EK(KindInvalidInput, " login.error.credentials ", "bad")); got != "login.error.credentials" {
		t.Fatalf("LocalizationKey() = %q, want %q", got, "login.error.credentials")
	}
	if got := LocalizationKey(stderrors.New("plain")); got != "" {
		t.Fatalf("LocalizationKey(plain) = %q, want empty", got)
	}
}
