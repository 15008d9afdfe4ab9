package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestIsMatchesByCode(t *testing.T) {
	err := ErrNotFound.WithMsg("Recipient does not exist")
	if !errors.Is(err, ErrNotFound) {
		t.Fatal("WithMsg copy no longer matches its class")
	}
	if errors.Is(err, ErrForbidden) {
		t.Fatal("matched the wrong class")
	}

	wrapped := fmt.Errorf("handler: %w", ErrStorage.Wrap(errors.New("dial tcp: refused")))
	if !errors.Is(wrapped, ErrStorage) {
		t.Fatal("wrapped storage error not matched")
	}
}

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{ErrInvalidInput, http.StatusBadRequest},
		{ErrNotFound.WithMsg("user does not exist"), http.StatusBadRequest},
		{ErrConflict, http.StatusBadRequest},
		{ErrUnauthenticated, http.StatusUnauthorized},
		{ErrForbidden, http.StatusForbidden},
		{ErrStorage, http.StatusServiceUnavailable},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := HTTPStatus(tc.err); got != tc.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestClientMsgNeverLeaksInternals(t *testing.T) {
	err := ErrStorage.Wrap(errors.New("mongo: connection pool exhausted"))
	if got := ClientMsg(err); got != "storage unavailable" {
		t.Fatalf("ClientMsg = %q", got)
	}
	if got := ClientMsg(errors.New("panic: nil deref")); got != "internal error" {
		t.Fatalf("ClientMsg = %q", got)
	}
}

func TestWithDetailAccumulates(t *testing.T) {
	e := ErrInvalidInput.WithDetail("field a").WithDetail("field b")
	if e.Detail != "field a, field b" {
		t.Fatalf("detail = %q", e.Detail)
	}
	// the sentinel itself must stay untouched
	if ErrInvalidInput.Detail != "" {
		t.Fatal("sentinel mutated")
	}
}
