package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestRemoteQueryErrorMessage(t *testing.T) {
	err := NewRemoteQueryError("list_servers", SourceInstance, "fr-par-1", errors.New("boom"))
	want := "list_servers failed for instance/fr-par-1: boom"
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}

	noZone := NewRemoteQueryError("list_servers", SourceBaremetal, "", errors.New("boom"))
	if got := noZone.Error(); got != "list_servers failed for baremetal: boom" {
		t.Errorf("unexpected message: %q", got)
	}
}

func TestRemoteQueryErrorUnwrap(t *testing.T) {
	inner := errors.New("connection reset")
	err := NewRemoteQueryError("list_servers", SourceInstance, "fr-par-1", inner)

	if !errors.Is(err, inner) {
		t.Error("expected errors.Is to find the wrapped error")
	}

	var qerr *RemoteQueryError
	wrapped := fmt.Errorf("aggregation: %w", err)
	if !errors.As(wrapped, &qerr) {
		t.Fatal("expected errors.As to find RemoteQueryError")
	}
	if qerr.Zone != "fr-par-1" {
		t.Errorf("unexpected zone %q", qerr.Zone)
	}
}

func TestRemoteQueryErrorStatusCodeMatching(t *testing.T) {
	err := NewRemoteQueryError("list_servers", SourceInstance, "fr-par-1", errors.New("denied")).WithStatusCode(401)
	if !errors.Is(err, ErrUnauthorized) {
		t.Error("401 should match ErrUnauthorized")
	}
	if errors.Is(err, ErrTimeout) {
		t.Error("401 should not match ErrTimeout")
	}
}

func TestIsAuthError(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("plain"), false},
		{NewRemoteQueryError("op", SourceInstance, "z", errors.New("x")).WithStatusCode(403), true},
		{errors.New("api error 401: invalid token"), true},
		{errors.New("unauthorized"), true},
		{ErrUnauthorized, true},
		{NewRemoteQueryError("op", SourceInstance, "z", errors.New("timeout")).WithStatusCode(500), false},
	}

	for i, tc := range cases {
		if got := IsAuthError(tc.err); got != tc.want {
			t.Errorf("case %d: IsAuthError(%v) = %v, want %v", i, tc.err, got, tc.want)
		}
	}
}
