package apperr

import (
	"errors"
	"net/http"
	"testing"
)

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		kind Kind
		want int
	}{
		{KindNotFound, http.StatusNotFound},
		{KindValidation, http.StatusBadRequest},
		{KindBadRequest, http.StatusBadRequest},
		{KindConflict, http.StatusConflict},
		{KindForbidden, http.StatusForbidden},
		{KindUnauthorized, http.StatusUnauthorized},
		{KindUpstream, http.StatusBadGateway},
		{KindInternal, http.StatusInternalServerError},
		{KindUnknown, http.StatusBadRequest},
	}

	for _, tc := range cases {
		if got := New(tc.kind, "boom").HTTPStatus(); got != tc.want {
			t.Fatalf("kind %d mapped to %d, want %d", tc.kind, got, tc.want)
		}
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(KindUpstream, "places request failed", cause)

	if !errors.Is(err, cause) {
		t.Fatal("expected errors.Is to find the cause")
	}
	if GetKind(err) != KindUpstream {
		t.Fatalf("expected upstream kind, got %v", GetKind(err))
	}
}

func TestGetKindOnPlainError(t *testing.T) {
	if GetKind(errors.New("plain")) != KindUnknown {
		t.Fatal("plain errors should report KindUnknown")
	}
}

func TestErrorStringIncludesOp(t *testing.T) {
	err := NotFound("lease not found").WithOp("leases.Get")
	if err.Error() != "leases.Get: lease not found" {
		t.Fatalf("unexpected error string %q", err.Error())
	}
}
