package apperr

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorWrapUnwrap(t *testing.T) {
	err := Internal("order.place", sql.ErrConnDone)

	if !errors.Is(err, sql.ErrConnDone) {
		t.Fatalf("expected errors.Is to match cause")
	}

	var got *Error
	if !errors.As(fmt.Errorf("wrapped: %w", err), &got) {
		t.Fatalf("expected errors.As to match Error")
	}
	if got.Kind != KindInternal {
		t.Fatalf("kind = %s, want %s", got.Kind, KindInternal)
	}
}

func TestKindOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Kind
	}{
		{"validation", Validation("op", "name", "name is required"), KindValidation},
		{"not found", NotFound("op", "no such entry"), KindNotFound},
		{"wrapped not found", fmt.Errorf("ctx: %w", NotFound("op", "x")), KindNotFound},
		{"plain error", errors.New("boom"), KindInternal},
		{"empty kind", &Error{Op: "op"}, KindInternal},
	}
	for _, c := range cases {
		if got := KindOf(c.err); got != c.want {
			t.Errorf("%s: KindOf = %s, want %s", c.name, got, c.want)
		}
	}
}

func TestPublicMessageHidesInternalDetail(t *testing.T) {
	err := Internal("check.items", errors.New(`relation "checks" does not exist`))
	msg := PublicMessage(err)
	if strings.Contains(msg, "relation") {
		t.Fatalf("internal detail leaked: %q", msg)
	}
	if PublicMessage(errors.New("raw driver error")) != msg {
		t.Fatalf("unclassified errors should use the generic message")
	}
}

func TestPublicMessageKeepsFieldMessage(t *testing.T) {
	err := Validation("waitlist.register", "partySize", "partySize must be a positive integer")
	if got := PublicMessage(err); got != "partySize must be a positive integer" {
		t.Fatalf("PublicMessage = %q", got)
	}
	if !strings.Contains(err.Error(), "field=partySize") {
		t.Fatalf("Error() should name the field: %q", err.Error())
	}
}
