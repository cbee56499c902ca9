package rendererr

import (
	"errors"
	"testing"
)

func TestErrorFormatsWithAndWithoutObject(t *testing.T) {
	plain := New(Fatal, errors.New("device lost"))
	if got, want := plain.Error(), "fatal: device lost"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	withObject := NewValidation("mesh-42", errors.New("submesh/material-slot count mismatch"))
	if got, want := withObject.Error(), "validation: mesh-42: submesh/material-slot count mismatch"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestUnwrapReturnsUnderlyingError(t *testing.T) {
	underlying := errors.New("texture decode failed")
	wrapped := New(Recoverable, underlying)

	if !errors.Is(wrapped, underlying) {
		t.Error("errors.Is did not find the wrapped underlying error")
	}
}

func TestIsMatchesOnlySameKind(t *testing.T) {
	err := Newf(Validation, "bad index %d", 7)

	if !Is(err, Validation) {
		t.Error("Is(err, Validation) = false, want true")
	}
	if Is(err, Fatal) {
		t.Error("Is(err, Fatal) = true, want false")
	}
	if Is(errors.New("plain error"), Validation) {
		t.Error("Is on a non-*RenderError = true, want false")
	}
}

func TestKindString(t *testing.T) {
	cases := []struct {
		kind Kind
		want string
	}{
		{Fatal, "fatal"},
		{Recoverable, "recoverable"},
		{Validation, "validation"},
		{Kind(99), "unknown"},
	}
	for _, c := range cases {
		if got := c.kind.String(); got != c.want {
			t.Errorf("Kind(%d).String() = %q, want %q", c.kind, got, c.want)
		}
	}
}
