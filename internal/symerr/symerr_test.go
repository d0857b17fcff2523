package symerr

import (
	"errors"
	"testing"
)

func TestParseErrorFormatting(t *testing.T) {
	underlying := errors.New("unknown type reference")
	err := NewParseError("a.symtypes", 12, underlying)

	want := "a.symtypes:12: unknown type reference"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, underlying) {
		t.Errorf("expected errors.Is to unwrap to underlying error")
	}
}

func TestIOErrorFormatting(t *testing.T) {
	underlying := errors.New("permission denied")
	err := NewIOError("open", "/tmp/x.symtypes", underlying)

	want := "open /tmp/x.symtypes: permission denied"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestJoinRetainsFirst(t *testing.T) {
	e1 := errors.New("first")
	e2 := errors.New("second")

	joined := Join([]error{e1, e2})
	if !errors.Is(joined, e1) {
		t.Errorf("expected Join to preserve the first error for errors.Is")
	}

	var j *Joined
	if !errors.As(joined, &j) {
		t.Fatalf("expected errors.As to recover *Joined")
	}
	if len(j.Errs) != 2 {
		t.Errorf("expected 2 joined errors, got %d", len(j.Errs))
	}
}

func TestJoinAllNil(t *testing.T) {
	if Join([]error{nil, nil}) != nil {
		t.Errorf("expected Join of all-nil errors to be nil")
	}
}

func TestContextualErrorUnwraps(t *testing.T) {
	underlying := errors.New("boom")
	err := NewContextualError("loading corpus", underlying)
	if !errors.Is(err, underlying) {
		t.Errorf("expected ContextualError to unwrap")
	}
	if err.Error() != "loading corpus: boom" {
		t.Errorf("unexpected message: %s", err.Error())
	}
}
