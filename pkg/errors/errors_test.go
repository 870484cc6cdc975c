package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidFlow, "edge %s references unknown node", "e1")
	if err.Code != ErrCodeInvalidFlow {
		t.Errorf("Code = %s, want %s", err.Code, ErrCodeInvalidFlow)
	}
	want := "INVALID_FLOW: edge e1 references unknown node"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrapAndUnwrap(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(ErrCodeInternal, cause, "render %s", "svg")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match its cause via errors.Is")
	}
	if got := err.Error(); got != "INTERNAL_ERROR: render svg: disk full" {
		t.Errorf("Error() = %q", got)
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeNoDiagram, "nothing found")
	if !Is(err, ErrCodeNoDiagram) {
		t.Error("Is should match the code")
	}
	if Is(err, ErrCodeInternal) {
		t.Error("Is should not match a different code")
	}
	if Is(stderrors.New("plain"), ErrCodeInternal) {
		t.Error("Is should not match plain errors")
	}

	// Matching through wrapping layers
	wrapped := fmt.Errorf("outer: %w", err)
	if !Is(wrapped, ErrCodeNoDiagram) {
		t.Error("Is should unwrap to find the code")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeInvalidInput, "bad")); got != ErrCodeInvalidInput {
		t.Errorf("GetCode = %s, want %s", got, ErrCodeInvalidInput)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode on plain error = %s, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeFileNotFound, "no such file: %s", "flow.json")
	if got := UserMessage(err); got != "no such file: flow.json" {
		t.Errorf("UserMessage = %q", got)
	}

	plain := stderrors.New("plain failure")
	if got := UserMessage(plain); got != "plain failure" {
		t.Errorf("UserMessage on plain error = %q", got)
	}
}
