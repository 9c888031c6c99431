package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "WithoutCause",
			err:  New(ErrCodeInvalidNodeID, "missing leading separator: %q", "element:a"),
			want: `INVALID_NODE_ID: missing leading separator: "element:a"`,
		},
		{
			name: "WithCause",
			err:  Wrap(ErrCodeInvalidSchema, fmt.Errorf("unexpected EOF"), "decode schema.xsd"),
			want: "INVALID_SCHEMA: decode schema.xsd: unexpected EOF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeDocumentNotFound, "no document %s", "abc")
	if !Is(err, ErrCodeDocumentNotFound) {
		t.Error("Is() = false, want true for matching code")
	}
	if Is(err, ErrCodeInternal) {
		t.Error("Is() = true, want false for non-matching code")
	}
	if Is(stderrors.New("plain"), ErrCodeInternal) {
		t.Error("Is() = true, want false for plain error")
	}
}

func TestIsWrapped(t *testing.T) {
	inner := New(ErrCodeInvalidNodeID, "bad id")
	outer := fmt.Errorf("parse: %w", inner)
	if !Is(outer, ErrCodeInvalidNodeID) {
		t.Error("Is() should find code through wrapped chain")
	}
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("root cause")
	err := Wrap(ErrCodeInternal, cause, "something failed")
	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should reach the cause through Unwrap")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeInvalidFormat, "bad")); got != ErrCodeInvalidFormat {
		t.Errorf("GetCode() = %q, want %q", got, ErrCodeInvalidFormat)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode() = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidTheme, "unknown color %q", "chartreuse")
	if got, want := UserMessage(err), `unknown color "chartreuse"`; got != want {
		t.Errorf("UserMessage() = %q, want %q", got, want)
	}
	plain := stderrors.New("plain message")
	if got := UserMessage(plain); got != "plain message" {
		t.Errorf("UserMessage() = %q, want %q", got, "plain message")
	}
}
