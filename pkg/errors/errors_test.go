package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidInput, "test message: %s", "value")

	if err.Code != ErrCodeInvalidInput {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidInput)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "INVALID_INPUT: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInvalidHierarchy, cause, "partition failed")

	if err.Code != ErrCodeInvalidHierarchy {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidHierarchy)
	}

	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}

	if got := UserMessage(err); got != "partition failed: underlying error" {
		t.Errorf("UserMessage() = %q", got)
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{"matching code", New(ErrCodeInvalidInput, "test"), ErrCodeInvalidInput, true},
		{"different code", New(ErrCodeInvalidInput, "test"), ErrCodeNotFound, false},
		{"wrapped", Wrap(ErrCodeInvalidFormat, errors.New("x"), "test"), ErrCodeInvalidFormat, true},
		{"plain error", errors.New("plain"), ErrCodeInvalidInput, false},
		{"nil", nil, ErrCodeInvalidInput, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCodeAndUserMessage(t *testing.T) {
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %q, want empty", got)
	}
	if got := UserMessage(errors.New("plain")); got != "plain" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
	if got := UserMessage(New(ErrCodeNotFound, "gone")); got != "gone" {
		t.Errorf("UserMessage() = %q, want %q", got, "gone")
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{New(ErrCodeInvalidInput, "x"), http.StatusBadRequest},
		{New(ErrCodeInvalidHierarchy, "x"), http.StatusBadRequest},
		{New(ErrCodeInvalidPalette, "x"), http.StatusBadRequest},
		{New(ErrCodeNotFound, "x"), http.StatusNotFound},
		{New(ErrCodeUnsupported, "x"), http.StatusNotImplemented},
		{New(ErrCodeNetwork, "x"), http.StatusBadGateway},
		{New(ErrCodeInternal, "x"), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := HTTPStatus(tt.err); got != tt.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestUserMessageNested(t *testing.T) {
	inner := New(ErrCodeFileNotFound, "open flare.json")
	outer := Wrap(ErrCodeNetwork, inner, "fetch https://example.com/flare.json")
	wrapped := fmt.Errorf("load: %w", outer)

	want := "fetch https://example.com/flare.json: open flare.json"
	if got := UserMessage(wrapped); got != want {
		t.Errorf("UserMessage() = %q, want %q", got, want)
	}
	if got := GetCode(wrapped); got != ErrCodeNetwork {
		t.Errorf("GetCode() = %q, want outermost code %q", got, ErrCodeNetwork)
	}
	if UserMessage(nil) != "" {
		t.Error("UserMessage(nil) should be empty")
	}
}

func TestCodeStatus(t *testing.T) {
	for _, c := range []Code{
		ErrCodeInvalidInput, ErrCodeInvalidHierarchy, ErrCodeInvalidFormat,
		ErrCodeInvalidPalette, ErrCodeInvalidConfig, ErrCodeInvalidPath,
	} {
		if c.Status() != http.StatusBadRequest {
			t.Errorf("%s.Status() = %d, want 400", c, c.Status())
		}
	}
	if got := Code("SOMETHING_NEW").Status(); got != http.StatusInternalServerError {
		t.Errorf("unknown code status = %d, want 500", got)
	}
}
