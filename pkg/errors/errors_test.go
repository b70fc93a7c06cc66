package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidSlug, "bad slug: %s", "A B")

	if err.Code != ErrCodeInvalidSlug {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidSlug)
	}

	if err.Message != "bad slug: A B" {
		t.Errorf("Message = %v, want %v", err.Message, "bad slug: A B")
	}

	expected := "INVALID_SLUG: bad slug: A B"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("net::ERR_NAME_NOT_RESOLVED")
	err := Wrap(ErrCodeNavigation, cause, "load %s", "https://example.com/")

	if err.Code != ErrCodeNavigation {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeNavigation)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestWrapDeadlineBecomesTimeout(t *testing.T) {
	cause := fmt.Errorf("navigate: %w", context.DeadlineExceeded)
	err := Wrap(ErrCodeNavigation, cause, "load page")

	if err.Code != ErrCodeTimeout {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeTimeout)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("errors.Is(err, context.DeadlineExceeded) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeCapture, "test"),
			code:     ErrCodeCapture,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeCapture, "test"),
			code:     ErrCodeRecording,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      fmt.Errorf("viewport desktop: %w", New(ErrCodeNavigation, "inner")),
			code:     ErrCodeNavigation,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{"Error type", New(ErrCodeMockup, "test"), ErrCodeMockup},
		{"plain error", errors.New("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestFatal(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain error", errors.New("boom"), false},
		{"browser launch", New(ErrCodeBrowser, "launch"), true},
		{"output dir", New(ErrCodeFilesystem, "mkdir"), true},
		{"invalid url", New(ErrCodeInvalidURL, "bad"), true},
		{"navigation", New(ErrCodeNavigation, "load"), false},
		{"timeout", New(ErrCodeTimeout, "load"), false},
		{"section", New(ErrCodeCapture, "crop"), false},
		{"video", New(ErrCodeRecording, "ffmpeg"), false},
		{"mockup", New(ErrCodeMockup, "decode"), false},
		{"wrapped fatal", fmt.Errorf("run: %w", New(ErrCodeBrowser, "launch")), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Fatal(tt.err); got != tt.want {
				t.Errorf("Fatal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"Error type", New(ErrCodeInvalidInput, "friendly message"), "friendly message"},
		{"with cause", Wrap(ErrCodeFilesystem, errors.New("permission denied"), "create output"), "create output: permission denied"},
		{"plain error", errors.New("plain error"), "plain error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}
