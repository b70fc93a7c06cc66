package errors

import (
	"strings"
	"testing"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"https", "https://example.com", false},
		{"http with path", "http://localhost:3000/en", false},

		{"empty", "", true},
		{"no scheme", "example.com", true},
		{"ftp", "ftp://example.com", true},
		{"no host", "https://", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidURL) {
				t.Errorf("ValidateURL(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidURL)
			}
		})
	}
}

func TestValidateSlug(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "acme", false},
		{"dash and digits", "acme-2024", false},
		{"underscore", "acme_site", false},

		{"empty", "", true},
		{"uppercase", "Acme", true},
		{"traversal", "../etc", true},
		{"slash", "acme/site", true},
		{"leading dash", "-acme", true},
		{"space", "acme site", true},
		{"too long", strings.Repeat("a", 129), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSlug(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSlug(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePagePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"root", "/", false},
		{"single segment", "/about", false},
		{"nested", "/blog/post-1", false},
		{"query", "/search?q=x", false},

		{"relative", "about", true},
		{"empty", "", true},
		{"traversal", "/../secret", true},
		{"fragment", "/about#team", true},
		{"control char", "/ab\x01out", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePagePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePagePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
