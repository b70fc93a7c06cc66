package errors

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"
)

// ValidateURL validates the root URL of a capture target.
// It requires an absolute http or https URL with a host.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidURL, "URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidURL, "URL must use http or https scheme: %q", rawURL)
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return Wrap(ErrCodeInvalidURL, err, "parse %q", rawURL)
	}
	if u.Host == "" {
		return New(ErrCodeInvalidURL, "URL has no host: %q", rawURL)
	}

	return nil
}

// slugRegex matches output directory keys.
var slugRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// ValidateSlug validates the slug used as the output directory name.
// Slugs are lowercase, start with a letter or digit, and may only contain
// letters, digits, '-' and '_'. This rules out path traversal.
func ValidateSlug(slug string) error {
	if slug == "" {
		return New(ErrCodeInvalidSlug, "slug cannot be empty")
	}

	if len(slug) > 128 {
		return New(ErrCodeInvalidSlug, "slug too long (max 128 characters)")
	}

	if !slugRegex.MatchString(slug) {
		return New(ErrCodeInvalidSlug, "invalid slug %q (use a-z, 0-9, '-' and '_')", slug)
	}

	return nil
}

// ValidatePagePath validates an explicit page path passed with --pages.
//
// Validation rules:
//   - Path must start with "/"
//   - No control characters
//   - No path traversal sequences (..)
//   - No fragments
func ValidatePagePath(path string) error {
	if !strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "page path must start with /: %q", path)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "page path contains invalid characters: %q", path)
		}
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "page path cannot contain path traversal sequences (..): %q", path)
	}

	if strings.Contains(path, "#") {
		return New(ErrCodeInvalidPath, "page path cannot contain a fragment: %q", path)
	}

	return nil
}
