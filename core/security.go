package core

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

const (
	emailMaxLen   = 254
	passwordMin   = 8
	passwordMax   = 128
	csrfTokenSize = 32
)

var (
	scriptTagRegex = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script\s*>`)
	jsSchemeRegex  = regexp.MustCompile(`(?i)javascript:`)
	eventAttrRegex = regexp.MustCompile(`(?i)\bon\w+\s*=`)
	emailRegex     = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	angleBracketReplacer = strings.NewReplacer("<", "", ">", "")
	htmlEscaper          = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
	)
)

// SanitizeInput strips script-tag blocks (including their content),
// "javascript:" scheme prefixes, inline event-handler attribute patterns and
// angle brackets, then trims whitespace.
//
// This is a best-effort, single-pass filter against the obvious injection
// vectors, not a full HTML sanitizer: adversarial re-nesting that only becomes
// a script tag after one pass of stripping is not caught.
func SanitizeInput(text string) string {
	text = scriptTagRegex.ReplaceAllString(text, "")
	text = jsSchemeRegex.ReplaceAllString(text, "")
	text = eventAttrRegex.ReplaceAllString(text, "")
	text = angleBracketReplacer.Replace(text)
	return strings.TrimSpace(text)
}

// ValidateEmail reports whether email looks like a permissive local@domain.tld
// address no longer than 254 characters.
func ValidateEmail(email string) bool {
	return len(email) <= emailMaxLen && emailRegex.MatchString(email)
}

// PasswordValidation holds the outcome of the password policy check.
type PasswordValidation struct {
	IsValid bool     `json:"is_valid"`
	Errors  []string `json:"errors"`
}

// ValidatePassword applies the password policy and collects ALL violated
// rules, not just the first:
// - minLen: 8
// - maxLen: 128
// - at least 1 uppercase character
// - at least 1 lowercase character
// - at least 1 digit
func ValidatePassword(password string) PasswordValidation {
	var errs []string

	if len(password) < passwordMin {
		errs = append(errs, fmt.Sprintf("password must be at least %d characters long", passwordMin))
	}
	if len(password) > passwordMax {
		errs = append(errs, fmt.Sprintf("password must be no more than %d characters long", passwordMax))
	}

	var hasUpper, hasLower, hasDigit bool
	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsDigit(char):
			hasDigit = true
		}
	}
	if !hasUpper {
		errs = append(errs, "password must contain at least one uppercase letter")
	}
	if !hasLower {
		errs = append(errs, "password must contain at least one lowercase letter")
	}
	if !hasDigit {
		errs = append(errs, "password must contain at least one digit")
	}

	return PasswordValidation{IsValid: len(errs) == 0, Errors: errs}
}

// EscapeHTML entity-escapes & < > " ' for safe text-node insertion.
func EscapeHTML(text string) string {
	return htmlEscaper.Replace(text)
}

// GenerateCSRFToken returns a random opaque token.
// No handler verifies these tokens yet; they are generated for the frontend's
// future anti-CSRF use only.
func GenerateCSRFToken() string {
	buf := make([]byte, csrfTokenSize)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand only fails when the OS entropy source is broken
		panic(err)
	}
	return hex.EncodeToString(buf)
}
