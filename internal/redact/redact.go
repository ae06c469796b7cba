// Package redact provides utilities for redacting sensitive information from strings
// before they are logged or shown to the user. The Gemini API key travels in a
// request header, but transport errors, proxies and echoed request URLs can still
// surface it, so every error string from the generation layer goes through here.
package redact

import (
	"regexp"
)

// Constants for redaction placeholders
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
)

// rule pairs a pattern with the text that replaces each match.
type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

// Precompiled rules, applied in order.
var rules = []rule{
	// Google API keys have a fixed prefix and length.
	{regexp.MustCompile(`AIza[0-9A-Za-z_\-]{35}`), RedactedKeyPlaceholder},
	// key=... query parameters and x-goog-api-key headers.
	{regexp.MustCompile(`(?i)(x-goog-api-key|api[_-]?key|[?&]key)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`), RedactedKeyPlaceholder},
	// Bearer tokens.
	{regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9_\-.~+/]+=*`), "Bearer " + RedactedCredentialPlaceholder},
	// JWT token pattern - matches the standard three-part base64url-encoded JWT token format
	{regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`), "[REDACTED_JWT]"},
	// user:password@ in URLs, e.g. proxy settings.
	{regexp.MustCompile(`://[^/\s:@]+:[^/\s@]+@`), "://" + RedactedCredentialPlaceholder + "@"},
}

// String redacts sensitive information from the input string
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
	}

	return result
}

// Error redacts sensitive information from an error's Error() output
func Error(err error) string {
	if err == nil {
		return ""
	}

	return String(err.Error())
}
