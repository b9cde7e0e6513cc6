// utils/sanitize.go
package utils

import (
	"html"
	"regexp"
	"strings"
)

// Patterns that get a payload rejected outright by the validators, and
// stripped again after HTML-escaping as defense in depth.
var maliciousPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`), // script tags
	regexp.MustCompile(`(?i)javascript:`),                // javascript: scheme
	regexp.MustCompile(`(?i)on\w+=`),                     // inline event handlers
	regexp.MustCompile(`(?i)expression\(`),               // CSS expressions
	regexp.MustCompile(`(?i)eval\(`),                     // eval calls
}

// SanitizeInput neutralizes user input before it is written to the sheet
// store: HTML-escape first, then strip anything still matching a malicious
// pattern, then trim surrounding whitespace.
func SanitizeInput(text string) string {
	text = html.EscapeString(text)
	for _, p := range maliciousPatterns {
		text = p.ReplaceAllString(text, "")
	}
	return strings.TrimSpace(text)
}

func containsMaliciousPattern(text string) bool {
	for _, p := range maliciousPatterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}
