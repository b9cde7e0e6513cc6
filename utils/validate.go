// utils/validate.go
package utils

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"goreal-api/models"
)

const (
	MaxIDLength   = 100
	MaxNameLength = 100
	MaxTextLength = 5000
)

var allowedIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidationError names the first offending field and why it was rejected.
// Its message is exactly what the 400 response body carries.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// ValidateIDFormat checks that an identifier is non-empty, at most 100
// characters, and uses only alphanumerics, underscore and dash.
func ValidateIDFormat(id string) (bool, string) {
	if id == "" {
		return false, "ID cannot be empty"
	}
	if utf8.RuneCountInString(id) > MaxIDLength {
		return false, fmt.Sprintf("ID too long (max %d characters)", MaxIDLength)
	}
	if !allowedIDPattern.MatchString(id) {
		return false, "ID contains invalid characters (only alphanumeric, underscore, and dash allowed)"
	}
	return true, ""
}

// ValidateTextField checks a free-text field for length and for malicious
// content. Content matching a malicious pattern is rejected outright, not
// merely sanitized.
func ValidateTextField(text, fieldName string, maxLength int) (bool, string) {
	if text == "" {
		return false, fmt.Sprintf("%s cannot be empty", fieldName)
	}
	if utf8.RuneCountInString(text) > maxLength {
		return false, fmt.Sprintf("%s too long (max %d characters)", fieldName, maxLength)
	}
	if containsMaliciousPattern(text) {
		return false, fmt.Sprintf("%s contains potentially malicious content", fieldName)
	}
	return true, ""
}

// One field of a request payload. A nil value means the JSON key was absent,
// which is reported differently from an empty string.
type requestField struct {
	name   string
	value  *string
	isID   bool
	maxLen int
}

func validateFields(fields []requestField) *ValidationError {
	// Presence first, for every field in declared order, then format checks.
	for _, f := range fields {
		if f.value == nil {
			return &ValidationError{Field: f.name, Reason: fmt.Sprintf("Missing required field: %s", f.name)}
		}
		if *f.value == "" {
			return &ValidationError{Field: f.name, Reason: fmt.Sprintf("Empty value for field: %s", f.name)}
		}
	}
	for _, f := range fields {
		if f.isID {
			if ok, reason := ValidateIDFormat(*f.value); !ok {
				return &ValidationError{Field: f.name, Reason: fmt.Sprintf("%s: %s", f.name, reason)}
			}
		} else {
			if ok, reason := ValidateTextField(*f.value, f.name, f.maxLen); !ok {
				return &ValidationError{Field: f.name, Reason: reason}
			}
		}
	}
	// All fields passed; sanitize in place so that anything just under the
	// rejection threshold is still neutralized before it reaches the store.
	for _, f := range fields {
		*f.value = SanitizeInput(*f.value)
	}
	return nil
}

// ValidateChallengeLog validates a challenge-log payload and, on success,
// sanitizes its fields in place.
func ValidateChallengeLog(req *models.ChallengeLogRequest) *ValidationError {
	if req == nil {
		return &ValidationError{Reason: "No JSON data provided"}
	}
	return validateFields([]requestField{
		{name: "playerId", value: req.PlayerID, isID: true},
		{name: "playerName", value: req.PlayerName, maxLen: MaxNameLength},
		{name: "challengeId", value: req.ChallengeID, isID: true},
	})
}

// ValidateSubmission validates a proof-submission payload and, on success,
// sanitizes its fields in place. submissionText is free text, so it takes
// the long text check rather than the identifier check.
func ValidateSubmission(req *models.SubmissionRequest) *ValidationError {
	if req == nil {
		return &ValidationError{Reason: "No JSON data provided"}
	}
	return validateFields([]requestField{
		{name: "playerId", value: req.PlayerID, isID: true},
		{name: "challengeId", value: req.ChallengeID, isID: true},
		{name: "submissionText", value: req.SubmissionText, maxLen: MaxTextLength},
	})
}

// ValidateStatusQuery validates the two query parameters of a status read.
// Read path: no sanitization.
func ValidateStatusQuery(playerID, challengeID string) *ValidationError {
	if playerID == "" {
		return &ValidationError{Field: "playerId", Reason: "Missing required parameter: playerId"}
	}
	if challengeID == "" {
		return &ValidationError{Field: "challengeId", Reason: "Missing required parameter: challengeId"}
	}
	if ok, reason := ValidateIDFormat(playerID); !ok {
		return &ValidationError{Field: "playerId", Reason: fmt.Sprintf("playerId: %s", reason)}
	}
	if ok, reason := ValidateIDFormat(challengeID); !ok {
		return &ValidationError{Field: "challengeId", Reason: fmt.Sprintf("challengeId: %s", reason)}
	}
	return nil
}
