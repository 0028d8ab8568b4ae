package prism

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
)

// Payload ceilings. Oversized input is rejected, never truncated.
const (
	MaxPayloadBytes = 8 * 1024
	MaxPayloadDepth = 10
	MaxStringLength = 1024
	RedactionMarker = "[REDACTED]"
)

var (
	ErrPayloadTooLarge        = errors.New("payload_too_large")
	ErrPayloadTooDeep         = errors.New("payload_too_deep")
	ErrStringTooLong          = errors.New("string_too_long")
	ErrPayloadNotSerializable = errors.New("payload_not_serializable")
)

// sensitiveKeyPattern matches key names whose values must never leave the
// process unredacted.
var sensitiveKeyPattern = regexp.MustCompile(`(?i)(password|passwd|pwd|secret|token|api_?key|passphrase)`)

// ValidatePayload enforces the serialized-size, nesting-depth and
// string-length ceilings on an event payload. A payload that cannot be
// serialized at all fails validation too. Failures are typed errors
// reported to the caller, never auto-corrected.
func ValidatePayload(data map[string]any) error {
	encoded, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPayloadNotSerializable, err)
	}
	if len(encoded) > MaxPayloadBytes {
		return ErrPayloadTooLarge
	}
	return checkValue(data, 0)
}

func checkValue(v any, depth int) error {
	if depth > MaxPayloadDepth {
		return ErrPayloadTooDeep
	}
	switch val := v.(type) {
	case string:
		if len(val) > MaxStringLength {
			return ErrStringTooLong
		}
	case map[string]any:
		for _, item := range val {
			if err := checkValue(item, depth+1); err != nil {
				return err
			}
		}
	case []any:
		for _, item := range val {
			if err := checkValue(item, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}

// Sanitize strips markup-significant characters from every string value,
// recursing through nested maps. List values pass through unchanged.
// The input is never mutated.
func Sanitize(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = sanitizeValue(v)
	}
	return out
}

func sanitizeValue(v any) any {
	switch val := v.(type) {
	case string:
		return stripMarkup(val)
	case map[string]any:
		return Sanitize(val)
	}
	return v
}

func stripMarkup(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '<' || r == '>' {
			continue
		}
		out = append(out, r)
	}
	return string(out)
}

// Redact replaces the value of any sensitive-named key with the redaction
// marker, recursing through nested maps. The input is never mutated.
func Redact(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		if sensitiveKeyPattern.MatchString(k) {
			out[k] = RedactionMarker
			continue
		}
		if nested, ok := v.(map[string]any); ok {
			out[k] = Redact(nested)
			continue
		}
		out[k] = v
	}
	return out
}

// Secure runs the full payload pipeline: validate, sanitize, redact. It
// short-circuits on the first validation failure.
func Secure(data map[string]any) (map[string]any, error) {
	if err := ValidatePayload(data); err != nil {
		return nil, err
	}
	return Redact(Sanitize(data)), nil
}
