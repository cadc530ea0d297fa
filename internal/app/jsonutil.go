// Package app - jsonutil.go provides JSON normalization and conversion utilities.
package app

import (
	"encoding/json"
	"strings"
)

// NormalizeJSON converts a Go value to a JSON-normalized form (map[string]any, []any, etc).
// Parsed model objects and other typed values round-trip through JSON so
// transforms and serializers see plain JSON shapes.
//
// Returns the input unchanged if it's already a basic JSON type.
func NormalizeJSON(v any) (any, error) {
	if v == nil {
		return nil, nil
	}

	// If already a basic JSON type, return as-is
	switch v.(type) {
	case map[string]any, []any, string, float64, bool:
		return v, nil
	}

	// Round-trip through JSON to normalize
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	var result any
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}

	return result, nil
}

// MaybeJSON returns true if the trimmed string looks like a JSON object or array.
func MaybeJSON(s string) bool {
	s = strings.TrimSpace(s)
	return (strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}")) ||
		(strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]"))
}
