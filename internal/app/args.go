// Package app - args.go turns CLI argument flags into call arguments.
package app

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/restbind/restbind"
)

// ParseCallArgs builds the named arguments for a call from repeated
// key=value flags and an optional JSON document (inline or @file). The
// document is applied first; explicit pairs override its keys.
func ParseCallArgs(pairs []string, inputDoc string) (restbind.Args, error) {
	args := restbind.Args{}

	if inputDoc != "" {
		data := []byte(inputDoc)
		if strings.HasPrefix(inputDoc, "@") {
			b, err := os.ReadFile(strings.TrimPrefix(inputDoc, "@"))
			if err != nil {
				return nil, fmt.Errorf("read input file: %w", err)
			}
			data = b
		}
		var doc map[string]any
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse input document: %w", err)
		}
		for k, v := range doc {
			args[k] = v
		}
	}

	for _, pair := range pairs {
		key, raw, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid argument %q (want key=value)", pair)
		}
		args[key] = CoerceArg(raw)
	}

	return args, nil
}

// CoerceArg interprets a flag value the way a JSON reader would: objects,
// arrays, booleans, null and numbers become their typed values, everything
// else stays a string. Quoting a value keeps it a string.
func CoerceArg(raw string) any {
	trimmed := strings.TrimSpace(raw)

	if len(trimmed) >= 2 && strings.HasPrefix(trimmed, `"`) && strings.HasSuffix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal([]byte(trimmed), &s); err == nil {
			return s
		}
	}

	if MaybeJSON(trimmed) {
		var v any
		if err := json.Unmarshal([]byte(trimmed), &v); err == nil {
			return v
		}
	}

	switch trimmed {
	case "true":
		return true
	case "false":
		return false
	case "null":
		return nil
	}

	if i, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return f
	}

	return raw
}
