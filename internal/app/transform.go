// Package app - transform.go provides JSONata projection of call results.
package app

import (
	"fmt"

	"github.com/blues/jsonata-go"
)

// ApplyTransform evaluates a JSONata expression against a call result.
// An empty expression returns the input unchanged.
func ApplyTransform(expression string, input any) (any, error) {
	if expression == "" {
		return input, nil
	}

	expr, err := jsonata.Compile(expression)
	if err != nil {
		return nil, fmt.Errorf("compile jsonata expression: %w", err)
	}

	// The evaluator expects plain JSON shapes, not typed model objects.
	normalized, err := NormalizeJSON(input)
	if err != nil {
		return nil, fmt.Errorf("normalize input: %w", err)
	}

	result, err := expr.Eval(normalized)
	if err != nil {
		return nil, fmt.Errorf("evaluate jsonata expression: %w", err)
	}

	return result, nil
}
