package models

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// Object is a parsed instance of a model type.
type Object struct {
	Type   *Type
	Fields map[string]any
}

// Get returns a parsed field by name.
func (o *Object) Get(name string) (any, bool) {
	v, ok := o.Fields[name]
	return v, ok
}

// MarshalJSON serializes the object as its fields; the type record is
// navigation metadata, not payload.
func (o *Object) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.Fields)
}

// Parse converts a JSON-decoded payload into a typed value per the
// descriptor, resolving model references through the set. Void descriptors
// return the payload untouched. The error names the offending path.
func Parse(payload any, d Descriptor, set Set) (any, error) {
	return parse(payload, d, set, "value")
}

func parse(payload any, d Descriptor, set Set, path string) (any, error) {
	if payload == nil {
		return nil, nil
	}

	switch d.Kind {
	case Void:
		return payload, nil

	case Primitive:
		return parsePrimitive(payload, d, path)

	case Array:
		items, ok := payload.([]any)
		if !ok {
			return nil, fmt.Errorf("%s: expected array, got %T", path, payload)
		}
		if d.Elem == nil {
			return items, nil
		}
		out := make([]any, len(items))
		for i, item := range items {
			v, err := parse(item, *d.Elem, set, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil

	case Model:
		return parseModel(payload, d.Name, set, path)
	}
	return nil, fmt.Errorf("%s: unhandled descriptor kind %d", path, d.Kind)
}

func parseModel(payload any, name string, set Set, path string) (any, error) {
	t, ok := set[name]
	if !ok {
		return nil, fmt.Errorf("%s: unknown model %q", path, name)
	}
	fields, ok := payload.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s: expected %s object, got %T", path, name, payload)
	}

	obj := &Object{Type: t, Fields: make(map[string]any, len(fields))}
	for fname, fval := range fields {
		pd, ok := t.Properties[fname]
		if !ok {
			return nil, fmt.Errorf("%s: model %q has no property %q", path, name, fname)
		}
		v, err := parse(fval, pd, set, path+"."+fname)
		if err != nil {
			return nil, err
		}
		obj.Fields[fname] = v
	}
	for rname := range t.Required {
		if _, ok := obj.Fields[rname]; !ok {
			return nil, fmt.Errorf("%s: model %q missing required property %q", path, name, rname)
		}
	}
	return obj, nil
}

func parsePrimitive(payload any, d Descriptor, path string) (any, error) {
	switch d.Name {
	case "integer":
		switch n := payload.(type) {
		case float64:
			if n != math.Trunc(n) {
				return nil, fmt.Errorf("%s: expected integer, got %v", path, n)
			}
			return int64(n), nil
		case int64:
			return n, nil
		case int:
			return int64(n), nil
		}
		return nil, fmt.Errorf("%s: expected integer, got %T", path, payload)

	case "number":
		switch n := payload.(type) {
		case float64:
			return n, nil
		case int64:
			return float64(n), nil
		case int:
			return float64(n), nil
		}
		return nil, fmt.Errorf("%s: expected number, got %T", path, payload)

	case "string":
		s, ok := payload.(string)
		if !ok {
			return nil, fmt.Errorf("%s: expected string, got %T", path, payload)
		}
		switch d.Format {
		case "date":
			ts, err := time.Parse("2006-01-02", s)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
			return ts, nil
		case "date-time":
			ts, err := time.Parse(time.RFC3339, s)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
			return ts, nil
		}
		return s, nil

	case "boolean":
		b, ok := payload.(bool)
		if !ok {
			return nil, fmt.Errorf("%s: expected boolean, got %T", path, payload)
		}
		return b, nil
	}
	return nil, fmt.Errorf("%s: unknown primitive %q", path, d.Name)
}
