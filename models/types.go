// Package models builds type descriptors from declared model schemas and
// parses response payloads into typed values against them.
package models

import (
	"github.com/restbind/restbind/schema"
)

// Kind classifies what a descriptor describes.
type Kind int

const (
	// Void means no declared shape; payloads pass through untyped.
	Void Kind = iota
	// Primitive is a scalar such as integer, number, string or boolean.
	Primitive
	// Array is a sequence of an element shape.
	Array
	// Model references a named model from the declaration's model map.
	Model
)

// Descriptor is the declared shape of a value.
type Descriptor struct {
	Kind   Kind
	Name   string // normalized primitive name, or the model name
	Format string // primitive format such as int64 or date-time
	Elem   *Descriptor
}

// String renders the descriptor the way declarations spell types, e.g.
// "integer:int64", "array:Pet", "void".
func (d Descriptor) String() string {
	switch d.Kind {
	case Primitive:
		if d.Format != "" {
			return d.Name + ":" + d.Format
		}
		return d.Name
	case Array:
		if d.Elem == nil {
			return "array"
		}
		return "array:" + d.Elem.String()
	case Model:
		return d.Name
	default:
		return "void"
	}
}

// TypeOf derives a descriptor from raw declaration fields. A $ref always
// wins; an unknown bare type name is treated as a model reference.
func TypeOf(typ, format, ref string, items *schema.Property) Descriptor {
	if ref != "" {
		return Descriptor{Kind: Model, Name: ref}
	}
	switch typ {
	case "", "void":
		return Descriptor{Kind: Void}
	case "array":
		if items == nil {
			return Descriptor{Kind: Array}
		}
		elem := PropertyType(items)
		return Descriptor{Kind: Array, Elem: &elem}
	}
	if name, f, ok := primitive(typ, format); ok {
		return Descriptor{Kind: Primitive, Name: name, Format: f}
	}
	return Descriptor{Kind: Model, Name: typ}
}

// OperationType is the declared return shape of an operation.
func OperationType(op *schema.Operation) Descriptor {
	return TypeOf(op.Type, op.Format, "", op.Items)
}

// ParameterType is the declared shape of a parameter (documentation only;
// binding never consults it).
func ParameterType(p *schema.Parameter) Descriptor {
	return TypeOf(p.Type, p.Format, p.Ref, p.Items)
}

// PropertyType is the declared shape of a model property.
func PropertyType(p *schema.Property) Descriptor {
	return TypeOf(p.Type, p.Format, p.Ref, p.Items)
}

// primitive normalizes the primitive spellings declarations use. The older
// bare spellings (long, float, date, ...) fold into type+format pairs.
func primitive(typ, format string) (name, f string, ok bool) {
	switch typ {
	case "integer", "int":
		return "integer", format, true
	case "long":
		return "integer", "int64", true
	case "number":
		return "number", format, true
	case "float":
		return "number", "float", true
	case "double":
		return "number", "double", true
	case "string":
		return "string", format, true
	case "byte":
		return "string", "byte", true
	case "date":
		return "string", "date", true
	case "dateTime":
		return "string", "date-time", true
	case "boolean":
		return "boolean", "", true
	case "File":
		return "string", "byte", true
	}
	return "", "", false
}
