package models

import "github.com/restbind/restbind/schema"

// Type is a built model type: the property shapes plus the required set.
type Type struct {
	Name       string
	Required   map[string]bool
	Properties map[string]Descriptor
}

// Set maps model names to their built types. One Set exists per resource,
// built from its declaration's model map.
type Set map[string]*Type

// Build constructs the type for one named model schema.
func Build(name string, m *schema.Model) *Type {
	t := &Type{
		Name:       name,
		Required:   make(map[string]bool, len(m.Required)),
		Properties: make(map[string]Descriptor, len(m.Properties)),
	}
	for _, r := range m.Required {
		t.Required[r] = true
	}
	for pname, prop := range m.Properties {
		t.Properties[pname] = PropertyType(prop)
	}
	return t
}

// BuildSet builds the model set for a declaration's model map.
func BuildSet(ms map[string]*schema.Model) Set {
	set := make(Set, len(ms))
	for name, m := range ms {
		set[name] = Build(name, m)
	}
	return set
}

// Names returns the model names in the set, unordered.
func (s Set) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	return names
}
