package models

import (
	"testing"

	"github.com/restbind/restbind/schema"
)

func TestTypeOf(t *testing.T) {
	tests := []struct {
		name   string
		typ    string
		format string
		ref    string
		items  *schema.Property
		want   string
	}{
		{"void when empty", "", "", "", nil, "void"},
		{"explicit void", "void", "", "", nil, "void"},
		{"plain string", "string", "", "", nil, "string"},
		{"int64", "integer", "int64", "", nil, "integer:int64"},
		{"legacy long", "long", "", "", nil, "integer:int64"},
		{"legacy dateTime", "dateTime", "", "", nil, "string:date-time"},
		{"double", "number", "double", "", nil, "number:double"},
		{"boolean", "boolean", "", "", nil, "boolean"},
		{"ref wins", "string", "", "Pet", nil, "Pet"},
		{"bare model name", "Pet", "", "", nil, "Pet"},
		{"array of models", "array", "", "", &schema.Property{Ref: "Pet"}, "array:Pet"},
		{"array of strings", "array", "", "", &schema.Property{Type: "string"}, "array:string"},
		{"untyped array", "array", "", "", nil, "array"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := TypeOf(tt.typ, tt.format, tt.ref, tt.items)
			if got := d.String(); got != tt.want {
				t.Errorf("TypeOf(%q, %q, %q) = %q, want %q", tt.typ, tt.format, tt.ref, got, tt.want)
			}
		})
	}
}

func TestBuildSet(t *testing.T) {
	set := BuildSet(map[string]*schema.Model{
		"Pet": {
			ID:       "Pet",
			Required: []string{"id"},
			Properties: map[string]*schema.Property{
				"id":   {Type: "integer", Format: "int64"},
				"name": {Type: "string"},
				"tags": {Type: "array", Items: &schema.Property{Ref: "Tag"}},
			},
		},
		"Tag": {
			ID:         "Tag",
			Properties: map[string]*schema.Property{"name": {Type: "string"}},
		},
	})

	pet := set["Pet"]
	if pet == nil {
		t.Fatal("set[Pet] = nil")
	}
	if !pet.Required["id"] {
		t.Error("Pet.Required[id] = false, want true")
	}
	if got := pet.Properties["id"].String(); got != "integer:int64" {
		t.Errorf("Pet.id descriptor = %q, want integer:int64", got)
	}
	if got := pet.Properties["tags"].String(); got != "array:Tag" {
		t.Errorf("Pet.tags descriptor = %q, want array:Tag", got)
	}
	if len(set.Names()) != 2 {
		t.Errorf("Names() = %v, want two models", set.Names())
	}
}
