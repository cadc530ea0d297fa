package app

import (
	"fmt"
	"strings"

	"github.com/restbind/restbind"
)

// ResourceSummary is one row of the resources view.
type ResourceSummary struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Operations  int    `json:"operations"`
}

// ResourcesOutput lists the resources of a description.
type ResourcesOutput struct {
	Location  string            `json:"location"`
	Resources []ResourceSummary `json:"resources"`
}

// BuildResources assembles the resources view from a bound client.
func BuildResources(client *restbind.Client, location string) (ResourcesOutput, error) {
	out := ResourcesOutput{Location: location}
	for _, name := range client.Resources() {
		r, err := client.Resource(name)
		if err != nil {
			return ResourcesOutput{}, err
		}
		out.Resources = append(out.Resources, ResourceSummary{
			Name:        r.Name(),
			Description: r.Description(),
			Operations:  len(r.Operations()),
		})
	}
	return out, nil
}

// Render returns a human-friendly styled resource list.
func (o ResourcesOutput) Render() string {
	s := Styles
	if len(o.Resources) == 0 {
		return s.Dim.Render("No resources")
	}

	var sb strings.Builder
	sb.WriteString(s.Header.Render("Resources:"))
	for _, r := range o.Resources {
		sb.WriteString("\n  ")
		sb.WriteString(s.Bullet.Render("•"))
		sb.WriteString(" ")
		sb.WriteString(s.Key.Render(r.Name))
		if r.Operations == 1 {
			sb.WriteString(s.Dim.Render(" (1 operation)"))
		} else {
			sb.WriteString(s.Dim.Render(fmt.Sprintf(" (%d operations)", r.Operations)))
		}
		if r.Description != "" {
			sb.WriteString("\n    ")
			sb.WriteString(s.Dim.Render(r.Description))
		}
	}
	return sb.String()
}
