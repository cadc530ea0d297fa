package app

import (
	"strings"

	"github.com/restbind/restbind"
)

// InfoOutput is the listing metadata shown by `restbind info`.
type InfoOutput struct {
	Location       string   `json:"location"`
	Title          string   `json:"title,omitempty"`
	Description    string   `json:"description,omitempty"`
	SwaggerVersion string   `json:"swaggerVersion,omitempty"`
	APIVersion     string   `json:"apiVersion,omitempty"`
	BasePath       string   `json:"basePath,omitempty"`
	Resources      []string `json:"resources"`
}

// BuildInfo assembles the info view from a bound client.
func BuildInfo(client *restbind.Client, location string) InfoOutput {
	listing := client.Listing()
	out := InfoOutput{
		Location:       location,
		SwaggerVersion: listing.SwaggerVersion,
		APIVersion:     listing.APIVersion,
		BasePath:       client.BasePath(),
		Resources:      client.Resources(),
	}
	if listing.Info != nil {
		out.Title = listing.Info.Title
		out.Description = listing.Info.Description
	}
	return out
}

// Render returns a human-friendly styled representation of the listing info.
func (o InfoOutput) Render() string {
	s := Styles
	var sb strings.Builder

	title := o.Title
	if title == "" {
		title = o.Location
	}
	sb.WriteString(s.Header.Render(title))
	if o.APIVersion != "" {
		sb.WriteString(s.Dim.Render(" v" + o.APIVersion))
	}

	if o.Description != "" {
		sb.WriteString("\n")
		sb.WriteString(o.Description)
	}

	sb.WriteString("\n\n  ")
	sb.WriteString(s.Bullet.Render("•"))
	sb.WriteString(" ")
	sb.WriteString(s.Dim.Render("Location:  "))
	sb.WriteString(s.Key.Render(o.Location))

	if o.BasePath != "" {
		sb.WriteString("\n  ")
		sb.WriteString(s.Bullet.Render("•"))
		sb.WriteString(" ")
		sb.WriteString(s.Dim.Render("Base path: "))
		sb.WriteString(s.Key.Render(o.BasePath))
	}

	if o.SwaggerVersion != "" {
		sb.WriteString("\n  ")
		sb.WriteString(s.Bullet.Render("•"))
		sb.WriteString(" ")
		sb.WriteString(s.Dim.Render("Format:    "))
		sb.WriteString("swagger " + o.SwaggerVersion)
	}

	sb.WriteString("\n  ")
	sb.WriteString(s.Bullet.Render("•"))
	sb.WriteString(" ")
	sb.WriteString(s.Dim.Render("Resources: "))
	if len(o.Resources) == 0 {
		sb.WriteString(s.Dim.Render("none"))
	} else {
		sb.WriteString(strings.Join(o.Resources, ", "))
	}

	return sb.String()
}
