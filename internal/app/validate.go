package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/restbind/restbind/loader"
	"github.com/restbind/restbind/schema"
	"github.com/restbind/restbind/transport"
)

// ValidationReport is the result of validating an api description.
type ValidationReport struct {
	Location string           `json:"location"`
	Valid    bool             `json:"valid"`
	Version  string           `json:"version,omitempty"`
	Problems []schema.Problem `json:"problems,omitempty"`
	Error    string           `json:"error,omitempty"`
}

// ValidateDescription loads the description at location and reports every
// structural problem, fatal or not. The websocket enrichment is skipped so
// defects it would reject still show up in the report.
func ValidateDescription(ctx context.Context, location string) ValidationReport {
	ld := loader.New(transport.NewHTTP(), schema.NameFromPath{})
	listing, err := ld.Listing(ctx, location)
	if err != nil {
		return ValidationReport{Location: location, Error: err.Error()}
	}

	problems := schema.Validate(listing)
	valid := true
	for _, p := range problems {
		if p.Fatal {
			valid = false
			break
		}
	}

	return ValidationReport{
		Location: location,
		Valid:    valid,
		Version:  listing.SwaggerVersion,
		Problems: problems,
	}
}

// Render returns a human-friendly representation of the validation report.
func (r ValidationReport) Render() string {
	s := Styles
	var sb strings.Builder

	sb.WriteString(s.Header.Render("Validation Report"))
	sb.WriteString("\n")
	sb.WriteString(s.Dim.Render("Location: "))
	sb.WriteString(r.Location)
	sb.WriteString("\n")

	if r.Error != "" {
		sb.WriteString(s.Error.Render("error"))
		sb.WriteString(": ")
		sb.WriteString(r.Error)
		return sb.String()
	}

	if r.Version != "" {
		sb.WriteString(s.Dim.Render("Version:  "))
		sb.WriteString(r.Version)
		sb.WriteString("\n")
	}

	if r.Valid && len(r.Problems) == 0 {
		sb.WriteString(s.Success.Render("valid"))
		return sb.String()
	}

	if r.Valid {
		sb.WriteString(s.Warning.Render(fmt.Sprintf("valid with %d hazard(s)", len(r.Problems))))
	} else {
		sb.WriteString(s.Error.Render("invalid"))
	}
	for _, p := range r.Problems {
		sb.WriteString("\n  ")
		if p.Fatal {
			sb.WriteString(s.Error.Render("✗"))
		} else {
			sb.WriteString(s.Warning.Render("!"))
		}
		sb.WriteString(" ")
		sb.WriteString(p.String())
	}
	return sb.String()
}

// ExitCode maps the report onto a process exit code: 0 valid, 1 invalid,
// 2 when the description could not be loaded at all.
func (r ValidationReport) ExitCode() int {
	switch {
	case r.Error != "":
		return 2
	case !r.Valid:
		return 1
	default:
		return 0
	}
}
