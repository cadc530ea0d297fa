// Package convert renders a loaded resource listing as an OpenAPI 3
// document, the shape most of today's tooling consumes.
package convert

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/restbind/restbind/schema"
)

// OpenAPIVersion is the target document version.
const OpenAPIVersion = "3.0.3"

// ToOpenAPI3 builds an OpenAPI document from an enriched listing. Every
// resource contributes its api entries as path items and its models as
// component schemas; duplicate model names across resources collapse to the
// last definition.
func ToOpenAPI3(listing *schema.ResourceListing) (*openapi3.T, error) {
	if listing == nil {
		return nil, fmt.Errorf("nil resource listing")
	}

	doc := &openapi3.T{
		OpenAPI: OpenAPIVersion,
		Info:    documentInfo(listing),
		Paths:   openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{},
		},
	}

	base := listingBase(listing)
	servers := map[string]bool{}
	if base != "" {
		servers[base] = true
	}

	for _, entry := range listing.APIs {
		decl := entry.Declaration
		if decl == nil {
			continue
		}
		if decl.BasePath != "" && decl.BasePath != schema.RootBasePath {
			servers[decl.BasePath] = true
		}

		for _, api := range decl.APIs {
			for _, op := range api.Operations {
				// Websocket upgrades have no OpenAPI rendering.
				if op.IsWebsocket || op.Upgrade != "" {
					continue
				}
				item := doc.Paths.Find(api.Path)
				if item == nil {
					item = &openapi3.PathItem{}
					doc.Paths.Set(api.Path, item)
				}
				item.SetOperation(strings.ToUpper(op.Method), buildOperation(entry.Name, op))
			}
		}

		names := make([]string, 0, len(decl.Models))
		for name := range decl.Models {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			doc.Components.Schemas[name] = modelSchema(decl.Models[name])
		}
	}

	serverURLs := make([]string, 0, len(servers))
	for s := range servers {
		serverURLs = append(serverURLs, s)
	}
	sort.Strings(serverURLs)
	for _, s := range serverURLs {
		doc.Servers = append(doc.Servers, &openapi3.Server{URL: s})
	}

	return doc, nil
}

func documentInfo(listing *schema.ResourceListing) *openapi3.Info {
	info := &openapi3.Info{Version: listing.APIVersion}
	if info.Version == "" {
		info.Version = "0.0.0"
	}
	if listing.Info != nil {
		info.Title = listing.Info.Title
		info.Description = listing.Info.Description
	}
	if info.Title == "" {
		info.Title = fallbackTitle(listing.URL)
	}
	return info
}

// fallbackTitle derives a document title from the listing's host when the
// listing itself carries no info block.
func fallbackTitle(location string) string {
	parsed, err := url.Parse(location)
	if err != nil || parsed.Host == "" {
		return "API"
	}
	host := parsed.Hostname()
	label, _, _ := strings.Cut(host, ".")
	if label == "" {
		return "API"
	}
	return cases.Title(language.English).String(label) + " API"
}

func listingBase(listing *schema.ResourceListing) string {
	if listing.BasePath != "" && listing.BasePath != schema.RootBasePath {
		return listing.BasePath
	}
	parsed, err := url.Parse(listing.URL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return ""
	}
	return parsed.Scheme + "://" + parsed.Host
}

func buildOperation(resource string, op *schema.Operation) *openapi3.Operation {
	out := &openapi3.Operation{
		OperationID: op.Nickname,
		Summary:     op.Summary,
		Description: op.Notes,
		Deprecated:  op.Deprecated == "true",
		Responses:   openapi3.NewResponses(),
	}
	if resource != "" {
		out.Tags = []string{resource}
	}

	for _, param := range op.Parameters {
		switch param.ParamType {
		case schema.ParamPath:
			p := openapi3.NewPathParameter(param.Name)
			p.Description = param.Description
			p.Schema = paramSchema(param)
			out.Parameters = append(out.Parameters, &openapi3.ParameterRef{Value: p})
		case schema.ParamQuery:
			p := openapi3.NewQueryParameter(param.Name)
			p.Description = param.Description
			p.Required = param.Required
			p.Schema = paramSchema(param)
			out.Parameters = append(out.Parameters, &openapi3.ParameterRef{Value: p})
		case schema.ParamBody:
			body := openapi3.NewRequestBody().WithRequired(param.Required)
			if ref := paramSchema(param); ref != nil {
				body = body.WithJSONSchemaRef(ref)
			}
			body.Description = param.Description
			out.RequestBody = &openapi3.RequestBodyRef{Value: body}
		}
	}

	for _, msg := range op.ResponseMessages {
		resp := openapi3.NewResponse().WithDescription(msg.Message)
		if msg.ResponseModel != "" {
			resp = resp.WithJSONSchemaRef(componentRef(msg.ResponseModel))
		}
		out.Responses.Set(strconv.Itoa(msg.Code), &openapi3.ResponseRef{Value: resp})
	}

	if ref := returnSchema(op); ref != nil {
		if existing := out.Responses.Value("200"); existing != nil && existing.Value != nil {
			existing.Value.WithJSONSchemaRef(ref)
		} else {
			resp := openapi3.NewResponse().WithDescription("success").WithJSONSchemaRef(ref)
			out.Responses.Set("200", &openapi3.ResponseRef{Value: resp})
		}
	}

	return out
}

func paramSchema(param *schema.Parameter) *openapi3.SchemaRef {
	if param.Ref != "" {
		return componentRef(param.Ref)
	}
	return typeSchema(param.Type, param.Format, param.Items)
}

func returnSchema(op *schema.Operation) *openapi3.SchemaRef {
	if op.Type == "" || op.Type == "void" {
		return nil
	}
	return typeSchema(op.Type, op.Format, op.Items)
}

func modelSchema(model *schema.Model) *openapi3.SchemaRef {
	s := openapi3.NewObjectSchema()
	s.Description = model.Description

	names := make([]string, 0, len(model.Properties))
	for name := range model.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		prop := model.Properties[name]
		ref := propertySchema(prop)
		if ref == nil {
			continue
		}
		s.Properties[name] = ref
	}

	if len(model.Required) > 0 {
		required := append([]string(nil), model.Required...)
		sort.Strings(required)
		s.Required = required
	}
	return &openapi3.SchemaRef{Value: s}
}

func propertySchema(prop *schema.Property) *openapi3.SchemaRef {
	if prop == nil {
		return nil
	}
	if prop.Ref != "" {
		return componentRef(prop.Ref)
	}
	ref := typeSchema(prop.Type, prop.Format, prop.Items)
	if ref != nil && ref.Value != nil {
		ref.Value.Description = prop.Description
		if len(prop.Enum) > 0 {
			for _, v := range prop.Enum {
				ref.Value.Enum = append(ref.Value.Enum, v)
			}
		}
	}
	return ref
}

// typeSchema maps a declared type and format onto an OpenAPI schema. Bare
// names that are not primitives resolve as component references.
func typeSchema(typ, format string, items *schema.Property) *openapi3.SchemaRef {
	switch typ {
	case "", "void":
		return nil
	case "array":
		s := openapi3.NewArraySchema()
		if items != nil {
			s.Items = propertySchema(items)
		}
		return &openapi3.SchemaRef{Value: s}
	case "integer", "int":
		switch format {
		case "int32":
			return &openapi3.SchemaRef{Value: openapi3.NewInt32Schema()}
		case "int64":
			return &openapi3.SchemaRef{Value: openapi3.NewInt64Schema()}
		default:
			return &openapi3.SchemaRef{Value: openapi3.NewIntegerSchema()}
		}
	case "long":
		return &openapi3.SchemaRef{Value: openapi3.NewInt64Schema()}
	case "number":
		s := openapi3.NewFloat64Schema()
		if format != "" {
			s = s.WithFormat(format)
		}
		return &openapi3.SchemaRef{Value: s}
	case "float", "double":
		return &openapi3.SchemaRef{Value: openapi3.NewFloat64Schema().WithFormat(typ)}
	case "string":
		s := openapi3.NewStringSchema()
		if format != "" {
			s = s.WithFormat(format)
		}
		return &openapi3.SchemaRef{Value: s}
	case "boolean":
		return &openapi3.SchemaRef{Value: openapi3.NewBoolSchema()}
	case "byte":
		return &openapi3.SchemaRef{Value: openapi3.NewStringSchema().WithFormat("byte")}
	case "Date", "date":
		return &openapi3.SchemaRef{Value: openapi3.NewStringSchema().WithFormat("date-time")}
	case "File":
		return &openapi3.SchemaRef{Value: openapi3.NewStringSchema().WithFormat("binary")}
	default:
		return componentRef(typ)
	}
}

func componentRef(name string) *openapi3.SchemaRef {
	return openapi3.NewSchemaRef("#/components/schemas/"+name, nil)
}
