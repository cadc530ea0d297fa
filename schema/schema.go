// Package schema defines the wire records for resource listings and API
// declarations, the enrichment passes that prepare a decoded listing for
// client use, and the structural checks binding depends on.
package schema

const (
	// ParamPath substitutes into the {name} segments of an operation path.
	ParamPath = "path"
	// ParamQuery joins the request query string.
	ParamQuery = "query"
	// ParamBody becomes the request payload.
	ParamBody = "body"
)

// RootBasePath is the declaration basePath sentinel meaning "use the
// client-level base".
const RootBasePath = "/"

// ResourceListing is the top-level API description document.
type ResourceListing struct {
	SwaggerVersion string           `json:"swaggerVersion,omitempty"`
	APIVersion     string           `json:"apiVersion,omitempty"`
	BasePath       string           `json:"basePath,omitempty"`
	Info           *Info            `json:"info,omitempty"`
	APIs           []*ResourceEntry `json:"apis"`

	// URL records where the listing was loaded from. Populated by the
	// loader; empty for in-memory listings.
	URL string `json:"-"`
}

// Info carries the optional listing metadata block.
type Info struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// ResourceEntry is one entry in the listing's apis array. Name is filled in
// by the NameFromPath enrichment pass; Declaration is embedded by the loader
// (or supplied inline for in-memory listings).
type ResourceEntry struct {
	Path        string       `json:"path"`
	Description string       `json:"description,omitempty"`
	Name        string       `json:"name,omitempty"`
	Declaration *Declaration `json:"api_declaration,omitempty"`
}

// Declaration describes one resource: its base path, its api entries and
// the models its operations refer to.
type Declaration struct {
	SwaggerVersion string            `json:"swaggerVersion,omitempty"`
	APIVersion     string            `json:"apiVersion,omitempty"`
	BasePath       string            `json:"basePath"`
	ResourcePath   string            `json:"resourcePath,omitempty"`
	Produces       []string          `json:"produces,omitempty"`
	Consumes       []string          `json:"consumes,omitempty"`
	APIs           []*API            `json:"apis"`
	Models         map[string]*Model `json:"models,omitempty"`
}

// API is one path template and the operations served under it.
type API struct {
	Path        string       `json:"path"`
	Description string       `json:"description,omitempty"`
	Operations  []*Operation `json:"operations"`
}

// Operation declares a single invocable operation.
type Operation struct {
	Nickname         string             `json:"nickname"`
	Method           string             `json:"method"`
	Summary          string             `json:"summary,omitempty"`
	Notes            string             `json:"notes,omitempty"`
	Type             string             `json:"type,omitempty"`
	Format           string             `json:"format,omitempty"`
	Items            *Property          `json:"items,omitempty"`
	Upgrade          string             `json:"upgrade,omitempty"`
	IsWebsocket      bool               `json:"is_websocket,omitempty"`
	Parameters       []*Parameter       `json:"parameters"`
	ResponseMessages []*ResponseMessage `json:"responseMessages,omitempty"`
	Produces         []string           `json:"produces,omitempty"`
	Consumes         []string           `json:"consumes,omitempty"`
	Deprecated       string             `json:"deprecated,omitempty"`
}

// Parameter declares one named argument slot of an operation.
type Parameter struct {
	Name          string    `json:"name"`
	ParamType     string    `json:"paramType"`
	Description   string    `json:"description,omitempty"`
	Type          string    `json:"type,omitempty"`
	Format        string    `json:"format,omitempty"`
	Ref           string    `json:"$ref,omitempty"`
	Required      bool      `json:"required,omitempty"`
	AllowMultiple bool      `json:"allowMultiple,omitempty"`
	Enum          []string  `json:"enum,omitempty"`
	Items         *Property `json:"items,omitempty"`
}

// ResponseMessage documents one status code an operation may answer with.
type ResponseMessage struct {
	Code          int    `json:"code"`
	Message       string `json:"message"`
	ResponseModel string `json:"responseModel,omitempty"`
}

// Model is a named object shape referenced by operations and properties.
type Model struct {
	ID          string               `json:"id,omitempty"`
	Description string               `json:"description,omitempty"`
	Required    []string             `json:"required,omitempty"`
	Properties  map[string]*Property `json:"properties"`
}

// Property is one field of a model, or the element shape of an array.
type Property struct {
	Type        string    `json:"type,omitempty"`
	Format      string    `json:"format,omitempty"`
	Ref         string    `json:"$ref,omitempty"`
	Description string    `json:"description,omitempty"`
	Items       *Property `json:"items,omitempty"`
	Enum        []string  `json:"enum,omitempty"`
}

// KnownParamType reports whether pt is a paramType binding understands.
func KnownParamType(pt string) bool {
	switch pt {
	case ParamPath, ParamQuery, ParamBody:
		return true
	}
	return false
}
