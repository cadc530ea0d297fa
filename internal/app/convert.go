package app

import (
	"context"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/restbind/restbind/internal/convert"
	"github.com/restbind/restbind/loader"
	"github.com/restbind/restbind/transport"
)

// ConvertDescription loads the description at location and renders it as an
// OpenAPI 3 document.
func ConvertDescription(ctx context.Context, location string) (*openapi3.T, error) {
	ld := loader.New(transport.NewHTTP())
	listing, err := ld.Listing(ctx, location)
	if err != nil {
		return nil, err
	}
	return convert.ToOpenAPI3(listing)
}
