package schema

import (
	"fmt"
	"path"
	"strings"
)

// Processor is one enrichment pass over a decoded resource listing. Passes
// run in registration order; an error aborts client construction.
type Processor interface {
	Name() string
	Apply(listing *ResourceListing) error
}

// DefaultProcessors returns the standard enrichment chain: the websocket
// flag pass followed by the resource naming pass.
func DefaultProcessors() []Processor {
	return []Processor{WebsocketFlag{}, NameFromPath{}}
}

// Apply runs the given passes over the listing in order.
func Apply(listing *ResourceListing, procs ...Processor) error {
	for _, p := range procs {
		if err := p.Apply(listing); err != nil {
			return fmt.Errorf("enrichment %s: %w", p.Name(), err)
		}
	}
	return nil
}

// NameFromPath names each listing entry after the file stem of the final
// segment of its path: "/pet.json" becomes "pet".
type NameFromPath struct{}

// Name implements Processor.
func (NameFromPath) Name() string { return "name-from-path" }

// Apply implements Processor.
func (NameFromPath) Apply(listing *ResourceListing) error {
	for _, entry := range listing.APIs {
		base := path.Base(entry.Path)
		entry.Name = strings.TrimSuffix(base, path.Ext(base))
	}
	return nil
}

// WebsocketFlag marks operations whose upgrade field requests a websocket.
// Websocket operations must be declared GET.
type WebsocketFlag struct{}

// Name implements Processor.
func (WebsocketFlag) Name() string { return "websocket-flag" }

// Apply implements Processor.
func (WebsocketFlag) Apply(listing *ResourceListing) error {
	for _, entry := range listing.APIs {
		if entry.Declaration == nil {
			continue
		}
		for _, api := range entry.Declaration.APIs {
			for _, op := range api.Operations {
				if op.Upgrade == "websocket" {
					op.IsWebsocket = true
				}
				if op.IsWebsocket && !strings.EqualFold(op.Method, "GET") {
					return fmt.Errorf("operation %q: websocket upgrade requires GET, found %s", op.Nickname, op.Method)
				}
			}
		}
	}
	return nil
}
