// Package loader resolves resource listings: it fetches the listing
// document and every referenced API declaration, decodes JSON or YAML into
// the schema records, gates the declared version, and applies the
// enrichment passes.
package loader

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/restbind/restbind/schema"
	"github.com/restbind/restbind/transport"
)

// supportedRange is the swaggerVersion constraint this loader accepts. A
// missing version is tolerated; a declared one outside the range is not.
const supportedRange = "^1.0"

// Loader fetches and prepares resource listings.
type Loader struct {
	// Transport used for http(s) locations. Defaults to transport.NewHTTP().
	Transport transport.Interface
	// Processors applied after loading. Defaults to schema.DefaultProcessors().
	Processors []schema.Processor
	// Logger for load progress. Defaults to slog.Default().
	Logger *slog.Logger
}

// New returns a loader over the given transport with the standard
// enrichment chain.
func New(t transport.Interface, procs ...schema.Processor) *Loader {
	if len(procs) == 0 {
		procs = schema.DefaultProcessors()
	}
	return &Loader{Transport: t, Processors: procs}
}

func (l *Loader) transportOrDefault() transport.Interface {
	if l.Transport != nil {
		return l.Transport
	}
	return transport.NewHTTP()
}

func (l *Loader) logger() *slog.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return slog.Default()
}

// Listing loads the resource listing at location (an http(s) URL or a file
// path, optionally file://), fetches and embeds each entry's declaration,
// and applies the enrichment passes. Entries that already carry an embedded
// declaration are left as supplied.
func (l *Loader) Listing(ctx context.Context, location string) (*schema.ResourceListing, error) {
	l.logger().Debug("loading resource listing", "location", location)

	data, err := l.fetch(ctx, location)
	if err != nil {
		return nil, err
	}

	var listing schema.ResourceListing
	if err := decodeDocument(data, location, &listing); err != nil {
		return nil, fmt.Errorf("decode %s: %w", location, err)
	}
	if err := checkVersion(listing.SwaggerVersion); err != nil {
		return nil, fmt.Errorf("%s: %w", location, err)
	}

	base := baseOf(location)
	for _, entry := range listing.APIs {
		if entry.Declaration != nil {
			continue
		}
		declLoc := base + strings.ReplaceAll(entry.Path, "{format}", "json")
		l.logger().Debug("loading api declaration", "location", declLoc)

		declData, err := l.fetch(ctx, declLoc)
		if err != nil {
			return nil, err
		}
		var decl schema.Declaration
		if err := decodeDocument(declData, declLoc, &decl); err != nil {
			return nil, fmt.Errorf("decode %s: %w", declLoc, err)
		}
		entry.Declaration = &decl
	}

	listing.URL = location
	if err := schema.Apply(&listing, l.Processors...); err != nil {
		return nil, err
	}
	return &listing, nil
}

// Process applies the enrichment passes to an in-memory listing. Nothing is
// fetched; declarations must already be embedded.
func (l *Loader) Process(listing *schema.ResourceListing) error {
	return schema.Apply(listing, l.Processors...)
}

func (l *Loader) fetch(ctx context.Context, location string) ([]byte, error) {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		tr := l.transportOrDefault()
		resp, err := tr.Request(ctx, http.MethodGet, location, nil, nil, nil)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", location, err)
		}
		if !tr.Successful(resp) {
			return nil, fmt.Errorf("fetch %s: %s", location, resp.Status)
		}
		return resp.Body, nil
	}

	path := strings.TrimPrefix(location, "file://")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", location, err)
	}
	return data, nil
}

// baseOf strips the final path segment; declarations resolve against it.
func baseOf(location string) string {
	if i := strings.LastIndex(location, "/"); i >= 0 {
		return location[:i]
	}
	return location
}

// decodeDocument decodes JSON directly and routes YAML through a JSON
// round-trip so the json tags on the records apply either way.
func decodeDocument(data []byte, location string, into any) error {
	if !looksLikeYAML(location, data) {
		return json.Unmarshal(data, into)
	}
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return err
	}
	jsonBytes, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	return json.Unmarshal(jsonBytes, into)
}

func looksLikeYAML(location string, data []byte) bool {
	lower := strings.ToLower(location)
	if strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml") {
		return true
	}
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] != '{'
}

func checkVersion(version string) error {
	if version == "" {
		return nil
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("unparseable swaggerVersion %q: %w", version, err)
	}
	c, err := semver.NewConstraint(supportedRange)
	if err != nil {
		return err
	}
	if !c.Check(v) {
		return fmt.Errorf("unsupported swaggerVersion %q (supported range %s)", version, supportedRange)
	}
	return nil
}
