// Package restbind turns a service's published api description into a
// callable client at runtime. A Client holds named Resources, a Resource
// holds named Operations, and Operation.Call binds Go arguments onto the
// declared path, query, and body slots before dispatching over HTTP or,
// for upgraded operations, a websocket stream.
package restbind

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sort"

	"github.com/restbind/restbind/loader"
	"github.com/restbind/restbind/schema"
	"github.com/restbind/restbind/transport"
)

// Client is the callable surface built from a resource listing: one
// Resource per listing entry, navigable by name.
type Client struct {
	base      string
	listing   *schema.ResourceListing
	resources map[string]*Resource
	tr        transport.Interface
	logger    *slog.Logger
}

// Option customizes client construction.
type Option func(*options)

type options struct {
	transport  transport.Interface
	loader     *loader.Loader
	logger     *slog.Logger
	processors []schema.Processor
}

// WithTransport swaps the wire implementation. The transport may be shared;
// Close still only asks it to release what it holds.
func WithTransport(t transport.Interface) Option {
	return func(o *options) { o.transport = t }
}

// WithLoader swaps the listing loader.
func WithLoader(l *loader.Loader) Option {
	return func(o *options) { o.loader = l }
}

// WithLogger sets the construction and call logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithProcessors replaces the enrichment chain applied to the listing.
func WithProcessors(procs ...schema.Processor) Option {
	return func(o *options) { o.processors = procs }
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.transport == nil {
		o.transport = transport.NewHTTP()
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if len(o.processors) == 0 {
		o.processors = schema.DefaultProcessors()
	}
	if o.loader == nil {
		o.loader = &loader.Loader{
			Transport:  o.transport,
			Processors: o.processors,
			Logger:     o.logger,
		}
	}
	return o
}

// New loads the resource listing at listingURL and builds the client over
// it. The client-level base for root-anchored declarations is the scheme
// and authority of listingURL.
func New(ctx context.Context, listingURL string, opts ...Option) (*Client, error) {
	o := buildOptions(opts)
	o.logger.Debug("loading api description", "url", listingURL)

	listing, err := o.loader.Listing(ctx, listingURL)
	if err != nil {
		return nil, err
	}

	parsed, err := url.Parse(listingURL)
	if err != nil {
		return nil, fmt.Errorf("parse listing url: %w", err)
	}
	base := listingURL
	if parsed.Scheme != "" && parsed.Host != "" {
		base = parsed.Scheme + "://" + parsed.Host
	}
	return build(listing, base, o)
}

// NewFromListing builds the client from an in-memory listing. The
// enrichment passes run; nothing is fetched, so declarations must be
// embedded. The client-level base is the listing's declared basePath,
// taken verbatim.
func NewFromListing(listing *schema.ResourceListing, opts ...Option) (*Client, error) {
	o := buildOptions(opts)
	o.logger.Debug("building client from listing", "basePath", listing.BasePath)

	if err := o.loader.Process(listing); err != nil {
		return nil, err
	}
	return build(listing, listing.BasePath, o)
}

func build(listing *schema.ResourceListing, base string, o options) (*Client, error) {
	c := &Client{
		base:      base,
		listing:   listing,
		resources: make(map[string]*Resource, len(listing.APIs)),
		tr:        o.transport,
		logger:    o.logger,
	}
	for _, entry := range listing.APIs {
		if _, exists := c.resources[entry.Name]; exists {
			return nil, &DuplicateResourceError{Name: entry.Name}
		}
		r, err := newResource(entry, base, o.transport, o.logger)
		if err != nil {
			return nil, err
		}
		c.resources[entry.Name] = r
	}
	return c, nil
}

// Resource returns the resource with the given name.
func (c *Client) Resource(name string) (*Resource, error) {
	r, ok := c.resources[name]
	if !ok {
		return nil, &UnknownResourceError{Name: name}
	}
	return r, nil
}

// Resources returns every resource name, sorted.
func (c *Client) Resources() []string {
	names := make([]string, 0, len(c.resources))
	for name := range c.resources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Operation resolves resource and nickname in one step.
func (c *Client) Operation(resource, nickname string) (*Operation, error) {
	r, err := c.Resource(resource)
	if err != nil {
		return nil, err
	}
	return r.Operation(nickname)
}

// BasePath returns the client-level base used for root-anchored
// declarations.
func (c *Client) BasePath() string { return c.base }

// Listing returns the enriched resource listing the client was built from.
func (c *Client) Listing() *schema.ResourceListing { return c.listing }

// Close releases the transport's resources.
func (c *Client) Close() error { return c.tr.Close() }
