package restbind

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/restbind/restbind/models"
	"github.com/restbind/restbind/schema"
	"github.com/restbind/restbind/transport"
)

// Args are the named arguments of a call. Binding keys off presence in the
// map, so zero values bind like any other value.
type Args map[string]any

// Result is what a call produces. Request operations set Response; websocket
// operations set Stream. Value carries the payload parsed against the
// declared return shape when the transport reported success.
type Result struct {
	Response *transport.Response
	Stream   *transport.Stream
	Value    any
}

// Operation is one invocable operation of a resource. It binds named
// arguments to the declared parameter slots and dispatches over the
// transport.
type Operation struct {
	resource string
	uri      string
	decl     *schema.Operation
	returns  models.Descriptor
	models   models.Set
	tr       transport.Interface
	logger   *slog.Logger
}

func newOperation(resource, uri string, decl *schema.Operation, set models.Set, tr transport.Interface, logger *slog.Logger) *Operation {
	return &Operation{
		resource: resource,
		uri:      uri,
		decl:     decl,
		returns:  models.OperationType(decl),
		models:   set,
		tr:       tr,
		logger:   logger,
	}
}

// Nickname returns the operation's unique name within its resource.
func (op *Operation) Nickname() string { return op.decl.Nickname }

// Method returns the declared HTTP method.
func (op *Operation) Method() string { return op.decl.Method }

// URI returns the effective URI template, path placeholders included.
func (op *Operation) URI() string { return op.uri }

// IsWebsocket reports whether the call connects in streaming mode.
func (op *Operation) IsWebsocket() bool { return op.decl.IsWebsocket }

// Parameters returns the declared parameter slots.
func (op *Operation) Parameters() []*schema.Parameter { return op.decl.Parameters }

// Declaration returns the underlying operation record.
func (op *Operation) Declaration() *schema.Operation { return op.decl }

// ReturnType returns the declared return shape.
func (op *Operation) ReturnType() models.Descriptor { return op.returns }

// Describe renders the operation's documentation block.
func (op *Operation) Describe() string { return DescribeOperation(op.decl) }

func (op *Operation) qualified() string { return op.resource + "." + op.decl.Nickname }

// Call binds args to the declared parameters and dispatches. All binding
// failures return before any network activity. For websocket operations the
// URI scheme prefix http rewrites to ws and the connection carries the query
// parameters only.
func (op *Operation) Call(ctx context.Context, args Args) (*Result, error) {
	uri := op.uri
	query := url.Values{}
	var body any
	var headers http.Header

	remaining := make(map[string]bool, len(args))
	for name := range args {
		remaining[name] = true
	}

	for _, param := range op.decl.Parameters {
		value, supplied := args[param.Name]
		if !supplied {
			if param.Required {
				return nil, &MissingParameterError{Param: param.Name, Operation: op.decl.Nickname}
			}
			continue
		}

		switch param.ParamType {
		case schema.ParamPath:
			uri = strings.ReplaceAll(uri, "{"+param.Name+"}", flatten(value))
		case schema.ParamQuery:
			query.Add(param.Name, flatten(value))
		case schema.ParamBody:
			body = value
			if headers == nil {
				headers = http.Header{}
			}
			headers.Set("Content-Type", "application/json")
		default:
			return nil, &UnsupportedParamTypeError{
				ParamType: param.ParamType,
				Param:     param.Name,
				Operation: op.decl.Nickname,
			}
		}
		delete(remaining, param.Name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		return nil, &UnexpectedParametersError{Operation: op.decl.Nickname, Params: names}
	}

	if op.decl.IsWebsocket {
		uri = rewriteWebsocketScheme(uri)
		op.logger.Info("connecting", "operation", op.qualified(), "uri", uri)
		stream, err := op.tr.StreamConnect(ctx, uri, query)
		if err != nil {
			return nil, err
		}
		return &Result{Stream: stream}, nil
	}

	op.logger.Info("calling", "operation", op.qualified(), "method", op.decl.Method, "uri", uri)
	resp, err := op.tr.Request(ctx, op.decl.Method, uri, query, body, headers)
	if err != nil {
		return nil, err
	}

	result := &Result{Response: resp}
	if op.tr.Successful(resp) && len(resp.Body) > 0 {
		var payload any
		if err := resp.JSON(&payload); err != nil {
			return result, fmt.Errorf("decode response of %s: %w", op.qualified(), err)
		}
		value, err := models.Parse(payload, op.returns, op.models)
		if err != nil {
			return result, fmt.Errorf("parse response of %s: %w", op.qualified(), err)
		}
		result.Value = value
	}
	return result, nil
}

// rewriteWebsocketScheme turns the leading http into ws, which maps https
// to wss as well.
func rewriteWebsocketScheme(uri string) string {
	if strings.HasPrefix(uri, "http") {
		return "ws" + strings.TrimPrefix(uri, "http")
	}
	return uri
}

// flatten renders an argument value for a path or query slot. Sequences
// collapse to a single comma-joined string.
func flatten(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case []string:
		return strings.Join(v, ",")
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = fmt.Sprint(item)
		}
		return strings.Join(parts, ",")
	case []int:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = fmt.Sprint(item)
		}
		return strings.Join(parts, ",")
	case []int64:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = fmt.Sprint(item)
		}
		return strings.Join(parts, ",")
	case []float64:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = fmt.Sprint(item)
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(value)
	}
}
