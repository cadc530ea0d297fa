package restbind

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/restbind/restbind/models"
	"github.com/restbind/restbind/schema"
	"github.com/restbind/restbind/transport"
)

// Resource is one resource of the API: the model types built from its
// declaration plus one operation per nickname.
type Resource struct {
	name   string
	entry  *schema.ResourceEntry
	models models.Set
	ops    map[string]*Operation
}

func newResource(entry *schema.ResourceEntry, clientBase string, tr transport.Interface, logger *slog.Logger) (*Resource, error) {
	decl := entry.Declaration
	if decl == nil {
		return nil, fmt.Errorf("resource %q: missing api_declaration", entry.Name)
	}
	logger.Debug("building resource", "resource", entry.Name)

	base := decl.BasePath
	if base == schema.RootBasePath {
		base = clientBase
	}

	set := models.BuildSet(decl.Models)
	r := &Resource{
		name:   entry.Name,
		entry:  entry,
		models: set,
		ops:    make(map[string]*Operation),
	}

	for _, api := range decl.APIs {
		for _, op := range api.Operations {
			if op.Nickname == "" {
				return nil, fmt.Errorf("resource %q: operation on %q has no nickname", entry.Name, api.Path)
			}
			if _, exists := r.ops[op.Nickname]; exists {
				return nil, &DuplicateNicknameError{Resource: entry.Name, Nickname: op.Nickname}
			}
			if bodies := countBodyParams(op); bodies > 1 {
				return nil, &MultipleBodyParamsError{Resource: entry.Name, Operation: op.Nickname}
			}
			logger.Debug("building operation", "resource", entry.Name, "nickname", op.Nickname)
			r.ops[op.Nickname] = newOperation(entry.Name, base+api.Path, op, set, tr, logger)
		}
	}
	return r, nil
}

func countBodyParams(op *schema.Operation) int {
	n := 0
	for _, p := range op.Parameters {
		if p.ParamType == schema.ParamBody {
			n++
		}
	}
	return n
}

// Name returns the resource name derived from the listing entry path.
func (r *Resource) Name() string { return r.name }

// Description returns the listing entry's description.
func (r *Resource) Description() string { return r.entry.Description }

// Declaration returns the resource's API declaration record.
func (r *Resource) Declaration() *schema.Declaration { return r.entry.Declaration }

// Models returns the model set built from the declaration.
func (r *Resource) Models() models.Set { return r.models }

// Operation returns the operation with the given nickname.
func (r *Resource) Operation(name string) (*Operation, error) {
	op, ok := r.ops[name]
	if !ok {
		return nil, &UnknownOperationError{Resource: r.name, Name: name}
	}
	return op, nil
}

// Operations returns the nicknames of every operation, sorted.
func (r *Resource) Operations() []string {
	names := make([]string, 0, len(r.ops))
	for name := range r.ops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
