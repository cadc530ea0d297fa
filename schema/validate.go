package schema

import (
	"fmt"
	"strings"
)

// Problem is one defect found in a listing. Fatal problems break the
// binding contract and fail client construction; the rest are hazards that
// surface at call time instead.
type Problem struct {
	Context string `json:"context,omitempty"`
	Message string `json:"message"`
	Fatal   bool   `json:"fatal"`
}

func (p Problem) String() string {
	if p.Context == "" {
		return p.Message
	}
	return p.Context + ": " + p.Message
}

// ValidationError carries the fatal problems of a listing.
type ValidationError struct {
	Problems []Problem
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		msgs[i] = p.String()
	}
	return "invalid api description: " + strings.Join(msgs, "; ")
}

// Check validates the listing and returns a *ValidationError when any fatal
// problem is present. Run the enrichment passes first: the checks rely on
// resource names and websocket flags being populated.
func Check(listing *ResourceListing) error {
	var fatal []Problem
	for _, p := range Validate(listing) {
		if p.Fatal {
			fatal = append(fatal, p)
		}
	}
	if len(fatal) > 0 {
		return &ValidationError{Problems: fatal}
	}
	return nil
}

// Validate reports every structural problem in the listing, fatal and not.
func Validate(listing *ResourceListing) []Problem {
	var problems []Problem
	seenResources := map[string]bool{}

	for _, entry := range listing.APIs {
		rctx := fmt.Sprintf("resource %q", entry.Name)
		if seenResources[entry.Name] {
			problems = append(problems, Problem{
				Message: fmt.Sprintf("duplicate resource name %q", entry.Name),
				Fatal:   true,
			})
		}
		seenResources[entry.Name] = true

		if entry.Declaration == nil {
			problems = append(problems, Problem{
				Context: rctx,
				Message: "missing api_declaration",
				Fatal:   true,
			})
			continue
		}
		problems = append(problems, validateDeclaration(rctx, entry.Declaration)...)
	}
	return problems
}

func validateDeclaration(rctx string, decl *Declaration) []Problem {
	var problems []Problem
	seenNicknames := map[string]bool{}

	for _, api := range decl.APIs {
		for _, op := range api.Operations {
			octx := fmt.Sprintf("%s, operation %q", rctx, op.Nickname)

			if op.Nickname == "" {
				problems = append(problems, Problem{Context: rctx, Message: "operation without nickname", Fatal: true})
			} else if seenNicknames[op.Nickname] {
				problems = append(problems, Problem{Context: rctx, Message: fmt.Sprintf("duplicate nickname %q", op.Nickname), Fatal: true})
			}
			seenNicknames[op.Nickname] = true

			if op.Method == "" && !op.IsWebsocket {
				problems = append(problems, Problem{Context: octx, Message: "operation without method", Fatal: true})
			}
			// Checked against the raw upgrade field too so unenriched
			// listings report this instead of failing enrichment.
			if (op.IsWebsocket || op.Upgrade == "websocket") && !strings.EqualFold(op.Method, "GET") {
				problems = append(problems, Problem{Context: octx, Message: "websocket operation must be GET", Fatal: true})
			}

			bodies := 0
			for _, param := range op.Parameters {
				if !KnownParamType(param.ParamType) {
					problems = append(problems, Problem{
						Context: octx,
						Message: fmt.Sprintf("parameter %q has unsupported paramType %q", param.Name, param.ParamType),
					})
				}
				if param.ParamType == ParamBody {
					bodies++
				}
				if ref := param.Ref; ref != "" && decl.Models[ref] == nil {
					problems = append(problems, Problem{
						Context: octx,
						Message: fmt.Sprintf("parameter %q references unknown model %q", param.Name, ref),
					})
				}
			}
			if bodies > 1 {
				problems = append(problems, Problem{Context: octx, Message: "more than one body parameter", Fatal: true})
			}

			if name := modelName(op.Type, op.Items); name != "" && decl.Models[name] == nil {
				problems = append(problems, Problem{
					Context: octx,
					Message: fmt.Sprintf("return type references unknown model %q", name),
				})
			}
		}
	}
	return problems
}

// modelName extracts the model a return declaration points at, if any.
func modelName(typ string, items *Property) string {
	if typ == "array" && items != nil {
		if items.Ref != "" {
			return items.Ref
		}
		typ = items.Type
	}
	if typ == "" || isPrimitiveName(typ) {
		return ""
	}
	return typ
}

func isPrimitiveName(t string) bool {
	switch t {
	case "void", "string", "integer", "int", "long", "number", "float",
		"double", "boolean", "byte", "date", "dateTime", "array", "File":
		return true
	}
	return false
}
