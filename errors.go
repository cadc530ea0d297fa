package restbind

import (
	"fmt"
	"strings"
)

// MissingParameterError reports a required parameter absent from the
// supplied arguments. Binding fails before any network activity.
type MissingParameterError struct {
	Param     string
	Operation string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("missing required parameter %q for %q", e.Param, e.Operation)
}

// UnexpectedParametersError reports supplied argument names that no
// declared parameter consumed. The call is rejected whole.
type UnexpectedParametersError struct {
	Operation string
	Params    []string // sorted
}

func (e *UnexpectedParametersError) Error() string {
	return fmt.Sprintf("%q does not have parameters %s", e.Operation, strings.Join(e.Params, ", "))
}

// UnsupportedParamTypeError reports a declaration defect: a paramType the
// binder does not understand.
type UnsupportedParamTypeError struct {
	ParamType string
	Param     string
	Operation string
}

func (e *UnsupportedParamTypeError) Error() string {
	return fmt.Sprintf("unsupported paramType %q on parameter %q of %q", e.ParamType, e.Param, e.Operation)
}

// UnknownResourceError reports a lookup of a resource the API does not have.
type UnknownResourceError struct {
	Name string
}

func (e *UnknownResourceError) Error() string {
	return fmt.Sprintf("api has no resource %q", e.Name)
}

// UnknownOperationError reports a lookup of an operation the resource does
// not have.
type UnknownOperationError struct {
	Resource string
	Name     string
}

func (e *UnknownOperationError) Error() string {
	return fmt.Sprintf("resource %q has no operation %q", e.Resource, e.Name)
}

// DuplicateResourceError fails construction when two listing entries share
// a name.
type DuplicateResourceError struct {
	Name string
}

func (e *DuplicateResourceError) Error() string {
	return fmt.Sprintf("duplicate resource name %q", e.Name)
}

// DuplicateNicknameError fails construction when two operations of one
// resource share a nickname.
type DuplicateNicknameError struct {
	Resource string
	Nickname string
}

func (e *DuplicateNicknameError) Error() string {
	return fmt.Sprintf("resource %q declares nickname %q more than once", e.Resource, e.Nickname)
}

// MultipleBodyParamsError fails construction when an operation declares
// more than one body parameter.
type MultipleBodyParamsError struct {
	Resource  string
	Operation string
}

func (e *MultipleBodyParamsError) Error() string {
	return fmt.Sprintf("operation %q of resource %q declares more than one body parameter", e.Operation, e.Resource)
}
