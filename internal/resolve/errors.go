package resolve

import (
	"fmt"

	"github.com/simvux/lumina/internal/ids"
)

// ImportErrorKind tags the four-way error taxonomy a path resolution can
// fail with. Callers recover the kind with errors.As and format it with
// source spans; the resolver itself never does that formatting.
type ImportErrorKind uint8

const (
	// ErrKindLibNotInstalled: a library-section prefix named an unknown library.
	ErrKindLibNotInstalled ImportErrorKind = iota
	// ErrKindNotFound: the identifier is not declared in any namespace.
	ErrKindNotFound
	// ErrKindModNotFound: the identifier was used as a module segment but
	// does not name a module (or a type, for the one-segment-left sugar).
	ErrKindModNotFound
	// ErrKindBadAccess: the identifier resolved but its visibility forbids
	// the origin module from seeing it.
	ErrKindBadAccess
)

// ImportError is the error value every resolver query returns instead of
// throwing. It implements error so callers that don't care about the kind
// can still log/wrap it normally.
type ImportError struct {
	Kind ImportErrorKind

	// ErrKindLibNotInstalled
	LibName string

	// ErrKindNotFound, ErrKindModNotFound
	Module ids.ModuleId
	Name   string

	// ErrKindBadAccess
	Visibility Visibility
	EntityKind string
}

func errLibNotInstalled(name string) *ImportError {
	return &ImportError{Kind: ErrKindLibNotInstalled, LibName: name}
}

func errNotFound(module ids.ModuleId, name string) *ImportError {
	return &ImportError{Kind: ErrKindNotFound, Module: module, Name: name}
}

func errModNotFound(module ids.ModuleId, name string) *ImportError {
	return &ImportError{Kind: ErrKindModNotFound, Module: module, Name: name}
}

func errBadAccess(vis Visibility, kind string, name string) *ImportError {
	return &ImportError{Kind: ErrKindBadAccess, Visibility: vis, EntityKind: kind, Name: name}
}

func (e *ImportError) Error() string {
	switch e.Kind {
	case ErrKindLibNotInstalled:
		return fmt.Sprintf("no library named %s is installed", e.LibName)
	case ErrKindNotFound:
		return fmt.Sprintf("no identifier named %s in %s", e.Name, e.Module)
	case ErrKindModNotFound:
		return fmt.Sprintf("%s has no module named %s", e.Module, e.Name)
	default:
		return fmt.Sprintf("there is a %s named %s but it's not public (%s)", e.EntityKind, e.Name, e.Visibility)
	}
}
