package resolve

import "github.com/simvux/lumina/internal/ids"

// Priority controls which of the three namespaces (functions, types,
// modules) is tried first when a bare identifier could be declared in more
// than one of them. Within a module's own tables it never changes *whether*
// an identifier resolves, only which binding wins when the same name is
// declared in two namespaces. Under PriorityModules a bare name is first
// looked up with ResolveImport, which also searches a Member's root, so a
// child module declared only there resolves under that priority alone.
type Priority uint8

const (
	PriorityFunctions Priority = iota
	PriorityTypes
	PriorityModules
)

// ModuleKind is either the root of a project (optionally nested under a
// parent project) or a member of some other root's project. The root walk
// from any Member always reaches a Root in finitely many steps.
type ModuleKind struct {
	IsMember bool
	Parent   *ids.ModuleId // Root.Parent, nil at the top of a project
	Root     ids.ModuleId  // Member.Root
}

// Namespace is the per-module table of declarations: one map per kind of
// entity, plus the ordered list of record/field candidates sharing an
// accessor name.
type Namespace struct {
	funcs        map[string]Mod[FuncRef]
	types        map[string]Mod[TypeRef]
	childModules map[string]Mod[ids.ModuleId]
	accessors    map[string][]Mod[RecordRef]

	kind ModuleKind
}

func newNamespace() *Namespace {
	return &Namespace{
		funcs:        make(map[string]Mod[FuncRef]),
		types:        make(map[string]Mod[TypeRef]),
		childModules: make(map[string]Mod[ids.ModuleId]),
		accessors:    make(map[string][]Mod[RecordRef]),
		kind:         ModuleKind{}, // defaults to a parentless Root, like ModuleKind::default()
	}
}

// tryNamespace probes the three namespaces in priority-dependent order and
// returns the first non-empty hit, still wrapped in its declared Mod so the
// caller can enforce visibility.
func (n *Namespace) tryNamespace(priority Priority, name string) (Mod[Entity], bool) {
	switch priority {
	case PriorityFunctions:
		if m, ok := n.tryFuncs(name); ok {
			return m, true
		}
		if m, ok := n.tryTypes(name); ok {
			return m, true
		}
		return n.tryChildModules(name)
	case PriorityTypes:
		if m, ok := n.tryTypes(name); ok {
			return m, true
		}
		if m, ok := n.tryFuncs(name); ok {
			return m, true
		}
		return n.tryChildModules(name)
	default: // PriorityModules
		if m, ok := n.tryChildModules(name); ok {
			return m, true
		}
		if m, ok := n.tryFuncs(name); ok {
			return m, true
		}
		return n.tryTypes(name)
	}
}

func (n *Namespace) tryFuncs(name string) (Mod[Entity], bool) {
	m, ok := n.funcs[name]
	if !ok {
		return Mod[Entity]{}, false
	}
	return MapMod(m, EntityOfFunc), true
}

func (n *Namespace) tryTypes(name string) (Mod[Entity], bool) {
	m, ok := n.types[name]
	if !ok {
		return Mod[Entity]{}, false
	}
	return MapMod(m, EntityOfType), true
}

func (n *Namespace) tryChildModules(name string) (Mod[Entity], bool) {
	m, ok := n.childModules[name]
	if !ok {
		return Mod[Entity]{}, false
	}
	return MapMod(m, EntityOfModule), true
}
