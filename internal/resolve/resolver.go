// Package resolve implements the module/namespace lookup engine: it turns a
// syntactic dotted path plus an origin module into a fully-qualified Entity,
// enforcing the visibility and library-scoping rules of the language.
//
// A Resolver owns every Namespace as a flat, append-only arena keyed by
// ids.ModuleId. Declaration is append-only and assumed to happen in source
// order; resolution is read-only and deterministic for a fixed set of
// declarations.
package resolve

import "github.com/simvux/lumina/internal/ids"

// Resolver is the directed graph of namespaces described in spec §2: one
// per source module, plus the fixed library-section registry.
type Resolver struct {
	modules []*Namespace
	project ids.ModuleId
	libs    map[string]map[string]ids.ModuleId
}

// librarySections is the fixed set of absolute-path roots a Lumina source
// path may address.
var librarySections = [...]string{"std", "ext", "prelude"}

// New creates an empty Resolver with the prelude module pre-allocated at
// ids.PRELUDE and the three library sections ready to receive entries.
func New() *Resolver {
	r := &Resolver{
		libs: make(map[string]map[string]ids.ModuleId, len(librarySections)),
	}
	for _, section := range librarySections {
		r.libs[section] = make(map[string]ids.ModuleId)
	}
	// ids.PRELUDE must land at index 0; allocate it as a parentless root.
	preludeIdx := r.push(newNamespace())
	if preludeIdx != ids.PRELUDE {
		panic("resolve: prelude module must be the first allocated namespace")
	}
	return r
}

func (r *Resolver) push(ns *Namespace) ids.ModuleId {
	r.modules = append(r.modules, ns)
	return ids.ModuleId(len(r.modules) - 1)
}

func (r *Resolver) namespace(m ids.ModuleId) *Namespace {
	return r.modules[m]
}

// SetProject marks m as the resolver's project root, the destination of the
// "project" path keyword.
func (r *Resolver) SetProject(m ids.ModuleId) { r.project = m }

// NewRootModule allocates a new project-root module, optionally nested
// under a parent project.
func (r *Resolver) NewRootModule(parent *ids.ModuleId) ids.ModuleId {
	ns := newNamespace()
	ns.kind = ModuleKind{Parent: parent}
	return r.push(ns)
}

// NewMemberModule allocates a new module that belongs to root's project.
func (r *Resolver) NewMemberModule(root ids.ModuleId) ids.ModuleId {
	ns := newNamespace()
	ns.kind = ModuleKind{IsMember: true, Root: root}
	return r.push(ns)
}

// NewLib allocates a new module and registers it under the given library
// section (one of "std", "ext", "prelude") with the given library name.
func (r *Resolver) NewLib(section, name string) ids.ModuleId {
	m := r.push(newNamespace())
	libs, ok := r.libs[section]
	if !ok {
		panic("resolve: unknown library section " + section)
	}
	libs[name] = m
	return m
}

// DeclareFunc inserts a function-namespace entity into module's namespace
// and returns the previous binding at that name, if any — the caller
// treats a present return as a duplicate-declaration diagnostic. This is
// `declare` from spec §4.1, specialised to the function namespace since Go
// methods can't dispatch on the entity's static type the way the original's
// EntityT trait does.
func (r *Resolver) DeclareFunc(module ids.ModuleId, vis Visibility, name string, dstModule ids.ModuleId, entity FuncRef) (Mod[FuncRef], bool) {
	ns := r.namespace(module)
	prev, had := ns.funcs[name]
	ns.funcs[name] = Mod[FuncRef]{Key: entity, Module: dstModule, Visibility: vis}
	return prev, had
}

// DeclareType is DeclareFunc's counterpart for the type namespace.
func (r *Resolver) DeclareType(module ids.ModuleId, vis Visibility, name string, dstModule ids.ModuleId, entity TypeRef) (Mod[TypeRef], bool) {
	ns := r.namespace(module)
	prev, had := ns.types[name]
	ns.types[name] = Mod[TypeRef]{Key: entity, Module: dstModule, Visibility: vis}
	return prev, had
}

// DeclareAccessor appends a record/field candidate to the per-module
// accessors list for name. Duplicates (two records sharing a field name)
// are allowed; type inference disambiguates later via ResolveAccessor.
func (r *Resolver) DeclareAccessor(module ids.ModuleId, vis Visibility, name string, record ids.RecordId, field ids.FieldId) {
	ns := r.namespace(module)
	m := Mod[RecordRef]{Key: RecordRef{Record: record, Field: field}, Module: module, Visibility: vis}
	ns.accessors[name] = append(ns.accessors[name], m)
}

// DeclareModuleLink adds a named child/import edge from module to dst.
func (r *Resolver) DeclareModuleLink(module ids.ModuleId, vis Visibility, name string, dst ids.ModuleId) {
	ns := r.namespace(module)
	ns.childModules[name] = Mod[ids.ModuleId]{Key: dst, Module: module, Visibility: vis}
}

// ResolveFunc resolves path from module `from`, prioritising the function
// namespace on any bare identifier.
func (r *Resolver) ResolveFunc(from ids.ModuleId, path []string) (Mod[Entity], error) {
	return r.resolve(from, PriorityFunctions, path, false)
}

// ResolveType resolves path from module `from`, prioritising the type
// namespace on any bare identifier.
func (r *Resolver) ResolveType(from ids.ModuleId, path []string) (Mod[Entity], error) {
	return r.resolve(from, PriorityTypes, path, false)
}

// ResolveModule resolves path from module `from`, prioritising the
// module/imports namespace on any bare identifier.
func (r *Resolver) ResolveModule(from ids.ModuleId, path []string) (Mod[Entity], error) {
	return r.resolve(from, PriorityModules, path, false)
}

// ResolveImport looks up a child-module name directly, recursing into the
// Member's root if the name isn't declared locally.
func (r *Resolver) ResolveImport(from ids.ModuleId, name string) (Mod[ids.ModuleId], bool) {
	ns := r.namespace(from)
	if m, ok := ns.childModules[name]; ok {
		return m, true
	}
	if ns.kind.IsMember {
		return r.ResolveImport(ns.kind.Root, name)
	}
	return Mod[ids.ModuleId]{}, false
}

// ResolveLangitem resolves names as if from the project root with
// visibility checks suppressed, the hook the standard library uses to call
// private compiler-known helpers.
func (r *Resolver) ResolveLangitem(names []string) (Mod[Entity], error) {
	return r.resolve(r.project, PriorityFunctions, names, true)
}

// ResolveEntityIn resolves a single bare name directly inside module,
// without prefix classification or prelude fallback. This is the entry
// point callers use once they already know the target module (for example,
// after resolving a type, to look up one of its methods).
func (r *Resolver) ResolveEntityIn(origin, module ids.ModuleId, name string, ignoreVis bool) (Mod[Entity], error) {
	return r.resolveIn(origin, PriorityTypes, module, []string{name}, ignoreVis)
}

// ResolveAccessor returns every record/field candidate declared under name
// in module, for the type checker to disambiguate.
func (r *Resolver) ResolveAccessor(module ids.ModuleId, name string) []Mod[RecordRef] {
	return r.namespace(module).accessors[name]
}

// ToFieldLookup dumps every module's accessor table in one pass, the bulk
// read the type checker uses to build its ambiguity-resolution table
// instead of calling ResolveAccessor per field occurrence.
func (r *Resolver) ToFieldLookup() map[ids.ModuleId]map[string][]Mod[RecordRef] {
	out := make(map[ids.ModuleId]map[string][]Mod[RecordRef], len(r.modules))
	for i, ns := range r.modules {
		m := make(map[string][]Mod[RecordRef], len(ns.accessors))
		for name, candidates := range ns.accessors {
			cp := make([]Mod[RecordRef], len(candidates))
			copy(cp, candidates)
			m[name] = cp
		}
		out[ids.ModuleId(i)] = m
	}
	return out
}

// LibShouldBeIncluded checks whether path addresses an as-yet-uninstalled
// standard library. Standard libraries don't have to be declared as
// dependencies; they're lazily loaded the first time something imports
// them. Returns the library name and the remaining path segments.
func (r *Resolver) LibShouldBeIncluded(path []string) (string, []string, bool) {
	if len(path) == 0 || path[0] != "std" {
		return "", nil, false
	}
	if len(path) < 2 {
		return "", nil, false
	}
	std := r.libs["std"]
	if _, installed := std[path[1]]; installed {
		return "", nil, false
	}
	return path[1], path[2:], true
}
