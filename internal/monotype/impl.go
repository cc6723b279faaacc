package monotype

import "github.com/simvux/lumina/internal/ids"

// Listable is the well-known trait id the list pattern lowering looks up to
// find a type's split implementation. It is not discovered from source; the
// collaborator this package stands in for would assign it once during
// prelude setup.
const Listable ids.TraitId = 1

// listSplitMethod is the single method every Listable implementation
// supplies.
const listSplitMethod ids.MethodId = 1

// Impl is a monomorphised trait implementation: the method table entry the
// lowerer calls through, and the type substitution that instantiated it.
type Impl struct {
	ImplId  ids.MethodId
	TypeMap map[ids.TypeId]Type
}

// Registry is the minimal "type system" collaborator: it answers
// find_implementation queries against a table populated ahead of time by the
// (out-of-scope) trait-resolution pass.
type Registry struct {
	impls map[implKey]Impl
}

type implKey struct {
	trait    ids.TraitId
	elemBits int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{impls: make(map[implKey]Impl)}
}

// RegisterListImpl installs the Listable implementation for a list whose
// element type is elem, the split method producing Just(x, xs) | Nothing.
// Entries are keyed by SizeOf(elem), so element types of equal bit width
// share one entry and a later registration replaces an earlier one.
func (r *Registry) RegisterListImpl(elem Type, impl Impl) {
	r.impls[implKey{trait: Listable, elemBits: SizeOf(elem)}] = impl
}

// FindImplementation looks up the implementation of trait for a list whose
// element type is traitParams[0], mirroring the type system's
// find_implementation(trait, trait_params, implementor) -> (impl_id,
// type_map). implementor is accepted for interface parity with the original
// but is not consulted; the lookup uses only the bit width of
// traitParams[0], the same key RegisterListImpl stores under.
func (r *Registry) FindImplementation(trait ids.TraitId, traitParams []Type, implementor Type) (Impl, bool) {
	if len(traitParams) != 1 {
		return Impl{}, false
	}
	impl, ok := r.impls[implKey{trait: trait, elemBits: SizeOf(traitParams[0])}]
	return impl, ok
}

// ListSplitMethod is the method id RegisterListImpl's Impl.ImplId is expected
// to equal; callers assembling an Impl by hand can use it directly.
func ListSplitMethod() ids.MethodId { return listSplitMethod }
