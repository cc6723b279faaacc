package resolve

import "github.com/simvux/lumina/internal/ids"

// isValidReachability implements `is_valid_reachability`: an entity is
// reachable from current iff its visibility is Public, or it is
// Project-scoped to a root that shares a project with current.
func (r *Resolver) isValidReachability(current ids.ModuleId, vis Visibility) bool {
	switch vis.Kind {
	case VisPublic:
		return true
	default:
		return r.rootModuleOf(current) == r.rootModuleOf(vis.Root)
	}
}

// rootModuleOf walks ModuleKind.Parent/Root chains up to the enclosing
// Root module. The namespace graph is a tree backbone, so this always
// terminates.
func (r *Resolver) rootModuleOf(of ids.ModuleId) ids.ModuleId {
	ns := r.namespace(of)
	if ns.kind.IsMember {
		return r.rootModuleOf(ns.kind.Root)
	}
	if ns.kind.Parent != nil {
		return r.rootModuleOf(*ns.kind.Parent)
	}
	return of
}
