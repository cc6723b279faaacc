package resolve

import "github.com/simvux/lumina/internal/ids"

// resolve implements the top-level `(from, namespace, path, ignore_vis)`
// algorithm from spec §4.1: classify the path's prefix, walk it from the
// resulting start module, and fall back to the prelude on failure.
func (r *Resolver) resolve(from ids.ModuleId, namespace Priority, path []string, ignoreVis bool) (Mod[Entity], error) {
	if len(path) == 0 {
		return Mod[Entity]{Key: EntityOfModule(from), Module: from, Visibility: Public()}, nil
	}

	// Absolute prelude paths suppress visibility errors so the standard
	// library can call private lang-items directly.
	if len(path) >= 2 && path[0] == "std" && path[1] == "prelude" {
		ignoreVis = true
	}

	startAt := from
	rest := path

	if libs, ok := r.libs[path[0]]; ok {
		lname := ""
		if len(path) > 1 {
			lname = path[1]
		}
		rest = path[2:]
		module, ok := libs[lname]
		if !ok {
			return Mod[Entity]{}, errLibNotInstalled(lname)
		}
		startAt = module
	} else if path[0] == "project" {
		rest = path[1:]
		startAt = r.project
	}

	entity, err := r.resolveIn(from, namespace, startAt, rest, ignoreVis)
	if err == nil {
		return entity, nil
	}

	if ie, ok := err.(*ImportError); ok {
		if ie.Kind == ErrKindBadAccess || ie.Kind == ErrKindLibNotInstalled {
			return Mod[Entity]{}, err
		}
	}

	if fallback, ferr := r.resolveIn(from, namespace, ids.PRELUDE, rest, ignoreVis); ferr == nil {
		return fallback, nil
	}
	return Mod[Entity]{}, err
}

// resolveIn recurses over path within a fixed module, as specified in the
// "Walk" subsection of §4.1.
func (r *Resolver) resolveIn(origin ids.ModuleId, namespace Priority, module ids.ModuleId, path []string, ignoreVis bool) (Mod[Entity], error) {
	var entity Mod[Entity]

	switch len(path) {
	case 0:
		entity = Mod[Entity]{Key: EntityOfModule(module), Module: module, Visibility: Public()}

	case 1:
		name := path[0]
		ns := r.namespace(module)
		if namespace == PriorityModules {
			if m, ok := r.ResolveImport(module, name); ok {
				entity = MapMod(m, EntityOfModule)
				break
			}
		}
		m, ok := ns.tryNamespace(namespace, name)
		if !ok {
			return Mod[Entity]{}, errNotFound(module, name)
		}
		entity = m

	default:
		x, xs := path[0], path[1:]
		if imported, ok := r.ResolveImport(module, x); ok {
			if !ignoreVis && !r.isValidReachability(origin, imported.Visibility) {
				return Mod[Entity]{}, errBadAccess(imported.Visibility, "module", x)
			}
			return r.resolveIn(origin, namespace, imported.Key, xs, ignoreVis)
		}

		// No module of this name: if exactly one segment remains, `x`
		// might still name a type, with `xs[0]` a method/variant suffix.
		if len(xs) == 1 {
			ns := r.namespace(module)
			m, ok := ns.tryTypes(x)
			if !ok {
				return Mod[Entity]{}, errModNotFound(module, x)
			}
			if m.Key.Kind != EntityType {
				return Mod[Entity]{}, errModNotFound(module, x)
			}
			entity = Mod[Entity]{
				Key:        EntityOfMember(m.Key.Type, xs[0]),
				Module:     m.Module,
				Visibility: m.Visibility,
			}
			break
		}
		return Mod[Entity]{}, errModNotFound(module, x)
	}

	if !ignoreVis && !r.isValidReachability(origin, entity.Visibility) {
		last := path[len(path)-1]
		return Mod[Entity]{}, errBadAccess(entity.Visibility, entity.Key.Describe(), last)
	}

	return entity, nil
}
