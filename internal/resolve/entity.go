package resolve

import (
	"fmt"

	"github.com/simvux/lumina/internal/ids"
)

// Mod wraps any resolved key with the module that hosts it and the
// visibility under which it was declared. It mirrors the `pub(vis) key`
// shape every declaration in the namespace graph carries.
type Mod[K any] struct {
	Key        K
	Module     ids.ModuleId
	Visibility Visibility
}

// MapMod transforms the key of a Mod while keeping its module/visibility.
// Named as a free function since Go methods cannot introduce new type
// parameters.
func MapMod[K, O any](m Mod[K], f func(K) O) Mod[O] {
	return Mod[O]{Key: f(m.Key), Module: m.Module, Visibility: m.Visibility}
}

// VisibilityKind tags the two forms visibility can take.
type VisibilityKind uint8

const (
	// VisPublic makes an entity reachable from any module.
	VisPublic VisibilityKind = iota
	// VisProject makes an entity reachable only from modules that share
	// a project root with Root.
	VisProject
)

// Visibility is the sum of Public and Project(root): the two forms a
// declaration's reachability can take.
type Visibility struct {
	Kind VisibilityKind
	Root ids.ModuleId // only meaningful when Kind == VisProject
}

// Public constructs the always-reachable visibility.
func Public() Visibility { return Visibility{Kind: VisPublic} }

// ProjectOf constructs a visibility scoped to root's project.
func ProjectOf(root ids.ModuleId) Visibility { return Visibility{Kind: VisProject, Root: root} }

// FromPublicFlag mirrors `Visibility::from_public_flag`: declarations in the
// source carry a single `public` bool which this expands into the full
// Visibility sum.
func FromPublicFlag(module ids.ModuleId, public bool) Visibility {
	if public {
		return Public()
	}
	return ProjectOf(module)
}

func (v Visibility) String() string {
	switch v.Kind {
	case VisPublic:
		return "public"
	default:
		return fmt.Sprintf("project_of(%s)", v.Root)
	}
}

// FuncRefKind tags the four shapes a function-namespace entry can take.
type FuncRefKind uint8

const (
	FuncPlain FuncRefKind = iota
	FuncTraitMethod
	FuncSumVariant
	FuncValue
)

// FuncRef is a pointer into the function namespace: a plain function, a
// trait method slot, a sum variant constructor, or a promoted top-level
// value.
type FuncRef struct {
	Kind      FuncRefKind
	Func      ids.FuncId    // FuncPlain
	Trait     ids.TraitId   // FuncTraitMethod
	Method    ids.MethodId  // FuncTraitMethod
	Sum       ids.SumId     // FuncSumVariant
	Variant   ids.VariantId // FuncSumVariant
	Val       ids.ValId     // FuncValue
}

func PlainFunc(f ids.FuncId) FuncRef          { return FuncRef{Kind: FuncPlain, Func: f} }
func TraitMethod(t ids.TraitId, m ids.MethodId) FuncRef {
	return FuncRef{Kind: FuncTraitMethod, Trait: t, Method: m}
}
func SumVariant(s ids.SumId, v ids.VariantId) FuncRef {
	return FuncRef{Kind: FuncSumVariant, Sum: s, Variant: v}
}
func ValueRef(v ids.ValId) FuncRef { return FuncRef{Kind: FuncValue, Val: v} }

func (f FuncRef) String() string {
	switch f.Kind {
	case FuncPlain:
		return fmt.Sprintf("func(%d)", f.Func)
	case FuncTraitMethod:
		return fmt.Sprintf("%d:%d", f.Trait, f.Method)
	case FuncSumVariant:
		return fmt.Sprintf("%d:%d", f.Sum, f.Variant)
	default:
		return fmt.Sprintf("val(%d)", f.Val)
	}
}

// TypeRefKind tags what kind of declaration a TypeRef points at.
type TypeRefKind uint8

const (
	TypeRecord TypeRefKind = iota
	TypeSum
	TypeTrait
	TypeAlias
)

// TypeRef is an opaque handle to a type declaration. The Key field is the
// declaration's own id within its kind-specific table (record/sum/trait/
// alias); Kind disambiguates which table it indexes.
type TypeRef struct {
	Kind TypeRefKind
	Key  ids.TypeId
}

func (t TypeRef) String() string { return fmt.Sprintf("type(%d)", t.Key) }

// EntityKind tags the four shapes a fully resolved path can denote.
type EntityKind uint8

const (
	EntityModule EntityKind = iota
	EntityFunc
	EntityType
	EntityMember
)

// Entity is the general resolver output: a module, a function-namespace
// reference, a type, or `Type::name` syntactic sugar for a not-yet
// disambiguated method/variant access.
type Entity struct {
	Kind       EntityKind
	Module     ids.ModuleId // EntityModule
	Func       FuncRef      // EntityFunc
	Type       TypeRef      // EntityType, EntityMember
	MemberName string       // EntityMember
}

func EntityOfModule(m ids.ModuleId) Entity { return Entity{Kind: EntityModule, Module: m} }
func EntityOfFunc(f FuncRef) Entity        { return Entity{Kind: EntityFunc, Func: f} }
func EntityOfType(t TypeRef) Entity        { return Entity{Kind: EntityType, Type: t} }
func EntityOfMember(t TypeRef, name string) Entity {
	return Entity{Kind: EntityMember, Type: t, MemberName: name}
}

// Describe names the entity's kind for diagnostics, matching `Entity::describe`.
func (e Entity) Describe() string {
	switch e.Kind {
	case EntityModule:
		return "module"
	case EntityFunc:
		return "function"
	case EntityType:
		return "type"
	default:
		return "member"
	}
}

// RecordRef names a record field: the record it belongs to and the field's
// position within it. Used by the accessor table.
type RecordRef struct {
	Record ids.RecordId
	Field  ids.FieldId
}
