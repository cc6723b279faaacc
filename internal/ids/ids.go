// Package ids defines the opaque stable identities shared across the
// resolver and pattern lowerer. They are plain integer handles into arenas
// owned elsewhere (module tables, function tables, SSA block lists); none of
// them carry behaviour of their own.
package ids

import "fmt"

// ModuleId is the stable identity of a module (one per source file's
// declared namespace, or a synthesised library/prelude root).
type ModuleId int32

// PRELUDE is the distinguished module every unqualified lookup falls back
// to when the origin-rooted resolution fails.
const PRELUDE ModuleId = 0

func (m ModuleId) String() string { return fmt.Sprintf("module(%d)", int32(m)) }

// FuncId identifies a plain function declaration.
type FuncId int32

func (f FuncId) String() string { return fmt.Sprintf("func(%d)", int32(f)) }

// TypeId identifies a type declaration (record, sum, trait, or alias).
type TypeId int32

// RecordId identifies a record type declaration.
type RecordId int32

// FieldId identifies a field position within a record.
type FieldId int32

// SumId identifies a sum (tagged union) type declaration.
type SumId int32

// VariantId identifies a constructor of a sum type, in declaration order.
type VariantId int32

func (v VariantId) Int() int { return int(v) }

// TraitId identifies a trait declaration.
type TraitId int32

// MethodId identifies a method slot within a trait.
type MethodId int32

func (m MethodId) String() string { return fmt.Sprintf("method(%d)", int32(m)) }

// ValId identifies a top-level value (a zero-argument binding promoted to
// the function namespace).
type ValId int32

// BindingId identifies a pattern-bound local name within a single match arm.
type BindingId int32

// TailId identifies a leaf of a decision tree (a `key::DecisionTreeTail` in
// the original implementation). Multiple decision paths may share a TailId;
// the lowerer is responsible for emitting its body exactly once.
type TailId int32
