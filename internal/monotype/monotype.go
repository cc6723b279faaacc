// Package monotype holds monomorphised type handles and the handful of
// queries the pattern lowerer needs against them: size-of, field-offset, and
// trait-implementation lookup. It performs no monomorphisation itself — that
// belongs to the type checker, an external collaborator this package only
// stands in for.
package monotype

import "github.com/simvux/lumina/internal/ids"

// Kind tags the shapes a monomorphised type can take.
type Kind uint8

const (
	KindInt Kind = iota
	KindBool
	KindRecord
	KindTuple
	KindSum
	KindPointer
	KindOpaque
)

// Type is a monomorphised type handle, a tagged struct over the shapes the
// lowerer ever needs to size or offset into.
type Type struct {
	Kind Kind

	Bits   int  // KindInt
	Signed bool // KindInt

	Fields []Type // KindRecord, KindTuple: declaration order

	Sum      ids.SumId
	Variants [][]Type // KindSum: this instantiation's per-variant payload types, in VariantId order

	Of *Type // KindPointer
}

func Int(bits int, signed bool) Type         { return Type{Kind: KindInt, Bits: bits, Signed: signed} }
func Bool() Type                             { return Type{Kind: KindBool, Bits: 1} }
func Record(fields []Type) Type              { return Type{Kind: KindRecord, Fields: fields} }
func Tuple(elems []Type) Type                { return Type{Kind: KindTuple, Fields: elems} }
func Pointer(of Type) Type                   { return Type{Kind: KindPointer, Of: &of} }
func Opaque() Type                           { return Type{Kind: KindOpaque} }
func Sum(sum ids.SumId, variants [][]Type) Type {
	return Type{Kind: KindSum, Sum: sum, Variants: variants}
}

// SizeOf returns a type's size in bits. Records and tuples sum their field
// sizes; this is deliberately simplistic (no alignment padding), matching
// what the lowerer needs to compute sum-variant payload offsets and nothing
// more.
func SizeOf(t Type) int {
	switch t.Kind {
	case KindInt:
		return t.Bits
	case KindBool:
		return 1
	case KindRecord, KindTuple:
		total := 0
		for _, f := range t.Fields {
			total += SizeOf(f)
		}
		return total
	case KindPointer:
		return 64
	case KindSum:
		return TagBits + LargestVariantSize(t.Variants)
	default:
		return 64 // opaque/unsized-from-here-on values are passed behind a pointer
	}
}

// TagBits is the width of a sum type's discriminant field, field 0 of its
// lowered record representation.
const TagBits = 8

// FieldOffset returns the bit offset of the field at index i within a record
// or tuple, i.e. the sum of the sizes of every preceding field.
func FieldOffset(t Type, i int) int {
	offset := 0
	for j := 0; j < i; j++ {
		offset += SizeOf(t.Fields[j])
	}
	return offset
}

// LargestVariantSize returns the bit width of a sum type's largest variant
// payload, the size a SumDataCast must be wide enough to hold.
func LargestVariantSize(variantParams [][]Type) int {
	max := 0
	for _, params := range variantParams {
		total := 0
		for _, p := range params {
			total += SizeOf(p)
		}
		if total > max {
			max = total
		}
	}
	return max
}
