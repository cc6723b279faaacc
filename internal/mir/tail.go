package mir

import "github.com/simvux/lumina/internal/ids"

// BindPoint is one entry of a PointTable: the binding this match arm
// introduces, and the depth into the lowerer's value map (`PatLower.map`)
// the bound value is found at.
type BindPoint struct {
	Bind  ids.BindingId
	Depth int
}

// PointTable lists every binding a reached tail introduces, in declaration
// order, as (BindingId, depth) pairs.
type PointTable struct {
	Binds []BindPoint
}

// TreeTailKind tags the three shapes a decision-tree leaf can take.
type TreeTailKind uint8

const (
	// TailPoison marks a placeholder left by an earlier type error; it is
	// never reached by a well-typed match and lowering emits nothing for it.
	TailPoison TreeTailKind = iota
	// TailUnreached marks dead code the exhaustiveness checker proved
	// impossible to reach; lowering emits nothing for it either.
	TailUnreached
	// TailReached is a live arm: it has bindings, possibly-excess unused
	// bindings, and a body identified by TailId.
	TailReached
)

// TreeTail is a decision-tree leaf: Poison, Unreached(excess), or
// Reached(table, excess, tailId).
type TreeTail struct {
	Kind TreeTailKind

	// TailUnreached, TailReached
	Excess []ids.BindingId

	// TailReached
	Table PointTable
	Tail  ids.TailId
}

func Poison() TreeTail { return TreeTail{Kind: TailPoison} }

func Unreached(excess []ids.BindingId) TreeTail {
	return TreeTail{Kind: TailUnreached, Excess: excess}
}

func Reached(table PointTable, excess []ids.BindingId, tail ids.TailId) TreeTail {
	return TreeTail{Kind: TailReached, Table: table, Excess: excess, Tail: tail}
}

// sameTailData reports whether two tails are interchangeable for the
// purpose of adjacent-arm coalescing in the range merger: same kind, same
// tail identity/table for Reached, same excess length for Reached, equal
// excess lists for Unreached.
func sameTailData(a, b TreeTail) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case TailReached:
		if a.Tail != b.Tail || len(a.Table.Binds) != len(b.Table.Binds) {
			return false
		}
		for i := range a.Table.Binds {
			if a.Table.Binds[i] != b.Table.Binds[i] {
				return false
			}
		}
		return len(a.Excess) == len(b.Excess)
	case TailUnreached:
		if len(a.Excess) != len(b.Excess) {
			return false
		}
		for i := range a.Excess {
			if a.Excess[i] != b.Excess[i] {
				return false
			}
		}
		return true
	default: // TailPoison
		return true
	}
}
