package patlower

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/simvux/lumina/internal/ids"
	"github.com/simvux/lumina/internal/mir"
	"github.com/simvux/lumina/internal/monotype"
	"github.com/simvux/lumina/internal/ssa"
)

var i64 = monotype.Int(64, true)

// countingLower returns a LowerBody that records how many times each body
// label was lowered, so tests can assert the "exactly once" invariant.
func countingLower(t *testing.T, counts map[string]int) LowerBody {
	return func(body mir.Expr, binds map[ids.BindingId]ssa.Value) (ssa.Value, monotype.Type) {
		label := body.(string)
		counts[label]++
		_ = binds
		return ssa.Value(-1), i64 // the label itself is what tests inspect; the Value is a placeholder
	}
}

func TestBoolMatchEmitsOneSelectAndLowersEachBodyOnce(t *testing.T) {
	b := ssa.NewBuilder()
	scrutinee := b.Const(1, monotype.Bool())

	tailTrue := ids.TailId(1)
	tailFalse := ids.TailId(2)

	tree := &mir.Bools{
		Next: mir.NewBranching([]mir.BranchArm[bool]{
			{Key: true, Next: mir.End{Tail: mir.Reached(mir.PointTable{}, nil, tailTrue)}},
			{Key: false, Next: mir.End{Tail: mir.Reached(mir.PointTable{}, nil, tailFalse)}},
		}),
	}

	branches := map[ids.TailId]mir.Expr{tailTrue: "e1", tailFalse: "e2"}
	counts := map[string]int{}

	entry := b.CurrentBlock()
	p := New(b, branches, countingLower(t, counts))
	p.Run(scrutinee, tree)

	assert.Equal(t, 1, counts["e1"])
	assert.Equal(t, 1, counts["e2"])

	term := b.Terminator(entry)
	assert.Equal(t, ssa.TermSelect, term.Kind, "the bool test terminates entry with a single select")
}

func TestIntMatchEmitsRangeGuards(t *testing.T) {
	b := ssa.NewBuilder()
	scrutinee := b.Const(5, i64)

	constraints := mirConstraints(0, 1<<62)

	tailA := ids.TailId(1)
	tailB := ids.TailId(2)
	tailC := ids.TailId(3)

	tree := &mir.Ints{
		Bitsize: mir.Bitsize{Bits: 64},
		Signed:  true,
		Next: mir.NewBranching([]mir.BranchArm[mir.Range]{
			{Key: mir.Range{Con: constraints, Start: 1, End: 9}, Next: mir.End{Tail: mir.Reached(mir.PointTable{}, nil, tailA)}},
			{Key: mir.Range{Con: constraints, Start: 10, End: 10}, Next: mir.End{Tail: mir.Reached(mir.PointTable{}, nil, tailB)}},
			{Key: mir.Range{Con: constraints, Start: 11, End: constraints.Max}, Next: mir.End{Tail: mir.Reached(mir.PointTable{}, nil, tailC)}},
		}),
	}

	branches := map[ids.TailId]mir.Expr{tailA: "A", tailB: "B", tailC: "C"}
	counts := map[string]int{}

	p := New(b, branches, countingLower(t, counts))
	p.Run(scrutinee, tree)

	assert.Equal(t, 1, counts["A"])
	assert.Equal(t, 1, counts["B"])
	assert.Equal(t, 1, counts["C"])

	var eqCount, ltiCount, gtiCount, bitAndCount int
	for blk := 0; blk < b.NumBlocks(); blk++ {
		for _, v := range b.BlockInstrs(ssa.Block(blk)) {
			switch b.Instr(v).Op {
			case ssa.OpEq:
				eqCount++
			case ssa.OpLti:
				ltiCount++
			case ssa.OpGti:
				gtiCount++
			case ssa.OpBitAnd:
				bitAndCount++
			}
		}
	}

	assert.Equal(t, 1, eqCount, "singleton arm [10,10] emits one equality check")
	assert.Equal(t, 1, ltiCount, "the [1,9] arm emits one upper-bound check")
	assert.Equal(t, 1, gtiCount, "the [1,9] arm's lower bound is non-minimal, so a lower-bound check is also emitted")
	assert.Equal(t, 1, bitAndCount, "the two guards for [1,9] are fused with bit_and")
}

func mirConstraints(min, max int64) mir.Constraints {
	return mir.Constraints{Min: min, Max: max}
}

func TestListMatchExtractsHeadAndTailAtCorrectOffsets(t *testing.T) {
	b := ssa.NewBuilder()
	elemTy := i64
	listTy := monotype.Record([]monotype.Type{elemTy}) // stand-in list representation

	reg := monotype.NewRegistry()
	reg.RegisterListImpl(elemTy, monotype.Impl{ImplId: ids.MethodId(7)})

	scrutinee := b.Const(0, listTy)

	tailCons := ids.TailId(1)
	tailNil := ids.TailId(2)

	tree := &mir.List{
		Elem: mir.ElemType{},
		Next: mir.NewBranching([]mir.BranchArm[mir.ListTag]{
			{Key: mir.ListCons, Next: mir.End{Tail: mir.Reached(mir.PointTable{}, nil, tailCons)}},
			{Key: mir.ListNil, Next: mir.End{Tail: mir.Reached(mir.PointTable{}, nil, tailNil)}},
		}),
	}

	branches := map[ids.TailId]mir.Expr{tailCons: "cons", tailNil: "nil"}
	counts := map[string]int{}

	p := New(b, branches, countingLower(t, counts), WithRegistry(reg))
	p.Run(scrutinee, tree)

	assert.Equal(t, 1, counts["cons"])
	assert.Equal(t, 1, counts["nil"])

	var sumFieldOffsets []int64
	for blk := 0; blk < b.NumBlocks(); blk++ {
		for _, v := range b.BlockInstrs(ssa.Block(blk)) {
			if b.Instr(v).Op == ssa.OpSumField {
				sumFieldOffsets = append(sumFieldOffsets, b.Instr(v).Imm)
			}
		}
	}

	assert.ElementsMatch(t, []int64{0, int64(monotype.SizeOf(elemTy))}, sumFieldOffsets)
}

func TestSharedTailLoweredExactlyOnceAcrossMultiplePredecessors(t *testing.T) {
	b := ssa.NewBuilder()
	scrutinee := b.Const(1, monotype.Bool())

	shared := ids.TailId(1)
	other := ids.TailId(2)

	// Two bool branches both reach the same shared tail.
	tree := &mir.Bools{
		Next: mir.NewBranching([]mir.BranchArm[bool]{
			{Key: true, Next: mir.End{Tail: mir.Reached(mir.PointTable{}, nil, shared)}},
			{Key: false, Next: mir.End{Tail: mir.Reached(mir.PointTable{}, nil, shared)}},
		}),
	}
	_ = other

	branches := map[ids.TailId]mir.Expr{shared: "body"}
	counts := map[string]int{}

	p := New(b, branches, countingLower(t, counts), WithPredecessorCounts(map[ids.TailId]int{shared: 2}))
	p.Run(scrutinee, tree)

	assert.Equal(t, 1, counts["body"], "a tail reached from two decision paths still lowers its body exactly once")
}
