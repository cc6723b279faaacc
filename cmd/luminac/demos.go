package main

import (
	"github.com/simvux/lumina/internal/ids"
	"github.com/simvux/lumina/internal/mir"
	"github.com/simvux/lumina/internal/monotype"
	"github.com/simvux/lumina/internal/patlower"
	"github.com/simvux/lumina/internal/ssa"
)

// demo is one hard-coded match expression run through patlower in
// isolation, with its own fresh ssa.Builder.
type demo struct {
	name string
	run  func() *ssa.Builder
}

var i64 = monotype.Int(64, true)

func demos() []demo {
	return []demo{
		{name: "bool match", run: boolDemo},
		{name: "int range match", run: intRangeDemo},
		{name: "sum match", run: sumDemo},
	}
}

// constBody returns a LowerBody that ignores its arm's bindings and emits a
// distinct integer constant per label, so the printed SSA makes it obvious
// which arm produced which block.
func constBody(b *ssa.Builder, labels map[string]int64) patlower.LowerBody {
	return func(body mir.Expr, binds map[ids.BindingId]ssa.Value) (ssa.Value, monotype.Type) {
		label := body.(string)
		return b.Const(labels[label], i64), i64
	}
}

// boolDemo lowers `match flag { true -> 1, false -> 0 }`.
func boolDemo() *ssa.Builder {
	b := ssa.NewBuilder()
	scrutinee := b.Const(1, monotype.Bool())

	tailTrue, tailFalse := ids.TailId(1), ids.TailId(2)
	tree := &mir.Bools{
		Next: mir.NewBranching([]mir.BranchArm[bool]{
			{Key: true, Next: mir.End{Tail: mir.Reached(mir.PointTable{}, nil, tailTrue)}},
			{Key: false, Next: mir.End{Tail: mir.Reached(mir.PointTable{}, nil, tailFalse)}},
		}),
	}

	branches := map[ids.TailId]mir.Expr{tailTrue: "one", tailFalse: "zero"}
	lower := constBody(b, map[string]int64{"one": 1, "zero": 0})

	p := patlower.New(b, branches, lower)
	p.Run(scrutinee, tree)
	return b
}

// intRangeDemo lowers `match n { ..9 -> "low", 10 -> "ten", 11.. -> "high" }`
// over a signed 64-bit scrutinee.
func intRangeDemo() *ssa.Builder {
	b := ssa.NewBuilder()
	scrutinee := b.Const(10, i64)

	con := mir.ConstraintsFromBitsize(true, mir.Bitsize{Bits: 64})

	tailLow, tailTen, tailHigh := ids.TailId(1), ids.TailId(2), ids.TailId(3)
	tree := &mir.Ints{
		Bitsize: mir.Bitsize{Bits: 64},
		Signed:  true,
		Next: mir.NewBranching([]mir.BranchArm[mir.Range]{
			{Key: mir.Range{Con: con, Start: con.Min, End: 9}, Next: mir.End{Tail: mir.Reached(mir.PointTable{}, nil, tailLow)}},
			{Key: mir.Range{Con: con, Start: 10, End: 10}, Next: mir.End{Tail: mir.Reached(mir.PointTable{}, nil, tailTen)}},
			{Key: mir.Range{Con: con, Start: 11, End: con.Max}, Next: mir.End{Tail: mir.Reached(mir.PointTable{}, nil, tailHigh)}},
		}),
	}

	branches := map[ids.TailId]mir.Expr{tailLow: "low", tailTen: "ten", tailHigh: "high"}
	lower := constBody(b, map[string]int64{"low": -1, "ten": 10, "high": 1})

	p := patlower.New(b, branches, lower)
	p.Run(scrutinee, tree)
	return b
}

// sumDemo lowers a two-variant sum match (the shape Option<Int>'s Just/
// Nothing would take), exercising the tag-read-plus-jump-table path.
func sumDemo() *ssa.Builder {
	b := ssa.NewBuilder()

	variants := [][]monotype.Type{
		{},    // Nothing: no payload
		{i64}, // Just: one int64 payload
	}
	tagTy := monotype.Int(monotype.TagBits, false)
	dataTy := monotype.Int(monotype.LargestVariantSize(variants), false)
	sumTy := monotype.Type{
		Kind:     monotype.KindSum,
		Sum:      ids.SumId(1),
		Fields:   []monotype.Type{tagTy, dataTy},
		Variants: variants,
	}
	scrutinee := b.Const(1, sumTy)

	tailNothing, tailJust := ids.TailId(1), ids.TailId(2)
	tree := &mir.Sum{
		Sum: ids.SumId(1),
		Next: mir.NewBranching([]mir.BranchArm[ids.VariantId]{
			{Key: ids.VariantId(0), Next: mir.End{Tail: mir.Reached(mir.PointTable{}, nil, tailNothing)}},
			{Key: ids.VariantId(1), Next: mir.End{Tail: mir.Reached(mir.PointTable{}, nil, tailJust)}},
		}),
	}

	branches := map[ids.TailId]mir.Expr{tailNothing: "nothing", tailJust: "just"}
	lower := constBody(b, map[string]int64{"nothing": 0, "just": 1})

	p := patlower.New(b, branches, lower)
	p.Run(scrutinee, tree)
	return b
}
