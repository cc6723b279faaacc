// Package patlower lowers an already-built mir.DecTree into an SSA control
// flow graph. It performs no type checking and trusts the tree is
// well-formed: sum branches sorted and contiguous, bool branches exactly
// two, string TakeExcess only last. A malformed tree panics rather than
// returning an error, matching the rest of this module's treatment of
// pattern-lowerer faults as internal compiler errors rather than user-facing
// ones.
package patlower

import (
	"fmt"

	"github.com/simvux/lumina/internal/ids"
	"github.com/simvux/lumina/internal/mir"
	"github.com/simvux/lumina/internal/monotype"
	"github.com/simvux/lumina/internal/ssa"
)

// LowerBody turns a reached tail's opaque body expression into a value, once
// every binding the tail's PointTable names is present in bindmap. Supplied
// by the caller, since the inductive Expr grammar a body is written in
// belongs to the surrounding MIR, an external collaborator.
type LowerBody func(body mir.Expr, bindmap map[ids.BindingId]ssa.Value) (ssa.Value, monotype.Type)

// Option configures a PatLower at construction time.
type Option func(*PatLower)

// WithPredecessorCounts supplies, for each tail a caller knows is reachable
// from more than one decision path, how many times it will be reached
// before its body may be lowered. Tails absent from the map are assumed to
// have exactly one predecessor.
func WithPredecessorCounts(counts map[ids.TailId]int) Option {
	return func(p *PatLower) { p.predecessorCounts = counts }
}

// WithRegistry supplies the trait-implementation registry list pattern
// lowering consults to find a type's Listable::split implementation.
func WithRegistry(reg *monotype.Registry) Option {
	return func(p *PatLower) { p.registry = reg }
}

// PatLower holds the state of one decision-tree-to-SSA lowering. A new one
// is constructed per match expression; it borrows the function's SSA
// builder for the duration of the lowering and is discarded afterward.
type PatLower struct {
	builder  *ssa.Builder
	registry *monotype.Registry
	lower    LowerBody

	branches          map[ids.TailId]mir.Expr
	predecessorCounts map[ids.TailId]int

	tailBlocks      map[ids.TailId]ssa.Block
	tailBlockParams map[ids.TailId][]ssa.Value
	seen            map[ids.TailId]int

	// continuationBlock receives the final match value as its first block
	// parameter when more than one branch exists.
	continuationBlock *ssa.Block
	continuationParam ssa.Value
	// continuationValue is the fast path for matches where every scrutinee
	// had exactly one branch: no join block is ever allocated.
	continuationValue *ssa.Value
	// canSkipContinuation starts true and is cleared the first time a test
	// with more than one live arm is emitted (bool, string, list, or a
	// multi-arm int/sum test).
	canSkipContinuation bool

	// constructors is a stack of queues of pending child values; each
	// destructure of a tuple/record/sum/list pushes one queue.
	constructors [][]ssa.Value
	// valueMap is the ordered list of values seen at each depth during the
	// walk; PointTable.Binds references values by these indices.
	valueMap []ssa.Value
}

// New builds a PatLower that emits into builder. branches supplies each
// reached tail's body expression, looked up by TailId as the walk reaches
// it.
func New(builder *ssa.Builder, branches map[ids.TailId]mir.Expr, lower LowerBody, opts ...Option) *PatLower {
	p := &PatLower{
		builder:             builder,
		lower:               lower,
		branches:            branches,
		predecessorCounts:   map[ids.TailId]int{},
		tailBlocks:          map[ids.TailId]ssa.Block{},
		tailBlockParams:     map[ids.TailId][]ssa.Value{},
		seen:                map[ids.TailId]int{},
		canSkipContinuation: true,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run lowers tree against the scrutinee value on, emitting into the current
// block of the builder, and returns the match's result value.
func (p *PatLower) Run(on ssa.Value, tree mir.DecTree) ssa.Value {
	p.treeNode(on, tree)

	if p.canSkipContinuation {
		if p.continuationBlock != nil {
			panic("patlower: continuation block allocated on a skippable path")
		}
		if p.continuationValue == nil {
			panic("patlower: no value produced by a fully single-path match")
		}
		return *p.continuationValue
	}

	if p.continuationValue != nil {
		panic("patlower: continuation value set on a joined path")
	}
	p.builder.SwitchToBlock(*p.continuationBlock)
	return p.continuationParam
}

func (p *PatLower) predecessorCountOf(tail ids.TailId) int {
	if n, ok := p.predecessorCounts[tail]; ok {
		return n
	}
	return 1
}

func (p *PatLower) getContinuation(ty monotype.Type) ssa.Block {
	if p.continuationBlock != nil {
		return *p.continuationBlock
	}
	blk := p.builder.NewBlock(0)
	param := p.builder.AddBlockParam(blk, ty)
	p.continuationBlock = &blk
	p.continuationParam = param
	return blk
}

// treeNode pushes on onto the value map and dispatches on tree's concrete
// shape.
func (p *PatLower) treeNode(on ssa.Value, tree mir.DecTree) {
	p.valueMap = append(p.valueMap, on)

	switch t := tree.(type) {
	case mir.Record:
		p.record(on, t.Next)
	case mir.Tuple:
		p.tuple(on, t.Next)
	case *mir.List:
		p.list(on, t)
	case *mir.Ints:
		p.ints(on, t)
	case *mir.Bools:
		p.bools(on, t.Next)
	case *mir.Sum:
		p.sum(on, t)
	case *mir.String:
		p.str(on, t)
	case mir.Wildcard:
		p.next(t.Next)
	case mir.Opaque:
		p.next(t.Next)
	case mir.End:
		p.tail(t.Tail)
	default:
		panic(fmt.Sprintf("patlower: unhandled DecTree node %T", tree))
	}
}

// next advances to the next pending constructor field, or (once a
// constructor queue is exhausted) pops it and tries the enclosing one. With
// no constructors left, tree must be a leaf.
func (p *PatLower) next(tree mir.DecTree) {
	if n := len(p.constructors); n > 0 {
		queue := p.constructors[n-1]
		if len(queue) > 0 {
			v := queue[0]
			p.constructors[n-1] = queue[1:]
			p.treeNode(v, tree)
			return
		}
		p.constructors = p.constructors[:n-1]
		p.next(tree)
		return
	}

	end, ok := tree.(mir.End)
	if !ok {
		panic(fmt.Sprintf("patlower: misaligned constructor ordering, expected End, got %T", tree))
	}
	p.tail(end.Tail)
}

func (p *PatLower) bindsAt(table mir.PointTable, values []ssa.Value) map[ids.BindingId]ssa.Value {
	binds := make(map[ids.BindingId]ssa.Value, len(table.Binds))
	for i, bp := range table.Binds {
		binds[bp.Bind] = values[i]
	}
	return binds
}

// tail dispatches a decision-tree leaf. Poison and Unreached emit nothing.
// Reached either lowers its body inline (the single-path fast path) or
// joins at a per-tail shared block once every predecessor has arrived,
// guaranteeing the body is lowered exactly once.
func (p *PatLower) tail(tt mir.TreeTail) {
	if tt.Kind != mir.TailReached {
		return
	}

	if p.canSkipContinuation {
		valuesAtDepths := depthValues(tt.Table, p.valueMap)
		binds := p.bindsAt(tt.Table, valuesAtDepths)
		v, _ := p.lower(p.branches[tt.Tail], binds)
		p.continuationValue = &v
		return
	}

	blk, ok := p.tailBlocks[tt.Tail]
	if !ok {
		params := make([]ssa.Value, len(tt.Table.Binds))
		blk = p.builder.NewBlock(0)
		for i, bp := range tt.Table.Binds {
			ty := p.builder.Instr(p.valueMap[bp.Depth]).Type
			params[i] = p.builder.AddBlockParam(blk, ty)
		}
		p.tailBlocks[tt.Tail] = blk
		p.tailBlockParams[tt.Tail] = params
	}

	args := depthValues(tt.Table, p.valueMap)
	p.builder.Jump(blk, args)

	p.seen[tt.Tail]++
	count := p.predecessorCountOf(tt.Tail)
	if p.seen[tt.Tail] > count {
		panic(fmt.Sprintf("patlower: tail %v reached more times than its declared predecessor count", tt.Tail))
	}
	if p.seen[tt.Tail] != count {
		return
	}

	p.builder.SwitchToBlock(blk)
	binds := p.bindsAt(tt.Table, p.tailBlockParams[tt.Tail])
	v, ty := p.lower(p.branches[tt.Tail], binds)
	con := p.getContinuation(ty)
	p.builder.Jump(con, []ssa.Value{v})
}

func depthValues(table mir.PointTable, valueMap []ssa.Value) []ssa.Value {
	out := make([]ssa.Value, len(table.Binds))
	for i, bp := range table.Binds {
		out[i] = valueMap[bp.Depth]
	}
	return out
}
