package patlower

import "github.com/simvux/lumina/internal/ssa"

// resetPoint snapshots the two pieces of walk state that must not leak
// between sibling branches of a test: the pending constructor queues and
// the per-depth value map. Taking a non-true branch restores from it, so
// each arm is lowered against its own view of what has been destructured
// so far, with no mutable aliasing across arms.
type resetPoint struct {
	constructors [][]ssa.Value
	valueMap     []ssa.Value
}

func (p *PatLower) makeReset() resetPoint {
	constructors := make([][]ssa.Value, len(p.constructors))
	for i, q := range p.constructors {
		constructors[i] = append([]ssa.Value(nil), q...)
	}
	return resetPoint{
		constructors: constructors,
		valueMap:     append([]ssa.Value(nil), p.valueMap...),
	}
}

func (p *PatLower) reset(blk ssa.Block, rp resetPoint) {
	p.builder.SwitchToBlock(blk)
	p.constructors = rp.constructors
	p.valueMap = rp.valueMap
}
