package patlower

import (
	"github.com/simvux/lumina/internal/mir"
	"github.com/simvux/lumina/internal/ssa"
)

// bools re-orders branches so the true arm is lowered first, emits a single
// select, and recurses into both sides from independent state snapshots.
func (p *PatLower) bools(on ssa.Value, branching *mir.Branching[bool]) {
	p.canSkipContinuation = false

	if len(branching.Branches) != 2 {
		panic("patlower: bool match must have exactly two arms")
	}

	truthy, falsey := branching.Branches[0], branching.Branches[1]
	if !truthy.Key {
		truthy, falsey = falsey, truthy
	}
	if !truthy.Key || falsey.Key {
		panic("patlower: bool match arms must cover true and false exactly once")
	}

	rp := p.makeReset()

	onTrue := p.builder.NewBlock(0)
	onFalse := p.builder.NewBlock(0)
	p.builder.Select(on, onTrue, onFalse)

	p.builder.SwitchToBlock(onTrue)
	p.next(truthy.Next)

	p.reset(onFalse, rp)
	p.next(falsey.Next)
}
