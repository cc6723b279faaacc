package patlower

import (
	"github.com/simvux/lumina/internal/mir"
	"github.com/simvux/lumina/internal/monotype"
	"github.com/simvux/lumina/internal/ssa"
)

// ints walks a Branching[Range] in declared order. An arm whose End is the
// domain's Max needs no test and is recursed into directly, and no later arm
// is visited; any other arm emits an equality check for a singleton range,
// or for a proper interval a strict upper-bound comparison, fused with
// bit_and to a strict lower-bound comparison unless Start is the domain's
// Min, then branches via
// select. Every arm but the last resets to the same on_false snapshot
// before trying the next one.
func (p *PatLower) ints(on ssa.Value, it *mir.Ints) {
	p.canSkipContinuation = p.canSkipContinuation && len(it.Next.Branches) == 1

	rp := p.makeReset()
	ty := monotype.Int(it.Bitsize.Bits, it.Signed)

	for _, arm := range it.Next.Branches {
		rng := arm.Key

		if rng.End == rng.Con.Max {
			p.next(arm.Next)
			return
		}

		onTrue := p.builder.NewBlock(0)
		onFalse := p.builder.NewBlock(0)

		var check ssa.Value
		if rng.Start == rng.End {
			// TODO: a jump-table would let adjacent singleton arms share
			// one dispatch instead of a chain of equality checks.
			check = p.builder.Eq(on, p.builder.Const(rng.End, ty))
		} else {
			check = p.builder.Lti(on, p.builder.Const(rng.End+1, ty))
			if rng.Con.Min != rng.Start {
				highEnough := p.builder.Gti(on, p.builder.Const(rng.Start-1, ty))
				check = p.builder.BitAnd(check, highEnough)
			}
		}

		p.builder.Select(check, onTrue, onFalse)

		p.builder.SwitchToBlock(onTrue)
		p.next(arm.Next)

		p.reset(onFalse, rp)
	}
}
