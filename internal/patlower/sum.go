package patlower

import (
	"github.com/simvux/lumina/internal/mir"
	"github.com/simvux/lumina/internal/monotype"
	"github.com/simvux/lumina/internal/ssa"
)

// sum asserts the decision tree's variant arms are contiguous and sorted
// (a precondition the front-end guarantees), reads the tag and payload
// fields, and for each variant destructures its own parameters starting
// fresh at bit 0 of the shared data slot — every variant overlays the same
// storage, sized by LargestVariantSize, rather than being laid out one
// after another — before terminating with a jump table keyed on the tag.
func (p *PatLower) sum(on ssa.Value, s *mir.Sum) {
	p.canSkipContinuation = p.canSkipContinuation && len(s.Next.Branches) == 1

	oblock := p.builder.CurrentBlock()
	ty := p.builder.Instr(on).Type

	for i := 1; i < len(s.Next.Branches); i++ {
		if s.Next.Branches[i].Key != s.Next.Branches[i-1].Key+1 {
			panic("patlower: sum variants in decision tree must be sorted and contiguous")
		}
	}

	tagTy := monotype.Int(monotype.TagBits, false)
	tag := p.builder.Field(on, 0, tagTy)

	dataTy := ty.Fields[1]
	data := p.builder.Field(on, monotype.FieldOffset(ty, 1), dataTy)

	targets := make([]ssa.JumpTarget, len(s.Next.Branches))

	for i, arm := range s.Next.Branches {
		variantParams := ty.Variants[arm.Key.Int()]

		vblock := p.builder.NewBlock(0)
		p.builder.SwitchToBlock(vblock)

		rp := p.makeReset()

		queue := make([]ssa.Value, len(variantParams))
		offset := 0
		for j, paramTy := range variantParams {
			queue[j] = p.builder.SumField(data, offset, paramTy)
			offset += monotype.SizeOf(paramTy)
		}
		p.constructors = append(p.constructors, queue)

		p.next(arm.Next)
		p.reset(oblock, rp)

		targets[i] = ssa.JumpTarget{Tag: int64(arm.Key), To: vblock}
	}

	p.builder.SwitchToBlock(oblock)
	p.builder.JumpTable(tag, targets)
}
