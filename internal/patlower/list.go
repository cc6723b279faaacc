package patlower

import (
	"github.com/simvux/lumina/internal/mir"
	"github.com/simvux/lumina/internal/monotype"
	"github.com/simvux/lumina/internal/ssa"
)

// list looks up the scrutinee element type's Listable implementation, calls
// its split method, and dispatches on the resulting tag as a sum of arity
// one: Just (Cons) extracts x at offset 0 and xs at offset sizeof(elem),
// Nothing (Nil) extracts nothing.
func (p *PatLower) list(on ssa.Value, l *mir.List) {
	p.canSkipContinuation = false

	oblock := p.builder.CurrentBlock()
	elemTy := p.builder.Instr(on).Type.Fields[0]

	impl, ok := p.registry.FindImplementation(monotype.Listable, []monotype.Type{elemTy}, p.builder.Instr(on).Type)
	if !ok {
		panic("patlower: no Listable implementation registered for list element type")
	}

	maybe := p.builder.Call(impl.ImplId, []ssa.Value{on}, monotype.Record([]monotype.Type{
		monotype.Int(monotype.TagBits, false),
		elemTy,
	}))
	maybeTy := p.builder.Instr(maybe).Type

	tagTy := monotype.Int(monotype.TagBits, false)
	tag := p.builder.Field(maybe, 0, tagTy)
	data := p.builder.Field(maybe, monotype.FieldOffset(maybeTy, 1), maybeTy.Fields[1])

	isJust := p.builder.Eq(tag, p.builder.Const(1, tagTy))

	listTy := p.builder.Instr(on).Type

	blockFor := func(tag mir.ListTag, next mir.DecTree) ssa.Block {
		vblock := p.builder.NewBlock(0)
		p.builder.SwitchToBlock(vblock)

		rp := p.makeReset()

		var queue []ssa.Value
		if tag == mir.ListCons {
			x := p.builder.SumField(data, 0, elemTy)
			xs := p.builder.SumField(data, monotype.SizeOf(elemTy), listTy)
			queue = []ssa.Value{x, xs}
		}
		p.constructors = append(p.constructors, queue)

		p.next(next)
		p.reset(oblock, rp)

		return vblock
	}

	var consBlock, nilBlock ssa.Block
	for _, arm := range l.Next.Branches {
		switch arm.Key {
		case mir.ListCons:
			consBlock = blockFor(mir.ListCons, arm.Next)
		case mir.ListNil:
			nilBlock = blockFor(mir.ListNil, arm.Next)
		}
	}

	p.builder.SwitchToBlock(oblock)
	p.builder.Select(isJust, consBlock, nilBlock)
}
