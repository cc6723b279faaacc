package patlower

import (
	"github.com/simvux/lumina/internal/mir"
	"github.com/simvux/lumina/internal/monotype"
	"github.com/simvux/lumina/internal/ssa"
)

// record destructures every field of a record scrutinee, in declaration
// order, pushing the per-field values as a new constructor queue before
// continuing into next.
func (p *PatLower) record(on ssa.Value, next mir.DecTree) {
	p.destructure(on, next)
}

// tuple destructures every element of a tuple scrutinee. Tuples and records
// are lowered identically: both project every field of on's monomorphised
// type in order and recurse.
func (p *PatLower) tuple(on ssa.Value, next mir.DecTree) {
	p.destructure(on, next)
}

func (p *PatLower) destructure(on ssa.Value, next mir.DecTree) {
	ty := p.builder.Instr(on).Type

	queue := make([]ssa.Value, len(ty.Fields))
	for i, fieldTy := range ty.Fields {
		off := monotype.FieldOffset(ty, i)
		queue[i] = p.builder.Field(on, off, fieldTy)
	}

	p.constructors = append(p.constructors, queue)
	p.next(next)
}
