package patlower

import (
	"github.com/simvux/lumina/internal/mir"
	"github.com/simvux/lumina/internal/monotype"
	"github.com/simvux/lumina/internal/ssa"
)

var (
	byteTy  = monotype.Int(8, false)
	boolTy  = monotype.Bool()
	bytesTy = monotype.Opaque()
)

// str evaluates each arm's StrChecks as a linear chain against a threaded
// "remaining string" value: a link's test runs against whatever the
// previous link left unconsumed, starting from on itself. Any link's
// failure jumps to the arm's shared fail block, which resets to the
// arm-start snapshot and falls into the next arm's chain; once every link
// in a chain succeeds it continues into the arm's subtree with whatever
// values the chain produced (each link's bound prefix/byte, plus the final
// unconsumed remainder) fed through the same constructor-queue mechanism
// record/tuple/sum/list use. WildcardNext handles total fallthrough once
// every arm's chain has failed.
func (p *PatLower) str(on ssa.Value, s *mir.String) {
	p.canSkipContinuation = false
	rp := p.makeReset()

	for _, arm := range s.Next.Branches {
		chain := arm.Key
		armFail := p.builder.NewBlock(0)

		current := on
		var queue []ssa.Value

		for i, check := range chain {
			bound, remainder, test := p.emitStrCheck(current, check)

			onTrue := p.builder.NewBlock(0)
			onFalse := p.builder.NewBlock(0)
			p.builder.Select(test, onTrue, onFalse)

			p.builder.SwitchToBlock(onFalse)
			p.builder.Jump(armFail, nil)

			p.builder.SwitchToBlock(onTrue)

			if bound != nil {
				queue = append(queue, *bound)
			}
			if remainder != nil {
				current = *remainder
				if i == len(chain)-1 {
					queue = append(queue, current)
				}
			}
		}

		p.constructors = append(p.constructors, queue)
		p.next(arm.Next)

		p.reset(armFail, rp)
	}

	p.next(s.WildcardNext)
}

// emitStrCheck emits the SSA for one StrCheck against the threaded value on,
// returning the value it binds (if any), the value chain continuation
// should resume from (if the check doesn't consume the whole remainder),
// and the success/failure test value.
func (p *PatLower) emitStrCheck(on ssa.Value, check mir.StrCheck) (bound, remainder *ssa.Value, test ssa.Value) {
	switch check.Kind {
	case mir.StrLiteral:
		lit := p.builder.Const(int64(len(check.Literal)), byteTy)
		test = p.builder.CallExtern("str_has_prefix", []ssa.Value{on, lit}, boolTy)
		rem := p.builder.CallExtern("str_drop_prefix", []ssa.Value{on, lit}, bytesTy)
		remainder = &rem
		return nil, remainder, test

	case mir.StrTake:
		n := p.builder.Const(int64(check.N), byteTy)
		left := p.builder.CallExtern("str_take", []ssa.Value{on, n}, bytesTy)
		leftLen := p.builder.CallExtern("str_len", []ssa.Value{left}, byteTy)
		test = p.builder.Eq(leftLen, n)
		rem := p.builder.CallExtern("str_drop", []ssa.Value{on, n}, bytesTy)
		remainder = &rem
		return nil, remainder, test

	case mir.StrTakeByte:
		x := p.builder.CallExtern("str_head_byte", []ssa.Value{on}, byteTy)
		test = p.builder.Eq(x, p.builder.Const(0x00, byteTy))
		rem := p.builder.CallExtern("str_drop_byte", []ssa.Value{on}, bytesTy)
		bound, remainder = &x, &rem
		return bound, remainder, test

	case mir.StrTakeExcess:
		test = p.builder.Const(1, boolTy) // always succeeds; must be the chain's last check
		bound = &on
		return bound, nil, test

	case mir.StrTakeWhileLocal, mir.StrTakeWhileFunc, mir.StrTakeWhileLambda:
		pred := p.predicateValue(check)
		prefix := p.builder.CallExtern("str_take_while", []ssa.Value{on, pred}, bytesTy)
		test = p.builder.Const(1, boolTy) // take_while always succeeds; prefix may be empty
		rem := p.builder.CallExtern("str_drop_while", []ssa.Value{on, pred}, bytesTy)
		bound, remainder = &prefix, &rem
		return bound, remainder, test

	default:
		panic("patlower: unhandled StrCheck kind")
	}
}

// predicateValue resolves a TakeWhile check's predicate to a callable SSA
// value: a local closure's current binding, a direct function reference, or
// (for a lambda) a dyn-closure object wrapping the monomorphised lambda.
func (p *PatLower) predicateValue(check mir.StrCheck) ssa.Value {
	switch check.Kind {
	case mir.StrTakeWhileLocal:
		return p.builder.ValToRef(p.builder.Const(int64(check.Local), bytesTy), bytesTy)
	case mir.StrTakeWhileFunc:
		return p.builder.Const(int64(check.Func), bytesTy)
	case mir.StrTakeWhileLambda:
		return p.builder.Construct([]ssa.Value{p.builder.Const(int64(check.Lambda), bytesTy)}, bytesTy)
	default:
		panic("patlower: predicateValue called on a non-TakeWhile check")
	}
}
