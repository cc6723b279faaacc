package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/simvux/lumina/internal/ssa"
)

// colorEnabled mirrors the evaluator's terminal-feature detection: color is
// only emitted when stdout is an interactive terminal, and the NO_COLOR
// convention always wins.
func colorEnabled() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

const (
	ansiReset  = "\x1b[0m"
	ansiBlue   = "\x1b[34m"
	ansiYellow = "\x1b[33m"
	ansiGray   = "\x1b[90m"
)

func paint(color, s string) string {
	if !colorEnabled() {
		return s
	}
	return color + s + ansiReset
}

// dumpProgram prints every block a Builder holds, in allocation order, in a
// flat textual form a human can scan: block header with its parameters,
// each instruction's result value and operation, and the block's
// terminator.
func dumpProgram(w io.Writer, name string, b *ssa.Builder) {
	fmt.Fprintf(w, "%s %s\n", paint(ansiYellow, "==>"), paint(ansiBlue, name))

	for i := 0; i < b.NumBlocks(); i++ {
		blk := ssa.Block(i)
		fmt.Fprintf(w, "%s:\n", paint(ansiBlue, fmt.Sprintf("block%d", i)))

		for _, v := range b.BlockInstrs(blk) {
			instr := b.Instr(v)
			fmt.Fprintf(w, "  %s = %s\n", paint(ansiYellow, fmt.Sprintf("v%d", v)), describeInstr(instr))
		}

		fmt.Fprintf(w, "  %s\n", paint(ansiGray, describeTerminator(b.Terminator(blk))))
	}
}

func describeInstr(instr ssa.Instr) string {
	op := opName(instr.Op)
	if instr.Callee != "" {
		return fmt.Sprintf("%s %s%v", op, instr.Callee, instr.Args)
	}
	if len(instr.Args) > 0 {
		return fmt.Sprintf("%s %v (imm=%d)", op, instr.Args, instr.Imm)
	}
	return fmt.Sprintf("%s (imm=%d)", op, instr.Imm)
}

func opName(op ssa.Op) string {
	switch op {
	case ssa.OpBlockParam:
		return "block_param"
	case ssa.OpConst:
		return "const"
	case ssa.OpField:
		return "field"
	case ssa.OpSumField:
		return "sum_field"
	case ssa.OpCall:
		return "call"
	case ssa.OpCallExtern:
		return "call_extern"
	case ssa.OpDeref:
		return "deref"
	case ssa.OpWrite:
		return "write"
	case ssa.OpAlloc:
		return "alloc"
	case ssa.OpExtend:
		return "extend"
	case ssa.OpReduce:
		return "reduce"
	case ssa.OpEq:
		return "eq"
	case ssa.OpLti:
		return "lti"
	case ssa.OpGti:
		return "gti"
	case ssa.OpCmp:
		return "cmp"
	case ssa.OpAdd:
		return "add"
	case ssa.OpSub:
		return "sub"
	case ssa.OpMul:
		return "mul"
	case ssa.OpDiv:
		return "div"
	case ssa.OpBitAnd:
		return "bit_and"
	case ssa.OpConstruct:
		return "construct"
	case ssa.OpValToRef:
		return "val_to_ref"
	default:
		return "unknown"
	}
}

func describeTerminator(term ssa.Terminator) string {
	switch term.Kind {
	case ssa.TermNone:
		return "(unterminated)"
	case ssa.TermSelect:
		return fmt.Sprintf("select v%d -> block%d, block%d", term.Cond, term.OnTrue, term.OnFalse)
	case ssa.TermJump:
		return fmt.Sprintf("jump block%d %v", term.To, term.Args)
	case ssa.TermJumpTable:
		return fmt.Sprintf("jump_table v%d %v", term.Key, term.Targets)
	case ssa.TermReturn:
		return fmt.Sprintf("return v%d", term.Ret)
	default:
		return "(unknown terminator)"
	}
}
