// Package ssa is the block/value bookkeeping a code generation backend would
// consume. It performs no code generation to any instruction set; it only
// tracks which blocks and values exist and how they reference each other,
// the same arena-of-small-integer-ids style the rest of this module uses for
// modules, types, and bindings.
package ssa

import (
	"fmt"

	"github.com/simvux/lumina/internal/monotype"
)

// Block is an opaque handle into a Builder's block arena.
type Block int32

// Value is an opaque handle into a Builder's value arena.
type Value int32

// Op tags the instruction an emitted Value computes.
type Op uint8

const (
	OpBlockParam Op = iota
	OpConst
	OpField
	OpSumField
	OpCall
	OpCallExtern
	OpDeref
	OpWrite
	OpAlloc
	OpExtend
	OpReduce
	OpEq
	OpLti
	OpGti
	OpCmp
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpBitAnd
	OpConstruct
	OpValToRef
)

// Instr is one computed value: its operation, operands, any immediate
// (offsets, constants), and the monomorphised type of its result.
type Instr struct {
	Op     Op
	Args   []Value
	Imm    int64
	Type   monotype.Type
	Callee string // OpCall, OpCallExtern
}

// TermKind tags the ways a block can end.
type TermKind uint8

const (
	TermNone TermKind = iota
	TermSelect
	TermJump
	TermJumpTable
	TermReturn
)

// Terminator is a block's final instruction: unset, a two-way select, a
// plain jump, a tag-keyed jump table, or a return.
type Terminator struct {
	Kind TermKind

	// TermSelect
	Cond             Value
	OnTrue, OnFalse  Block

	// TermJump
	To   Block
	Args []Value

	// TermJumpTable
	Key     Value
	Targets []JumpTarget

	// TermReturn
	Ret Value
}

// JumpTarget pairs a jump table's discriminant with the block it dispatches
// to, carrying that arm's own block arguments.
type JumpTarget struct {
	Tag  int64
	To   Block
	Args []Value
}

// blockData is a block's param types, its straight-line instructions in
// emission order, and its terminator.
type blockData struct {
	params []monotype.Type
	instrs []Value
	term   Terminator
}

// Builder accumulates blocks and values for a single function. It is not
// safe for concurrent use; a PatLower is given exclusive ownership of one
// Builder for the duration of lowering one match.
type Builder struct {
	blocks  []blockData
	values  []Instr
	current Block
}

// NewBuilder returns a Builder with one empty entry block already current.
func NewBuilder() *Builder {
	b := &Builder{}
	b.current = b.NewBlock(0)
	return b
}

// NewBlock allocates a fresh block with nParams block parameters and returns
// its handle. It does not switch the builder's current block.
func (b *Builder) NewBlock(nParams int) Block {
	bd := blockData{params: make([]monotype.Type, nParams)}
	id := Block(len(b.blocks))
	b.blocks = append(b.blocks, bd)
	return id
}

// SwitchToBlock makes blk the block subsequent instructions are appended to.
func (b *Builder) SwitchToBlock(blk Block) {
	b.current = blk
}

// CurrentBlock returns the block instructions are currently appended to.
func (b *Builder) CurrentBlock() Block {
	return b.current
}

// AddBlockParam appends a parameter of type ty to blk and returns the Value
// reading it inside that block.
func (b *Builder) AddBlockParam(blk Block, ty monotype.Type) Value {
	b.blocks[blk].params = append(b.blocks[blk].params, ty)
	return b.push(blk, Instr{Op: OpBlockParam, Type: ty, Imm: int64(len(b.blocks[blk].params) - 1)})
}

// BlockParams returns the number of parameters blk declares.
func (b *Builder) BlockParams(blk Block) int {
	return len(b.blocks[blk].params)
}

func (b *Builder) push(blk Block, instr Instr) Value {
	v := Value(len(b.values))
	b.values = append(b.values, instr)
	b.blocks[blk].instrs = append(b.blocks[blk].instrs, v)
	return v
}

func (b *Builder) emit(instr Instr) Value {
	return b.push(b.current, instr)
}

// Const emits an integer literal typed ty.
func (b *Builder) Const(n int64, ty monotype.Type) Value {
	return b.emit(Instr{Op: OpConst, Imm: n, Type: ty})
}

// Field emits a field-projection instruction reading the field at bit offset
// off out of rec, typed ty.
func (b *Builder) Field(rec Value, off int, ty monotype.Type) Value {
	return b.emit(Instr{Op: OpField, Args: []Value{rec}, Imm: int64(off), Type: ty})
}

// SumField emits a projection reading a sum's payload slot at bit offset off,
// cast to ty (a "SumDataCast" read in the original's terms).
func (b *Builder) SumField(data Value, off int, ty monotype.Type) Value {
	return b.emit(Instr{Op: OpSumField, Args: []Value{data}, Imm: int64(off), Type: ty})
}

// Call emits a direct call to a Lumina function or monomorphised method,
// identified by any of this module's opaque id types (ids.FuncId,
// ids.MethodId).
func (b *Builder) Call(callee fmt.Stringer, args []Value, ty monotype.Type) Value {
	return b.emit(Instr{Op: OpCall, Args: args, Type: ty, Callee: callee.String()})
}

// CallExtern emits a call to an externally linked function, named by symbol.
func (b *Builder) CallExtern(symbol string, args []Value, ty monotype.Type) Value {
	return b.emit(Instr{Op: OpCallExtern, Args: args, Type: ty, Callee: symbol})
}

// Deref loads the value pointed to by ptr.
func (b *Builder) Deref(ptr Value, ty monotype.Type) Value {
	return b.emit(Instr{Op: OpDeref, Args: []Value{ptr}, Type: ty})
}

// Write stores val through ptr.
func (b *Builder) Write(ptr, val Value) {
	b.emit(Instr{Op: OpWrite, Args: []Value{ptr, val}})
}

// Alloc reserves stack space sized for ty and returns a pointer to it.
func (b *Builder) Alloc(ty monotype.Type) Value {
	return b.emit(Instr{Op: OpAlloc, Type: monotype.Pointer(ty)})
}

// Extend widens a narrower integer value to ty.
func (b *Builder) Extend(v Value, ty monotype.Type) Value {
	return b.emit(Instr{Op: OpExtend, Args: []Value{v}, Type: ty})
}

// Reduce narrows a wider integer value to ty.
func (b *Builder) Reduce(v Value, ty monotype.Type) Value {
	return b.emit(Instr{Op: OpReduce, Args: []Value{v}, Type: ty})
}

func (b *Builder) cmp(op Op, lhs, rhs Value) Value {
	return b.emit(Instr{Op: op, Args: []Value{lhs, rhs}, Type: monotype.Bool()})
}

// Eq emits an equality comparison.
func (b *Builder) Eq(lhs, rhs Value) Value { return b.cmp(OpEq, lhs, rhs) }

// Lti emits a "less than" comparison.
func (b *Builder) Lti(lhs, rhs Value) Value { return b.cmp(OpLti, lhs, rhs) }

// Gti emits a "greater than" comparison.
func (b *Builder) Gti(lhs, rhs Value) Value { return b.cmp(OpGti, lhs, rhs) }

// Cmp emits a three-way comparison, typed ty (an ordering enum in the
// non-boolean case).
func (b *Builder) Cmp(lhs, rhs Value, ty monotype.Type) Value {
	return b.emit(Instr{Op: OpCmp, Args: []Value{lhs, rhs}, Type: ty})
}

func (b *Builder) arith(op Op, lhs, rhs Value, ty monotype.Type) Value {
	return b.emit(Instr{Op: op, Args: []Value{lhs, rhs}, Type: ty})
}

// Add emits integer addition.
func (b *Builder) Add(lhs, rhs Value, ty monotype.Type) Value { return b.arith(OpAdd, lhs, rhs, ty) }

// Sub emits integer subtraction.
func (b *Builder) Sub(lhs, rhs Value, ty monotype.Type) Value { return b.arith(OpSub, lhs, rhs, ty) }

// Mul emits integer multiplication.
func (b *Builder) Mul(lhs, rhs Value, ty monotype.Type) Value { return b.arith(OpMul, lhs, rhs, ty) }

// Div emits integer division.
func (b *Builder) Div(lhs, rhs Value, ty monotype.Type) Value { return b.arith(OpDiv, lhs, rhs, ty) }

// BitAnd emits a bitwise AND of two boolean values, the combinator the
// pattern lowerer uses to fuse a range's lower- and upper-bound guards into
// one test.
func (b *Builder) BitAnd(lhs, rhs Value) Value {
	return b.emit(Instr{Op: OpBitAnd, Args: []Value{lhs, rhs}, Type: monotype.Bool()})
}

// Select terminates the current block with a two-way branch: onTrue is
// taken when cond is true, onFalse otherwise.
func (b *Builder) Select(cond Value, onTrue, onFalse Block) {
	b.blocks[b.current].term = Terminator{Kind: TermSelect, Cond: cond, OnTrue: onTrue, OnFalse: onFalse}
}

// Construct builds an aggregate (record, tuple, or sum payload) value out of
// its field values.
func (b *Builder) Construct(fields []Value, ty monotype.Type) Value {
	return b.emit(Instr{Op: OpConstruct, Args: fields, Type: ty})
}

// ValToRef materialises a pointer to a value that currently only exists in
// an SSA register, spilling it to stack first if needed.
func (b *Builder) ValToRef(v Value, ty monotype.Type) Value {
	return b.emit(Instr{Op: OpValToRef, Args: []Value{v}, Type: monotype.Pointer(ty)})
}

// Jump terminates the current block with an unconditional jump to to,
// passing args as that block's parameters.
func (b *Builder) Jump(to Block, args []Value) {
	b.blocks[b.current].term = Terminator{Kind: TermJump, To: to, Args: args}
}

// JumpTable terminates the current block dispatching on key to whichever
// target's Tag matches.
func (b *Builder) JumpTable(key Value, targets []JumpTarget) {
	b.blocks[b.current].term = Terminator{Kind: TermJumpTable, Key: key, Targets: targets}
}

// Return terminates the current block, returning v from the function.
func (b *Builder) Return(v Value) {
	b.blocks[b.current].term = Terminator{Kind: TermReturn, Ret: v}
}

// Terminator returns the terminator recorded for blk, or a zero value
// (TermNone) if the block has not been terminated yet.
func (b *Builder) Terminator(blk Block) Terminator {
	return b.blocks[blk].term
}

// Instr returns the instruction a Value refers to.
func (b *Builder) Instr(v Value) Instr {
	return b.values[v]
}

// BlockInstrs returns the Values emitted into blk, in emission order.
func (b *Builder) BlockInstrs(blk Block) []Value {
	return b.blocks[blk].instrs
}

// NumBlocks reports how many blocks have been allocated.
func (b *Builder) NumBlocks() int {
	return len(b.blocks)
}
