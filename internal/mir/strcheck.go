package mir

import "github.com/simvux/lumina/internal/ids"

// StrCheckKind tags the seven shapes a chained string-pattern test can take.
type StrCheckKind uint8

const (
	// StrLiteral compares the remainder against a literal byte string.
	StrLiteral StrCheckKind = iota
	// StrTake splits at a fixed byte count and requires the left side's
	// length to equal it exactly.
	StrTake
	// StrTakeByte splits off exactly one byte and binds it.
	StrTakeByte
	// StrTakeExcess binds whatever remains; must be last in its chain.
	StrTakeExcess
	// StrTakeWhileLocal splits by a predicate bound to a local function value.
	StrTakeWhileLocal
	// StrTakeWhileFunc splits by a predicate naming a top-level function.
	StrTakeWhileFunc
	// StrTakeWhileLambda splits by a predicate defined inline; lowering
	// constructs a dyn-closure object wrapping the monomorphised lambda.
	StrTakeWhileLambda
)

// StrChecks is one arm's ordered chain of links, each checked in turn
// against whatever the previous link left unconsumed; mir.String branches
// on one StrChecks per arm rather than a single StrCheck.
type StrChecks []StrCheck

// StrCheck is one link of a StrChecks chain.
type StrCheck struct {
	Kind StrCheckKind

	Literal []byte        // StrLiteral
	N       int           // StrTake
	Local   ids.BindingId // StrTakeWhileLocal
	Func    ids.FuncId    // StrTakeWhileFunc
	Lambda  ids.FuncId    // StrTakeWhileLambda, the monomorphised lambda's id

	// Bind names the local the split-off prefix/byte/remainder is bound
	// to. StrLiteral and StrTake bind nothing. Lowering does not read this
	// field; bound values reach an arm's body through its PointTable depths.
	Bind ids.BindingId
}
