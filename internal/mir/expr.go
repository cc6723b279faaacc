package mir

// Expr stands in for the inductive expression grammar a match arm's body is
// written in. That grammar belongs to the surrounding MIR (an external
// collaborator, out of scope here); the lowerer only ever receives one as an
// opaque value handed back by the caller's tail callback and threads it
// through to the SSA builder unexamined.
type Expr any
