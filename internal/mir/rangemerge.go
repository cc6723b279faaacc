package mir

// Insert is called once per existing arm an incoming range overlaps. It
// receives the subtree currently reached by that arm and returns the
// subtree that should be reached once the incoming range has been merged
// into it, plus whether that merge reaches a new TreeTail.Reached with
// fresh bindings (the caller's notion of "this arm just became live").
//
// This stands in for the original implementation's generic `Merge` trait,
// which recurses the same overlay across every remaining dimension of a
// multi-field pattern. That full recursive merge belongs to decision-tree
// construction (an external, out-of-scope collaborator); MergeInt only
// needs the one-dimensional slice of it that the range arithmetic itself
// performs.
type Insert func(existing DecTree) (DecTree, bool)

// MergeInt merges an incoming range [start, end] into an existing
// Branching[Range], splitting whichever arms it partially overlaps so the
// arm set stays sorted and non-overlapping, and returns whether the merge
// reached a new live tail. It assumes next already spans the type's full
// domain (built from a single default arm before any merge), the
// precondition the original panics on ("complete int not generated from
// type") if violated.
func MergeInt(next *Branching[Range], start, end int128, insert Insert) bool {
	if start > end {
		panic("mir: merge_int start cannot be higher than end")
	}
	reachable := mergeIntAt(next, 0, start, end, insert)
	cleanupEdgesIfAtEnd(next)
	return reachable
}

func mergeIntAt(branches *Branching[Range], i int, start, end int128, insert Insert) bool {
	if i >= len(branches.Branches) {
		panic("mir: complete int not generated from type")
	}
	arm := &branches.Branches[i]
	rng := arm.Key

	excluded := end < rng.Start || start > rng.End
	if excluded {
		return mergeIntAt(branches, i+1, start, end, insert)
	}

	reachable := false

	switch {
	case start < rng.Start:
		panic("mir: would've already been merged by now")
	case start > rng.Start:
		// Keep branches sorted: split off the untouched left side,
		// preserving its existing subtree, then continue with the rest.
		untouchedLeft := BranchArm[Range]{
			Key:  Range{Con: rng.Con, Start: rng.Start, End: start - 1},
			Next: arm.Next,
		}
		insertArm(branches, i, untouchedLeft)
		i++
		branches.Branches[i].Key.Start = start
	}

	arm = &branches.Branches[i]
	rng = arm.Key

	switch {
	case end < rng.End:
		untouchedRight := BranchArm[Range]{
			Key:  Range{Con: rng.Con, Start: end + 1, End: rng.End},
			Next: arm.Next,
		}
		insertArm(branches, i+1, untouchedRight)
		branches.Branches[i].Key.End = end
	case end > rng.End:
		nextStart := rng.End + 1
		reachable = reachable || mergeIntAt(branches, i+1, nextStart, end, insert)
	}

	arm = &branches.Branches[i]
	updated, hit := insert(arm.Next)
	arm.Next = updated
	return reachable || hit
}

func insertArm(branches *Branching[Range], at int, arm BranchArm[Range]) {
	branches.Branches = append(branches.Branches, BranchArm[Range]{})
	copy(branches.Branches[at+1:], branches.Branches[at:])
	branches.Branches[at] = arm
}

// cleanupEdgesIfAtEnd coalesces adjacent arms that reach identical tail
// data, purely to keep the output small; it changes nothing observable
// about which value maps to which subtree. It scans from the first arm and
// stops at the first adjacent pair in which either arm is not an End leaf.
func cleanupEdgesIfAtEnd(ints *Branching[Range]) {
	i := 1
	for i < len(ints.Branches) {
		left := ints.Branches[i-1]
		right := ints.Branches[i]

		leftEnd, leftOK := left.Next.(End)
		rightEnd, rightOK := right.Next.(End)
		if !leftOK || !rightOK {
			break
		}

		switch {
		case leftEnd.Tail.Kind == TailReached && rightEnd.Tail.Kind == TailReached:
			if sameTailData(leftEnd.Tail, rightEnd.Tail) {
				ints.Branches[i-1].Key.End = right.Key.End
				ints.Branches = append(ints.Branches[:i], ints.Branches[i+1:]...)
				continue
			}
			i++
		case leftEnd.Tail.Kind == TailUnreached && rightEnd.Tail.Kind == TailUnreached:
			if sameTailData(leftEnd.Tail, rightEnd.Tail) {
				ints.Branches[i-1].Key.End = right.Key.End
				ints.Branches = append(ints.Branches[:i], ints.Branches[i+1:]...)
				continue
			}
			i++
		default:
			i++
		}
	}
}
