package linearize

// Checker runs the backtracking search of §4.6 against a History and a
// SequentialSpec.
type Checker struct {
	Spec SequentialSpec
}

// NewChecker builds a Checker bound to spec.
func NewChecker(spec SequentialSpec) *Checker {
	return &Checker{Spec: spec}
}

// Check decides whether history admits a total order on its completed
// operations that (i) respects real-time precedence and (ii) replays
// against Spec to reproduce every recorded result. Pending operations are
// excluded; an empty or all-pending history is trivially linearizable.
func (c *Checker) Check(history *History) LinearizabilityResult {
	ops := history.CompletedOperations()
	if len(ops) == 0 {
		return Linearizable{Order: nil}
	}

	predecessors := buildHappensBefore(ops)
	byID := make(map[string]CompletedOperation, len(ops))
	for _, op := range ops {
		byID[op.OpID] = op
	}

	var lastConflict *ConflictPair

	// search returns the completed order (non-nil) on success, or nil if
	// no placement of `remaining` after `order` reaches a full, matching
	// linearization.
	var search func(remaining []CompletedOperation, order []string) []string
	search = func(remaining []CompletedOperation, order []string) []string {
		if len(remaining) == 0 {
			return order
		}
		placed := make(map[string]bool, len(order))
		for _, id := range order {
			placed[id] = true
		}
		for i, op := range remaining {
			if !allPlaced(predecessors[op.OpID], placed) {
				continue
			}
			candidateOrder := append(append([]string(nil), order...), op.OpID)
			if !replayMatches(c.Spec, byID, candidateOrder) {
				lastConflict = conflictFor(order, op.OpID)
				continue
			}
			rest := make([]CompletedOperation, 0, len(remaining)-1)
			rest = append(rest, remaining[:i]...)
			rest = append(rest, remaining[i+1:]...)
			if final := search(rest, candidateOrder); final != nil {
				return final
			}
		}
		return nil
	}

	if order := search(ops, nil); order != nil {
		return Linearizable{Order: order}
	}
	reason := "no total order respects both real-time precedence and the sequential specification"
	return NotLinearizable{Reason: reason, Conflict: lastConflict}
}

// buildHappensBefore computes, for each op_id, the set of op_ids that
// happen-before it (its predecessors in the happens-before DAG).
func buildHappensBefore(ops []CompletedOperation) map[string]map[string]bool {
	preds := make(map[string]map[string]bool, len(ops))
	for _, op := range ops {
		preds[op.OpID] = map[string]bool{}
	}
	for _, a := range ops {
		for _, b := range ops {
			if a.OpID == b.OpID {
				continue
			}
			if a.happensBefore(b) {
				preds[b.OpID][a.OpID] = true
			}
		}
	}
	return preds
}

func allPlaced(required map[string]bool, placed map[string]bool) bool {
	for id := range required {
		if !placed[id] {
			return false
		}
	}
	return true
}

// replayMatches resets spec and applies order's operations from scratch,
// checking that every step's observed result matches the recorded one.
func replayMatches(spec SequentialSpec, byID map[string]CompletedOperation, order []string) bool {
	spec.Reset()
	for _, id := range order {
		op := byID[id]
		actual := spec.Apply(op.OpText)
		if !spec.Matches(op.ResultText, actual) {
			return false
		}
	}
	return true
}

// conflictFor names the two operations implicated when appending
// candidate to order fails the replay: the last successfully placed op
// (if any) and the candidate that broke the replay.
func conflictFor(order []string, candidate string) *ConflictPair {
	if len(order) == 0 {
		return &ConflictPair{First: candidate, Second: candidate}
	}
	return &ConflictPair{First: order[len(order)-1], Second: candidate}
}
