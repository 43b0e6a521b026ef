package linearize

// SequentialSpec is the deterministic state machine the checker replays
// candidate orderings against: it consumes op texts and emits expected
// result texts.
type SequentialSpec interface {
	// Apply executes opText against the spec's current state and
	// returns the resulting text.
	Apply(opText string) string

	// Matches compares an expected and an actual result text. The
	// default choice is plain equality; implementations that need fuzzy
	// comparison (e.g. ignoring whitespace) may override it.
	Matches(expected, actual string) bool

	// Reset returns the spec to its initial state, so the checker can
	// replay a candidate ordering from scratch without assuming the
	// implementation supports cloning.
	Reset()
}

// EqualityMatches implements SequentialSpec.Matches for specs that only
// need ordinary string equality — embed it to avoid repeating the method.
type EqualityMatches struct{}

// Matches returns expected == actual.
func (EqualityMatches) Matches(expected, actual string) bool { return expected == actual }

// ConflictPair names the two operations a NotLinearizable result blames.
type ConflictPair struct {
	First  string
	Second string
}

// LinearizabilityResult is the closed outcome of a check: either
// Linearizable (with the witness order) or NotLinearizable (with a prose
// reason and, where derivable, the offending pair).
type LinearizabilityResult interface {
	isLinearizabilityResult()
	String() string
}

// Linearizable reports a valid total order was found.
type Linearizable struct {
	Order []string
}

func (Linearizable) isLinearizabilityResult() {}
func (l Linearizable) String() string {
	s := "linearizable: "
	for i, id := range l.Order {
		if i > 0 {
			s += " -> "
		}
		s += id
	}
	return s
}

// NotLinearizable reports no valid total order exists.
type NotLinearizable struct {
	Reason   string
	Conflict *ConflictPair
}

func (NotLinearizable) isLinearizabilityResult() {}
func (n NotLinearizable) String() string {
	if n.Conflict != nil {
		return "not linearizable: " + n.Reason + " (conflict: " + n.Conflict.First + ", " + n.Conflict.Second + ")"
	}
	return "not linearizable: " + n.Reason
}
