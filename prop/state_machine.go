package prop

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/lucaskalb/protest/gen"
)

// Command describes one operation a StateMachine can perform: a generator
// for its argument, how to apply it, and the predicates that guard and
// verify it. Precondition and Postcondition are both optional — a nil
// Precondition always holds; a nil Postcondition is never checked.
type Command[S, Cmd any] struct {
	Name         string
	Generator    gen.Generator[Cmd]
	Execute      func(state S, cmd Cmd) (S, error)
	Precondition func(state S, cmd Cmd) bool
	Postcondition func(from S, cmd Cmd, to S) bool
}

// StateMachine names the initial state and the available commands for a
// stateful property.
type StateMachine[S, Cmd any] struct {
	InitialState S
	Commands     []Command[S, Cmd]
}

// CommandSequence is a finite list of operations to execute in order.
// Origins records, for a sequence produced by commandSequenceGenerator,
// which Command index each element was generated from — this lets
// executeStateMachine dispatch to the exact Command that produced a step
// rather than re-guessing it from the value alone. Hand-built sequences
// (e.g. in a unit test) may leave Origins nil; execution then falls back
// to picking the first Command (in declaration order) whose Precondition
// holds for the current state, mirroring how a single-Command state
// machine behaves.
type CommandSequence[Cmd any] struct {
	Commands []Cmd
	Origins  []int
}

// StateTransition records one executed (or attempted) step.
type StateTransition[S, Cmd any] struct {
	Command   Cmd
	FromState S
	ToState   S
	Error     error
}

// StateMachineResult is the outcome of replaying a CommandSequence against
// a StateMachine from its InitialState.
type StateMachineResult[S, Cmd any] struct {
	FinalState       S
	ExecutionHistory []StateTransition[S, Cmd]
	SkippedCommands  []Cmd
}

// executeStateMachine replays sequence against sm from sm.InitialState.
// A step is executed against the Command named by its Origins entry, if
// present and in range; otherwise the first Command (by declaration
// order) whose Precondition holds for the current state and this step's
// value. A step for which no Command's precondition holds is recorded in
// SkippedCommands and does not advance the state. Execution never stops
// early on a Command returning an error — the transition is recorded with
// its error and the state is whatever Execute returned (by convention,
// unchanged on error), and the next step is attempted from there.
func executeStateMachine[S, Cmd any](sm StateMachine[S, Cmd], sequence CommandSequence[Cmd]) StateMachineResult[S, Cmd] {
	state := sm.InitialState
	result := StateMachineResult[S, Cmd]{FinalState: state}

	hasOrigins := len(sequence.Origins) == len(sequence.Commands) && len(sequence.Origins) > 0

	for j, cmd := range sequence.Commands {
		var chosen *Command[S, Cmd]

		if hasOrigins {
			idx := sequence.Origins[j]
			if idx >= 0 && idx < len(sm.Commands) {
				c := sm.Commands[idx]
				if c.Precondition == nil || c.Precondition(state, cmd) {
					chosen = &c
				}
			}
		} else {
			for i := range sm.Commands {
				c := sm.Commands[i]
				if c.Precondition == nil || c.Precondition(state, cmd) {
					chosen = &c
					break
				}
			}
		}

		if chosen == nil {
			result.SkippedCommands = append(result.SkippedCommands, cmd)
			continue
		}

		from := state
		to, err := chosen.Execute(state, cmd)
		result.ExecutionHistory = append(result.ExecutionHistory, StateTransition[S, Cmd]{
			Command: cmd, FromState: from, ToState: to, Error: err,
		})
		state = to
	}

	result.FinalState = state
	return result
}

// checkPostconditions walks result's ExecutionHistory and returns the
// first Postcondition violation found, formatted for reporting, or ""
// if every checked step's Postcondition held (or had none).
func checkPostconditions[S, Cmd any](sm StateMachine[S, Cmd], sequence CommandSequence[Cmd], result StateMachineResult[S, Cmd]) string {
	hasOrigins := len(sequence.Origins) == len(sequence.Commands) && len(sequence.Origins) > 0
	for j, t := range result.ExecutionHistory {
		if t.Error != nil {
			return fmt.Sprintf("step %d (%#v): execution error: %v", j, t.Command, t.Error)
		}
		var post func(S, Cmd, S) bool
		if hasOrigins && j < len(sequence.Origins) {
			idx := sequence.Origins[j]
			if idx >= 0 && idx < len(sm.Commands) {
				post = sm.Commands[idx].Postcondition
			}
		} else {
			for i := range sm.Commands {
				if sm.Commands[i].Precondition == nil || sm.Commands[i].Precondition(t.FromState, t.Command) {
					post = sm.Commands[i].Postcondition
					break
				}
			}
		}
		if post != nil && !post(t.FromState, t.Command, t.ToState) {
			return fmt.Sprintf("step %d (%#v): postcondition violated: %#v -> %#v", j, t.Command, t.FromState, t.ToState)
		}
	}
	return ""
}

// commandSequenceGenerator draws CommandSequence[Cmd] values by repeatedly
// picking a Command at random and invoking its Generator, recording each
// step's Origins index. It implements gen.Generator[CommandSequence[Cmd]].
type commandSequenceGenerator[S, Cmd any] struct {
	stateMachine StateMachine[S, Cmd]
	maxLength    int
}

func (g commandSequenceGenerator[S, Cmd]) Generate(r *rand.Rand, sz gen.Size) (CommandSequence[Cmd], gen.Shrinker[CommandSequence[Cmd]]) {
	if r == nil {
		r = rand.New(rand.NewSource(rand.Int63()))
	}
	effectiveMax := g.maxLength
	if effectiveMax <= 0 {
		effectiveMax = sz.Max
	}
	if effectiveMax <= 0 {
		effectiveMax = 10
	}

	n := 0
	if len(g.stateMachine.Commands) > 0 {
		n = r.Intn(effectiveMax + 1)
	}

	commands := make([]Cmd, n)
	origins := make([]int, n)
	for i := 0; i < n; i++ {
		idx := r.Intn(len(g.stateMachine.Commands))
		v, _ := g.stateMachine.Commands[idx].Generator.Generate(r, sz)
		commands[i], origins[i] = v, idx
	}
	cur := CommandSequence[Cmd]{Commands: commands, Origins: origins}

	return cur, sequenceShrinker(cur)
}

// sequenceShrinker implements the length-first shrink order shared by
// SliceOf: remove large blocks, then isolated elements (right to left).
// It does not attempt to shrink individual command values — the state
// machine's own delta-debugging pass (DeltaDebugSequence) handles finer
// reduction once a failing length has been found.
func sequenceShrinker[Cmd any](start CommandSequence[Cmd]) gen.Shrinker[CommandSequence[Cmd]] {
	cur := start
	queue := make([]CommandSequence[Cmd], 0, 16)
	var last CommandSequence[Cmd]

	remove := func(base CommandSequence[Cmd], i, j int) CommandSequence[Cmd] {
		cmds := append(append([]Cmd(nil), base.Commands[:i]...), base.Commands[j:]...)
		var origins []int
		if len(base.Origins) == len(base.Commands) {
			origins = append(append([]int(nil), base.Origins[:i]...), base.Origins[j:]...)
		}
		return CommandSequence[Cmd]{Commands: cmds, Origins: origins}
	}

	grow := func(base CommandSequence[Cmd]) {
		queue = queue[:0]
		L := len(base.Commands)
		if L == 0 {
			return
		}
		chunk := L / 2
		for chunk >= 1 {
			for i := 0; i+chunk <= L; i += chunk {
				queue = append(queue, remove(base, i, i+chunk))
			}
			chunk /= 2
		}
		for i := L - 1; i >= 0; i-- {
			queue = append(queue, remove(base, i, i+1))
		}
	}
	grow(cur)

	pop := func() (CommandSequence[Cmd], bool) {
		if len(queue) == 0 {
			return CommandSequence[Cmd]{}, false
		}
		if gen.GetShrinkStrategy() == gen.ShrinkStrategyDFS {
			v := queue[len(queue)-1]
			queue = queue[:len(queue)-1]
			return v, true
		}
		v := queue[0]
		queue = queue[1:]
		return v, true
	}

	return func(accept bool) (CommandSequence[Cmd], bool) {
		if accept && len(last.Commands) != 0 && len(last.Commands) != len(cur.Commands) {
			cur = last
			grow(cur)
		}
		nxt, ok := pop()
		if !ok {
			return CommandSequence[Cmd]{}, false
		}
		last = nxt
		return nxt, true
	}
}

// TestStateMachine runs sm as a property: generate CommandSequences,
// replay them, and fail if any step errors or violates its Command's
// Postcondition. On failure, the sequence is reduced with
// DeltaDebugSequence under precondition-preserving admissibility before
// being reported, matching S2's "minimal via delta-debug" scenario.
func TestStateMachine[S, Cmd any](t *testing.T, sm StateMachine[S, Cmd], cfg Config) {
	seed := cfg.effectiveSeed()
	r := rand.New(rand.NewSource(seed))
	gen.SetShrinkStrategy(cfg.ShrinkStrat)

	seqGen := commandSequenceGenerator[S, Cmd]{stateMachine: sm, maxLength: cfg.Generator.SizeHint}

	examples := cfg.Examples
	if examples <= 0 {
		examples = 100
	}

	t.Logf("[protest] state machine seed=%d examples=%d", seed, examples)

	for i := 0; i < examples; i++ {
		seq, _ := seqGen.Generate(r, gen.Size{})
		result := executeStateMachine(sm, seq)
		if msg := checkPostconditions(sm, seq, result); msg != "" {
			minimal := shrinkFailingSequence(sm, seq, cfg)
			t.Fatalf("[protest] state machine property failed; seed=%d example=%d\n%s\nminimal sequence: %#v",
				seed, i+1, msg, minimal.Commands)
			if cfg.StopOnFirstFailure {
				return
			}
		}
	}
}

// shrinkFailingSequence reduces a failing CommandSequence with
// DeltaDebugSequence, where a candidate is admissible only if replaying it
// produces zero SkippedCommands (every step's precondition held in turn —
// §3's definition of a valid operation sequence) and still fails.
// Inadmissible candidates are reported to DeltaDebugSequence as passing, so
// each one still uses one step of the shrink budget.
func shrinkFailingSequence[S, Cmd any](sm StateMachine[S, Cmd], original CommandSequence[Cmd], cfg Config) CommandSequence[Cmd] {
	test := func(cmds []Cmd) bool {
		candidate := CommandSequence[Cmd]{Commands: cmds}
		if len(original.Origins) == len(original.Commands) {
			// best-effort: keep origins aligned by position when the
			// candidate is a subsequence sharing positions with original
			candidate.Origins = alignOrigins(original, cmds)
		}
		result := executeStateMachine(sm, candidate)
		if len(result.SkippedCommands) > 0 {
			return false // inadmissible: treated as passing (still one budget step)
		}
		return checkPostconditions(sm, candidate, result) != ""
	}
	res := DeltaDebugSequence(original.Commands, test, cfg)
	final := CommandSequence[Cmd]{Commands: res.Minimal}
	if len(original.Origins) == len(original.Commands) {
		final.Origins = alignOrigins(original, res.Minimal)
	}
	return final
}

// alignOrigins maps a subsequence of original.Commands back to its
// corresponding Origins entries by matching the longest common prefix
// position-by-position; elements that cannot be aligned fall back to
// triggering the no-Origins dispatch path (returns nil).
func alignOrigins[Cmd any](original CommandSequence[Cmd], subset []Cmd) []int {
	// DeltaDebugSequence only ever removes elements (never reorders or
	// duplicates), so a simple two-pointer scan recovers the mapping.
	out := make([]int, 0, len(subset))
	oi := 0
	for _, c := range subset {
		matched := false
		for oi < len(original.Commands) {
			if any(c) == any(original.Commands[oi]) {
				out = append(out, original.Origins[oi])
				oi++
				matched = true
				break
			}
			oi++
		}
		if !matched {
			return nil
		}
	}
	return out
}
