package prop

import "fmt"

// FormatFailure renders a TestFailure the way §7's "User-visible
// behavior" mandates: a summary that always includes
// {seed, original_input, minimal_input, error_message}, enough on its own
// to reproduce the failure. Ported from the Rust original's
// ErrorReporter::format_failure.
func FormatFailure[T any](seed int64, f TestFailure[T]) string {
	minimal := f.OriginalInput
	if f.HasMinimal {
		minimal = f.MinimalInput
	}
	return fmt.Sprintf(
		"property failed; seed=%d iteration=%d shrink_steps=%d elapsed=%s shrink_elapsed=%s\n"+
			"original:  %#v\n"+
			"minimal:   %#v\n"+
			"error:     %s",
		seed, f.Iteration, f.ShrinkSteps, f.Elapsed, f.ShrinkElapsed,
		f.OriginalInput, minimal, f.Err.Error(),
	)
}

// FormatSummary renders a TestSuccess's aggregate stats, when present.
func FormatSummary(seed int64, s TestSuccess) string {
	if s.Stats == nil {
		return fmt.Sprintf("ok; seed=%d iterations=%d", seed, s.Iterations)
	}
	return fmt.Sprintf(
		"ok; seed=%d iterations=%d numeric=[%.2f, %.2f] mean=%.2f distinct_chars=%d",
		seed, s.Iterations, s.Stats.NumericMin, s.Stats.NumericMax,
		s.Stats.NumericMean(), len(s.Stats.CharsSeen),
	)
}
