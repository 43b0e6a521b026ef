package prop

import "fmt"

// PropertyError is the closed taxonomy of errors the engine can surface.
// It is modeled the idiomatic Go way for a closed sum: an interface with
// an unexported marker method, implemented only by the concrete types
// below, so no external package can add a new variant.
type PropertyError interface {
	error
	isPropertyError()
}

// PropertyFailed reports that the property itself returned false/Err (or
// panicked) for a given input.
type PropertyFailed struct {
	Message   string
	Context   string
	Iteration *int
}

func (e PropertyFailed) isPropertyError() {}
func (e PropertyFailed) Error() string {
	if e.Iteration != nil {
		return fmt.Sprintf("property failed at iteration %d: %s", *e.Iteration, e.Message)
	}
	return fmt.Sprintf("property failed: %s", e.Message)
}

// GenerationFailed reports that a generator could not produce a value —
// either it panicked, or a bounded combinator (Filter) exhausted its
// rejection budget.
type GenerationFailed struct {
	Message string
	Context string
}

func (e GenerationFailed) isPropertyError() {}
func (e GenerationFailed) Error() string { return fmt.Sprintf("generation failed: %s", e.Message) }

// ShrinkageTimeout reports that the shrink engine exhausted its budget
// before it could find any failing candidate at all.
type ShrinkageTimeout struct {
	Iterations int
	LastShrink string
}

func (e ShrinkageTimeout) isPropertyError() {}
func (e ShrinkageTimeout) Error() string {
	return fmt.Sprintf("shrinking exhausted budget after %d iterations", e.Iterations)
}

// ConfigError reports an invalid TestConfig, surfaced at construction.
type ConfigError struct {
	Message string
	Field   string
}

func (e ConfigError) isPropertyError() {}
func (e ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid config field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid config: %s", e.Message)
}

// TestCancelled reports that the caller's runtime cancelled an async run.
type TestCancelled struct {
	Reason string
}

func (e TestCancelled) isPropertyError() {}
func (e TestCancelled) Error() string { return fmt.Sprintf("test cancelled: %s", e.Reason) }

// InternalError reports an engine-internal fault unrelated to the
// property or generator under test.
type InternalError struct {
	Message string
	Source  error
}

func (e InternalError) isPropertyError() {}
func (e InternalError) Error() string {
	if e.Source != nil {
		return fmt.Sprintf("internal error: %s: %v", e.Message, e.Source)
	}
	return fmt.Sprintf("internal error: %s", e.Message)
}

// enrichIteration returns e with Iteration filled in when e is a
// PropertyFailed missing one, matching §4.2.d's "enrich e with iteration i
// if absent".
func enrichIteration(err PropertyError, iteration int) PropertyError {
	pf, ok := err.(PropertyFailed)
	if !ok || pf.Iteration != nil {
		return err
	}
	pf.Iteration = &iteration
	return pf
}
