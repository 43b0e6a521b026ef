package gen

import (
	"math"
	"math/rand"
)

// floatShrinkInit is the generic shrink engine shared by Float32 and Float64
// (float.go / float64.go). NaN/Inf handling, bisection, and Nextafter
// stepping all live here once; the stdlib split between math.Nextafter and
// math.Nextafter32 is handled by nextafterFloat's type switch below, and
// the two width-specific files are thin wrappers around this engine.
func floatShrinkInit[T ~float32 | ~float64](start, min, max T, allowNaN, allowInf bool) (T, Shrinker[T]) {
	cur := clampFloat(start, min, max)
	last := cur

	queue := make([]T, 0, 32)
	seen := map[uint64]struct{}{floatKey(cur): {}}

	push := func(x T) {
		if floatIsNaN(x) && !allowNaN {
			return
		}
		if floatIsInf(x) && !allowInf {
			return
		}
		if floatIsFinite(x) && floatIsFinite(min) && floatIsFinite(max) {
			if x < min || x > max {
				return
			}
		}
		k := floatKey(x)
		if _, ok := seen[k]; ok {
			return
		}
		seen[k] = struct{}{}
		queue = append(queue, x)
	}

	grow := func(base T) {
		queue = queue[:0]

		if floatIsNaN(base) {
			push(0)
			push(1)
			push(-1)
			if allowInf {
				push(floatInf[T](+1))
				push(floatInf[T](-1))
			}
			if floatIsFinite(min) {
				push(min)
			}
			if floatIsFinite(max) {
				push(max)
			}
			return
		}
		if floatIsInf(base) {
			if floatInfSign(base) > 0 && floatIsFinite(max) {
				push(max)
			}
			if floatInfSign(base) < 0 && floatIsFinite(min) {
				push(min)
			}
			push(0)
			return
		}

		// Finite
		target := floatTarget(min, max)
		if base != target {
			push(target)

			next := midpointTowardsFloat(base, target)
			if next != base {
				push(next)
			}
			series := next
			for i := 0; i < 8 && series != target; i++ {
				series = midpointTowardsFloat(series, target)
				if series != base {
					push(series)
				}
			}

			step := nextafterFloat(base, target)
			if step != base {
				push(step)
			}
		}

		// try to flip sign if target=0
		if target == 0 && base != 0 {
			push(-base)
		}

		if floatIsFinite(min) && base != min {
			push(min)
		}
		if floatIsFinite(max) && base != max {
			push(max)
		}
	}
	grow(cur)

	pop := func() (T, bool) {
		if len(queue) == 0 {
			return 0, false
		}
		if shrinkStrategy == ShrinkStrategyDFS {
			v := queue[len(queue)-1]
			queue = queue[:len(queue)-1]
			return v, true
		}
		v := queue[0]
		queue = queue[1:]
		return v, true
	}

	return cur, func(accept bool) (T, bool) {
		if accept && floatKey(last) != floatKey(cur) {
			cur = last
			grow(cur)
		}
		nxt, ok := pop()
		if !ok {
			return 0, false
		}
		last = nxt
		return nxt, true
	}
}

// floatIsFinite reports whether x is neither NaN nor ±Inf, for either float width.
func floatIsFinite[T ~float32 | ~float64](x T) bool {
	switch v := any(x).(type) {
	case float32:
		return !math.IsNaN(float64(v)) && !math.IsInf(float64(v), 0)
	default:
		f := any(x).(float64)
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	}
}

func floatIsNaN[T ~float32 | ~float64](x T) bool {
	switch v := any(x).(type) {
	case float32:
		return math.IsNaN(float64(v))
	default:
		return math.IsNaN(any(x).(float64))
	}
}

func floatIsInf[T ~float32 | ~float64](x T) bool {
	switch v := any(x).(type) {
	case float32:
		return math.IsInf(float64(v), 0)
	default:
		return math.IsInf(any(x).(float64), 0)
	}
}

// floatInfSign returns +1 for +Inf and -1 for -Inf; callers only invoke it
// once floatIsInf(x) is known true.
func floatInfSign[T ~float32 | ~float64](x T) int {
	switch v := any(x).(type) {
	case float32:
		if math.IsInf(float64(v), 1) {
			return 1
		}
		return -1
	default:
		if math.IsInf(any(x).(float64), 1) {
			return 1
		}
		return -1
	}
}

// floatInf builds a signed infinity of type T without a generic math.Inf.
func floatInf[T ~float32 | ~float64](sign int) T {
	var zero T
	switch any(zero).(type) {
	case float32:
		return T(float32(math.Inf(sign)))
	default:
		return T(math.Inf(sign))
	}
}

// floatKey is a dedup key valid across both widths: widening float32 -> float64
// is always lossless, so the bit pattern of the widened value is a faithful,
// collision-free fingerprint of the original.
func floatKey[T ~float32 | ~float64](x T) uint64 {
	switch v := any(x).(type) {
	case float32:
		return math.Float64bits(float64(v))
	default:
		return math.Float64bits(any(x).(float64))
	}
}

// nextafterFloat steps x one representable value towards target, dispatching
// to whichever of math.Nextafter32/math.Nextafter matches T (the stdlib has
// no generic "next representable float").
func nextafterFloat[T ~float32 | ~float64](x, target T) T {
	switch v := any(x).(type) {
	case float32:
		return T(math.Nextafter32(v, any(target).(float32)))
	default:
		return T(math.Nextafter(any(x).(float64), any(target).(float64)))
	}
}

func clampFloat[T ~float32 | ~float64](x, min, max T) T {
	if !floatIsFinite(x) {
		return x
	}
	if floatIsFinite(min) && x < min {
		return min
	}
	if floatIsFinite(max) && x > max {
		return max
	}
	return x
}

// floatTarget returns the natural shrink target: 0 if it's in [min,max],
// otherwise whichever bound has the smaller magnitude.
func floatTarget[T ~float32 | ~float64](min, max T) T {
	if floatIsFinite(min) && floatIsFinite(max) && min <= 0 && 0 <= max {
		return 0
	}
	if !floatIsFinite(min) && !floatIsFinite(max) {
		return 0
	}
	amin, amax := floatAbs(min), floatAbs(max)
	if amin < amax {
		return min
	}
	return max
}

func floatAbs[T ~float32 | ~float64](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

func midpointTowardsFloat[T ~float32 | ~float64](a, b T) T {
	if a == b {
		return a
	}
	return a + (b-a)/2
}

// uniformFloat generates a uniform random value of width T in [min, max],
// falling back to [-100, 100] when the range isn't usable.
func uniformFloat[T ~float32 | ~float64](r *rand.Rand, min, max T) T {
	if floatIsFinite(min) && floatIsFinite(max) && max >= min {
		if min == max {
			return min
		}
		return min + T(r.Float64())*(max-min)
	}
	return T(-100 + r.Float64()*200)
}

// autoRangeFloat folds local/runner Size into a symmetric [-M, M] range.
func autoRangeFloat[T ~float32 | ~float64](local, fromRunner Size) (T, T) {
	M := 0
	for _, s := range []Size{local, fromRunner} {
		if a := absInt(s.Min); a > M {
			M = a
		}
		if a := absInt(s.Max); a > M {
			M = a
		}
	}
	if M == 0 {
		M = 100
	}
	return -T(M), T(M)
}
