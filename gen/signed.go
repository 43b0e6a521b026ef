package gen

// signedShrinkInit is the generic counterpart to unsignedShrinkInit (see
// unsigned.go) for signed integer types. int.go and int64.go both delegate
// to this core instead of carrying their own copy of the bisection/queue
// logic — the two types differ only in width, not in shrink strategy.
func signedShrinkInit[T ~int | ~int64](start, min, max T) (T, Shrinker[T]) {
	cur := clampSigned(start, min, max)
	last := cur

	queue := make([]T, 0, 16)
	seen := map[T]struct{}{cur: {}}

	push := func(x T) {
		if x < min || x > max {
			return
		}
		if _, ok := seen[x]; ok {
			return
		}
		seen[x] = struct{}{}
		queue = append(queue, x)
	}

	// neighbor heuristics, mirroring the unsigned engine's four-stage grow:
	// target, bisection series, unit step, bounds.
	grow := func(base T) {
		queue = queue[:0]
		target := signedShrinkTarget(min, max)

		if base != target {
			push(target)

			next := midpointTowardsSigned(base, target)
			if next != base {
				push(next)
			}
			series := next
			for i := 0; i < 8; i++ {
				if series == target {
					break
				}
				series = midpointTowardsSigned(series, target)
				if series != base {
					push(series)
				}
			}

			step := stepTowardsSigned(base, target)
			if step != base {
				push(step)
			}
		}

		if base != min {
			push(min)
		}
		if base != max {
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
		if accept && last != cur {
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

// signedShrinkTarget returns the natural shrink target: 0 if it's in range,
// otherwise whichever bound is closest to 0.
func signedShrinkTarget[T ~int | ~int64](min, max T) T {
	if min <= 0 && 0 <= max {
		return 0
	}
	if min > 0 {
		return min
	}
	return max
}

// midpointTowardsSigned bisects from a towards b, truncating the half-step
// towards a; when that half-step is zero it moves one full unit, so a
// single-unit gap still makes progress.
func midpointTowardsSigned[T ~int | ~int64](a, b T) T {
	if a == b {
		return a
	}
	d := b - a
	step := d / 2
	if step == 0 {
		if d > 0 {
			step = 1
		} else {
			step = -1
		}
	}
	return a + step
}

// stepTowardsSigned moves one unit from a towards b.
func stepTowardsSigned[T ~int | ~int64](a, b T) T {
	if a == b {
		return a
	}
	if b > a {
		return a + 1
	}
	return a - 1
}

func clampSigned[T ~int | ~int64](x, min, max T) T {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}

// autoRangeSigned folds local and runner-supplied Size into a symmetric
// [-M, M] range, defaulting to M=100 when neither supplies one.
func autoRangeSigned[T ~int | ~int64](local, fromRunner Size) (T, T) {
	M := 0
	for _, s := range []Size{local, fromRunner} {
		M = maxInt(M, absInt(s.Min))
		M = maxInt(M, absInt(s.Max))
	}
	if M == 0 {
		M = 100
	}
	return -T(M), T(M)
}
