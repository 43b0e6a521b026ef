package gen

import "math/rand"

// canonicalChars are the small, human-friendly runes Char prefers to shrink
// towards, in priority order.
var canonicalChars = []rune{'a', 'A', '0', ' '}

// Char generates a single rune uniformly in ['!', '~'] (printable ASCII,
// excluding space) when no explicit range is requested via CharRange.
func Char() Generator[rune] {
	return CharRange('!', '~')
}

// CharRange generates a rune uniformly in [lo, hi] (inclusive).
// Shrink order: canonical runes ('a', 'A', '0', ' ') that fall inside
// [lo, hi], tried first; then binary halving of the code point towards lo.
func CharRange(lo, hi rune) Generator[rune] {
	if hi < lo {
		lo, hi = hi, lo
	}
	return From(func(r *rand.Rand, _ Size) (rune, Shrinker[rune]) {
		if r == nil {
			r = rand.New(rand.NewSource(rand.Int63()))
		}
		v := lo + rune(r.Intn(int(hi-lo)+1))
		return charShrinkInit(v, lo, hi)
	})
}

func charShrinkInit(start, lo, hi rune) (rune, Shrinker[rune]) {
	cur := clampRune(start, lo, hi)
	last := cur

	queue := make([]rune, 0, 8)
	seen := map[rune]struct{}{cur: {}}

	push := func(c rune) {
		if c < lo || c > hi {
			return
		}
		if _, ok := seen[c]; ok {
			return
		}
		seen[c] = struct{}{}
		queue = append(queue, c)
	}

	grow := func(base rune) {
		queue = queue[:0]
		for _, c := range canonicalChars {
			if c != base {
				push(c)
			}
		}
		// binary halving of the code point towards lo
		cp := int(base)
		target := int(lo)
		for cp != target {
			next := cp - (cp-target+1)/2
			if next == cp {
				break
			}
			if rune(next) != base {
				push(rune(next))
			}
			cp = next
		}
	}
	grow(cur)

	pop := func() (rune, bool) {
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

	return cur, func(accept bool) (rune, bool) {
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

func clampRune(c, lo, hi rune) rune {
	if c < lo {
		return lo
	}
	if c > hi {
		return hi
	}
	return c
}
