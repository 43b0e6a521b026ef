package gen

import (
	"fmt"
	"math/rand"
)

// MapOf generates map[K]V with length controlled by size (Min/Max entries,
// defaulting to [0, 16] like SliceOf). Shrink order: empty map first, then
// per-entry removal, then per-value shrink, then per-key shrink — a
// shrunk key is only accepted if it does not collide with a key already
// present in the candidate.
func MapOf[K comparable, V any](keyGen Generator[K], valGen Generator[V], size Size) Generator[map[K]V] {
	return From(func(r *rand.Rand, sz Size) (map[K]V, Shrinker[map[K]V]) {
		if r == nil {
			r = rand.New(rand.NewSource(rand.Int63()))
		}
		if size.Min == 0 && size.Max == 0 {
			size.Min, size.Max = 0, 16
		}
		if sz.Min != 0 || sz.Max != 0 {
			size = sz
		}
		if size.Max < size.Min {
			size.Max = size.Min
		}
		n := size.Min
		if size.Max > size.Min {
			n += r.Intn(size.Max - size.Min + 1)
		}

		type entry struct {
			k K
			v V
			ks Shrinker[K]
			vs Shrinker[V]
		}
		entries := make([]entry, 0, n)
		seenKeys := map[K]struct{}{}
		for len(entries) < n {
			k, ks := keyGen.Generate(r, Size{})
			if _, dup := seenKeys[k]; dup {
				continue
			}
			seenKeys[k] = struct{}{}
			v, vs := valGen.Generate(r, sz)
			entries = append(entries, entry{k, v, ks, vs})
		}

		build := func(es []entry) map[K]V {
			m := make(map[K]V, len(es))
			for _, e := range es {
				m[e.k] = e.v
			}
			return m
		}
		mapSig := func(es []entry) string { return fmt.Sprintf("%#v", build(es)) }

		cur := entries
		queue := make([][]entry, 0, 32)
		seen := map[string]struct{}{mapSig(cur): {}}
		var last []entry

		push := func(es []entry) {
			k := mapSig(es)
			if _, ok := seen[k]; ok {
				return
			}
			seen[k] = struct{}{}
			cp := append([]entry(nil), es...)
			queue = append(queue, cp)
		}

		grow := func(base []entry) {
			queue = queue[:0]
			L := len(base)
			if L == 0 {
				return
			}
			// (1) empty
			push(nil)
			// (2) per-entry removal
			for i := L - 1; i >= 0; i-- {
				out := append([]entry(nil), base[:i]...)
				out = append(out, base[i+1:]...)
				push(out)
			}
			// (3) per-value shrink
			for i := L - 1; i >= 0; i-- {
				if base[i].vs == nil {
					continue
				}
				if nv, ok := base[i].vs(false); ok {
					cand := append([]entry(nil), base...)
					cand[i].v = nv
					push(cand)
				}
			}
			// (4) per-key shrink, skipping collisions with keys already present
			for i := L - 1; i >= 0; i-- {
				if base[i].ks == nil {
					continue
				}
				if nk, ok := base[i].ks(false); ok {
					collides := false
					for j, e := range base {
						if j != i && e.k == nk {
							collides = true
							break
						}
					}
					if collides {
						continue
					}
					cand := append([]entry(nil), base...)
					cand[i].k = nk
					push(cand)
				}
			}
		}
		grow(cur)

		pop := func() ([]entry, bool) {
			if len(queue) == 0 {
				return nil, false
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

		return build(cur), func(accept bool) (map[K]V, bool) {
			if accept && last != nil && mapSig(last) != mapSig(cur) {
				cur = last
				grow(cur)
			}
			nxt, ok := pop()
			if !ok {
				return nil, false
			}
			last = nxt
			return build(nxt), true
		}
	})
}

// SetOf generates map[T]struct{}-backed sets (rendered as []T, sorted by
// generation order) with length controlled by size. Shrink order: empty
// set first, then per-element removal, then per-element shrink — a shrunk
// element is only accepted if it does not collide with an element already
// present in the candidate.
func SetOf[T comparable](elem Generator[T], size Size) Generator[[]T] {
	return From(func(r *rand.Rand, sz Size) ([]T, Shrinker[[]T]) {
		if r == nil {
			r = rand.New(rand.NewSource(rand.Int63()))
		}
		if size.Min == 0 && size.Max == 0 {
			size.Min, size.Max = 0, 16
		}
		if sz.Min != 0 || sz.Max != 0 {
			size = sz
		}
		if size.Max < size.Min {
			size.Max = size.Min
		}
		n := size.Min
		if size.Max > size.Min {
			n += r.Intn(size.Max - size.Min + 1)
		}

		type member struct {
			v T
			s Shrinker[T]
		}
		members := make([]member, 0, n)
		present := map[T]struct{}{}
		attempts := 0
		for len(members) < n && attempts < n*20+20 {
			attempts++
			v, s := elem.Generate(r, sz)
			if _, dup := present[v]; dup {
				continue
			}
			present[v] = struct{}{}
			members = append(members, member{v, s})
		}

		render := func(ms []member) []T {
			out := make([]T, len(ms))
			for i, m := range ms {
				out[i] = m.v
			}
			return out
		}
		setSig := func(ms []member) string { return fmt.Sprintf("%#v", render(ms)) }

		cur := members
		queue := make([][]member, 0, 32)
		seen := map[string]struct{}{setSig(cur): {}}
		var last []member

		push := func(ms []member) {
			k := setSig(ms)
			if _, ok := seen[k]; ok {
				return
			}
			seen[k] = struct{}{}
			cp := append([]member(nil), ms...)
			queue = append(queue, cp)
		}

		grow := func(base []member) {
			queue = queue[:0]
			L := len(base)
			if L == 0 {
				return
			}
			push(nil)
			for i := L - 1; i >= 0; i-- {
				out := append([]member(nil), base[:i]...)
				out = append(out, base[i+1:]...)
				push(out)
			}
			for i := L - 1; i >= 0; i-- {
				if base[i].s == nil {
					continue
				}
				if nv, ok := base[i].s(false); ok {
					collides := false
					for j, m := range base {
						if j != i && m.v == nv {
							collides = true
							break
						}
					}
					if collides {
						continue
					}
					cand := append([]member(nil), base...)
					cand[i].v = nv
					push(cand)
				}
			}
		}
		grow(cur)

		pop := func() ([]member, bool) {
			if len(queue) == 0 {
				return nil, false
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

		return render(cur), func(accept bool) ([]T, bool) {
			if accept && last != nil && setSig(last) != setSig(cur) {
				cur = last
				grow(cur)
			}
			nxt, ok := pop()
			if !ok {
				return nil, false
			}
			last = nxt
			return render(nxt), true
		}
	})
}
