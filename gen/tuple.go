package gen

import "math/rand"

// Tuple2 pairs two independently-shrinkable values.
type Tuple2[A, B any] struct {
	First  A
	Second B
}

// Tuple3 holds three independently-shrinkable values.
type Tuple3[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

// Tuple4 holds four independently-shrinkable values.
type Tuple4[A, B, C, D any] struct {
	First  A
	Second B
	Third  C
	Fourth D
}

// TupleOf2 generates a Tuple2 by composing two generators. Shrink tries
// each field independently, in declaration order (First, then Second), and
// finishes with one coordinated pass that shrinks both fields together —
// an optional second pass for properties where the fields are correlated
// and independent shrinking alone would stall.
func TupleOf2[A, B any](ga Generator[A], gb Generator[B]) Generator[Tuple2[A, B]] {
	return From(func(r *rand.Rand, sz Size) (Tuple2[A, B], Shrinker[Tuple2[A, B]]) {
		if r == nil {
			r = rand.New(rand.NewSource(rand.Int63()))
		}
		a, sa := ga.Generate(r, sz)
		b, sb := gb.Generate(r, sz)
		cur := Tuple2[A, B]{a, b}

		phase := 0 // 0: shrink A, 1: shrink B, 2: coordinated, 3: done
		coordDone := false

		return cur, func(accept bool) (Tuple2[A, B], bool) {
			if accept {
				cur = Tuple2[A, B]{a, b}
			}
			for {
				switch phase {
				case 0:
					na, ok := sa(accept)
					if !ok {
						phase = 1
						accept = false
						continue
					}
					a = na
					return Tuple2[A, B]{a, b}, true
				case 1:
					nb, ok := sb(accept)
					if !ok {
						phase = 2
						accept = false
						continue
					}
					b = nb
					return Tuple2[A, B]{a, b}, true
				case 2:
					if coordDone {
						phase = 3
						continue
					}
					coordDone = true
					na, okA := sa(false)
					nb, okB := sb(false)
					if !okA && !okB {
						phase = 3
						continue
					}
					if okA {
						a = na
					}
					if okB {
						b = nb
					}
					return Tuple2[A, B]{a, b}, true
				default:
					var z Tuple2[A, B]
					return z, false
				}
			}
		}
	})
}

// TupleOf3 generates a Tuple3, shrinking each field independently in
// declaration order.
func TupleOf3[A, B, C any](ga Generator[A], gb Generator[B], gc Generator[C]) Generator[Tuple3[A, B, C]] {
	return From(func(r *rand.Rand, sz Size) (Tuple3[A, B, C], Shrinker[Tuple3[A, B, C]]) {
		if r == nil {
			r = rand.New(rand.NewSource(rand.Int63()))
		}
		a, sa := ga.Generate(r, sz)
		b, sb := gb.Generate(r, sz)
		c, sc := gc.Generate(r, sz)
		cur := Tuple3[A, B, C]{a, b, c}

		phase := 0

		return cur, func(accept bool) (Tuple3[A, B, C], bool) {
			if accept {
				cur = Tuple3[A, B, C]{a, b, c}
			}
			for {
				switch phase {
				case 0:
					na, ok := sa(accept)
					if !ok {
						phase = 1
						accept = false
						continue
					}
					a = na
					return Tuple3[A, B, C]{a, b, c}, true
				case 1:
					nb, ok := sb(accept)
					if !ok {
						phase = 2
						accept = false
						continue
					}
					b = nb
					return Tuple3[A, B, C]{a, b, c}, true
				case 2:
					nc, ok := sc(accept)
					if !ok {
						phase = 3
						accept = false
						continue
					}
					c = nc
					return Tuple3[A, B, C]{a, b, c}, true
				default:
					var z Tuple3[A, B, C]
					return z, false
				}
			}
		}
	})
}

// TupleOf4 generates a Tuple4, shrinking each field independently in
// declaration order.
func TupleOf4[A, B, C, D any](ga Generator[A], gb Generator[B], gc Generator[C], gd Generator[D]) Generator[Tuple4[A, B, C, D]] {
	return From(func(r *rand.Rand, sz Size) (Tuple4[A, B, C, D], Shrinker[Tuple4[A, B, C, D]]) {
		if r == nil {
			r = rand.New(rand.NewSource(rand.Int63()))
		}
		a, sa := ga.Generate(r, sz)
		b, sb := gb.Generate(r, sz)
		c, sc := gc.Generate(r, sz)
		d, sd := gd.Generate(r, sz)
		cur := Tuple4[A, B, C, D]{a, b, c, d}

		phase := 0

		return cur, func(accept bool) (Tuple4[A, B, C, D], bool) {
			if accept {
				cur = Tuple4[A, B, C, D]{a, b, c, d}
			}
			for {
				switch phase {
				case 0:
					na, ok := sa(accept)
					if !ok {
						phase = 1
						accept = false
						continue
					}
					a = na
					return Tuple4[A, B, C, D]{a, b, c, d}, true
				case 1:
					nb, ok := sb(accept)
					if !ok {
						phase = 2
						accept = false
						continue
					}
					b = nb
					return Tuple4[A, B, C, D]{a, b, c, d}, true
				case 2:
					nc, ok := sc(accept)
					if !ok {
						phase = 3
						accept = false
						continue
					}
					c = nc
					return Tuple4[A, B, C, D]{a, b, c, d}, true
				case 3:
					nd, ok := sd(accept)
					if !ok {
						phase = 4
						accept = false
						continue
					}
					d = nd
					return Tuple4[A, B, C, D]{a, b, c, d}, true
				default:
					var z Tuple4[A, B, C, D]
					return z, false
				}
			}
		}
	})
}
