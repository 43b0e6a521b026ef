package gen

import (
	"math/rand"
	"testing"
)

func TestArrayOf(t *testing.T) {
	intGen := Int(Size{Min: 0, Max: 10})
	gen := ArrayOf(intGen, 3)
	r := rand.New(rand.NewSource(123))

	value, shrink := gen.Generate(r, Size{})

	if len(value) != 3 {
		t.Errorf("ArrayOf().Generate() = %v (len=%d), expected length 3", value, len(value))
	}

	// Test that shrinker is not nil
	if shrink == nil {
		t.Error("ArrayOf().Generate() returned nil shrinker")
	}
}

func TestSliceOf(t *testing.T) {
	intGen := Int(Size{Min: 0, Max: 10})
	gen := SliceOf(intGen, Size{Min: 2, Max: 5})
	r := rand.New(rand.NewSource(123))

	value, shrink := gen.Generate(r, Size{})

	// Test that we get a slice
	if len(value) < 2 || len(value) > 5 {
		t.Errorf("SliceOf().Generate() = %v (len=%d), expected length 2-5", value, len(value))
	}

	// Test that shrinker is not nil
	if shrink == nil {
		t.Error("SliceOf().Generate() returned nil shrinker")
	}
}

func TestArrayOfRespectsDepthLimit(t *testing.T) {
	intGen := Int(Size{Min: 0, Max: 10})
	gen := ArrayOf(intGen, 3)
	r := rand.New(rand.NewSource(123))

	value, _ := gen.Generate(r, Size{MaxDepth: 1})
	if len(value) != 0 {
		t.Errorf("ArrayOf().Generate() at the depth limit = %v (len=%d), expected an empty array", value, len(value))
	}
}

func TestArrayOfDoesNotLeakOuterBoundsToElements(t *testing.T) {
	// Element values must not inherit the outer Size's Min/Max — that range
	// belongs to ArrayOf's own (irrelevant, since n is fixed) length
	// semantics, not to an unrelated element generator's value range.
	intGen := Int(Size{Min: 0, Max: 3})
	gen := ArrayOf(intGen, 20)
	r := rand.New(rand.NewSource(123))

	value, _ := gen.Generate(r, Size{Min: 1000, Max: 2000})
	for _, v := range value {
		if v < -3 || v > 3 {
			t.Fatalf("element %d fell outside the element generator's own range [-3,3]; outer Size leaked through", v)
		}
	}
}

func TestSliceShrinker(t *testing.T) {

	intGen := Int(Size{Min: 0, Max: 10})
	gen := SliceOf(intGen, Size{Min: 2, Max: 5})
	r := rand.New(rand.NewSource(123))

	value, shrink := gen.Generate(r, Size{})

	// Test that we get a slice
	if len(value) < 2 || len(value) > 5 {
		t.Errorf("SliceOf().Generate() = %v (len=%d), expected length 2-5", value, len(value))
	}

	// Test that shrinker is not nil
	if shrink == nil {
		t.Error("SliceOf().Generate() returned nil shrinker")
	}

	// Test shrinking behavior
	next, ok := shrink(false)
	if !ok {
		t.Error("Slice shrinker returned false on first call")
	}

	// Test that shrunk value is shorter or equal
	if len(next) > len(value) {
		t.Errorf("Slice shrinker returned longer slice: %v (len=%d) vs %v (len=%d)", next, len(next), value, len(value))
	}
}
