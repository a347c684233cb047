// ABOUTME: Tests for the painted range cache
// ABOUTME: Covers gap computation, merging, invalidation and idempotence
package render

import (
	"reflect"
	"testing"
)

func TestRangeCache_EmptyReturnsFullRange(t *testing.T) {
	c := NewRangeCache()

	got := c.Add(100, 0, 20)
	want := []PixelRange{{Start: 0, End: 20}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Add on empty cache = %v, want %v", got, want)
	}
}

func TestRangeCache_Idempotence(t *testing.T) {
	c := NewRangeCache()

	first := c.Add(100, 5, 15)
	if !reflect.DeepEqual(first, []PixelRange{{Start: 5, End: 15}}) {
		t.Fatalf("first Add = %v, want [[5,15)]", first)
	}

	second := c.Add(100, 5, 15)
	if len(second) != 0 {
		t.Errorf("second identical Add = %v, want empty", second)
	}
}

func TestRangeCache_GapsBetweenExistingCoverage(t *testing.T) {
	c := NewRangeCache()
	c.Add(100, 10, 20)
	c.Add(100, 30, 40)

	// [5, 45) is covered on [10,20) and [30,40); the three gaps come back.
	got := c.Add(100, 5, 45)
	want := []PixelRange{
		{Start: 5, End: 10},
		{Start: 20, End: 30},
		{Start: 40, End: 45},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Add(5,45) = %v, want %v", got, want)
	}

	// Everything is now merged into a single entry covering [5, 45).
	if got := c.Add(100, 5, 45); len(got) != 0 {
		t.Errorf("repeat Add(5,45) = %v, want empty", got)
	}
}

func TestRangeCache_AdjacentRangesMerge(t *testing.T) {
	c := NewRangeCache()
	c.Add(100, 0, 10)
	c.Add(100, 10, 20)

	// Touching entries were merged eagerly, so the union is covered.
	if !c.Covered(0, 20) {
		t.Error("expected [0,20) to be covered after adjacent adds")
	}
	if got := c.Add(100, 0, 20); len(got) != 0 {
		t.Errorf("Add over merged coverage = %v, want empty", got)
	}
}

func TestRangeCache_WidthChangeInvalidates(t *testing.T) {
	c := NewRangeCache()
	c.Add(100, 0, 10)

	// A new total width maps every column to a different sample window, so
	// the same request comes back in full.
	got := c.Add(200, 0, 10)
	want := []PixelRange{{Start: 0, End: 10}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Add after width change = %v, want %v", got, want)
	}
}

func TestRangeCache_DegenerateRange(t *testing.T) {
	c := NewRangeCache()
	c.Add(100, 0, 10)

	if got := c.Add(100, 5, 5); got != nil {
		t.Errorf("degenerate Add = %v, want nil", got)
	}
	// No mutation: the prior coverage is intact, nothing new was recorded.
	if !c.Covered(0, 10) || c.Covered(10, 11) {
		t.Error("degenerate Add mutated the cache")
	}
}

func TestRangeCache_RequestInsideExisting(t *testing.T) {
	c := NewRangeCache()
	c.Add(100, 0, 50)

	if got := c.Add(100, 10, 40); len(got) != 0 {
		t.Errorf("Add inside coverage = %v, want empty", got)
	}
}

func TestRangeCache_Completeness(t *testing.T) {
	// Union of everything returned over time must equal the union of all
	// requests, with no column returned twice at a fixed width.
	c := NewRangeCache()
	requests := []PixelRange{
		{0, 10}, {5, 25}, {40, 60}, {20, 45}, {0, 60}, {55, 80},
	}

	returned := make(map[int]int)
	requested := make(map[int]bool)
	for _, req := range requests {
		for x := req.Start; x < req.End; x++ {
			requested[x] = true
		}
		for _, rng := range c.Add(1000, req.Start, req.End) {
			for x := rng.Start; x < rng.End; x++ {
				returned[x]++
			}
		}
	}

	for x := range requested {
		if returned[x] != 1 {
			t.Fatalf("column %d returned %d times, want exactly once", x, returned[x])
		}
	}
	for x := range returned {
		if !requested[x] {
			t.Fatalf("column %d returned but never requested", x)
		}
	}
}

func TestPixelRange_Intersect(t *testing.T) {
	tests := []struct {
		name   string
		a, b   PixelRange
		want   PixelRange
		wantOK bool
	}{
		{"overlap", PixelRange{0, 10}, PixelRange{5, 15}, PixelRange{5, 10}, true},
		{"contained", PixelRange{0, 20}, PixelRange{5, 10}, PixelRange{5, 10}, true},
		{"touching", PixelRange{0, 10}, PixelRange{10, 20}, PixelRange{}, false},
		{"disjoint", PixelRange{0, 5}, PixelRange{10, 20}, PixelRange{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.a.Intersect(tt.b)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Intersect = %v, %v; want %v, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
