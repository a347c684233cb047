// ABOUTME: Painted pixel-range bookkeeping for partial redraws
// ABOUTME: Tracks disjoint painted intervals and reports uncovered gaps
package render

import "sort"

// PixelRange is a half-open interval [Start, End) of pixel columns.
type PixelRange struct {
	Start int
	End   int
}

// Len returns the number of columns covered by the range.
func (r PixelRange) Len() int {
	return r.End - r.Start
}

// Intersect returns the overlap of two ranges and whether it is non-empty.
func (r PixelRange) Intersect(o PixelRange) (PixelRange, bool) {
	out := PixelRange{Start: max(r.Start, o.Start), End: min(r.End, o.End)}
	if out.Start >= out.End {
		return PixelRange{}, false
	}
	return out, true
}

// RangeCache tracks which pixel ranges have already been painted for the
// current total width. Entries are kept sorted by Start and eagerly merged so
// no two entries touch or overlap. Changing the total width discards all
// prior entries, because every pixel column then maps to a different sample
// window.
type RangeCache struct {
	width   int
	painted []PixelRange
}

// NewRangeCache creates an empty cache.
func NewRangeCache() *RangeCache {
	return &RangeCache{}
}

// Add returns the minimal disjoint sub-ranges of [start, end) not already
// painted at totalWidth, then marks all of [start, end) as painted. A
// degenerate request (start >= end) returns nil without mutating the cache.
func (c *RangeCache) Add(totalWidth, start, end int) []PixelRange {
	if totalWidth != c.width {
		c.width = totalWidth
		c.painted = c.painted[:0]
	}
	if start >= end {
		return nil
	}

	missing := c.gaps(start, end)
	c.insert(start, end)
	return missing
}

// Covered reports whether every column of [start, end) is already painted at
// the current width.
func (c *RangeCache) Covered(start, end int) bool {
	if start >= end {
		return true
	}
	return len(c.gaps(start, end)) == 0
}

// Reset forgets everything, including the recorded width.
func (c *RangeCache) Reset() {
	c.width = 0
	c.painted = c.painted[:0]
}

// gaps computes the uncovered portions of [start, end) against the sorted
// painted set. Adjacency does not count as coverage here; it only matters
// for merging.
func (c *RangeCache) gaps(start, end int) []PixelRange {
	var out []PixelRange
	cur := start
	for _, e := range c.painted {
		if e.End <= cur {
			continue
		}
		if e.Start >= end {
			break
		}
		if e.Start > cur {
			out = append(out, PixelRange{Start: cur, End: min(e.Start, end)})
		}
		if e.End > cur {
			cur = e.End
		}
		if cur >= end {
			return out
		}
	}
	if cur < end {
		out = append(out, PixelRange{Start: cur, End: end})
	}
	return out
}

// insert merges [start, end) into the painted set, absorbing every entry
// that overlaps or touches it.
func (c *RangeCache) insert(start, end int) {
	merged := PixelRange{Start: start, End: end}
	keep := c.painted[:0]
	for _, e := range c.painted {
		if e.Start <= merged.End && e.End >= merged.Start {
			merged.Start = min(merged.Start, e.Start)
			merged.End = max(merged.End, e.End)
			continue
		}
		keep = append(keep, e)
	}
	c.painted = append(keep, merged)
	sort.Slice(c.painted, func(i, j int) bool {
		return c.painted[i].Start < c.painted[j].Start
	})
}
