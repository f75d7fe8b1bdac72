// Package interval implements block height range algebra used to track indexing coverage.
package interval

import (
	"math"
	"slices"

	"github.com/goodnatureofminers/blockinsight7000-validator/internal/model"
)

// MergeToRanges sorts heights and folds consecutive values into ranges.
// Duplicate heights are ignored.
func MergeToRanges(heights []uint64) []model.BlockRange {
	if len(heights) == 0 {
		return nil
	}
	sorted := slices.Clone(heights)
	slices.Sort(sorted)

	ranges := make([]model.BlockRange, 0, 1)
	current := model.BlockRange{Start: sorted[0], End: sorted[0]}
	for _, h := range sorted[1:] {
		switch {
		case h == current.End:
		case h == current.End+1:
			current.End = h
		default:
			ranges = append(ranges, current)
			current = model.BlockRange{Start: h, End: h}
		}
	}
	return append(ranges, current)
}

// Normalize sorts ranges and merges overlapping or adjacent ones.
func Normalize(ranges []model.BlockRange) []model.BlockRange {
	if len(ranges) == 0 {
		return nil
	}
	sorted := sortByStart(ranges)
	out := make([]model.BlockRange, 0, len(sorted))
	current := sorted[0]
	for _, r := range sorted[1:] {
		if current.End == math.MaxUint64 || r.Start <= current.End+1 {
			current.End = max(current.End, r.End)
			continue
		}
		out = append(out, current)
		current = r
	}
	return append(out, current)
}

// Complement returns every height in [1, maxHeight] not covered by ranges.
// Ranges may be unsorted and may overlap.
func Complement(maxHeight uint64, ranges []model.BlockRange) []uint64 {
	var out []uint64
	next := uint64(1)
	for _, r := range sortByStart(ranges) {
		if next > maxHeight {
			return out
		}
		if r.End < next {
			continue
		}
		for h := next; h < r.Start && h <= maxHeight; h++ {
			out = append(out, h)
		}
		if r.End == math.MaxUint64 {
			return out
		}
		next = r.End + 1
	}
	for h := next; h <= maxHeight; h++ {
		out = append(out, h)
	}
	return out
}

// Gaps returns the intervals strictly between consecutive ranges. Ranges must be
// sorted by start; overlaps are absorbed.
func Gaps(ranges []model.BlockRange) []model.BlockRange {
	if len(ranges) < 2 {
		return nil
	}
	var gaps []model.BlockRange
	coveredEnd := ranges[0].End
	for _, r := range ranges[1:] {
		if coveredEnd < math.MaxUint64 && r.Start > coveredEnd+1 {
			gaps = append(gaps, model.BlockRange{Start: coveredEnd + 1, End: r.Start - 1})
		}
		coveredEnd = max(coveredEnd, r.End)
	}
	return gaps
}

// NextExcludedHeight returns the height following the range that contains n, or n
// itself when no range covers it. An empty set of ranges yields 1.
func NextExcludedHeight(ranges []model.BlockRange, n uint64) uint64 {
	if len(ranges) == 0 {
		return 1
	}
	for _, r := range ranges {
		if r.Contains(n) {
			return r.End + 1
		}
	}
	return n
}

// TotalCovered sums the sizes of ranges.
func TotalCovered(ranges []model.BlockRange) uint64 {
	var total uint64
	for _, r := range ranges {
		total += r.Size()
	}
	return total
}

// Insert adds height to sorted, merged ranges and returns the merged result.
func Insert(ranges []model.BlockRange, height uint64) []model.BlockRange {
	idx, found := slices.BinarySearchFunc(ranges, height, func(r model.BlockRange, h uint64) int {
		switch {
		case r.End < h:
			return -1
		case r.Start > h:
			return 1
		default:
			return 0
		}
	})
	if found {
		return ranges
	}

	out := slices.Clone(ranges)
	joinsLeft := idx > 0 && out[idx-1].End+1 == height
	joinsRight := idx < len(out) && height+1 == out[idx].Start
	switch {
	case joinsLeft && joinsRight:
		out[idx-1].End = out[idx].End
		return slices.Delete(out, idx, idx+1)
	case joinsLeft:
		out[idx-1].End = height
	case joinsRight:
		out[idx].Start = height
	default:
		out = slices.Insert(out, idx, model.BlockRange{Start: height, End: height})
	}
	return out
}

func sortByStart(ranges []model.BlockRange) []model.BlockRange {
	sorted := slices.Clone(ranges)
	slices.SortFunc(sorted, func(a, b model.BlockRange) int {
		switch {
		case a.Start < b.Start:
			return -1
		case a.Start > b.Start:
			return 1
		default:
			return 0
		}
	})
	return sorted
}
