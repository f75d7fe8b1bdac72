package indexer

import (
	"slices"

	"github.com/goodnatureofminers/blockinsight7000-validator/internal/interval"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/model"
)

// IndexingState tracks coverage for one loop. It is owned by the loop goroutine.
type IndexingState struct {
	indexedRanges  []model.BlockRange
	unindexed      []uint64
	totalIndexed   uint64
	observedHeight uint64
}

// NewIndexingState derives coverage from stored ranges up to chainHeight.
func NewIndexingState(stored []model.BlockRange, chainHeight uint64) *IndexingState {
	ranges := interval.Normalize(stored)
	return &IndexingState{
		indexedRanges:  ranges,
		unindexed:      interval.Complement(chainHeight, ranges),
		totalIndexed:   interval.TotalCovered(ranges),
		observedHeight: chainHeight,
	}
}

// Observe extends the unindexed heights up to a newly seen chain height.
func (s *IndexingState) Observe(chainHeight uint64) {
	for h := s.observedHeight + 1; h <= chainHeight; h++ {
		if !s.covered(h) {
			s.unindexed = append(s.unindexed, h)
		}
	}
	s.observedHeight = max(s.observedHeight, chainHeight)
}

// NextUnindexed returns the lowest unindexed height not above limit.
func (s *IndexingState) NextUnindexed(limit uint64) (uint64, bool) {
	if len(s.unindexed) == 0 || s.unindexed[0] > limit {
		return 0, false
	}
	return s.unindexed[0], true
}

// MarkIndexed records a committed height.
func (s *IndexingState) MarkIndexed(height uint64) {
	if idx, ok := slices.BinarySearch(s.unindexed, height); ok {
		s.unindexed = slices.Delete(s.unindexed, idx, idx+1)
	}
	if s.covered(height) {
		return
	}
	s.indexedRanges = interval.Insert(s.indexedRanges, height)
	s.totalIndexed++
}

// IndexedRanges returns a copy of the covered ranges.
func (s *IndexingState) IndexedRanges() []model.BlockRange {
	return slices.Clone(s.indexedRanges)
}

// UnindexedHeights returns a copy of the known missing heights.
func (s *IndexingState) UnindexedHeights() []uint64 {
	return slices.Clone(s.unindexed)
}

// TotalIndexed returns the number of covered heights.
func (s *IndexingState) TotalIndexed() uint64 {
	return s.totalIndexed
}

func (s *IndexingState) covered(height uint64) bool {
	_, found := slices.BinarySearchFunc(s.indexedRanges, height, func(r model.BlockRange, h uint64) int {
		switch {
		case r.End < h:
			return -1
		case r.Start > h:
			return 1
		default:
			return 0
		}
	})
	return found
}
