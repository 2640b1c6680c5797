package ngram

import (
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
)

// SpanIndex holds, for each run of consecutive records sharing an id0, the
// length of the run, in file order. It stores counts only: the id0 of a
// span is read back from the first record of that span in the store, so the
// index is tied to the store it was built from.
type SpanIndex struct {
	spans   []uint32
	starts  []int
	records int
}

// Build scans s once and records every run length.
func Build(s *Store) *SpanIndex {
	start := time.Now()
	idx := &SpanIndex{records: s.n}
	if s.n == 0 {
		return idx
	}

	prev := s.id0(0)
	first := 0
	for i := 1; i < s.n; i++ {
		id0 := s.id0(i)
		if id0 != prev {
			idx.spans = append(idx.spans, uint32(i-first))
			idx.starts = append(idx.starts, first)
			first = i
			prev = id0
		}
	}
	idx.spans = append(idx.spans, uint32(s.n-first))
	idx.starts = append(idx.starts, first)

	log.Debugf("Span index built: %s spans over %s records in %v",
		humanize.Comma(int64(len(idx.spans))), humanize.Comma(int64(s.n)), time.Since(start))
	return idx
}

// Len is the number of spans.
func (idx *SpanIndex) Len() int { return len(idx.spans) }

// Records is the sum of all span lengths.
func (idx *SpanIndex) Records() int { return idx.records }

// Spans returns a copy of the run lengths.
func (idx *SpanIndex) Spans() []uint32 {
	out := make([]uint32, len(idx.spans))
	copy(out, idx.spans)
	return out
}

// covers reports whether idx was built over a store of the same length.
func (idx *SpanIndex) covers(s *Store) bool {
	return idx != nil && idx.records == s.n
}

// Range locates the records whose id0 equals id0 as the half-open range
// [lo, hi). On an unsorted store the answer is unreliable but the call
// stays in bounds.
func (idx *SpanIndex) Range(s *Store, id0 uint32) (lo, hi int, ok bool) {
	if !idx.covers(s) || len(idx.spans) == 0 {
		return 0, 0, false
	}
	i := sort.Search(len(idx.starts), func(i int) bool {
		return s.id0(idx.starts[i]) >= id0
	})
	if i == len(idx.starts) || s.id0(idx.starts[i]) != id0 {
		return 0, 0, false
	}
	lo = idx.starts[i]
	return lo, lo + int(idx.spans[i]), true
}
