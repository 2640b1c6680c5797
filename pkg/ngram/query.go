package ngram

import "github.com/charmbracelet/log"

// matches counts the id positions where r and t agree.
func matches(r, t Record) int {
	n := 0
	for i := range r.ID {
		if r.ID[i] == t.ID[i] {
			n++
		}
	}
	return n
}

// Freq returns the frequency of the triple t, or 0 if it is not stored.
func Freq(s *Store, t Record) uint32 {
	return freqIn(s, ToDiskOrder(t), 0, s.n)
}

// FreqIndexed is Freq restricted to the span of t's id0.
func FreqIndexed(s *Store, idx *SpanIndex, t Record) uint32 {
	if !usable(s, idx) {
		return Freq(s, t)
	}
	t = ToDiskOrder(t)
	lo, hi, ok := idx.Range(s, t.ID[0])
	if !ok {
		return 0
	}
	return freqIn(s, t, lo, hi)
}

func freqIn(s *Store, t Record, lo, hi int) uint32 {
	for i := lo; i < hi; i++ {
		r := s.at(i)
		if r.ID == t.ID {
			return r.Freq
		}
	}
	return 0
}

// Like returns every record that agrees with t in exactly two of the three
// id positions: (_,y,z), (x,_,z) or (x,y,_). Exact matches are not
// included.
func Like(s *Store, t Record) *Results {
	t = ToDiskOrder(t)
	rs := &Results{}
	for i := 0; i < s.n; i++ {
		r := s.at(i)
		if matches(r, t) == 2 {
			rs.Append(r)
		}
	}
	return rs
}

// LikeIndexed returns the same records as Like, in the same order. Inside
// the span of t's id0 the full two-of-three rule applies; every other span
// can only contribute (_,y,z) matches, so there only id1 and id2 are
// compared.
func LikeIndexed(s *Store, idx *SpanIndex, t Record) *Results {
	if !usable(s, idx) {
		return Like(s, t)
	}
	t = ToDiskOrder(t)
	lo, hi, ok := idx.Range(s, t.ID[0])
	if !ok {
		lo, hi = -1, -1
	}

	rs := &Results{}
	for i := 0; i < s.n; i++ {
		if i == lo {
			for ; i < hi; i++ {
				r := s.at(i)
				if matches(r, t) == 2 {
					rs.Append(r)
				}
			}
			i--
			continue
		}
		off := i * RecordSize
		if ByteOrder.Uint32(s.data[off+4:]) != t.ID[1] || ByteOrder.Uint32(s.data[off+8:]) != t.ID[2] {
			continue
		}
		if r := s.at(i); r.ID[0] != t.ID[0] {
			rs.Append(r)
		}
	}
	return rs
}

// Follows returns every record whose first two ids equal those of t: the
// observed continuations of a two-word prefix.
func Follows(s *Store, t Record) *Results {
	return followsIn(s, ToDiskOrder(t), 0, s.n)
}

// FollowsIndexed is Follows restricted to the span of t's id0.
func FollowsIndexed(s *Store, idx *SpanIndex, t Record) *Results {
	if !usable(s, idx) {
		return Follows(s, t)
	}
	t = ToDiskOrder(t)
	lo, hi, ok := idx.Range(s, t.ID[0])
	if !ok {
		return &Results{}
	}
	return followsIn(s, t, lo, hi)
}

func followsIn(s *Store, t Record, lo, hi int) *Results {
	rs := &Results{}
	for i := lo; i < hi; i++ {
		r := s.at(i)
		if r.ID[0] == t.ID[0] && r.ID[1] == t.ID[1] {
			rs.Append(r)
		}
	}
	return rs
}

// PrefixFreq sums the frequencies of every record whose leading ids equal
// ids. One id gives the total for a first word, two for a two-word prefix,
// three for an exact triple (duplicates summed). With no ids it returns the
// total of the whole store, and more than three ids match nothing. idx may
// be nil.
func PrefixFreq(s *Store, idx *SpanIndex, ids ...uint32) uint64 {
	if len(ids) > 3 {
		return 0
	}
	lo, hi := 0, s.n
	if len(ids) > 0 && usable(s, idx) {
		var ok bool
		if lo, hi, ok = idx.Range(s, ids[0]); !ok {
			return 0
		}
	}

	var total uint64
outer:
	for i := lo; i < hi; i++ {
		r := s.at(i)
		for j, id := range ids {
			if r.ID[j] != id {
				continue outer
			}
		}
		total += uint64(r.Freq)
	}
	return total
}

// TotalFreqs sums, for every id, the frequencies of the records it appears
// in. A record counts once per distinct id it contains.
func TotalFreqs(s *Store) map[uint32]uint64 {
	totals := make(map[uint32]uint64)
	for i := 0; i < s.n; i++ {
		r := s.at(i)
		totals[r.ID[0]] += uint64(r.Freq)
		if r.ID[1] != r.ID[0] {
			totals[r.ID[1]] += uint64(r.Freq)
		}
		if r.ID[2] != r.ID[0] && r.ID[2] != r.ID[1] {
			totals[r.ID[2]] += uint64(r.Freq)
		}
	}
	return totals
}

func usable(s *Store, idx *SpanIndex) bool {
	if idx == nil {
		return false
	}
	if !idx.covers(s) {
		log.Warnf("Span index covers %d records but store has %d, scanning linearly", idx.records, s.n)
		return false
	}
	return true
}
