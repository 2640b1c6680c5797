package ngram

// Results is the growable list returned by Like and Follows.
//
// Capacity starts at one and doubles each time the count reaches a power of
// two, so appends are amortised O(1). Records gives the matches alone;
// Terminated gives them followed by a zero-frequency sentinel for consumers
// that read until Freq == 0 instead of tracking a length.
type Results struct {
	buf []Record
	n   int
}

// Append adds r to the list.
func (rs *Results) Append(r Record) {
	rs.reserve()
	rs.buf[rs.n] = r
	rs.n++
}

// reserve makes room for one more record.
func (rs *Results) reserve() {
	if rs.n&(rs.n-1) != 0 || len(rs.buf) > rs.n {
		return
	}
	grown := 1
	if rs.n > 0 {
		grown = rs.n * 2
	}
	buf := make([]Record, grown)
	copy(buf, rs.buf[:rs.n])
	rs.buf = buf
}

// Len is the number of matches, sentinel excluded.
func (rs *Results) Len() int { return rs.n }

// Cap is the allocated capacity.
func (rs *Results) Cap() int { return len(rs.buf) }

// Records returns the matches without a sentinel.
func (rs *Results) Records() []Record { return rs.buf[:rs.n] }

// Terminated returns the matches followed by a record with Freq == 0. An
// empty result is just the sentinel.
func (rs *Results) Terminated() []Record {
	rs.reserve()
	rs.buf[rs.n] = Record{}
	return rs.buf[:rs.n+1]
}
