package ngram

import (
	"fmt"

	"github.com/bastiangx/ngramserve/pkg/ngerr"
)

// Source is anything that exposes a byte region, such as *mmap.Region.
type Source interface {
	Bytes() []byte
}

// Store is a byte region viewed as an array of records. It does not own
// the region.
type Store struct {
	data []byte
	n    int
}

// AsRecords interprets src as records. A size that is not a whole number
// of records is a *ngerr.CorruptFormatError. Sort order is not checked.
func AsRecords(src Source) (*Store, error) {
	data := src.Bytes()
	if rem := len(data) % RecordSize; rem != 0 {
		return nil, &ngerr.CorruptFormatError{
			What:   "triple store",
			Offset: int64(len(data) - rem),
			Detail: fmt.Sprintf("size %d is not a multiple of %d", len(data), RecordSize),
		}
	}
	return &Store{data: data, n: len(data) / RecordSize}, nil
}

// Len is the number of records.
func (s *Store) Len() int { return s.n }

// Size is the region size in bytes.
func (s *Store) Size() int { return len(s.data) }

// At returns record i, or false if i is out of range.
func (s *Store) At(i int) (Record, bool) {
	if i < 0 || i >= s.n {
		return Record{}, false
	}
	return s.at(i), true
}

func (s *Store) at(i int) Record {
	off := i * RecordSize
	return decode(s.data[off : off+RecordSize : off+RecordSize])
}

func (s *Store) id0(i int) uint32 {
	return ByteOrder.Uint32(s.data[i*RecordSize:])
}

// Each calls fn for records in file order until fn returns false.
func (s *Store) Each(fn func(i int, r Record) bool) {
	for i := 0; i < s.n; i++ {
		if !fn(i, s.at(i)) {
			return
		}
	}
}

// Slice copies records [lo, hi) out of the region, clamped to the store.
func (s *Store) Slice(lo, hi int) []Record {
	lo = max(lo, 0)
	hi = min(hi, s.n)
	if lo >= hi {
		return nil
	}
	out := make([]Record, 0, hi-lo)
	for i := lo; i < hi; i++ {
		out = append(out, s.at(i))
	}
	return out
}

// IsSorted reports whether id0 never decreases. The span index is only
// meaningful when this holds.
func (s *Store) IsSorted() bool {
	for i := 1; i < s.n; i++ {
		if s.id0(i) < s.id0(i-1) {
			return false
		}
	}
	return true
}

func (s *Store) String() string {
	return fmt.Sprintf("ngram3map(size=%d)", len(s.data))
}
