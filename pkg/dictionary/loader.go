/*
Package dictionary decodes the word dictionary that accompanies a triple
frequency file.

The file is a bare sequence of entries with no header or footer:

	[id uint32][len uint32][len bytes of text][padding]

Both integers use the host byte order. The padding after the text is
1 + (len+1) mod 4 bytes, which is not plain 4-byte alignment; it has to be
reproduced exactly or every following entry is misread.

Load scans the whole region once and builds an id-keyed Table whose entry
texts are zero-copy views into the region, so the region must stay open for
as long as the Table is in use.
*/
package dictionary

import (
	"encoding/binary"
	"slices"
	"time"

	"github.com/bastiangx/ngramserve/pkg/ngerr"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
)

const (
	// HeaderSize is the id and length prefix of every entry.
	HeaderSize = 8

	// UnknownID is what WordToID returns for a word that is not in the
	// dictionary. It is also a legal id, so a hit on id 0 and a miss look
	// the same; the file format gives no way to tell them apart.
	UnknownID uint32 = 0

	// ImpossibleID never appears in a valid dictionary.
	ImpossibleID uint32 = ^uint32(0)

	// minEntrySize feeds the capacity bound size/minEntrySize + 1. It is a
	// heuristic inherited from the producer, not a proof.
	minEntrySize = 6
)

// Source is anything that exposes a byte region, such as *mmap.Region.
type Source interface {
	Bytes() []byte
}

// Padding is the number of bytes that follow an entry text of length n.
func Padding(n uint32) int {
	return 1 + int((uint64(n)+1)%4)
}

// EntrySize is the distance from the start of an entry with text length n
// to the start of the next one.
func EntrySize(n uint32) int {
	return HeaderSize + int(n) + Padding(n)
}

// Capacity is the largest id count the loader accepts for a region of the
// given size. Declared ids at or above it are rejected as corrupt.
func Capacity(size int) uint64 {
	return uint64(size)/minEntrySize + 1
}

// Option configures Load.
type Option func(*loadOptions)

type loadOptions struct {
	capacityCheck bool
}

// WithCapacityCheck rejects any declared id at or above Capacity of the
// region, the bound the producer's own reader sized its table with. Without
// it the id space is unbounded.
func WithCapacityCheck() Option {
	return func(o *loadOptions) { o.capacityCheck = true }
}

// Load decodes every entry of src into a Table.
//
// A header or text that runs past the end of the region is a
// *ngerr.TruncatedFileError. Padding that runs past the end after the last
// entry simply ends the scan. With WithCapacityCheck, a declared id at or
// above Capacity is a *ngerr.CorruptFormatError. When an id repeats, the
// later entry wins.
func Load(src Source, opts ...Option) (*Table, error) {
	var o loadOptions
	for _, opt := range opts {
		opt(&o)
	}

	start := time.Now()
	data := src.Bytes()
	size := len(data)
	capacity := Capacity(size)

	t := &Table{
		entries:  make(map[uint32]Entry),
		capacity: capacity,
	}

	off := 0
	for off < size {
		if size-off < HeaderSize {
			return nil, &ngerr.TruncatedFileError{
				What:   "dictionary entry header",
				Offset: int64(off),
				Need:   HeaderSize,
				Have:   int64(size - off),
			}
		}
		id := binary.NativeEndian.Uint32(data[off:])
		n := binary.NativeEndian.Uint32(data[off+4:])

		text := off + HeaderSize
		if uint64(n) > uint64(size-text) {
			return nil, &ngerr.TruncatedFileError{
				What:   "dictionary entry text",
				Offset: int64(text),
				Need:   int64(n),
				Have:   int64(size - text),
			}
		}
		if o.capacityCheck && uint64(id) >= capacity {
			return nil, &ngerr.CorruptFormatError{
				What:   "dictionary",
				Offset: int64(off),
				Detail: "id " + humanize.Comma(int64(id)) + " exceeds capacity " + humanize.Comma(int64(capacity)),
			}
		}

		end := text + int(n)
		t.entries[id] = Entry{ID: id, Text: data[text:end:end]}
		t.scanned++
		off = end + Padding(n)
	}

	t.ids = make([]uint32, 0, len(t.entries))
	for id := range t.entries {
		t.ids = append(t.ids, id)
	}
	slices.Sort(t.ids)

	log.Debugf("Loaded dictionary: %s entries (%s scanned) from %s in %v",
		humanize.Comma(int64(len(t.ids))), humanize.Comma(int64(t.scanned)),
		humanize.IBytes(uint64(size)), time.Since(start))
	return t, nil
}
