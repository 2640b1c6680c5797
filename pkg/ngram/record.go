/*
Package ngram reads a triple frequency file and answers queries over it.

The file is a headerless array of 16-byte records

	[id0 uint32][id1 uint32][id2 uint32][freq uint32]

in little-endian order, sorted ascending by id0. A Store interprets a byte
region as that array without copying it. A SpanIndex records how many
consecutive records share each id0, which lets Freq, Like and Follows
restrict their scans to one run of records instead of the whole file.

Queries never fail on a miss: an absent triple has frequency zero and an
empty result list is a valid answer.
*/
package ngram

import (
	"cmp"
	"encoding/binary"
	"fmt"
)

// RecordSize is the on-disk size of one record.
const RecordSize = 16

// ByteOrder is the on-disk order of every record field.
var ByteOrder = binary.LittleEndian

// Record is one triple of word ids and its observed frequency. As a query,
// Freq is ignored.
type Record struct {
	ID   [3]uint32
	Freq uint32
}

// NewTriple builds a query record.
func NewTriple(x, y, z uint32) Record {
	return Record{ID: [3]uint32{x, y, z}}
}

func (r Record) String() string {
	return fmt.Sprintf("(%d,%d,%d freq=%d)", r.ID[0], r.ID[1], r.ID[2], r.Freq)
}

// Compare orders records by id0, id1, id2 and then by descending
// frequency.
func Compare(a, b Record) int {
	for i := range a.ID {
		if c := cmp.Compare(a.ID[i], b.ID[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(b.Freq, a.Freq)
}

func decode(b []byte) Record {
	_ = b[RecordSize-1]
	return Record{
		ID: [3]uint32{
			ByteOrder.Uint32(b[0:]),
			ByteOrder.Uint32(b[4:]),
			ByteOrder.Uint32(b[8:]),
		},
		Freq: ByteOrder.Uint32(b[12:]),
	}
}

// htonl converts a host-order value to network order.
func htonl(v uint32) uint32 {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return binary.NativeEndian.Uint32(b[:])
}

// ToDiskOrder prepares a query triple for comparison with stored records.
// The host-to-network swap is applied twice, which leaves every id
// unchanged; stored files were produced against this exact conversion and
// it is kept as is.
func ToDiskOrder(r Record) Record {
	for i := range r.ID {
		r.ID[i] = htonl(htonl(r.ID[i]))
	}
	return r
}
