package ngram

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToDiskOrder_IsIdentity(t *testing.T) {
	for _, v := range []uint32{0, 1, 5, 0x01020304, 0xdeadbeef, math.MaxUint32} {
		q := NewTriple(v, v+1, v^0xff)
		assert.Equal(t, q, ToDiskOrder(q))
	}
}

func TestHtonl_SwapsOnLittleEndianHosts(t *testing.T) {
	v := uint32(0x01020304)
	assert.Equal(t, v, htonl(htonl(v)))
}

func TestCompare(t *testing.T) {
	records := []Record{
		{ID: [3]uint32{2, 0, 0}, Freq: 1},
		{ID: [3]uint32{1, 2, 3}, Freq: 1},
		{ID: [3]uint32{1, 2, 3}, Freq: 7},
		{ID: [3]uint32{1, 1, 9}, Freq: 3},
	}
	slices.SortFunc(records, Compare)
	assert.Equal(t, []Record{
		{ID: [3]uint32{1, 1, 9}, Freq: 3},
		{ID: [3]uint32{1, 2, 3}, Freq: 7},
		{ID: [3]uint32{1, 2, 3}, Freq: 1},
		{ID: [3]uint32{2, 0, 0}, Freq: 1},
	}, records)
	assert.Zero(t, Compare(records[0], records[0]))
}

func TestRecord_String(t *testing.T) {
	assert.Equal(t, "(5,6,7 freq=9)", Record{ID: [3]uint32{5, 6, 7}, Freq: 9}.String())
}
