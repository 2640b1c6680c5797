package ngram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResults_GrowsByPowersOfTwo(t *testing.T) {
	rs := &Results{}
	assert.Equal(t, 0, rs.Cap())

	wantCap := []int{1, 2, 4, 4, 8, 8, 8, 8, 16}
	for i, want := range wantCap {
		rs.Append(Record{ID: [3]uint32{uint32(i), 0, 0}, Freq: uint32(i + 1)})
		assert.Equal(t, i+1, rs.Len())
		assert.Equal(t, want, rs.Cap(), "after %d appends", i+1)
	}
	for i, r := range rs.Records() {
		assert.Equal(t, uint32(i+1), r.Freq)
	}
}

func TestResults_Terminated(t *testing.T) {
	for n := 0; n <= 9; n++ {
		rs := &Results{}
		for i := 0; i < n; i++ {
			rs.Append(Record{Freq: uint32(i + 1)})
		}
		out := rs.Terminated()
		require.Len(t, out, n+1, "n=%d", n)
		assert.Equal(t, Record{}, out[n])
		for _, r := range out[:n] {
			assert.NotZero(t, r.Freq)
		}
		assert.Equal(t, n, rs.Len(), "sentinel is not counted")
		assert.Len(t, rs.Records(), n)
	}
}

func TestResults_AppendAfterTerminated(t *testing.T) {
	rs := &Results{}
	rs.Append(Record{Freq: 1})
	rs.Terminated()
	rs.Append(Record{Freq: 2})
	assert.Equal(t, []Record{{Freq: 1}, {Freq: 2}}, rs.Records())
}
