package dictionary

import (
	"encoding/binary"
	"fmt"
	"testing"

	"github.com/bastiangx/ngramserve/internal/testutil"
	"github.com/bastiangx/ngramserve/pkg/ngerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPadding(t *testing.T) {
	testCases := []struct {
		n       uint32
		padding int
		next    int
	}{
		{0, 2, 10},
		{1, 3, 12},
		{2, 4, 14},
		{3, 1, 12},
		{4, 2, 14},
		{5, 3, 16},
		{100, 2, 110},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("len=%d", tc.n), func(t *testing.T) {
			assert.Equal(t, tc.padding, Padding(tc.n))
			assert.Equal(t, tc.next, EntrySize(tc.n))
			assert.Equal(t, HeaderSize+int(tc.n)+(1+int(tc.n+1)%4), EntrySize(tc.n))
		})
	}
}

func TestLoad_RoundTrip(t *testing.T) {
	words := []testutil.Word{
		{ID: 3, Text: "the"},
		{ID: 1, Text: "a"},
		{ID: 7, Text: ""},
		{ID: 4, Text: "buddhist"},
		{ID: 9, Text: "activities"},
		{ID: 2, Text: "as"},
	}
	table, err := Load(testutil.Bytes(testutil.EncodeDictionary(words...)))
	require.NoError(t, err)

	assert.Equal(t, len(words), table.Len())
	assert.Equal(t, len(words), table.Scanned())
	assert.Equal(t, []uint32{1, 2, 3, 4, 7, 9}, table.IDs())

	for _, w := range words {
		text, ok := table.IDToWord(w.ID)
		require.True(t, ok, "id %d", w.ID)
		assert.Len(t, text, len(w.Text))
		assert.Equal(t, w.Text, string(text))

		if w.ID != UnknownID {
			assert.Equal(t, w.ID, table.WordToID([]byte(w.Text)), "word %q", w.Text)
		}
	}
}

func TestLoad_GapsAreAbsentNotErrors(t *testing.T) {
	table, err := Load(testutil.Bytes(testutil.EncodeDictionary(
		testutil.Word{ID: 2, Text: "dog"},
		testutil.Word{ID: 5, Text: "cat"},
	)))
	require.NoError(t, err)

	for _, id := range []uint32{0, 1, 3, 4, 6, 1000, ImpossibleID} {
		text, ok := table.IDToWord(id)
		assert.False(t, ok, "id %d", id)
		assert.Empty(t, text)

		word, ok := table.Word(id)
		assert.False(t, ok)
		assert.Empty(t, word)
	}
}

func TestWordToID_UnknownIsZero(t *testing.T) {
	table, err := Load(testutil.Bytes(testutil.EncodeDictionary(
		testutil.Word{ID: 0, Text: "UNKNOWN"},
		testutil.Word{ID: 1, Text: "$PROPERNOUN"},
		testutil.Word{ID: 5, Text: "cat"},
	)))
	require.NoError(t, err)

	assert.Equal(t, uint32(5), table.WordToID([]byte("cat")))
	assert.Equal(t, UnknownID, table.WordToID([]byte("zebra")))
	// a real entry with id 0 is indistinguishable from a miss
	assert.Equal(t, UnknownID, table.WordToID([]byte("UNKNOWN")))
	// length must match too
	assert.Equal(t, UnknownID, table.WordToID([]byte("ca")))
	assert.Equal(t, UnknownID, table.WordToID([]byte("cats")))
}

func TestWordToID_LowestIDWins(t *testing.T) {
	table, err := Load(testutil.Bytes(testutil.EncodeDictionary(
		testutil.Word{ID: 9, Text: "dup"},
		testutil.Word{ID: 4, Text: "dup"},
	)))
	require.NoError(t, err)
	assert.Equal(t, uint32(4), table.WordToID([]byte("dup")))
}

func TestLoad_DuplicateIDLastWins(t *testing.T) {
	table, err := Load(testutil.Bytes(testutil.EncodeDictionary(
		testutil.Word{ID: 2, Text: "first"},
		testutil.Word{ID: 2, Text: "second"},
	)))
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())
	assert.Equal(t, 2, table.Scanned())
	word, ok := table.Word(2)
	require.True(t, ok)
	assert.Equal(t, "second", word)
}

func TestLoad_Empty(t *testing.T) {
	table, err := Load(testutil.Bytes(nil))
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())
	assert.Equal(t, UnknownID, table.WordToID([]byte("x")))
}

func TestLoad_TruncatedHeader(t *testing.T) {
	data := testutil.EncodeDictionary(testutil.Word{ID: 1, Text: "cat"})
	data = append(data, 0x01, 0x00, 0x00) // 3 stray bytes

	_, err := Load(testutil.Bytes(data))
	require.Error(t, err)
	assert.ErrorIs(t, err, ngerr.ErrTruncatedFile)

	var te *ngerr.TruncatedFileError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, int64(12), te.Offset)
	assert.Equal(t, int64(3), te.Have)
}

func TestLoad_TruncatedText(t *testing.T) {
	data := binary.NativeEndian.AppendUint32(nil, 1)
	data = binary.NativeEndian.AppendUint32(data, 10)
	data = append(data, "short"...)

	_, err := Load(testutil.Bytes(data))
	require.Error(t, err)
	assert.ErrorIs(t, err, ngerr.ErrTruncatedFile)
	assert.NotErrorIs(t, err, ngerr.ErrCorruptFormat)
}

func TestLoad_PaddingPastEndEndsScan(t *testing.T) {
	data := testutil.EncodeDictionary(testutil.Word{ID: 1, Text: "ab"})
	// "ab" carries 4 padding bytes; keep only one of them
	data = data[:len(data)-3]

	table, err := Load(testutil.Bytes(data))
	require.NoError(t, err)
	word, ok := table.Word(1)
	require.True(t, ok)
	assert.Equal(t, "ab", word)
}

func TestLoad_IDBeyondCapacity(t *testing.T) {
	data := testutil.EncodeDictionary(testutil.Word{ID: 1000, Text: "far"})
	require.Less(t, Capacity(len(data)), uint64(1000))

	table, err := Load(testutil.Bytes(data))
	require.NoError(t, err)
	word, ok := table.Word(1000)
	require.True(t, ok)
	assert.Equal(t, "far", word)

	_, err = Load(testutil.Bytes(data), WithCapacityCheck())
	require.Error(t, err)
	assert.ErrorIs(t, err, ngerr.ErrCorruptFormat)

	var ce *ngerr.CorruptFormatError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, int64(0), ce.Offset)
}

func TestLoad_CapacityCheckAcceptsSmallIDs(t *testing.T) {
	data := testutil.EncodeDictionary(testutil.Word{ID: 1, Text: "cat"}, testutil.Word{ID: 4, Text: "dog"})
	table, err := Load(testutil.Bytes(data), WithCapacityCheck())
	require.NoError(t, err)
	assert.Equal(t, uint64(5), table.Capacity())
	assert.Equal(t, 2, table.Len())
}

func TestCapacity(t *testing.T) {
	assert.Equal(t, uint64(1), Capacity(0))
	assert.Equal(t, uint64(3), Capacity(12))
	assert.Equal(t, uint64(17), Capacity(100))
}

func TestTable_Each(t *testing.T) {
	table, err := Load(testutil.Bytes(testutil.EncodeDictionary(
		testutil.Word{ID: 3, Text: "c"},
		testutil.Word{ID: 1, Text: "a"},
		testutil.Word{ID: 2, Text: "b"},
	)))
	require.NoError(t, err)

	var seen []string
	table.Each(func(e Entry) bool {
		seen = append(seen, e.String())
		return e.ID < 2
	})
	assert.Equal(t, []string{"a", "b"}, seen)
}
