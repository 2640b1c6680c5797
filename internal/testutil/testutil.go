package testutil

import (
	"encoding/binary"
	"math/rand"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

// Word is one dictionary entry to encode.
type Word struct {
	ID   uint32
	Text string
}

// Triple is id0, id1, id2 and freq of one record to encode.
type Triple [4]uint32

// EncodeDictionary lays out words in the dictionary format, native byte
// order, with 1 + (len+1)%4 bytes of zero padding after each text.
func EncodeDictionary(words ...Word) []byte {
	var out []byte
	for _, w := range words {
		out = binary.NativeEndian.AppendUint32(out, w.ID)
		out = binary.NativeEndian.AppendUint32(out, uint32(len(w.Text)))
		out = append(out, w.Text...)
		out = append(out, make([]byte, 1+(len(w.Text)+1)%4)...)
	}
	return out
}

// EncodeTriples lays out records in the little-endian triple format. Order
// is preserved as given.
func EncodeTriples(records ...Triple) []byte {
	out := make([]byte, 0, len(records)*16)
	for _, r := range records {
		for _, v := range r {
			out = binary.LittleEndian.AppendUint32(out, v)
		}
	}
	return out
}

// WriteFile writes data under a fresh temp dir and returns the path.
func WriteFile(t testing.TB, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write fixture %s: %v", name, err)
	}
	return path
}

// RandomTriples draws n records with ids in [0, maxID) and freqs in
// [1, 1000). When sorted is set the result is ordered by id0, leaving ties
// in draw order.
func RandomTriples(seed int64, n int, maxID uint32, sorted bool) []Triple {
	rng := rand.New(rand.NewSource(seed))
	out := make([]Triple, n)
	for i := range out {
		out[i] = Triple{
			uint32(rng.Intn(int(maxID))),
			uint32(rng.Intn(int(maxID))),
			uint32(rng.Intn(int(maxID))),
			uint32(1 + rng.Intn(999)),
		}
	}
	if sorted {
		slices.SortStableFunc(out, func(a, b Triple) int {
			switch {
			case a[0] < b[0]:
				return -1
			case a[0] > b[0]:
				return 1
			}
			return 0
		})
	}
	return out
}

// Bytes is a byte slice that satisfies the Source interfaces of the
// dictionary and ngram packages.
type Bytes []byte

func (b Bytes) Bytes() []byte { return b }
