package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFreqCache_EvictsLeastRecentlyUsed(t *testing.T) {
	fc := NewFreqCache(2)
	a, b, c := [3]uint32{1, 1, 1}, [3]uint32{2, 2, 2}, [3]uint32{3, 3, 3}

	fc.Put(a, 10)
	fc.Put(b, 20)
	_, ok := fc.Get(a)
	assert.True(t, ok)

	fc.Put(c, 30)
	assert.Equal(t, 2, fc.Len())

	_, ok = fc.Get(b)
	assert.False(t, ok, "b was least recently used")
	freq, ok := fc.Get(a)
	assert.True(t, ok)
	assert.Equal(t, uint32(10), freq)
	freq, ok = fc.Get(c)
	assert.True(t, ok)
	assert.Equal(t, uint32(30), freq)

	stats := fc.Stats()
	assert.Equal(t, 3, stats["cacheHits"])
	assert.Equal(t, 1, stats["cacheMisses"])
}

func TestFreqCache_ZeroSizeStoresNothing(t *testing.T) {
	fc := NewFreqCache(0)
	fc.Put([3]uint32{1, 2, 3}, 4)
	_, ok := fc.Get([3]uint32{1, 2, 3})
	assert.False(t, ok)
	assert.Equal(t, 0, fc.Len())
}

func TestFreqCache_UpdateDoesNotEvict(t *testing.T) {
	fc := NewFreqCache(1)
	k := [3]uint32{1, 2, 3}
	fc.Put(k, 1)
	fc.Put(k, 2)
	freq, ok := fc.Get(k)
	assert.True(t, ok)
	assert.Equal(t, uint32(2), freq)
}
