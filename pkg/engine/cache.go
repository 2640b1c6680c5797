package engine

import (
	"math"
	"sync"

	"github.com/charmbracelet/log"
)

// FreqCache remembers the frequency of recently queried triples. Entries
// are evicted least recently used first once maxEntries is reached.
type FreqCache struct {
	freqs       map[[3]uint32]uint32
	accessTime  map[[3]uint32]int64
	accessCount int64
	hits        int64
	misses      int64
	maxEntries  int
	mu          sync.Mutex
}

// NewFreqCache returns a cache holding at most maxEntries triples.
func NewFreqCache(maxEntries int) *FreqCache {
	return &FreqCache{
		freqs:      make(map[[3]uint32]uint32, maxEntries),
		accessTime: make(map[[3]uint32]int64, maxEntries),
		maxEntries: maxEntries,
	}
}

// Get returns the cached frequency of ids.
func (fc *FreqCache) Get(ids [3]uint32) (uint32, bool) {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	freq, ok := fc.freqs[ids]
	if !ok {
		fc.misses++
		return 0, false
	}
	fc.hits++
	fc.markAccessed(ids)
	return freq, true
}

// Put stores the frequency of ids, evicting the oldest entry if full.
func (fc *FreqCache) Put(ids [3]uint32, freq uint32) {
	if fc.maxEntries <= 0 {
		return
	}
	fc.mu.Lock()
	defer fc.mu.Unlock()

	if _, exists := fc.freqs[ids]; !exists && len(fc.freqs) >= fc.maxEntries {
		fc.evictLRU()
	}
	fc.freqs[ids] = freq
	fc.markAccessed(ids)
}

// Len is the number of cached triples.
func (fc *FreqCache) Len() int {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return len(fc.freqs)
}

func (fc *FreqCache) Stats() map[string]int {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	return map[string]int{
		"cacheEntries":    len(fc.freqs),
		"maxCacheEntries": fc.maxEntries,
		"cacheHits":       int(fc.hits),
		"cacheMisses":     int(fc.misses),
	}
}

func (fc *FreqCache) markAccessed(ids [3]uint32) {
	fc.accessCount++
	fc.accessTime[ids] = fc.accessCount
}

func (fc *FreqCache) evictLRU() {
	var oldest [3]uint32
	var oldestTime int64 = math.MaxInt64
	found := false

	for ids, t := range fc.accessTime {
		if t < oldestTime {
			oldestTime = t
			oldest = ids
			found = true
		}
	}

	if found {
		delete(fc.freqs, oldest)
		delete(fc.accessTime, oldest)
		log.Debugf("Evicted triple %v from frequency cache", oldest)
	}
}
