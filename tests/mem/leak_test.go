//go:build test

package mem

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"sync"
	"testing"

	"github.com/bastiangx/ngramserve/internal/testutil"
	"github.com/bastiangx/ngramserve/pkg/engine"
	"github.com/charmbracelet/log"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

const vocabulary = 200

var testPrefixes = []string{"w", "w0", "w00", "w1", "w12", "w123", "w19", "x"}

func openEngine(t *testing.T) *engine.Engine {
	t.Helper()
	words := make([]testutil.Word, 0, vocabulary+1)
	for id := uint32(0); id <= vocabulary; id++ {
		words = append(words, testutil.Word{ID: id, Text: fmt.Sprintf("w%03d", id)})
	}
	opts := engine.Options{
		WordFile:   testutil.WriteFile(t, "word.bin", testutil.EncodeDictionary(words...)),
		NgramFile:  testutil.WriteFile(t, "ngram3.bin", testutil.EncodeTriples(testutil.RandomTriples(7, 20000, vocabulary, true)...)),
		BuildIndex: true,
		WordIndex:  true,
		CacheSize:  64,
	}
	e, err := engine.Open(context.Background(), opts)
	if err != nil {
		t.Fatalf("engine open failed: %v", err)
	}
	t.Cleanup(func() { e.Close() })
	return e
}

// query runs one round of every query kind keyed by n.
func query(e *engine.Engine, n int) {
	a := fmt.Sprintf("w%03d", n%vocabulary)
	b := fmt.Sprintf("w%03d", (n*7)%vocabulary)
	c := fmt.Sprintf("w%03d", (n*13)%vocabulary)
	_ = e.Freq([3]string{a, b, c})
	_ = e.Like([3]string{a, b, c})
	_ = e.Follows(a, b)
	_ = e.PrefixFreq(a)
	_ = e.Complete(testPrefixes[n%len(testPrefixes)], 10)
}

// warm builds the lazily constructed indexes so they do not count as growth.
func warm(e *engine.Engine) {
	_ = e.WordFreq("w001")
	_ = e.Suggest("w01", 5)
	for i := 0; i < 256; i++ {
		query(e, i)
	}
}

func heapDelta(baseline, final runtime.MemStats) int64 {
	return int64(final.HeapAlloc) - int64(baseline.HeapAlloc)
}

func TestMemoryLeakBasic(t *testing.T) {
	for _, iterCount := range []int{100, 1000, 5000} {
		t.Run(fmt.Sprintf("iterations_%d", iterCount), func(t *testing.T) {
			e := openEngine(t)
			warm(e)

			var baseline runtime.MemStats
			runtime.GC()
			runtime.ReadMemStats(&baseline)
			baselineGoroutines := runtime.NumGoroutine()

			for i := 0; i < iterCount; i++ {
				query(e, i)
			}

			var final runtime.MemStats
			runtime.GC()
			runtime.ReadMemStats(&final)

			memPerOp := float64(heapDelta(baseline, final)) / float64(iterCount)
			goroutineDelta := runtime.NumGoroutine() - baselineGoroutines
			t.Logf("iterations=%d mem_delta=%d bytes mem_per_op=%.2f goroutine_delta=%d",
				iterCount, heapDelta(baseline, final), memPerOp, goroutineDelta)

			if memPerOp > 1000 {
				t.Errorf("excessive memory usage per operation: %.2f bytes", memPerOp)
			}
			if goroutineDelta > 2 {
				t.Errorf("goroutine leak detected: %d goroutines leaked", goroutineDelta)
			}
		})
	}
}

func TestMemoryLeakConcurrent(t *testing.T) {
	memFile, err := os.CreateTemp(t.TempDir(), "concurrent_memory.prof")
	if err != nil {
		t.Fatalf("profile file creation failed: %v", err)
	}
	defer memFile.Close()

	e := openEngine(t)
	warm(e)

	var baseline runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&baseline)
	baselineGoroutines := runtime.NumGoroutine()

	const workers, perWorker = 8, 500
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				query(e, w*perWorker+i)
			}
		}(w)
	}
	wg.Wait()

	var final runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&final)

	totalOps := workers * perWorker
	memPerOp := float64(heapDelta(baseline, final)) / float64(totalOps)
	goroutineDelta := runtime.NumGoroutine() - baselineGoroutines
	t.Logf("workers=%d total_ops=%d mem_delta=%d bytes mem_per_op=%.2f goroutine_delta=%d",
		workers, totalOps, heapDelta(baseline, final), memPerOp, goroutineDelta)

	if err := pprof.WriteHeapProfile(memFile); err != nil {
		t.Errorf("heap profile write failed: %v", err)
	}
	if memPerOp > 1000 {
		t.Errorf("excessive memory usage per operation: %.2f bytes", memPerOp)
	}
	if goroutineDelta > 3 {
		t.Errorf("goroutine leak detected: %d goroutines leaked", goroutineDelta)
	}
}

func TestMemoryStabilityOpenClose(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping open/close cycling in short mode")
	}

	var baseline runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&baseline)

	maxMemDelta := int64(0)
	for cycle := 0; cycle < 50; cycle++ {
		t.Run(fmt.Sprintf("cycle_%d", cycle), func(t *testing.T) {
			e := openEngine(t)
			warm(e)
		})

		if cycle%10 == 0 {
			var m runtime.MemStats
			runtime.GC()
			runtime.ReadMemStats(&m)
			if d := heapDelta(baseline, m); d > maxMemDelta {
				maxMemDelta = d
			}
			t.Logf("cycle=%d mem_delta=%d bytes", cycle, heapDelta(baseline, m))
		}
	}

	// every cycle unmaps its files and drops its indexes
	if maxMemDelta > 10*1024*1024 {
		t.Errorf("excessive peak memory usage: %d bytes", maxMemDelta)
	}
}
