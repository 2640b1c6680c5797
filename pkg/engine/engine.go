package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bastiangx/ngramserve/internal/fuzzy"
	"github.com/bastiangx/ngramserve/pkg/dictionary"
	"github.com/bastiangx/ngramserve/pkg/mmap"
	"github.com/bastiangx/ngramserve/pkg/ngram"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"
)

// Options controls how the engine opens and indexes its files.
type Options struct {
	WordFile  string
	NgramFile string

	// BuildIndex builds the span index so queries scan one run of records.
	BuildIndex bool
	// WordIndex builds a trie for word lookups at open time. Without it the
	// trie is built on the first Complete call.
	WordIndex bool
	// StrictCapacity rejects dictionary ids beyond size/6+1.
	StrictCapacity bool
	Advise         mmap.AccessPattern
	// CacheSize bounds the frequency cache; zero disables it.
	CacheSize int
}

// Triple is a record translated back to words. Ids without a dictionary
// entry have an empty word.
type Triple struct {
	Words [3]string
	IDs   [3]uint32
	Freq  uint32
}

func (t Triple) String() string {
	return fmt.Sprintf("%s %s %s (%d)", t.Words[0], t.Words[1], t.Words[2], t.Freq)
}

// Suggestion is a dictionary word offered by Complete or Suggest. Distance
// is the edit distance from the input for Suggest and zero for Complete.
type Suggestion struct {
	Word     string
	ID       uint32
	Freq     uint64
	Distance int
}

// Engine owns both mapped regions and everything derived from them. It is
// safe for concurrent queries; it must not be queried after Close.
type Engine struct {
	opts Options

	words  *mmap.Region
	ngrams *mmap.Region

	table *dictionary.Table
	store *ngram.Store
	spans *ngram.SpanIndex
	cache *FreqCache

	indexOnce sync.Once
	index     *dictionary.WordIndex

	totalsOnce sync.Once
	totals     map[uint32]uint64

	matcherOnce sync.Once
	matcher     *fuzzy.Matcher

	closed atomic.Bool
}

// Open maps both files and loads them concurrently. On failure every
// region already mapped is released.
func Open(ctx context.Context, opts Options) (*Engine, error) {
	start := time.Now()
	e := &Engine{opts: opts}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := openRegion(ctx, opts.WordFile, opts.Advise)
		if err != nil {
			return fmt.Errorf("word file: %w", err)
		}
		e.words = r
		return e.loadWords()
	})
	g.Go(func() error {
		r, err := openRegion(ctx, opts.NgramFile, opts.Advise)
		if err != nil {
			return fmt.Errorf("ngram file: %w", err)
		}
		e.ngrams = r
		return e.loadNgrams()
	})
	if err := g.Wait(); err != nil {
		if cerr := e.Close(); cerr != nil {
			log.Warnf("Failed to release regions after open error: %v", cerr)
		}
		return nil, err
	}

	e.finish()
	log.Debugf("Engine opened in %v", time.Since(start))
	return e, nil
}

// FromRegions builds an engine over regions the caller has already mapped.
// The engine takes ownership of both.
func FromRegions(words, ngrams *mmap.Region, opts Options) (*Engine, error) {
	e := &Engine{opts: opts, words: words, ngrams: ngrams}
	err := e.loadWords()
	if err == nil {
		err = e.loadNgrams()
	}
	if err != nil {
		e.Close()
		return nil, err
	}
	e.finish()
	return e, nil
}

func openRegion(ctx context.Context, path string, advice mmap.AccessPattern) (*mmap.Region, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	if err := r.Advise(advice); err != nil {
		log.Warnf("madvise on %s failed: %v", path, err)
	}
	return r, nil
}

func (e *Engine) loadWords() error {
	var opts []dictionary.Option
	if e.opts.StrictCapacity {
		opts = append(opts, dictionary.WithCapacityCheck())
	}
	table, err := dictionary.Load(e.words, opts...)
	if err != nil {
		return fmt.Errorf("loading dictionary %s: %w", e.words.Path(), err)
	}
	e.table = table
	return nil
}

func (e *Engine) loadNgrams() error {
	store, err := ngram.AsRecords(e.ngrams)
	if err != nil {
		return fmt.Errorf("mapping triples %s: %w", e.ngrams.Path(), err)
	}
	e.store = store
	if e.opts.BuildIndex {
		e.spans = ngram.Build(store)
	}
	return nil
}

func (e *Engine) finish() {
	if e.opts.WordIndex {
		e.wordIndex()
	}
	if e.opts.CacheSize > 0 {
		e.cache = NewFreqCache(e.opts.CacheSize)
	}
	log.Debugf("Loaded %s words (%s) and %s triples (%s)",
		humanize.Comma(int64(e.table.Len())), humanize.IBytes(uint64(e.words.Size())),
		humanize.Comma(int64(e.store.Len())), humanize.IBytes(uint64(e.ngrams.Size())))
}

// Close releases both regions. Calling it again returns mmap.ErrClosed.
func (e *Engine) Close() error {
	if e.closed.Swap(true) {
		return mmap.ErrClosed
	}
	var errs []error
	for _, r := range []*mmap.Region{e.words, e.ngrams} {
		if r != nil {
			errs = append(errs, r.Close())
		}
	}
	return errors.Join(errs...)
}

func (e *Engine) live() bool {
	if e.closed.Load() {
		log.Warn("Query on closed engine")
		return false
	}
	return true
}

// Table exposes the loaded dictionary.
func (e *Engine) Table() *dictionary.Table { return e.table }

// Store exposes the triple store.
func (e *Engine) Store() *ngram.Store { return e.store }

// Spans returns the span index, or nil if it was not built.
func (e *Engine) Spans() *ngram.SpanIndex { return e.spans }

func (e *Engine) wordIndex() *dictionary.WordIndex {
	e.indexOnce.Do(func() {
		e.index = dictionary.NewWordIndex(e.table)
	})
	return e.index
}

// WordToID returns the id of word, or dictionary.UnknownID.
func (e *Engine) WordToID(word string) uint32 {
	if e.closed.Load() {
		return dictionary.UnknownID
	}
	if e.opts.WordIndex {
		id, _ := e.wordIndex().Lookup([]byte(word))
		return id
	}
	return e.table.WordToID([]byte(word))
}

func (e *Engine) IDToWord(id uint32) (string, bool) {
	if e.closed.Load() {
		return "", false
	}
	return e.table.Word(id)
}

func (e *Engine) ids(words [3]string) [3]uint32 {
	var ids [3]uint32
	for i, w := range words {
		ids[i] = e.WordToID(w)
	}
	return ids
}

func (e *Engine) triples(rs *ngram.Results) []Triple {
	records := rs.Records()
	out := make([]Triple, len(records))
	for i, r := range records {
		out[i] = Triple{IDs: r.ID, Freq: r.Freq}
		for j, id := range r.ID {
			out[i].Words[j], _ = e.table.Word(id)
		}
	}
	return out
}

// Freq returns how often the three words occur in sequence. Unknown words
// take id 0.
func (e *Engine) Freq(words [3]string) uint32 {
	if !e.live() {
		return 0
	}
	ids := e.ids(words)
	if e.cache != nil {
		if freq, ok := e.cache.Get(ids); ok {
			return freq
		}
	}
	freq := ngram.FreqIndexed(e.store, e.spans, ngram.Record{ID: ids})
	if e.cache != nil {
		e.cache.Put(ids, freq)
	}
	return freq
}

// Like returns the stored triples that share exactly two positions with
// words, in file order.
func (e *Engine) Like(words [3]string) []Triple {
	if !e.live() {
		return nil
	}
	return e.triples(ngram.LikeIndexed(e.store, e.spans, ngram.Record{ID: e.ids(words)}))
}

// Follows returns the stored triples starting with w1 w2, in file order.
func (e *Engine) Follows(w1, w2 string) []Triple {
	if !e.live() {
		return nil
	}
	q := ngram.NewTriple(e.WordToID(w1), e.WordToID(w2), 0)
	return e.triples(ngram.FollowsIndexed(e.store, e.spans, q))
}

// PrefixFreq sums the frequencies of records whose leading ids are those
// of words. At most three words are meaningful.
func (e *Engine) PrefixFreq(words ...string) uint64 {
	if !e.live() {
		return 0
	}
	ids := make([]uint32, len(words))
	for i, w := range words {
		ids[i] = e.WordToID(w)
	}
	return ngram.PrefixFreq(e.store, e.spans, ids...)
}

func (e *Engine) totalFreqs() map[uint32]uint64 {
	e.totalsOnce.Do(func() {
		start := time.Now()
		e.totals = ngram.TotalFreqs(e.store)
		log.Debugf("Computed totals for %s ids in %v", humanize.Comma(int64(len(e.totals))), time.Since(start))
	})
	return e.totals
}

// WordFreq sums the frequencies of every record containing word. The totals
// are computed over the whole store on first use.
func (e *Engine) WordFreq(word string) uint64 {
	if !e.live() {
		return 0
	}
	id := e.WordToID(word)
	if id == dictionary.UnknownID {
		return 0
	}
	return e.totalFreqs()[id]
}

// Complete returns dictionary words starting with prefix, most frequent
// first.
func (e *Engine) Complete(prefix string, limit int) []Suggestion {
	if !e.live() || prefix == "" {
		return nil
	}
	totals := e.totalFreqs()
	completions := e.wordIndex().Complete(prefix, 0)

	out := make([]Suggestion, len(completions))
	for i, c := range completions {
		out[i] = Suggestion{Word: c.Word, ID: c.ID, Freq: totals[c.ID]}
	}
	sortSuggestions(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (e *Engine) fuzzyMatcher() *fuzzy.Matcher {
	e.matcherOnce.Do(func() {
		totals := e.totalFreqs()
		weights := make(map[string]uint64, e.table.Len())
		e.table.Each(func(entry dictionary.Entry) bool {
			w := entry.String()
			if _, seen := weights[w]; !seen && w != "" {
				weights[w] = totals[entry.ID]
			}
			return true
		})
		e.matcher = fuzzy.NewMatcher(weights)
	})
	return e.matcher
}

// Suggest returns dictionary words within two edits of word, closest and
// then most frequent first. A known word is its own first suggestion.
func (e *Engine) Suggest(word string, limit int) []Suggestion {
	if !e.live() || strings.TrimSpace(word) == "" {
		return nil
	}
	alts := e.fuzzyMatcher().Alternatives(word, 2, limit)
	out := make([]Suggestion, len(alts))
	for i, a := range alts {
		out[i] = Suggestion{Word: a.Word, ID: e.WordToID(a.Word), Freq: a.Freq, Distance: a.Distance}
	}
	return out
}

// Correct returns the most likely spelling of word and whether it differs
// from the input.
func (e *Engine) Correct(word string) (string, bool) {
	if !e.live() {
		return word, false
	}
	return e.fuzzyMatcher().SuggestCorrection(word)
}

func (e *Engine) Stats() map[string]int {
	stats := map[string]int{
		"words":          e.table.Len(),
		"wordsScanned":   e.table.Scanned(),
		"triples":        e.store.Len(),
		"wordFileBytes":  e.words.Size(),
		"ngramFileBytes": e.ngrams.Size(),
		"spans":          0,
		"indexedWords":   0,
	}
	if e.spans != nil {
		stats["spans"] = e.spans.Len()
	}
	if e.opts.WordIndex {
		stats["indexedWords"] = e.wordIndex().Len()
	}
	if e.cache != nil {
		for k, v := range e.cache.Stats() {
			stats[k] = v
		}
	}
	return stats
}

// SortByFreq orders triples most frequent first, ties by ids.
func SortByFreq(ts []Triple) {
	sort.SliceStable(ts, func(i, j int) bool {
		if ts[i].Freq != ts[j].Freq {
			return ts[i].Freq > ts[j].Freq
		}
		return ngram.Compare(ngram.Record{ID: ts[i].IDs}, ngram.Record{ID: ts[j].IDs}) < 0
	})
}

func sortSuggestions(s []Suggestion) {
	sort.SliceStable(s, func(i, j int) bool {
		if s[i].Freq != s[j].Freq {
			return s[i].Freq > s[j].Freq
		}
		return s[i].Word < s[j].Word
	})
}
