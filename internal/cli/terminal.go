package cli

import (
	"fmt"
	"sort"

	"github.com/bastiangx/ngramserve/internal/utils"
	"github.com/bastiangx/ngramserve/pkg/engine"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	wordStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	dimStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("204"))
)

const helpText = `commands:
  freq <w1> <w2> <w3>     frequency of a triple
  like <w1> <w2> <w3>     triples sharing exactly two positions
  follows <w1> <w2>       triples starting with two words
  prefix [w1 [w2 [w3]]]   summed frequency of a word prefix
  total <word>            summed frequency of records containing word
  complete <prefix>       dictionary words by prefix
  suggest <word>          dictionary words within two edits
  id <word> | word <id>   dictionary lookups
  stats                   corpus and cache statistics
  quit`

func (h *InputHandler) printHelp() {
	fmt.Fprintln(h.out, helpText)
}

func (h *InputHandler) printFreq(what string, freq uint64) {
	fmt.Fprintf(h.out, "%s: %s\n", wordStyle.Render(what), humanize.Comma(int64(freq)))
}

func (h *InputHandler) printTriples(ts []engine.Triple) {
	if len(ts) == 0 {
		fmt.Fprintln(h.out, dimStyle.Render("no matches"))
		return
	}
	engine.SortByFreq(ts)
	total := len(ts)
	if h.limit > 0 && len(ts) > h.limit {
		ts = ts[:h.limit]
	}
	fmt.Fprintf(h.out, "Found %d triples:\n", total)
	for i, t := range ts {
		words := fmt.Sprintf("%s %s %s", wordOrID(t.Words[0], t.IDs[0]), wordOrID(t.Words[1], t.IDs[1]), wordOrID(t.Words[2], t.IDs[2]))
		line := fmt.Sprintf("%2d. %-40s (freq: %8s)", i+1, wordStyle.Render(words), humanize.Comma(int64(t.Freq)))
		if h.showIDs {
			line += dimStyle.Render(fmt.Sprintf(" [%d %d %d]", t.IDs[0], t.IDs[1], t.IDs[2]))
		}
		fmt.Fprintln(h.out, line)
	}
}

func wordOrID(word string, id uint32) string {
	if word == "" {
		return fmt.Sprintf("#%d", id)
	}
	return word
}

func (h *InputHandler) printSuggestions(input string, ss []engine.Suggestion, matchCase bool) {
	if len(ss) == 0 {
		fmt.Fprintf(h.out, "No suggestions found for '%s'\n", input)
		return
	}
	fmt.Fprintf(h.out, "Found %d suggestions for '%s':\n", len(ss), input)
	for i, s := range ss {
		word := s.Word
		if matchCase {
			word = utils.MatchCase(word, input)
		}
		line := fmt.Sprintf("%2d. %-40s (freq: %8s)", i+1, wordStyle.Render(word), humanize.Comma(int64(s.Freq)))
		if s.Distance > 0 {
			line += dimStyle.Render(fmt.Sprintf(" edits: %d", s.Distance))
		}
		if h.showIDs {
			line += dimStyle.Render(fmt.Sprintf(" [%d]", s.ID))
		}
		fmt.Fprintln(h.out, line)
	}
}

func (h *InputHandler) printID(word string) {
	id := h.engine.WordToID(word)
	if id == 0 {
		fmt.Fprintf(h.out, "%s: unknown (id 0)\n", wordStyle.Render(word))
		return
	}
	fmt.Fprintf(h.out, "%s: %d\n", wordStyle.Render(word), id)
}

func (h *InputHandler) printWord(id uint32) {
	word, ok := h.engine.IDToWord(id)
	if !ok {
		fmt.Fprintf(h.out, "%d: no such id\n", id)
		return
	}
	fmt.Fprintf(h.out, "%d: %s\n", id, wordStyle.Render(word))
}

func (h *InputHandler) printStats(stats map[string]int) {
	keys := make([]string, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(h.out, "%-16s %s\n", k, humanize.Comma(int64(stats[k])))
	}
}
