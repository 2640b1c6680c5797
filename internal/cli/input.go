// Package cli provides an interactive shell over the engine for exploring a
// corpus and debugging queries.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bastiangx/ngramserve/internal/utils"
	"github.com/bastiangx/ngramserve/pkg/engine"
	"github.com/charmbracelet/log"
)

// InputHandler reads commands line by line and prints their results.
type InputHandler struct {
	engine       engine.Querier
	limit        int
	showIDs      bool
	in           io.Reader
	out          io.Writer
	requestCount int
}

// NewInputHandler creates a shell on stdin/stdout.
func NewInputHandler(q engine.Querier, limit int, showIDs bool) *InputHandler {
	return NewInputHandlerWithIO(q, limit, showIDs, os.Stdin, os.Stdout)
}

// NewInputHandlerWithIO creates a shell over arbitrary streams.
func NewInputHandlerWithIO(q engine.Querier, limit int, showIDs bool, in io.Reader, out io.Writer) *InputHandler {
	return &InputHandler{
		engine:  q,
		limit:   limit,
		showIDs: showIDs,
		in:      in,
		out:     out,
	}
}

// Start runs the loop until end of input or a quit command.
func (h *InputHandler) Start() error {
	fmt.Fprintln(h.out, titleStyle.Render("ngramserve shell"))
	fmt.Fprintln(h.out, "type 'help' for commands (Ctrl+D to exit)")

	scanner := bufio.NewScanner(h.in)
	for {
		fmt.Fprint(h.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(h.out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := h.handleInput(line); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			fmt.Fprintln(h.out, errorStyle.Render(err.Error()))
		}
	}
}

var errQuit = errors.New("quit")

// handleInput runs one command line.
func (h *InputHandler) handleInput(line string) error {
	h.requestCount++
	tokens := utils.Tokenize(line)
	cmd, args := strings.ToLower(tokens[0]), tokens[1:]

	start := time.Now()
	defer func() {
		log.Debugf("Took [ %v ] for %q (request %d)", time.Since(start), line, h.requestCount)
	}()

	switch cmd {
	case "quit", "exit":
		return errQuit
	case "help", "?":
		h.printHelp()
	case "freq":
		if len(args) != 3 {
			return fmt.Errorf("usage: freq <w1> <w2> <w3>")
		}
		h.printFreq(strings.Join(args, " "), uint64(h.engine.Freq([3]string(args))))
	case "like":
		if len(args) != 3 {
			return fmt.Errorf("usage: like <w1> <w2> <w3>")
		}
		h.printTriples(h.engine.Like([3]string(args)))
	case "follows", "next":
		if len(args) != 2 {
			return fmt.Errorf("usage: follows <w1> <w2>")
		}
		h.printTriples(h.engine.Follows(args[0], args[1]))
	case "prefix":
		if len(args) > 3 {
			return fmt.Errorf("usage: prefix [w1 [w2 [w3]]]")
		}
		h.printFreq(strings.Join(args, " "), h.engine.PrefixFreq(args...))
	case "total":
		if len(args) != 1 {
			return fmt.Errorf("usage: total <word>")
		}
		h.printFreq(args[0], h.engine.WordFreq(args[0]))
	case "complete":
		if len(args) != 1 {
			return fmt.Errorf("usage: complete <prefix>")
		}
		h.printSuggestions(args[0], h.engine.Complete(strings.ToLower(args[0]), h.limit), true)
	case "suggest":
		if len(args) != 1 {
			return fmt.Errorf("usage: suggest <word>")
		}
		h.printSuggestions(args[0], h.engine.Suggest(args[0], h.limit), false)
	case "id":
		if len(args) != 1 {
			return fmt.Errorf("usage: id <word>")
		}
		h.printID(args[0])
	case "word":
		if len(args) != 1 {
			return fmt.Errorf("usage: word <id>")
		}
		id, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("not an id: %q", args[0])
		}
		h.printWord(uint32(id))
	case "stats":
		h.printStats(h.engine.Stats())
	default:
		return fmt.Errorf("unknown command %q, type 'help'", cmd)
	}
	return nil
}
