package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bastiangx/ngramserve/pkg/config"
	"github.com/bastiangx/ngramserve/pkg/engine"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Server answers msgpack requests against an engine.
type Server struct {
	engine       engine.Querier
	config       *config.Config
	configPath   string
	dec          *msgpack.Decoder
	out          *bufio.Writer
	enc          *msgpack.Encoder
	requestCount int
}

// NewServer creates a server using stdin/stdout for IPC. Changes made by
// the config op are saved to configPath when it is set.
func NewServer(q engine.Querier, cfg *config.Config, configPath string) *Server {
	return NewServerWithIO(q, cfg, configPath, os.Stdin, os.Stdout)
}

// NewServerWithIO creates a server over arbitrary streams.
func NewServerWithIO(q engine.Querier, cfg *config.Config, configPath string, r io.Reader, w io.Writer) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	out := bufio.NewWriter(w)
	return &Server{
		engine:     q,
		config:     cfg,
		configPath: configPath,
		dec:        msgpack.NewDecoder(bufio.NewReader(r)),
		out:        out,
		enc:        msgpack.NewEncoder(out),
	}
}

// Start serves requests until the input ends. A clean end of input
// returns nil.
func (s *Server) Start() error {
	log.Debug("Starting server")
	for {
		var req Request
		if err := s.dec.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				log.Debugf("Input closed after %d requests", s.requestCount)
				return nil
			}
			log.Errorf("Decoding request: %v", err)
			s.sendError("", fmt.Sprintf("invalid request: %v", err), CodeBadRequest)
			return fmt.Errorf("decoding request: %w", err)
		}
		s.requestCount++
		s.handleRequest(req)
	}
}

func (s *Server) handleRequest(req Request) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("Panic handling %q request %s: %v", req.Op, req.ID, r)
			s.sendError(req.ID, "internal error", CodeInternal)
		}
	}()

	start := time.Now()
	resp := Response{ID: req.ID, Op: req.Op}

	var err error
	switch req.Op {
	case "freq":
		err = s.handleFreq(req, &resp)
	case "like":
		err = s.handleLike(req, &resp)
	case "follows":
		err = s.handleFollows(req, &resp)
	case "prefix":
		err = s.handlePrefix(req, &resp)
	case "word":
		err = s.handleWord(req, &resp)
	case "id":
		err = s.handleID(req, &resp)
	case "complete", "suggest":
		err = s.handleWords(req, &resp)
	case "stats":
		resp.Stats = s.engine.Stats()
		resp.Count = len(resp.Stats)
	case "config":
		err = s.handleConfig(req, &resp)
	default:
		s.sendError(req.ID, fmt.Sprintf("unknown op: %q", req.Op), CodeUnknownOp)
		return
	}
	if err != nil {
		var be badRequest
		if errors.As(err, &be) {
			s.sendError(req.ID, err.Error(), CodeBadRequest)
		} else {
			log.Errorf("Handling %q request %s: %v", req.Op, req.ID, err)
			s.sendError(req.ID, err.Error(), CodeInternal)
		}
		return
	}

	resp.TimeTaken = time.Since(start).Microseconds()
	log.Debugf("Answered %s %s in %dµs", req.Op, req.ID, resp.TimeTaken)
	s.send(resp)
}

// badRequest marks errors caused by the request itself.
type badRequest string

func (e badRequest) Error() string { return string(e) }

func wantWords(req Request, n int) error {
	if len(req.Words) != n {
		return badRequest(fmt.Sprintf("%s needs %d words, got %d", req.Op, n, len(req.Words)))
	}
	return nil
}

func (s *Server) handleFreq(req Request, resp *Response) error {
	if err := wantWords(req, 3); err != nil {
		return err
	}
	resp.Freq = uint64(s.engine.Freq([3]string(req.Words)))
	resp.Count = 1
	return nil
}

func (s *Server) handleLike(req Request, resp *Response) error {
	if err := wantWords(req, 3); err != nil {
		return err
	}
	s.setTriples(resp, s.engine.Like([3]string(req.Words)))
	return nil
}

func (s *Server) handleFollows(req Request, resp *Response) error {
	if err := wantWords(req, 2); err != nil {
		return err
	}
	s.setTriples(resp, s.engine.Follows(req.Words[0], req.Words[1]))
	return nil
}

func (s *Server) handlePrefix(req Request, resp *Response) error {
	if len(req.Words) > 3 {
		return badRequest(fmt.Sprintf("prefix takes at most 3 words, got %d", len(req.Words)))
	}
	resp.Freq = s.engine.PrefixFreq(req.Words...)
	resp.Count = 1
	return nil
}

func (s *Server) handleWord(req Request, resp *Response) error {
	if len(req.IDs) != 1 {
		return badRequest("word needs exactly one id")
	}
	resp.WordID = req.IDs[0]
	resp.Word, resp.Found = s.engine.IDToWord(req.IDs[0])
	if resp.Found {
		resp.Count = 1
	}
	return nil
}

func (s *Server) handleID(req Request, resp *Response) error {
	if err := wantWords(req, 1); err != nil {
		return err
	}
	resp.Word = req.Words[0]
	resp.WordID = s.engine.WordToID(req.Words[0])
	resp.Found = resp.WordID != 0
	if resp.Found {
		resp.Count = 1
	}
	return nil
}

func (s *Server) handleWords(req Request, resp *Response) error {
	if err := wantWords(req, 1); err != nil {
		return err
	}
	limit := req.Limit
	if maxWords := s.config.Server.MaxWords; maxWords > 0 && (limit <= 0 || limit > maxWords) {
		limit = maxWords
	}

	var found []engine.Suggestion
	if req.Op == "complete" {
		found = s.engine.Complete(req.Words[0], limit)
	} else {
		found = s.engine.Suggest(req.Words[0], limit)
	}
	resp.Words = make([]Word, len(found))
	for i, f := range found {
		resp.Words[i] = Word{Word: f.Word, ID: f.ID, Freq: f.Freq, Distance: f.Distance}
	}
	resp.Count = len(resp.Words)
	return nil
}

func (s *Server) handleConfig(req Request, resp *Response) error {
	if req.MaxResults == nil && req.MaxWords == nil {
		return badRequest("config needs max_results or max_words")
	}
	if (req.MaxResults != nil && *req.MaxResults < 0) || (req.MaxWords != nil && *req.MaxWords < 0) {
		return badRequest("limits must not be negative")
	}
	if err := s.config.Update(s.configPath, req.MaxResults, req.MaxWords); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	resp.Stats = map[string]int{
		"max_results": s.config.Server.MaxResults,
		"max_words":   s.config.Server.MaxWords,
	}
	resp.Count = len(resp.Stats)
	return nil
}

// setTriples fills resp with ts, cut to the configured maximum. Count is
// always the full number of matches.
func (s *Server) setTriples(resp *Response, ts []engine.Triple) {
	resp.Count = len(ts)
	if maxResults := s.config.Server.MaxResults; maxResults > 0 && len(ts) > maxResults {
		ts = ts[:maxResults]
		resp.Truncated = true
	}
	resp.Triples = make([]Triple, len(ts))
	for i, t := range ts {
		resp.Triples[i] = Triple{Words: t.Words[:], IDs: t.IDs[:], Freq: t.Freq}
	}
}

func (s *Server) send(v any) {
	if err := s.enc.Encode(v); err != nil {
		log.Errorf("Encoding response: %v", err)
		return
	}
	if err := s.out.Flush(); err != nil {
		log.Errorf("Writing response: %v", err)
	}
}

func (s *Server) sendError(id, message string, code int) {
	s.send(ErrorResponse{ID: id, Error: message, Code: code})
}
