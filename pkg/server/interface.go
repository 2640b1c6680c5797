/*
Package server implements msgpack IPC over an ngram corpus.

Clients write a stream of msgpack-encoded Request values to stdin and read
one reply per request from stdout, in order. A reply is either a Response
or an ErrorResponse; only an ErrorResponse carries the "e" key.

Each request names an op and carries its words in "w":

	{"id": "q1", "op": "freq", "w": ["the", "cat", "sat"]}
	{"id": "q2", "op": "like", "w": ["the", "cat", "sat"]}
	{"id": "q3", "op": "follows", "w": ["the", "cat"]}
	{"id": "q4", "op": "prefix", "w": ["the"]}
	{"id": "q5", "op": "complete", "w": ["ca"], "l": 10}
	{"id": "q6", "op": "suggest", "w": ["teh"], "l": 5}
	{"id": "q7", "op": "word", "ids": [5]}
	{"id": "q8", "op": "id", "w": ["cat"]}
	{"id": "q9", "op": "stats"}
	{"id": "q10", "op": "config", "max_results": 100}

Triple replies list records in file order, each as words, ids and
frequency:

	{"id": "q3", "op": "follows", "r": [{"w": ["the", "cat", "sat"], "i": [1, 5, 6], "f": 9}], "n": 1, "t": 12}

Unknown words are not errors: they take id 0 and usually yield a zero
frequency or an empty list. Malformed requests get code 400, unknown ops
404, and a failure while answering 500. A request that cannot be decoded
ends the stream, since the decoder cannot resynchronise.
*/
package server

// Request is one client query.
type Request struct {
	ID    string   `msgpack:"id"`
	Op    string   `msgpack:"op"`
	Words []string `msgpack:"w,omitempty"`
	IDs   []uint32 `msgpack:"ids,omitempty"`
	Limit int      `msgpack:"l,omitempty"`

	// config op only
	MaxResults *int `msgpack:"max_results,omitempty"`
	MaxWords   *int `msgpack:"max_words,omitempty"`
}

// Triple is one stored record with its words.
type Triple struct {
	Words []string `msgpack:"w"`
	IDs   []uint32 `msgpack:"i"`
	Freq  uint32   `msgpack:"f"`
}

// Word is one dictionary word offered by complete or suggest.
type Word struct {
	Word     string `msgpack:"w"`
	ID       uint32 `msgpack:"i"`
	Freq     uint64 `msgpack:"f"`
	Distance int    `msgpack:"d,omitempty"`
}

// Response answers a request. Only the fields of the request's op are
// set. TimeTaken is in microseconds.
type Response struct {
	ID        string         `msgpack:"id"`
	Op        string         `msgpack:"op"`
	Freq      uint64         `msgpack:"f,omitempty"`
	Triples   []Triple       `msgpack:"r,omitempty"`
	Words     []Word         `msgpack:"s,omitempty"`
	Word      string         `msgpack:"w,omitempty"`
	WordID    uint32         `msgpack:"i,omitempty"`
	Found     bool           `msgpack:"ok,omitempty"`
	Count     int            `msgpack:"n"`
	Truncated bool           `msgpack:"tr,omitempty"`
	Stats     map[string]int `msgpack:"st,omitempty"`
	TimeTaken int64          `msgpack:"t"`
}

// ErrorResponse reports a request that could not be answered.
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}

// Error codes
const (
	CodeBadRequest = 400
	CodeUnknownOp  = 404
	CodeInternal   = 500
)
