package mmap

import (
	"io"
	"math"
	"os"
	"sync/atomic"

	"github.com/bastiangx/ngramserve/pkg/ngerr"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
)

// Region is a read-only view of a whole file. It owns the mapping and the
// descriptor and releases both on Close.
type Region struct {
	path   string
	data   []byte
	size   int
	f      *os.File
	unmap  func([]byte) error
	closed atomic.Bool
}

// Open stats, opens and maps the file at path.
//
// Stat and open failures are reported as *ngerr.IOError; a failure to
// establish the mapping itself is a *ngerr.MapError. An empty file yields a
// zero-length region with no mapping behind it.
func Open(path string) (*Region, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, &ngerr.IOError{Op: "stat", Path: path, Err: err}
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, &ngerr.IOError{Op: "open", Path: path, Err: err}
	}

	size := fi.Size()
	if size == 0 {
		return &Region{path: path, f: f}, nil
	}
	if size < 0 || size > math.MaxInt {
		f.Close()
		return nil, &ngerr.MapError{Path: path, Size: size, Err: ErrTooLarge}
	}

	data, unmap, err := osMap(f, int(size))
	if err != nil {
		f.Close()
		return nil, &ngerr.MapError{Path: path, Size: size, Err: err}
	}

	log.Debugf("Mapped %s (%s)", path, humanize.IBytes(uint64(size)))
	return &Region{
		path:  path,
		data:  data,
		size:  int(size),
		f:     f,
		unmap: unmap,
	}, nil
}

// FromBytes wraps b as a region. Close on such a region only marks it
// closed; b itself is left to the caller.
func FromBytes(b []byte) *Region {
	return &Region{path: "<memory>", data: b, size: len(b)}
}

// Close releases the mapping and the descriptor. Calling it a second time
// is a caller error and returns ErrClosed.
func (r *Region) Close() error {
	if r.closed.Swap(true) {
		return ErrClosed
	}
	var err error
	if r.unmap != nil && r.data != nil {
		err = r.unmap(r.data)
	}
	r.data = nil
	if r.f != nil {
		if cerr := r.f.Close(); cerr != nil && err == nil {
			err = cerr
		}
		r.f = nil
	}
	return err
}

// Bytes returns the mapped contents, or nil once the region is closed.
func (r *Region) Bytes() []byte {
	if r.closed.Load() {
		return nil
	}
	return r.data
}

// Size is the byte length of the file at open time.
func (r *Region) Size() int { return r.size }

// Path is the file the region was opened from.
func (r *Region) Path() string { return r.path }

// Closed reports whether Close has been called.
func (r *Region) Closed() bool { return r.closed.Load() }

// Advise passes an access hint to the kernel. Regions without a mapping
// accept any hint.
func (r *Region) Advise(pattern AccessPattern) error {
	if r.closed.Load() {
		return ErrClosed
	}
	if r.unmap == nil || len(r.data) == 0 {
		return nil
	}
	return osAdvise(r.data, pattern)
}

// ReadAt implements io.ReaderAt over the region.
func (r *Region) ReadAt(p []byte, off int64) (int, error) {
	if r.closed.Load() {
		return 0, ErrClosed
	}
	if off < 0 {
		return 0, ErrInvalidOffset
	}
	if off >= int64(len(r.data)) {
		return 0, io.EOF
	}
	n := copy(p, r.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}
