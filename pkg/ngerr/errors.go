/*
Package ngerr defines the error taxonomy shared by the mapper, the dictionary
loader and the triple store.

Every typed error matches one of the sentinels below through errors.Is and
unwraps to its underlying cause (usually an *os.PathError or a syscall
errno), so callers can branch on the category without caring which
component raised it:

	if errors.Is(err, ngerr.ErrTruncatedFile) { ... }

Logical misses (unknown word, zero frequency, empty match list) are never
reported as errors.
*/
package ngerr

import (
	"errors"
	"fmt"
)

var (
	// ErrIO is matched by *IOError.
	ErrIO = errors.New("io error")
	// ErrMap is matched by *MapError.
	ErrMap = errors.New("map error")
	// ErrCorruptFormat is matched by *CorruptFormatError.
	ErrCorruptFormat = errors.New("corrupt format")
	// ErrTruncatedFile is matched by *TruncatedFileError.
	ErrTruncatedFile = errors.New("truncated file")
)

// IOError reports a failure to stat or open a path.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func (e *IOError) Is(target error) bool { return target == ErrIO }

// MapError reports that the file was opened but could not be mapped.
type MapError struct {
	Path string
	Size int64
	Err  error
}

func (e *MapError) Error() string {
	return fmt.Sprintf("mmap %s (%d bytes): %v", e.Path, e.Size, e.Err)
}

func (e *MapError) Unwrap() error { return e.Err }

func (e *MapError) Is(target error) bool { return target == ErrMap }

// CorruptFormatError reports bytes that cannot be a valid file of the
// expected kind: a triple file whose size is not a whole number of records,
// or a dictionary id beyond the loader's capacity bound.
type CorruptFormatError struct {
	What   string
	Offset int64
	Detail string
}

func (e *CorruptFormatError) Error() string {
	return fmt.Sprintf("corrupt %s at offset %d: %s", e.What, e.Offset, e.Detail)
}

func (e *CorruptFormatError) Is(target error) bool { return target == ErrCorruptFormat }

// TruncatedFileError reports an entry whose header or payload extends past
// the end of the region.
type TruncatedFileError struct {
	What   string
	Offset int64
	Need   int64
	Have   int64
}

func (e *TruncatedFileError) Error() string {
	return fmt.Sprintf("truncated %s at offset %d: need %d bytes, have %d", e.What, e.Offset, e.Need, e.Have)
}

func (e *TruncatedFileError) Is(target error) bool { return target == ErrTruncatedFile }
