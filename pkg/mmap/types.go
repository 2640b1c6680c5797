package mmap

import "errors"

// AccessPattern is a hint to the kernel about how the region will be read.
type AccessPattern int

const (
	// AccessDefault applies no specific advice.
	AccessDefault AccessPattern = iota
	// AccessSequential suits a single front-to-back scan (dictionary load,
	// span index build).
	AccessSequential
	// AccessRandom suits point lookups.
	AccessRandom
	// AccessWillNeed asks the kernel to prefetch the region.
	AccessWillNeed
)

// ParseAccessPattern maps a config string to an AccessPattern. Unknown
// values fall back to AccessDefault.
func ParseAccessPattern(s string) AccessPattern {
	switch s {
	case "sequential":
		return AccessSequential
	case "random":
		return AccessRandom
	case "willneed":
		return AccessWillNeed
	default:
		return AccessDefault
	}
}

var (
	// ErrClosed is returned when a region is used or closed after Close.
	ErrClosed = errors.New("mmap: region is closed")
	// ErrInvalidOffset is returned by ReadAt for negative offsets.
	ErrInvalidOffset = errors.New("mmap: invalid offset")
	// ErrTooLarge is wrapped in a MapError when the file does not fit in the
	// address space.
	ErrTooLarge = errors.New("mmap: file too large to map")
	// ErrUnsupported is wrapped in a MapError on platforms without mmap.
	ErrUnsupported = errors.New("mmap: unsupported platform")
)
