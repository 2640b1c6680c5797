// Package mmap exposes a file as a read-only, randomly addressable byte
// region.
//
// # Usage
//
//	r, err := mmap.Open("ngram3.bin")
//	if err != nil { ... }
//	defer r.Close()
//
//	data := r.Bytes() // zero-copy view, valid until Close
//
// The whole file is always mapped; there is no windowed mode. Regions are
// safe for concurrent readers. Exactly one owner calls Close, and nothing
// may touch Bytes() after it returns.
//
// FromBytes wraps a byte range that was obtained some other way (embedded
// data, a test fixture) so the same loaders can consume it.
package mmap
