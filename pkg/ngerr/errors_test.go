package ngerr

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_MatchSentinels(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"io", &IOError{Op: "open", Path: "/x", Err: os.ErrNotExist}, ErrIO},
		{"map", &MapError{Path: "/x", Size: 10, Err: errors.New("ENOMEM")}, ErrMap},
		{"corrupt", &CorruptFormatError{What: "triples", Offset: 3, Detail: "odd size"}, ErrCorruptFormat},
		{"truncated", &TruncatedFileError{What: "entry", Offset: 8, Need: 4, Have: 1}, ErrTruncatedFile},
	}
	all := []error{ErrIO, ErrMap, ErrCorruptFormat, ErrTruncatedFile}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			wrapped := fmt.Errorf("loading: %w", tc.err)
			for _, s := range all {
				assert.Equal(t, s == tc.sentinel, errors.Is(wrapped, s), "sentinel %v", s)
			}
			assert.NotEmpty(t, tc.err.Error())
		})
	}
}

func TestIOError_UnwrapsCause(t *testing.T) {
	err := &IOError{Op: "stat", Path: "/missing", Err: os.ErrNotExist}
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "stat /missing")
}
