package dictionary

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bastiangx/ngramserve/pkg/ngram"
	"github.com/charmbracelet/log"
)

// FileFormat identifies one of the two binary inputs.
type FileFormat int

const (
	FormatUnknown    FileFormat = iota
	FormatDictionary            // variable-length word entries
	FormatTriples               // fixed 16-byte frequency records
)

func (f FileFormat) String() string {
	if info, ok := supportedFormats[f]; ok {
		return info.Description
	}
	return "Unknown"
}

// FormatInfo contains metadata about a file format
type FormatInfo struct {
	Format      FileFormat
	Description string
	Extensions  []string
	Granule     int64 // file size must be a multiple of this, 0 if free-form
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatDictionary: {
		Format:      FormatDictionary,
		Description: "Word Dictionary",
		Extensions:  []string{".bin"},
	},
	FormatTriples: {
		Format:      FormatTriples,
		Description: "Triple Frequency Records",
		Extensions:  []string{".bin"},
		Granule:     ngram.RecordSize,
	},
}

// ValidateFileFormat runs cheap checks on a file before it is mapped: the
// extension, the size granule, and for dictionaries that the first entry
// fits in the file.
func ValidateFileFormat(filename string, expected FileFormat) error {
	fileInfo, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", filename, err)
	}

	formatInfo, exists := supportedFormats[expected]
	if !exists {
		return fmt.Errorf("unknown format: %v", expected)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	validExt := false
	for _, e := range formatInfo.Extensions {
		if ext == e {
			validExt = true
			break
		}
	}
	if !validExt {
		return fmt.Errorf("file %s has invalid extension %s for format %s (expected: %v)",
			filename, ext, formatInfo.Description, formatInfo.Extensions)
	}

	if formatInfo.Granule > 0 && fileInfo.Size()%formatInfo.Granule != 0 {
		return fmt.Errorf("file %s size %d is not a multiple of %d for format %s",
			filename, fileInfo.Size(), formatInfo.Granule, formatInfo.Description)
	}

	if expected == FormatDictionary {
		return validateDictionaryHead(filename, fileInfo.Size())
	}
	log.Debugf("File %s validated as %s", filename, formatInfo.Description)
	return nil
}

// validateDictionaryHead checks that the first entry's text fits in the file
func validateDictionaryHead(filename string, size int64) error {
	if size == 0 {
		return nil
	}
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	var head [HeaderSize]byte
	if _, err := io.ReadFull(file, head[:]); err != nil {
		return fmt.Errorf("failed to read first entry header from %s: %w", filename, err)
	}
	n := binary.NativeEndian.Uint32(head[4:])
	if int64(n) > size-HeaderSize {
		return fmt.Errorf("first entry in %s declares %d text bytes, file has %d", filename, n, size-HeaderSize)
	}
	log.Debugf("Dictionary file %s validated: first entry %d bytes", filename, n)
	return nil
}

// DetectFileFormat guesses the format from the file name, then validates
// it.
func DetectFileFormat(filename string) (FileFormat, error) {
	base := strings.ToLower(filepath.Base(filename))

	var guess FileFormat
	switch {
	case strings.Contains(base, "ngram"), strings.Contains(base, "triple"):
		guess = FormatTriples
	case strings.Contains(base, "word"), strings.Contains(base, "dict"):
		guess = FormatDictionary
	default:
		return FormatUnknown, fmt.Errorf("unable to detect format for file %s", filename)
	}

	if err := ValidateFileFormat(filename, guess); err != nil {
		return FormatUnknown, err
	}
	return guess, nil
}

// GetFormatInfo returns information about a specific format
func GetFormatInfo(format FileFormat) (FormatInfo, bool) {
	info, exists := supportedFormats[format]
	return info, exists
}
