package dictionary

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bastiangx/ngramserve/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateFileFormat(t *testing.T) {
	dict := testutil.WriteFile(t, "word.bin", testutil.EncodeDictionary(testutil.Word{ID: 1, Text: "cat"}))
	triples := testutil.WriteFile(t, "ngram3.bin", testutil.EncodeTriples(testutil.Triple{1, 2, 3, 4}))

	assert.NoError(t, ValidateFileFormat(dict, FormatDictionary))
	assert.NoError(t, ValidateFileFormat(triples, FormatTriples))

	odd := testutil.WriteFile(t, "ngram3.bin", []byte{1, 2, 3})
	assert.Error(t, ValidateFileFormat(odd, FormatTriples))

	txt := testutil.WriteFile(t, "word.txt", []byte("cat"))
	assert.Error(t, ValidateFileFormat(txt, FormatDictionary))

	assert.Error(t, ValidateFileFormat(filepath.Join(t.TempDir(), "missing.bin"), FormatTriples))
	assert.Error(t, ValidateFileFormat(dict, FormatUnknown))
}

func TestValidateFileFormat_BadDictionaryHead(t *testing.T) {
	data := testutil.EncodeDictionary(testutil.Word{ID: 1, Text: "cat"})
	data[4] = 200 // declared length far beyond the file
	path := testutil.WriteFile(t, "word.bin", data)
	assert.Error(t, ValidateFileFormat(path, FormatDictionary))
}

func TestDetectFileFormat(t *testing.T) {
	dict := testutil.WriteFile(t, "word.bin", testutil.EncodeDictionary(testutil.Word{ID: 1, Text: "cat"}))
	triples := testutil.WriteFile(t, "ngram3.bin", testutil.EncodeTriples(testutil.Triple{1, 2, 3, 4}))

	f, err := DetectFileFormat(dict)
	require.NoError(t, err)
	assert.Equal(t, FormatDictionary, f)

	f, err = DetectFileFormat(triples)
	require.NoError(t, err)
	assert.Equal(t, FormatTriples, f)
	assert.Equal(t, "Triple Frequency Records", f.String())

	other := filepath.Join(t.TempDir(), "misc.bin")
	require.NoError(t, os.WriteFile(other, nil, 0o644))
	f, err = DetectFileFormat(other)
	assert.Error(t, err)
	assert.Equal(t, FormatUnknown, f)
}
