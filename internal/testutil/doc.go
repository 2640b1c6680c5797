// Package testutil builds dictionary and triple files for tests and
// benchmarks. The library itself has no write path; these encoders exist
// only so fixtures can be produced in the on-disk formats.
//
//	dict := testutil.EncodeDictionary(testutil.Word{ID: 5, Text: "cat"})
//	triples := testutil.EncodeTriples(testutil.Triple{5, 6, 7, 9})
//	path := testutil.WriteFile(t, "word.bin", dict)
package testutil
