// Package intscan parses buffers of whitespace-separated decimal integers
// into []uint32 by classifying 16-byte windows instead of scanning one
// byte at a time.
//
// Each window is reduced to a 16-bit "is digit" pattern. A lookup table,
// precomputed for all 65,536 patterns, tells the parser how to gather the
// digit bytes of the window into uniform blocks (a byte shuffle) and at
// which width to convert them. The conversion itself is a widening
// multiply-add tree: pairs of digits are combined with weights 10/1, pairs
// of pairs with 100/1 and pairs of four-digit groups with 10000/1, so a
// k-digit number costs log2(k) vector steps.
//
// # Basic Usage
//
//	nums, err := intscan.Parse(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Parse uses a table built on first use. On amd64 with SSSE3 the window
// classification and digit gather run in assembly; elsewhere the same
// steps run on portable Go lanes. INTSCAN_NO_SIMD selects the scalar
// kernel instead. All kernels produce identical output. Callers that manage their own table call
// ParseInts directly:
//
//	table := intscan.BuildTable()
//	nums, err := intscan.ParseInts(data, table)
//
// # Input Format
//
// Numbers are runs of ASCII digits of at most 8 characters. Every other
// byte is a separator. Signs, decimal points and longer runs are not
// supported; a run longer than 8 digits fails the whole call with
// ErrNumberTooLong.
//
// # Persisted Tables
//
// A table serializes to a flat array of 65,536 records of RecordSize
// bytes (Table.Bytes, ParseTable). Pack and Unpack wrap the same bytes in
// a small header with optional record transposition and compression
// (LZ4, LZ4HC, Snappy, ZLIB, ZSTD).
//
// # Thread Safety
//
// Tables are immutable once built or loaded and may be shared by any
// number of goroutines. All functions in this package are safe for
// concurrent use.
package intscan

import "errors"

// Version constants
const (
	Version       = "1.0.0"
	FormatVersion = 1 // Table archive format version
)

// Geometry of the lookup table.
const (
	WindowSize   = 16                        // Bytes classified per step
	PatternCount = 1 << WindowSize           // Number of distinct digit patterns
	RecordSize   = WindowSize + 3            // Shuffle, skip, extracted, width
	TableSize    = PatternCount * RecordSize // Bytes in a serialized table
	MaxDigits    = 8                         // Longest supported number
)

// Predefined errors for common failure conditions.
// These can be checked using errors.Is() for programmatic error handling.
var (
	// ErrNumberTooLong indicates a run of more than MaxDigits digits.
	ErrNumberTooLong = errors.New("intscan: number longer than 8 digits")

	// ErrFormat indicates serialized table bytes of the wrong size or with
	// records that violate the table invariants.
	ErrFormat = errors.New("intscan: invalid lookup table format")

	// ErrInvalidData indicates the archive is malformed or corrupted.
	ErrInvalidData = errors.New("intscan: invalid archive data")

	// ErrInvalidHeader indicates the archive header is missing or malformed.
	ErrInvalidHeader = errors.New("intscan: invalid archive header")

	// ErrInvalidVersion indicates an unsupported archive format version.
	ErrInvalidVersion = errors.New("intscan: unsupported archive version")

	// ErrInvalidCodec indicates the codec is not supported or registered.
	ErrInvalidCodec = errors.New("intscan: unsupported codec")

	// ErrCompressionFailed indicates the codec failed to compress the table.
	ErrCompressionFailed = errors.New("intscan: compression failed")

	// ErrDecompressionFailed indicates the codec failed to decompress the table.
	ErrDecompressionFailed = errors.New("intscan: decompression failed")
)
