package intscan

import (
	"encoding/binary"
	"fmt"
)

// Codec identifies the compression algorithm of a table archive.
type Codec uint8

const (
	Stored Codec = iota // No compression
	LZ4                 // LZ4 compression
	LZ4HC               // LZ4 High Compression
	Snappy              // Snappy compression
	ZLIB                // ZLIB/deflate compression
	ZSTD                // Zstandard compression
)

// String returns the codec name
func (c Codec) String() string {
	switch c {
	case Stored:
		return "stored"
	case LZ4:
		return "lz4"
	case LZ4HC:
		return "lz4hc"
	case Snappy:
		return "snappy"
	case ZLIB:
		return "zlib"
	case ZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", c)
	}
}

// ParseCodec returns the codec with the given name.
func ParseCodec(name string) (Codec, error) {
	for c := Stored; c <= ZSTD; c++ {
		if c.String() == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidCodec, name)
}

// Transpose selects how table records are reordered before compression.
type Transpose uint8

const (
	NoTranspose   Transpose = 0x0 // Records as serialized
	ByteTranspose Transpose = 0x1 // Group bytes by position within records
	BitTranspose  Transpose = 0x2 // Group bits by position within records
)

// String returns the transposition mode name
func (m Transpose) String() string {
	switch m {
	case NoTranspose:
		return "none"
	case ByteTranspose:
		return "byte"
	case BitTranspose:
		return "bit"
	default:
		return fmt.Sprintf("unknown(%d)", m)
	}
}

// Flag bits in the archive header
const (
	flagByteTranspose = 0x1 // Byte transposition applied
	flagStored        = 0x2 // Payload stored uncompressed
	flagBitTranspose  = 0x4 // Bit transposition applied
)

// HeaderSize is the archive header size in bytes.
const HeaderSize = 16

// Header is the 16-byte header that prefixes a table archive.
type Header struct {
	Version     uint8  // Archive format version
	Codec       Codec  // Compression codec of the payload
	Flags       uint8  // Transposition and storage flags
	RecordSize  uint8  // Bytes per table record
	Entries     uint32 // Number of table records
	RawSize     uint32 // Serialized table size before transposition and compression
	ArchiveSize uint32 // Total archive size including this header
}

// ParseHeader parses an archive header from bytes
func ParseHeader(data []byte) (*Header, error) {
	if len(data) < HeaderSize {
		return nil, ErrInvalidHeader
	}

	h := &Header{
		Version:     data[0],
		Codec:       Codec(data[1]),
		Flags:       data[2],
		RecordSize:  data[3],
		Entries:     binary.LittleEndian.Uint32(data[4:8]),
		RawSize:     binary.LittleEndian.Uint32(data[8:12]),
		ArchiveSize: binary.LittleEndian.Uint32(data[12:16]),
	}

	if h.Version != FormatVersion {
		return nil, fmt.Errorf("%w: got %d, expected %d", ErrInvalidVersion, h.Version, FormatVersion)
	}

	return h, nil
}

// Bytes serializes the header to bytes
func (h *Header) Bytes() []byte {
	buf := make([]byte, HeaderSize)
	buf[0] = h.Version
	buf[1] = byte(h.Codec)
	buf[2] = h.Flags
	buf[3] = h.RecordSize
	binary.LittleEndian.PutUint32(buf[4:8], h.Entries)
	binary.LittleEndian.PutUint32(buf[8:12], h.RawSize)
	binary.LittleEndian.PutUint32(buf[12:16], h.ArchiveSize)
	return buf
}

// IsStored returns true if the payload is not compressed
func (h *Header) IsStored() bool {
	return h.Flags&flagStored != 0
}

// TransposeMode returns the transposition mode from flags
func (h *Header) TransposeMode() Transpose {
	if h.Flags&flagBitTranspose != 0 {
		return BitTranspose
	}
	if h.Flags&flagByteTranspose != 0 {
		return ByteTranspose
	}
	return NoTranspose
}

// PackOptions configures how a table is archived.
type PackOptions struct {
	Codec     Codec     // Compression codec
	Level     int       // Compression level (1-9, higher = better compression)
	Transpose Transpose // Record transposition before compression
}

// DefaultPackOptions returns default archive options. The table is built
// once and loaded often, so the default favors ratio over speed.
func DefaultPackOptions() PackOptions {
	return PackOptions{
		Codec:     ZSTD,
		Level:     7,
		Transpose: ByteTranspose,
	}
}

// Pack serializes t and wraps it in an archive.
func Pack(t *Table, opts PackOptions) ([]byte, error) {
	if opts.Level < 1 {
		opts.Level = 1
	}
	if opts.Level > 9 {
		opts.Level = 9
	}

	raw := t.Bytes()
	payload := transpose(raw, RecordSize, opts.Transpose)

	stored := opts.Codec == Stored
	if !stored {
		compressor, ok := codecs[opts.Codec]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrInvalidCodec, opts.Codec)
		}
		compressed, err := compressor.Compress(payload, opts.Level)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCompressionFailed, err)
		}
		// Keep the transposed bytes when compression does not pay off
		if len(compressed) < len(payload) {
			payload = compressed
		} else {
			stored = true
		}
	}

	flags := uint8(0)
	switch opts.Transpose {
	case ByteTranspose:
		flags |= flagByteTranspose
	case BitTranspose:
		flags |= flagBitTranspose
	}
	if stored {
		flags |= flagStored
	}

	header := Header{
		Version:     FormatVersion,
		Codec:       opts.Codec,
		Flags:       flags,
		RecordSize:  RecordSize,
		Entries:     PatternCount,
		RawSize:     uint32(len(raw)),
		ArchiveSize: uint32(HeaderSize + len(payload)),
	}

	out := make([]byte, HeaderSize+len(payload))
	copy(out[:HeaderSize], header.Bytes())
	copy(out[HeaderSize:], payload)
	return out, nil
}

// Unpack decodes an archive produced by Pack.
func Unpack(data []byte) (*Table, error) {
	header, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}

	if header.RecordSize != RecordSize || header.Entries != PatternCount || header.RawSize != TableSize {
		return nil, fmt.Errorf("%w: archive holds %d records of %d bytes (%d bytes)",
			ErrFormat, header.Entries, header.RecordSize, header.RawSize)
	}
	if header.ArchiveSize < HeaderSize || int64(header.ArchiveSize) > int64(len(data)) {
		return nil, ErrInvalidData
	}

	payload := data[HeaderSize:header.ArchiveSize]

	var raw []byte
	if header.IsStored() {
		raw = make([]byte, len(payload))
		copy(raw, payload)
	} else {
		decompressor, ok := codecs[header.Codec]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrInvalidCodec, header.Codec)
		}
		raw, err = decompressor.Decompress(payload, int(header.RawSize))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecompressionFailed, err)
		}
	}

	if len(raw) != TableSize {
		return nil, fmt.Errorf("%w: got %d bytes, expected %d", ErrFormat, len(raw), TableSize)
	}
	return ParseTable(untranspose(raw, RecordSize, header.TransposeMode()))
}
