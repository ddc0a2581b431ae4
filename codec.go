package intscan

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/snappy"
	kzlib "github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compressor compresses and decompresses archive payloads.
//
// Every payload decodes to a known size (TableSize for tables written by
// Pack). Decompress must return exactly expectedSize bytes and must fail,
// without allocating past expectedSize, when the data would expand to
// anything else.
type Compressor interface {
	// Compress compresses data with the given level (1-9)
	Compress(data []byte, level int) ([]byte, error)

	// Decompress decompresses data to exactly expectedSize bytes
	Decompress(data []byte, expectedSize int) ([]byte, error)

	// Name returns the codec name
	Name() string
}

// errSizeMismatch marks a payload that does not decode to the size the
// archive header declares.
var errSizeMismatch = errors.New("decoded size mismatch")

func sizeMismatch(codec string, got, want int) error {
	return fmt.Errorf("%s: %w: got %d bytes, expected %d", codec, errSizeMismatch, got, want)
}

// codecs maps codec IDs to implementations
var codecs = map[Codec]Compressor{
	LZ4:    &lz4Codec{},
	LZ4HC:  &lz4hcCodec{},
	ZLIB:   &zlibCodec{},
	ZSTD:   &zstdCodec{},
	Snappy: &snappyCodec{},
}

// RegisterCodec registers a custom codec implementation. It must be called
// before any concurrent Pack or Unpack, typically from an init function.
func RegisterCodec(id Codec, c Compressor) {
	codecs[id] = c
}

// GetCodec returns the codec implementation for the given ID
func GetCodec(id Codec) (Compressor, bool) {
	c, ok := codecs[id]
	return c, ok
}

// ListCodecs returns all registered codec IDs
func ListCodecs() []Codec {
	result := make([]Codec, 0, len(codecs))
	for id := range codecs {
		result = append(result, id)
	}
	return result
}

// =============================================================================
// LZ4 and LZ4HC share the block format
// =============================================================================

// lz4Block compresses data into a single LZ4 block. A zero-length result
// means the data is incompressible and is returned as is; Pack then stores
// the payload.
func lz4Block(data []byte, compress func(src, dst []byte) (int, error)) ([]byte, error) {
	buf := make([]byte, lz4.CompressBlockBound(len(data)))
	n, err := compress(data, buf)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return data, nil
	}
	return buf[:n], nil
}

// lz4Unblock decodes an LZ4 block into a buffer of exactly expectedSize.
// UncompressBlock never writes past the buffer, so a block that would
// expand further fails instead of growing.
func lz4Unblock(name string, data []byte, expectedSize int) ([]byte, error) {
	buf := make([]byte, expectedSize)
	n, err := lz4.UncompressBlock(data, buf)
	if err != nil {
		return nil, fmt.Errorf("%s decompress: %w", name, err)
	}
	if n != expectedSize {
		return nil, sizeMismatch(name, n, expectedSize)
	}
	return buf, nil
}

type lz4Codec struct{}

func (c *lz4Codec) Name() string { return "lz4" }

func (c *lz4Codec) Compress(data []byte, level int) ([]byte, error) {
	out, err := lz4Block(data, func(src, dst []byte) (int, error) {
		return lz4.CompressBlock(src, dst, nil)
	})
	if err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}
	return out, nil
}

func (c *lz4Codec) Decompress(data []byte, expectedSize int) ([]byte, error) {
	return lz4Unblock("lz4", data, expectedSize)
}

type lz4hcCodec struct{}

func (c *lz4hcCodec) Name() string { return "lz4hc" }

// lz4hcLevel maps archive levels 1-9 onto the LZ4HC search depths.
func lz4hcLevel(level int) lz4.CompressionLevel {
	switch {
	case level <= 3:
		return lz4.Level1
	case level <= 5:
		return lz4.Level5
	case level <= 7:
		return lz4.Level7
	}
	return lz4.Level9
}

func (c *lz4hcCodec) Compress(data []byte, level int) ([]byte, error) {
	depth := lz4hcLevel(level)
	out, err := lz4Block(data, func(src, dst []byte) (int, error) {
		return lz4.CompressBlockHC(src, dst, depth, nil, nil)
	})
	if err != nil {
		return nil, fmt.Errorf("lz4hc compress: %w", err)
	}
	return out, nil
}

func (c *lz4hcCodec) Decompress(data []byte, expectedSize int) ([]byte, error) {
	return lz4Unblock("lz4hc", data, expectedSize)
}

// =============================================================================
// ZLIB
// =============================================================================

type zlibCodec struct{}

func (c *zlibCodec) Name() string { return "zlib" }

func (c *zlibCodec) Compress(data []byte, level int) ([]byte, error) {
	var buf bytes.Buffer
	w, err := kzlib.NewWriterLevel(&buf, level)
	if err != nil {
		return nil, fmt.Errorf("zlib create writer: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return nil, fmt.Errorf("zlib write: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("zlib close: %w", err)
	}
	return buf.Bytes(), nil
}

// Decompress reads at most expectedSize+1 bytes from the stream; the extra
// byte only detects a stream longer than declared.
func (c *zlibCodec) Decompress(data []byte, expectedSize int) ([]byte, error) {
	r, err := kzlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("zlib create reader: %w", err)
	}
	defer r.Close()

	buf := make([]byte, expectedSize)
	n, err := io.ReadFull(r, buf)
	switch {
	case err == io.EOF || err == io.ErrUnexpectedEOF:
		return nil, sizeMismatch("zlib", n, expectedSize)
	case err != nil:
		return nil, fmt.Errorf("zlib read: %w", err)
	}

	var extra [1]byte
	m, err := r.Read(extra[:])
	if m > 0 {
		return nil, fmt.Errorf("zlib: %w: stream longer than %d bytes", errSizeMismatch, expectedSize)
	}
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("zlib read: %w", err)
	}
	return buf, nil
}

// =============================================================================
// ZSTD
// =============================================================================

type zstdCodec struct{}

func (c *zstdCodec) Name() string { return "zstd" }

// zstdDecoder is shared; DecodeAll is safe for concurrent use. Output is
// capped at the table size and, per call, at the capacity of the
// destination, so hostile frames fail before they expand.
var zstdDecoder = func() *zstd.Decoder {
	d, err := zstd.NewReader(nil,
		zstd.WithDecoderMaxMemory(TableSize),
		zstd.WithDecodeAllCapLimit(true),
		zstd.WithDecoderConcurrency(0),
	)
	if err != nil {
		panic(fmt.Sprintf("intscan: zstd decoder: %v", err))
	}
	return d
}()

// Compress encodes with a one-shot encoder. Levels 1-9 map to the
// fastest, default and better speed classes.
func (c *zstdCodec) Compress(data []byte, level int) ([]byte, error) {
	enc, err := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)),
		zstd.WithEncoderConcurrency(1),
		zstd.WithSingleSegment(true),
	)
	if err != nil {
		return nil, fmt.Errorf("zstd create writer: %w", err)
	}
	defer enc.Close()
	return enc.EncodeAll(data, make([]byte, 0, len(data)/4)), nil
}

func (c *zstdCodec) Decompress(data []byte, expectedSize int) ([]byte, error) {
	// Reject a frame that declares the wrong size before decoding anything.
	var h zstd.Header
	if err := h.Decode(data); err != nil {
		return nil, fmt.Errorf("zstd header: %w", err)
	}
	if h.HasFCS && h.FrameContentSize != uint64(expectedSize) {
		return nil, fmt.Errorf("zstd: %w: frame declares %d bytes, expected %d",
			errSizeMismatch, h.FrameContentSize, expectedSize)
	}

	buf, err := zstdDecoder.DecodeAll(data, make([]byte, 0, expectedSize))
	if errors.Is(err, zstd.ErrDecoderSizeExceeded) || errors.Is(err, zstd.ErrWindowSizeExceeded) {
		return nil, fmt.Errorf("zstd: %w: %w", errSizeMismatch, err)
	}
	if err != nil {
		return nil, fmt.Errorf("zstd decode: %w", err)
	}
	if len(buf) != expectedSize {
		return nil, sizeMismatch("zstd", len(buf), expectedSize)
	}
	return buf, nil
}

// =============================================================================
// Snappy
// =============================================================================

type snappyCodec struct{}

func (c *snappyCodec) Name() string { return "snappy" }

func (c *snappyCodec) Compress(data []byte, level int) ([]byte, error) {
	// Snappy has no levels
	return snappy.Encode(nil, data), nil
}

// Decompress checks the length prefix before allocating.
func (c *snappyCodec) Decompress(data []byte, expectedSize int) ([]byte, error) {
	n, err := snappy.DecodedLen(data)
	if err != nil {
		return nil, fmt.Errorf("snappy decode: %w", err)
	}
	if n != expectedSize {
		return nil, sizeMismatch("snappy", n, expectedSize)
	}
	buf, err := snappy.Decode(make([]byte, expectedSize), data)
	if err != nil {
		return nil, fmt.Errorf("snappy decode: %w", err)
	}
	return buf, nil
}
