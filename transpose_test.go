package intscan

import (
	"bytes"
	"math/rand"
	"testing"
)

func TestTransposeBytes(t *testing.T) {
	src := []byte{0xA0, 0xA1, 0xA2, 0xB0, 0xB1, 0xB2}
	want := []byte{0xA0, 0xB0, 0xA1, 0xB1, 0xA2, 0xB2}

	got := transposeBytes(src, 3)
	if !bytes.Equal(got, want) {
		t.Errorf("transposeBytes = %x, want %x", got, want)
	}
	if back := untransposeBytes(got, 3); !bytes.Equal(back, src) {
		t.Errorf("untransposeBytes = %x, want %x", back, src)
	}
}

func TestTransposeBytesTrailingRemainder(t *testing.T) {
	src := []byte{1, 2, 3, 4, 5, 6, 7}
	got := transposeBytes(src, 3)
	if got[6] != 7 {
		t.Errorf("trailing byte moved: %v", got)
	}
	if back := untransposeBytes(got, 3); !bytes.Equal(back, src) {
		t.Errorf("round trip = %v, want %v", back, src)
	}
}

func TestTransposeBitsSingleGroup(t *testing.T) {
	// Eight one-byte records; only the first has its high bit set.
	src := []byte{0x80, 0, 0, 0, 0, 0, 0, 0}
	got := transposeBits(src, 1)
	// recordSize 1 is returned unchanged
	if !bytes.Equal(got, src) {
		t.Errorf("transposeBits with record size 1 = %x", got)
	}

	// Eight two-byte records where byte 0 is 0xFF in record 0 only.
	src = make([]byte, 16)
	src[0] = 0xFF
	got = transposeBits(src, 2)
	want := make([]byte, 16)
	for bit := 0; bit < 8; bit++ {
		want[bit] = 0x80
	}
	if !bytes.Equal(got, want) {
		t.Errorf("transposeBits = %x, want %x", got, want)
	}
}

func TestTransposeRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for _, mode := range []Transpose{NoTranspose, ByteTranspose, BitTranspose} {
		for _, size := range []int{0, 5, RecordSize, 8 * RecordSize, 100*RecordSize + 7} {
			src := make([]byte, size)
			rng.Read(src)

			got := untranspose(transpose(src, RecordSize, mode), RecordSize, mode)
			if !bytes.Equal(got, src) {
				t.Errorf("%s transpose of %d bytes did not round trip", mode, size)
			}
		}
	}
}

func TestTransposeTable(t *testing.T) {
	raw := testTable.Bytes()
	for _, mode := range []Transpose{ByteTranspose, BitTranspose} {
		got := untranspose(transpose(raw, RecordSize, mode), RecordSize, mode)
		if !bytes.Equal(got, raw) {
			t.Errorf("%s transpose of the table did not round trip", mode)
		}
	}

	// Byte transposition puts every width byte in the final column.
	shuffled := transposeBytes(raw, RecordSize)
	widths := shuffled[(RecordSize-1)*PatternCount:]
	for p, w := range widths {
		if w != testTable.Entry(uint16(p)).Width {
			t.Fatalf("width column at %d = %d", p, w)
		}
	}
}

func TestGatherBit(t *testing.T) {
	b := [8]byte{0x80, 0x00, 0x80, 0x00, 0x00, 0x00, 0x00, 0x80}
	if got := gatherBit(&b, 0); got != 0xA1 {
		t.Errorf("gatherBit(0) = %#02x, want 0xa1", got)
	}
	if got := gatherBit(&b, 1); got != 0 {
		t.Errorf("gatherBit(1) = %#02x, want 0", got)
	}
}

func BenchmarkTransposeBytes(b *testing.B) {
	raw := testTable.Bytes()
	b.SetBytes(int64(len(raw)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = transposeBytes(raw, RecordSize)
	}
}

func BenchmarkTransposeBits(b *testing.B) {
	raw := testTable.Bytes()
	b.SetBytes(int64(len(raw)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = transposeBits(raw, RecordSize)
	}
}
