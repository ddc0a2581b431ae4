package intscan

import (
	"fmt"

	"github.com/mrjoshuak/go-intscan/internal/vec"
)

// tailFiller pads the final partial window. Any non-digit works.
const tailFiller = ' '

var (
	asciiZero = vec.SplatU8('0')

	// Multiply-add weights for each stage of the digit summation tree.
	twoDigits   = vec.U8x16{10, 1, 10, 1, 10, 1, 10, 1, 10, 1, 10, 1, 10, 1, 10, 1}
	fourDigits  = vec.I16x8{100, 1, 100, 1, 100, 1, 100, 1}
	eightDigits = vec.I16x8{10000, 1, 10000, 1, 10000, 1, 10000, 1}
)

// ParseInts parses every number in input using table t.
//
// The input is walked in 16-byte windows. Each window's digit pattern
// selects a table entry whose shuffle packs the complete numbers of the
// window into blocks of uniform width; the blocks are converted together
// and the cursor advances past the bytes the entry resolved. The final
// partial window is padded with spaces.
//
// A run of more than MaxDigits digits returns ErrNumberTooLong and no
// numbers.
func ParseInts(input []byte, t *Table) ([]uint32, error) {
	// Each number needs at least one digit and one separator, except the last.
	out := make([]uint32, 0, len(input)/2+1)

	var err error
	cursor := 0
	for len(input)-cursor >= WindowSize {
		var n int
		out, n, err = parseWindow((*vec.U8x16)(input[cursor:cursor+WindowSize]), t, out)
		if err != nil {
			return nil, fmt.Errorf("%w: at offset %d", err, cursor)
		}
		cursor += n
	}

	var scratch [WindowSize]byte
	for cursor < len(input) {
		rest := copy(scratch[:], input[cursor:])
		for i := rest; i < WindowSize; i++ {
			scratch[i] = tailFiller
		}

		var n int
		out, n, err = parseWindow((*vec.U8x16)(&scratch), t, out)
		if err != nil {
			return nil, fmt.Errorf("%w: at offset %d", err, cursor)
		}
		cursor += n
	}
	return out, nil
}

// MustParseInts is like ParseInts but panics on error.
func MustParseInts(input []byte, t *Table) []uint32 {
	out, err := ParseInts(input, t)
	if err != nil {
		panic(err)
	}
	return out
}

// parseWindow converts the numbers of one window and reports how many
// bytes it resolved.
func parseWindow(window *vec.U8x16, t *Table, out []uint32) ([]uint32, int, error) {
	e := &t.entries[digitMask(window)]
	if e.Extracted == 0 {
		if e.Skip == 0 {
			// A run starting at the first lane that no width can hold.
			return out, 0, ErrNumberTooLong
		}
		return out, int(e.Skip), nil
	}

	digits := gatherDigits(window, &e.Shuffle)
	return reduce(digits, int(e.Width), int(e.Extracted), out), int(e.Skip), nil
}

// reduce appends the first n numbers held in width-digit blocks of digits.
func reduce(digits vec.U8x16, width, n int, out []uint32) []uint32 {
	switch width {
	case 1:
		for i := 0; i < n; i++ {
			out = append(out, uint32(digits[i]))
		}
	case 2:
		two := vec.MulAddU8(digits, twoDigits)
		for i := 0; i < n; i++ {
			out = append(out, uint32(two[i]))
		}
	case 4:
		four := vec.MulAddI16(vec.MulAddU8(digits, twoDigits), fourDigits)
		for i := 0; i < n; i++ {
			out = append(out, uint32(four[i]))
		}
	case 8:
		four := vec.MulAddI16(vec.MulAddU8(digits, twoDigits), fourDigits)
		// Four-digit groups fit 16 bits; repack before the last stage.
		packed := vec.PackUS32(four, four)
		eight := vec.MulAddI16(packed.AsI16(), eightDigits)
		for i := 0; i < n; i++ {
			out = append(out, uint32(eight[i]))
		}
	}
	return out
}
