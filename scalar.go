package intscan

import (
	"fmt"

	"github.com/mrjoshuak/go-intscan/internal/vec"
)

// maxRunDigits caps how many digits of a run are buffered. Anything past
// MaxDigits is an error anyway; the cap only bounds the scratch array.
const maxRunDigits = WindowSize

// ParseIntsScalar parses input one byte at a time. It produces the same
// numbers and errors as ParseInts and needs no table, which makes it the
// fallback for CPUs without byte shuffles and the reference for testing
// the vector kernel.
func ParseIntsScalar(input []byte) ([]uint32, error) {
	out := make([]uint32, 0, len(input)/2+1)

	var digits [maxRunDigits]byte
	n, start := 0, 0
	var err error
	for i, b := range input {
		if d := b - '0'; d <= 9 {
			if n == 0 {
				start = i
			}
			if n < maxRunDigits {
				digits[n] = d
			}
			n++
			continue
		}
		if n > 0 {
			if out, err = appendRun(out, &digits, n, start); err != nil {
				return nil, err
			}
			n = 0
		}
	}
	if n > 0 {
		if out, err = appendRun(out, &digits, n, start); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// appendRun converts one run of n digits with the same multiply-add tree
// the vector kernel uses, placing the run right-aligned in the first block.
func appendRun(out []uint32, digits *[maxRunDigits]byte, n, offset int) ([]uint32, error) {
	width, ok := SizeClass(n)
	if !ok {
		return nil, fmt.Errorf("%w: at offset %d", ErrNumberTooLong, offset)
	}
	var block vec.U8x16
	copy(block[width-n:width], digits[:n])
	return reduce(block, width, 1, out), nil
}
