//go:build !amd64

package intscan

import "github.com/mrjoshuak/go-intscan/internal/vec"

// hasByteShuffle is false where no assembly kernel exists.
func hasByteShuffle() bool {
	return false
}

func digitMask(w *vec.U8x16) uint16 {
	return w.RangeMask('0', '9')
}

func gatherDigits(w *vec.U8x16, shuffle *[WindowSize]byte) vec.U8x16 {
	return w.Sub(asciiZero).PermuteOrZero(vec.U8x16(*shuffle))
}
