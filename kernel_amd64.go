//go:build amd64

package intscan

import (
	"math/bits"

	"github.com/mrjoshuak/go-intscan/internal/vec"
	"golang.org/x/sys/cpu"
)

// digitMaskSSE2 returns the PMOVMSKB mask of the lanes of window holding
// '0' to '9'. Lane 0 is bit 0. SSE2 is part of the amd64 baseline.
//
//go:noescape
func digitMaskSSE2(window *[16]byte) uint16

// gatherDigitsSSSE3 subtracts '0' from every lane of window and gathers the
// result into dst with PSHUFB, using shuffle as the control.
//
//go:noescape
func gatherDigitsSSSE3(dst, window, shuffle *[16]byte)

// hasByteShuffle reports PSHUFB (SSSE3).
func hasByteShuffle() bool {
	return cpu.X86.HasSSSE3
}

// digitMask returns the digit pattern of w, lane 0 in the top bit.
func digitMask(w *vec.U8x16) uint16 {
	if useAsm {
		return bits.Reverse16(digitMaskSSE2((*[16]byte)(w)))
	}
	return w.RangeMask('0', '9')
}

// gatherDigits returns the digit values of w permuted by shuffle.
func gatherDigits(w *vec.U8x16, shuffle *[WindowSize]byte) vec.U8x16 {
	if useAsm {
		var r vec.U8x16
		gatherDigitsSSSE3((*[16]byte)(&r), (*[16]byte)(w), shuffle)
		return r
	}
	return w.Sub(asciiZero).PermuteOrZero(vec.U8x16(*shuffle))
}
