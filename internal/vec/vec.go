// Package vec provides fixed-width 128-bit lane types and the handful of
// byte-shuffle and widening multiply-add operations the integer scanner
// needs.
//
// The types are plain arrays passed by value. Every operation reproduces
// the lane semantics of the corresponding SSSE3/SSE4.1 instruction
// (PSHUFB, PMADDUBSW, PMADDWD, PACKUSDW), including saturation.
package vec

// ZeroLane is the permute index that produces a zero byte. Any index with
// the high bit set behaves the same way.
const ZeroLane = 0x80

// U8x16 holds 16 unsigned bytes.
type U8x16 [16]uint8

// I16x8 holds 8 signed 16-bit lanes.
type I16x8 [8]int16

// U16x8 holds 8 unsigned 16-bit lanes.
type U16x8 [8]uint16

// I32x4 holds 4 signed 32-bit lanes.
type I32x4 [4]int32

// LoadU8x16 loads the first 16 bytes of src. It panics if src is shorter.
func LoadU8x16(src []byte) U8x16 {
	_ = src[15]
	var v U8x16
	copy(v[:], src[:16])
	return v
}

// SplatU8 creates a U8x16 with all lanes set to n.
func SplatU8(n uint8) U8x16 {
	var v U8x16
	for i := range v {
		v[i] = n
	}
	return v
}

// Sub performs lane-wise wrapping subtraction.
func (v U8x16) Sub(other U8x16) U8x16 {
	var r U8x16
	for i := range v {
		r[i] = v[i] - other[i]
	}
	return r
}

// RangeMask returns a bitmask of the lanes whose value lies in [lo, hi].
// Lane 0 maps to the most significant bit, lane 15 to bit 0.
func (v U8x16) RangeMask(lo, hi uint8) uint16 {
	var mask uint16
	span := hi - lo
	for i := range v {
		// Unsigned wrap folds both bounds into one compare.
		if v[i]-lo <= span {
			mask |= 1 << (15 - i)
		}
	}
	return mask
}

// PermuteOrZero gathers bytes of v by idx. A lane whose index has the high
// bit set becomes zero; otherwise the low four bits select the source lane.
func (v U8x16) PermuteOrZero(idx U8x16) U8x16 {
	var r U8x16
	for i, j := range idx {
		if j&ZeroLane == 0 {
			r[i] = v[j&0x0F]
		}
	}
	return r
}

// MulAddU8 multiplies unsigned bytes of v by signed bytes of w and adds
// adjacent products into signed 16-bit lanes with saturation.
func MulAddU8(v, w U8x16) I16x8 {
	var r I16x8
	for i := range r {
		lo := int32(v[2*i]) * int32(int8(w[2*i]))
		hi := int32(v[2*i+1]) * int32(int8(w[2*i+1]))
		r[i] = saturate16(lo + hi)
	}
	return r
}

// MulAddI16 multiplies signed 16-bit lanes and adds adjacent products into
// 32-bit lanes.
func MulAddI16(v, w I16x8) I32x4 {
	var r I32x4
	for i := range r {
		r[i] = int32(v[2*i])*int32(w[2*i]) + int32(v[2*i+1])*int32(w[2*i+1])
	}
	return r
}

// PackUS32 narrows the lanes of a and then b to unsigned 16-bit lanes with
// unsigned saturation.
func PackUS32(a, b I32x4) U16x8 {
	var r U16x8
	for i := range a {
		r[i] = saturateU16(a[i])
		r[i+4] = saturateU16(b[i])
	}
	return r
}

// AsI16 reinterprets the lanes as signed.
func (v U16x8) AsI16() I16x8 {
	var r I16x8
	for i := range v {
		r[i] = int16(v[i])
	}
	return r
}

func saturate16(x int32) int16 {
	switch {
	case x > 32767:
		return 32767
	case x < -32768:
		return -32768
	}
	return int16(x)
}

func saturateU16(x int32) uint16 {
	switch {
	case x > 65535:
		return 65535
	case x < 0:
		return 0
	}
	return uint16(x)
}
