package intscan

// Table records are transposed before compression so equal fields sit
// next to each other: all first shuffle bytes, then all second shuffle
// bytes, and so on up to all width bytes. Long runs of ZeroLane and of
// small skip values compress far better than interleaved records.

// transposeBytes performs byte-level transposition on data.
//
// For N records of recordSize bytes each, the output holds byte 0 of every
// record, then byte 1 of every record, and so on.
//
// Example for 3-byte records [A0 A1 A2] [B0 B1 B2]:
// After transposition: [A0 B0] [A1 B1] [A2 B2]
func transposeBytes(src []byte, recordSize int) []byte {
	if recordSize <= 1 || len(src) < recordSize {
		return src
	}

	n := len(src)
	numRecords := n / recordSize
	dst := make([]byte, n)

	for i := 0; i < numRecords; i++ {
		for j := 0; j < recordSize; j++ {
			dst[j*numRecords+i] = src[i*recordSize+j]
		}
	}

	// Bytes past the last whole record are copied as-is
	if rem := n % recordSize; rem > 0 {
		copy(dst[numRecords*recordSize:], src[numRecords*recordSize:])
	}
	return dst
}

// untransposeBytes reverses transposeBytes.
func untransposeBytes(src []byte, recordSize int) []byte {
	if recordSize <= 1 || len(src) < recordSize {
		return src
	}

	n := len(src)
	numRecords := n / recordSize
	dst := make([]byte, n)

	for i := 0; i < numRecords; i++ {
		for j := 0; j < recordSize; j++ {
			dst[i*recordSize+j] = src[j*numRecords+i]
		}
	}

	if rem := n % recordSize; rem > 0 {
		copy(dst[numRecords*recordSize:], src[numRecords*recordSize:])
	}
	return dst
}

// transposeBits performs bit-level transposition on data.
//
// Records are taken in groups of 8. For each byte position, the 8 bytes
// at that position are transposed so output byte k collects bit k of each
// of them. Width and skip bytes use only their low bits, so the high
// output bytes come out all zero.
func transposeBits(src []byte, recordSize int) []byte {
	if recordSize <= 1 || len(src) < recordSize {
		return src
	}

	n := len(src)
	numRecords := n / recordSize
	dst := make([]byte, n)

	const groupSize = 8
	numGroups := numRecords / groupSize

	for g := 0; g < numGroups; g++ {
		base := g * groupSize * recordSize

		for pos := 0; pos < recordSize; pos++ {
			var column [groupSize]byte
			for r := 0; r < groupSize; r++ {
				column[r] = src[base+r*recordSize+pos]
			}
			for bit := 0; bit < 8; bit++ {
				dst[base+pos*8+bit] = gatherBit(&column, bit)
			}
		}
	}

	// A partial group cannot be transposed reversibly; copy it and any
	// trailing bytes unchanged.
	tail := numGroups * groupSize * recordSize
	copy(dst[tail:], src[tail:])
	return dst
}

// untransposeBits reverses transposeBits.
func untransposeBits(src []byte, recordSize int) []byte {
	if recordSize <= 1 || len(src) < recordSize {
		return src
	}

	n := len(src)
	numRecords := n / recordSize
	dst := make([]byte, n)

	const groupSize = 8
	numGroups := numRecords / groupSize

	for g := 0; g < numGroups; g++ {
		base := g * groupSize * recordSize

		for pos := 0; pos < recordSize; pos++ {
			var planes [groupSize]byte
			copy(planes[:], src[base+pos*8:base+pos*8+8])
			for r := 0; r < groupSize; r++ {
				dst[base+r*recordSize+pos] = gatherBit(&planes, r)
			}
		}
	}

	tail := numGroups * groupSize * recordSize
	copy(dst[tail:], src[tail:])
	return dst
}

// gatherBit collects bit k (MSB first) of each of the 8 bytes into one
// byte, byte 0 landing in the most significant position.
func gatherBit(b *[8]byte, k int) byte {
	var out byte
	for i, v := range b {
		if v&(0x80>>k) != 0 {
			out |= 0x80 >> i
		}
	}
	return out
}

// transpose applies the transposition selected by mode.
func transpose(src []byte, recordSize int, mode Transpose) []byte {
	switch mode {
	case ByteTranspose:
		return transposeBytes(src, recordSize)
	case BitTranspose:
		return transposeBits(src, recordSize)
	}
	return src
}

// untranspose reverses transpose for the same mode.
func untranspose(src []byte, recordSize int, mode Transpose) []byte {
	switch mode {
	case ByteTranspose:
		return untransposeBytes(src, recordSize)
	case BitTranspose:
		return untransposeBits(src, recordSize)
	}
	return src
}
