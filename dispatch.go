package intscan

import (
	"os"
	"strconv"
)

func init() {
	initKernel()
}

// Kernel names reported by Kernel.
const (
	KernelSSSE3  = "ssse3"  // table-driven, classify and gather in assembly
	KernelVector = "vector" // table-driven, portable Go lanes
	KernelScalar = "scalar"
)

var (
	// useVector selects the table-driven kernel in Parse.
	useVector bool
	// useAsm routes the table-driven kernel's classify and gather steps
	// through assembly.
	useAsm bool
)

func initKernel() {
	noSIMD := noSIMDEnv()
	useVector = !noSIMD
	useAsm = !noSIMD && hasByteShuffle()
}

// noSIMDEnv reports whether INTSCAN_NO_SIMD asks for the scalar kernel.
// Any non-empty value other than a false boolean counts.
func noSIMDEnv() bool {
	val := os.Getenv("INTSCAN_NO_SIMD")
	if val == "" {
		return false
	}
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}

// Kernel returns the name of the kernel Parse uses on this machine.
func Kernel() string {
	switch {
	case useAsm && useVector:
		return KernelSSSE3
	case useVector:
		return KernelVector
	}
	return KernelScalar
}

// Parse parses every number in input with the table-driven kernel, using
// DefaultTable, or with the scalar kernel when INTSCAN_NO_SIMD is set.
func Parse(input []byte) ([]uint32, error) {
	if useVector {
		return ParseInts(input, DefaultTable())
	}
	return ParseIntsScalar(input)
}
