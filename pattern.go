package intscan

import "math/bits"

// conversionWidths are the digit block sizes the multiply-add tree can
// convert, in the order they are tried.
var conversionWidths = [...]int{1, 2, 4, 8}

// maxRuns is the most digit runs a 16-lane window can hold (alternating
// digits and separators).
const maxRuns = WindowSize / 2

// DigitRun is a maximal sequence of digit lanes in a window.
type DigitRun struct {
	Start int // Lane of the first digit (0 is the first byte of the window)
	Size  int // Number of digits
}

// ConsumableSet describes how many leading runs of a window are converted
// together and at which uniform width.
type ConsumableSet struct {
	Count int // Number of leading runs converted
	Width int // Digits per block: 0, 1, 2, 4 or 8
}

// Analysis is the result of classifying one digit pattern.
type Analysis struct {
	Consumable ConsumableSet

	// IncompleteBits counts the lanes at the end of the window that are
	// left for the next window, either because they may hold a number cut
	// by the window edge or because the chosen width could not batch them.
	IncompleteBits int

	runs    [maxRuns]DigitRun
	numRuns int
}

// Runs returns the digit runs found in the pattern, excluding a run that
// touches the end of the window.
func (a *Analysis) Runs() []DigitRun {
	return a.runs[:a.numRuns]
}

// Skip returns how many bytes of the window are fully resolved.
func (a *Analysis) Skip() int {
	return WindowSize - a.IncompleteBits
}

// SizeClass returns the conversion width for a number of n digits, or
// false if n exceeds MaxDigits.
func SizeClass(n int) (int, bool) {
	switch {
	case n <= 0:
		return 0, true
	case n == 1:
		return 1, true
	case n == 2:
		return 2, true
	case n <= 4:
		return 4, true
	case n <= MaxDigits:
		return 8, true
	}
	return 0, false
}

// Analyze splits a digit pattern into runs and picks the conversion width.
//
// Lane 0 is the most significant bit of pattern. Set bits at the bottom of
// the pattern reach the window edge and may continue in the next window,
// so they are never converted here.
func Analyze(pattern uint16) Analysis {
	var a Analysis

	trailing := bits.TrailingZeros16(^pattern)
	shifted := 0
	for {
		// Bring the next run of set bits to the top of the pattern.
		zeros := bits.LeadingZeros16(pattern)
		shifted += zeros
		if shifted+trailing >= WindowSize {
			break
		}
		pattern <<= zeros

		n := bits.LeadingZeros16(^pattern)
		a.runs[a.numRuns] = DigitRun{Start: shifted, Size: n}
		a.numRuns++
		shifted += n
		pattern <<= n
	}

	if a.numRuns == 0 {
		// Nothing to convert; a run at the window edge is deferred whole.
		a.IncompleteBits = trailing
		return a
	}

	a.Consumable = chooseWidth(a.Runs())
	if a.Consumable.Count < a.numRuns {
		a.IncompleteBits = WindowSize - a.runs[a.Consumable.Count].Start
	} else {
		a.IncompleteBits = trailing
	}
	return a
}

// chooseWidth returns the width that converts the most leading runs. A
// wider width is only adopted when it strictly increases the count, so
// ties keep the narrower width.
func chooseWidth(runs []DigitRun) ConsumableSet {
	var best ConsumableSet
	for _, width := range conversionWidths {
		count := 0
		for _, r := range runs {
			if r.Size > width {
				break
			}
			count++
		}
		if count > best.Count && count*width <= WindowSize {
			best = ConsumableSet{Count: count, Width: width}
		}
	}

	if best.Count == 0 && len(runs) > 0 {
		// The strict rule found no width: every width holding the first run
		// matched more runs than fit in the window, e.g. runs of 5, 1 and 1
		// digits, and a count of 0 would stall the cursor. Convert as many
		// as fit.
		if width, ok := SizeClass(runs[0].Size); ok {
			best = ConsumableSet{Count: WindowSize / width, Width: width}
		}
	}
	return best
}
