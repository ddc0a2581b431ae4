package intscan

import (
	"fmt"
	"sync"

	"github.com/mrjoshuak/go-intscan/internal/vec"
)

// Entry is the precomputed plan for one digit pattern.
type Entry struct {
	Shuffle   [WindowSize]byte // Source lane per destination lane, or vec.ZeroLane
	Skip      uint8            // Bytes of the window fully resolved
	Extracted uint8            // Numbers produced by the shuffle
	Width     uint8            // Digits per number block: 0, 1, 2, 4 or 8
}

// Table maps every 16-bit digit pattern to its Entry.
// A Table is never modified after it is built or loaded.
type Table struct {
	entries [PatternCount]Entry
}

// BuildTable analyzes every digit pattern and compiles its shuffle.
// The result is deterministic; building takes a few milliseconds, so
// callers should build once and share the table.
func BuildTable() *Table {
	t := new(Table)
	for p := 0; p < PatternCount; p++ {
		a := Analyze(uint16(p))
		t.entries[p] = Entry{
			Shuffle:   CompileShuffle(&a),
			Skip:      uint8(a.Skip()),
			Extracted: uint8(a.Consumable.Count),
			Width:     uint8(a.Consumable.Width),
		}
	}
	return t
}

var (
	defaultTable     *Table
	defaultTableOnce sync.Once
)

// DefaultTable returns a process-wide table, built on first use.
func DefaultTable() *Table {
	defaultTableOnce.Do(func() {
		defaultTable = BuildTable()
	})
	return defaultTable
}

// Entry returns the plan for a digit pattern.
func (t *Table) Entry(pattern uint16) Entry {
	return t.entries[pattern]
}

// Equal reports whether two tables hold identical entries.
func (t *Table) Equal(other *Table) bool {
	return t.entries == other.entries
}

// Validate checks every entry against the table invariants.
func (t *Table) Validate() error {
	for p := range t.entries {
		if err := t.entries[p].validate(); err != nil {
			return fmt.Errorf("%w: pattern %#04x: %v", ErrFormat, p, err)
		}
	}
	return nil
}

func (e *Entry) validate() error {
	switch e.Width {
	case 0, 1, 2, 4, 8:
	default:
		return fmt.Errorf("width %d", e.Width)
	}
	if int(e.Extracted)*int(e.Width) > WindowSize {
		return fmt.Errorf("%d numbers of width %d exceed the window", e.Extracted, e.Width)
	}
	if e.Skip > WindowSize {
		return fmt.Errorf("skip %d", e.Skip)
	}
	for i, s := range e.Shuffle {
		if s != vec.ZeroLane && s >= WindowSize {
			return fmt.Errorf("shuffle lane %d selects %d", i, s)
		}
	}
	return nil
}

// Bytes serializes the table as PatternCount records of RecordSize bytes
// in pattern order: shuffle[16], skip, extracted, width.
func (t *Table) Bytes() []byte {
	buf := make([]byte, TableSize)
	for p := range t.entries {
		e := &t.entries[p]
		rec := buf[p*RecordSize : (p+1)*RecordSize]
		copy(rec[:WindowSize], e.Shuffle[:])
		rec[WindowSize] = e.Skip
		rec[WindowSize+1] = e.Extracted
		rec[WindowSize+2] = e.Width
	}
	return buf
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (t *Table) MarshalBinary() ([]byte, error) {
	return t.Bytes(), nil
}

// ParseTable decodes bytes produced by Table.Bytes. The length must be
// exactly TableSize and every record must satisfy the table invariants;
// otherwise ErrFormat is returned and nothing is loaded.
func ParseTable(data []byte) (*Table, error) {
	t := new(Table)
	if err := t.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return t, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. On error the
// table is left unchanged.
func (t *Table) UnmarshalBinary(data []byte) error {
	if len(data) != TableSize {
		return fmt.Errorf("%w: got %d bytes, expected %d", ErrFormat, len(data), TableSize)
	}

	decoded := new(Table)
	for p := range decoded.entries {
		rec := data[p*RecordSize : (p+1)*RecordSize]
		e := &decoded.entries[p]
		copy(e.Shuffle[:], rec[:WindowSize])
		e.Skip = rec[WindowSize]
		e.Extracted = rec[WindowSize+1]
		e.Width = rec[WindowSize+2]
	}
	if err := decoded.Validate(); err != nil {
		return err
	}

	t.entries = decoded.entries
	return nil
}
