package intscan

import (
	"fmt"
	"os"
)

// WriteTableFile writes t to path. A nil opts writes the raw serialized
// table; otherwise the table is archived with Pack.
func WriteTableFile(path string, t *Table, opts *PackOptions) error {
	var data []byte
	if opts == nil {
		data = t.Bytes()
	} else {
		var err error
		if data, err = Pack(t, *opts); err != nil {
			return err
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("intscan: write table: %w", err)
	}
	return nil
}

// LoadTableFile reads a table written by WriteTableFile. A file of exactly
// TableSize bytes is a raw table; anything else must be an archive.
func LoadTableFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("intscan: read table: %w", err)
	}
	return LoadTable(data)
}

// LoadTable decodes raw or archived table bytes.
func LoadTable(data []byte) (*Table, error) {
	if len(data) == TableSize {
		return ParseTable(data)
	}
	return Unpack(data)
}
