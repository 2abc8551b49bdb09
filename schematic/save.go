package schematic

import (
	"fmt"
	"os"
	"path/filepath"
)

// Ext is the file extension of saved schematics.
const Ext = ".schem"

// Save writes the buffer to dir/name.schem and returns the written path.
// The file is written to a temporary sibling first and renamed into place.
func (b *Buffer) Save(dir, name string, version Version) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(dir, name+Ext)

	tmp, err := os.CreateTemp(dir, "."+name+"-*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := b.Encode(tmp, version); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("rename into %s: %w", path, err)
	}
	return path, nil
}
