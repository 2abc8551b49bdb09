package mcgen

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// fileExists reports whether path names an existing regular file.
func fileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return false, fmt.Errorf("%s is a directory", path)
	}
	return true, nil
}

// ResolveConfig loads the config at path. When path is the default and no
// such file exists, the built-in defaults are used.
func ResolveConfig(path string, explicit bool) (*Config, error) {
	if !explicit {
		ok, err := fileExists(path)
		if err != nil {
			return nil, err
		}
		if !ok {
			return DefaultConfig(), nil
		}
	}
	return LoadConfig(path)
}
