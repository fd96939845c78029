package urlstate

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads a state saved by Save. A missing file yields the default state.
func Load(path string) (State, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("reading view state %s: %w", path, err)
	}

	st := Default()
	if err = yaml.Unmarshal(data, &st); err != nil {
		return Default(), fmt.Errorf("parsing view state %s: %w", path, err)
	}
	if !st.SortValue.Valid() {
		st = Default()
	}
	return st, nil
}

// Save writes st to path, creating the parent directory.
func Save(path string, st State) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating view state directory: %w", err)
	}
	data, err := yaml.Marshal(st)
	if err != nil {
		return fmt.Errorf("encoding view state: %w", err)
	}
	if err = os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing view state %s: %w", path, err)
	}
	return nil
}
