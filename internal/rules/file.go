package rules

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// LoadFile reads a TOML overrides document from disk. A missing file is
// not an error; it yields empty overrides so defaults apply.
func LoadFile(path string) (Overrides, error) {
	var o Overrides
	if _, err := toml.DecodeFile(path, &o); err != nil {
		if os.IsNotExist(err) {
			return Overrides{}, nil
		}
		return Overrides{}, fmt.Errorf("load rules file %s: %w", path, err)
	}
	return o, nil
}

// SaveFile writes the overrides document to disk.
func SaveFile(path string, o Overrides) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("save rules file %s: %w", path, err)
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(o)
}
