package profile

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// LoadProfile reads an Interface from its YAML form.
func LoadProfile(path string) (*Interface, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}

	var iface Interface
	if err := yaml.Unmarshal(data, &iface); err != nil {
		return nil, fmt.Errorf("parse profile %s: %w", path, err)
	}
	if iface.Obfuscation != nil {
		if err := iface.Obfuscation.Validate(); err != nil {
			return nil, fmt.Errorf("profile %s: %w", path, err)
		}
	}

	return &iface, nil
}

// SaveProfile writes the Interface's YAML form. The file is created
// owner-only since profiles carry private keys.
func SaveProfile(path string, iface *Interface) error {
	data, err := yaml.Marshal(iface)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write profile: %w", err)
	}
	return nil
}
