package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadYAML loads a YAML file into target. Unknown keys are rejected.
func LoadYAML(path string, target interface{}) error {
	if path == "" {
		return fmt.Errorf("yaml path cannot be empty")
	}
	if target == nil {
		return fmt.Errorf("target cannot be nil")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("yaml file does not exist: %s: %w", path, err)
		}
		return fmt.Errorf("failed to read yaml file %s: %w", path, err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(target); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to unmarshal yaml file %s: %w", path, err)
	}
	return nil
}

// LoadAndValidate loads a YAML file and applies the `validate` struct tags.
func LoadAndValidate(path string, target interface{}) error {
	if err := LoadYAML(path, target); err != nil {
		return err
	}
	if err := NewValidator().ValidateConfig(target); err != nil {
		return fmt.Errorf("invalid yaml file %s: %w", path, err)
	}
	return nil
}
