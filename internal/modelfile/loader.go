package modelfile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CurrentVersion is the schema version this package reads and writes.
const CurrentVersion = "1"

// LoadFile loads and parses a YAML model file from the given path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a File.
func Parse(data []byte) (*File, error) {
	var mf File

	if err := yaml.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("failed to parse model YAML: %w", err)
	}

	applyDefaults(&mf)

	return &mf, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(mf *File) {
	if mf.Version == "" {
		mf.Version = CurrentVersion
	}

	for i := range mf.Features {
		f := &mf.Features[i]
		if f.Name == "" {
			f.Name = f.ID
		}

		if f.Frame != nil {
			if f.Frame.XAxis == (Vec3{}) {
				f.Frame.XAxis = Vec3{1, 0, 0}
			}

			if f.Frame.YAxis == (Vec3{}) {
				f.Frame.YAxis = Vec3{0, 1, 0}
			}
		}
	}
}

// Marshal serializes a File to YAML.
func Marshal(mf *File) ([]byte, error) {
	return yaml.Marshal(mf)
}

// WriteFile writes a File to the given path.
func WriteFile(mf *File, path string) error {
	data, err := Marshal(mf)
	if err != nil {
		return fmt.Errorf("failed to marshal model: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write model file %s: %w", path, err)
	}

	return nil
}
