package host

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Snapshot is a serializable view of a document.
type Snapshot struct {
	Name    string           `yaml:"name"`
	Objects []ObjectSnapshot `yaml:"objects"`
}

// ObjectSnapshot is an object with its sketch data inlined.
type ObjectSnapshot struct {
	Object      `yaml:",inline"`
	Geometry    []Geometry           `yaml:"geometry,omitempty"`
	Constraints []ConstraintSnapshot `yaml:"constraints,omitempty"`
}

// ConstraintSnapshot is a constraint record with its raw payload.
type ConstraintSnapshot struct {
	Constraint `yaml:",inline"`
	Content    string `yaml:"content"`
}

// Snapshot captures the current document state.
func (d *MemoryDocument) Snapshot() Snapshot {
	snap := Snapshot{Name: d.Name}

	for _, obj := range d.objects {
		entry := ObjectSnapshot{Object: *obj}

		if obj.sketch != nil {
			entry.Geometry = obj.sketch.Geometry()

			for _, c := range obj.sketch.constraints {
				entry.Constraints = append(entry.Constraints, ConstraintSnapshot{Constraint: c, Content: c.Content()})
			}
		}

		snap.Objects = append(snap.Objects, entry)
	}

	return snap
}

// Marshal serializes the document to YAML.
func (d *MemoryDocument) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(d.Snapshot())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal host document %s: %w", d.Name, err)
	}

	return data, nil
}
