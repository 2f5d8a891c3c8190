package tags

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// HexID is a tag identifier that is written to YAML as a zero-padded,
// four-digit hexadecimal integer (e.g. 0x0281) instead of a decimal number or
// a quoted string.
type HexID uint16

// String returns the identifier in its serialized form.
func (id HexID) String() string {
	return fmt.Sprintf("0x%04x", uint16(id))
}

// MarshalYAML emits an int-tagged plain scalar. The encoder drops the explicit
// tag because the hex text already resolves to an int.
func (id HexID) MarshalYAML() (interface{}, error) {
	return &yaml.Node{
		Kind:  yaml.ScalarNode,
		Tag:   "!!int",
		Value: id.String(),
	}, nil
}

// UnmarshalYAML accepts any YAML integer form that fits in 16 bits.
func (id *HexID) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("tag id at line %d is not a scalar", value.Line)
	}

	n, err := strconv.ParseUint(value.Value, 0, 16)
	if err != nil {
		return fmt.Errorf("tag id %q at line %d: %w", value.Value, value.Line, err)
	}

	*id = HexID(n)
	return nil
}

// Entry is one tag in the generated lookup table.
type Entry struct {
	ID       HexID  `yaml:"id"`
	Name     string `yaml:"name"`
	TypeName string `yaml:"type_name"`
}

// Document maps an IFD name to its tags, in source-table order.
type Document map[string][]Entry

// Add appends an entry to the IFD's bucket, creating the bucket on first use.
func (d Document) Add(ifd string, e Entry) {
	d[ifd] = append(d[ifd], e)
}

// Count returns the number of entries across all IFDs.
func (d Document) Count() int {
	n := 0
	for _, entries := range d {
		n += len(entries)
	}
	return n
}
