package render

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLRenderer emits the entries as a YAML document.
type YAMLRenderer struct{}

// Render writes the serialized entries.
func (yr *YAMLRenderer) Render(w io.Writer, entries []Entry) error {
	encoder := yaml.NewEncoder(w)

	err := encoder.Encode(toReport(entries))
	if err != nil {
		return fmt.Errorf("encode yaml report: %w", err)
	}

	err = encoder.Close()
	if err != nil {
		return fmt.Errorf("close yaml encoder: %w", err)
	}

	return nil
}
