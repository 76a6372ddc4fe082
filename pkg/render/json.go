package render

import (
	"encoding/json"
	"fmt"
	"io"
)

// reportEntry is the serialized form shared by the JSON and YAML renderers.
type reportEntry struct {
	Path   string        `json:"path"            yaml:"path"`
	Lines  int           `json:"lines"           yaml:"lines"`
	Owners []reportOwner `json:"owners"          yaml:"owners"`
}

type reportOwner struct {
	Author   string  `json:"author"   yaml:"author"`
	Lines    int     `json:"lines"    yaml:"lines"`
	Fraction float64 `json:"fraction" yaml:"fraction"`
}

func toReport(entries []Entry) []reportEntry {
	report := make([]reportEntry, 0, len(entries))

	for _, entry := range entries {
		owners := make([]reportOwner, 0, len(entry.Owners))
		for _, owner := range entry.Owners {
			owners = append(owners, reportOwner{
				Author:   owner.Author,
				Lines:    owner.Score.Lines,
				Fraction: owner.Score.Fraction(),
			})
		}

		report = append(report, reportEntry{
			Path:   DisplayPath(entry.Path),
			Lines:  entry.Total,
			Owners: owners,
		})
	}

	return report
}

// JSONRenderer emits the entries as an indented JSON array.
type JSONRenderer struct{}

// Render writes the serialized entries.
func (jr *JSONRenderer) Render(w io.Writer, entries []Entry) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(toReport(entries))
	if err != nil {
		return fmt.Errorf("encode json report: %w", err)
	}

	return nil
}
