package render

import (
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// scorePrecision is the number of fraction digits in tabular output.
const scorePrecision = 4

// TableRenderer flattens entries into (path, owner, score) rows, rendered
// either as a boxed terminal table or as CSV with a header row.
type TableRenderer struct {
	CSV bool
}

// Render writes the flattened rows. The header row is part of the data
// contract: path, owner, score.
func (tb *TableRenderer) Render(w io.Writer, entries []Entry) error {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"path", "owner", "score"})

	for _, entry := range entries {
		for _, owner := range entry.Owners {
			tw.AppendRow(table.Row{
				DisplayPath(entry.Path),
				owner.Author,
				strconv.FormatFloat(owner.Score.Fraction(), 'f', scorePrecision, 64),
			})
		}
	}

	if tb.CSV {
		// Keep the header literal; downstream parsers key on these names.
		tw.Style().Format.Header = text.FormatDefault
		tw.RenderCSV()

		return nil
	}

	tw.SetStyle(table.StyleLight)
	tw.Render()

	return nil
}
