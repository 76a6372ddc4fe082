package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
)

const (
	treeIndent     = "  "
	ownerNameWidth = 28

	majorityShare   = 0.5
	meaningfulShare = 0.2
)

// TreeRenderer prints the indented hierarchy with per-path owner lists.
type TreeRenderer struct {
	NoColor bool
}

// Render writes one block per entry: the path with its total line count,
// then its owners ordered by descending share.
func (tr *TreeRenderer) Render(w io.Writer, entries []Entry) error {
	pathColor := tr.color(color.FgBlue, color.Bold)
	countColor := tr.color(color.FgHiBlack)

	for _, entry := range entries {
		indent := strings.Repeat(treeIndent, entry.Depth)

		label := DisplayPath(entry.Path)
		if entry.IsDir && label != "." {
			label += "/"
		}

		_, err := fmt.Fprintf(w, "%s%s %s\n",
			indent,
			pathColor.Sprint(label),
			countColor.Sprintf("(%s lines)", humanize.Comma(int64(entry.Total))),
		)
		if err != nil {
			return fmt.Errorf("render tree: %w", err)
		}

		for _, owner := range entry.Owners {
			share := owner.Score.Fraction()

			_, err = fmt.Fprintf(w, "%s%s%-*s %s  %s\n",
				indent, treeIndent,
				ownerNameWidth, owner.Author,
				tr.shareColor(share).Sprintf("%5.1f%%", share*100),
				countColor.Sprintf("%s lines", humanize.Comma(int64(owner.Score.Lines))),
			)
			if err != nil {
				return fmt.Errorf("render tree: %w", err)
			}
		}
	}

	return nil
}

func (tr *TreeRenderer) color(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if tr.NoColor {
		c.DisableColor()
	} else {
		c.EnableColor()
	}

	return c
}

// shareColor grades ownership shares: majority owners green, meaningful
// owners yellow, long-tail owners unstyled.
func (tr *TreeRenderer) shareColor(share float64) *color.Color {
	switch {
	case share >= majorityShare:
		return tr.color(color.FgGreen)
	case share >= meaningfulShare:
		return tr.color(color.FgYellow)
	default:
		return tr.color(color.Reset)
	}
}
