package loader

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

const (
	// lineTolerance is how far apart (in points) two baselines may be and
	// still belong to the same line.
	lineTolerance = 2.0

	// Horizontal gaps are measured in font sizes: wider than cellGap starts a
	// new cell, wider than wordGap separates words.
	cellGap = 1.0
	wordGap = 0.15

	defaultFontSize = 10.0
)

type Table struct {
	Page int
	Rows [][]string
}

type textCell struct {
	X    float64
	Text string
}

// textLine is one baseline of a page split into horizontally separated cells.
type textLine struct {
	Y     float64
	Cells []textCell
}

func (l textLine) String() string {
	parts := make([]string, len(l.Cells))
	for i, c := range l.Cells {
		parts[i] = c.Text
	}
	return strings.Join(parts, " ")
}

// pageLines lays out the decoded glyphs of a page, top of the page first.
func pageLines(p pdf.Page) (lines []textLine, err error) {
	defer func() {
		if r := recover(); r != nil {
			lines = nil
			err = fmt.Errorf("malformed page content: %v", r)
		}
	}()
	return layoutLines(p.Content().Text), nil
}

func pageText(lines []textLine) string {
	parts := make([]string, len(lines))
	for i, l := range lines {
		parts[i] = l.String()
	}
	return strings.Join(parts, "\n")
}

func layoutLines(glyphs []pdf.Text) []textLine {
	visible := make([]pdf.Text, 0, len(glyphs))
	for _, g := range glyphs {
		if g.S != "" {
			visible = append(visible, g)
		}
	}
	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].Y > visible[j].Y
	})

	var groups [][]pdf.Text
	var baseline float64
	for _, g := range visible {
		if len(groups) == 0 || baseline-g.Y > lineTolerance {
			groups = append(groups, nil)
			baseline = g.Y
		}
		groups[len(groups)-1] = append(groups[len(groups)-1], g)
	}

	lines := make([]textLine, 0, len(groups))
	for _, grp := range groups {
		y := grp[0].Y
		sort.SliceStable(grp, func(i, j int) bool {
			return grp[i].X < grp[j].X
		})
		if cells := splitCells(grp); len(cells) > 0 {
			lines = append(lines, textLine{Y: y, Cells: cells})
		}
	}
	return lines
}

// splitCells joins the glyphs of one line, breaking into cells at gaps wider
// than a column gutter. Glyphs without a width are given an estimated one.
func splitCells(glyphs []pdf.Text) []textCell {
	var (
		cells []textCell
		sb    strings.Builder
		cellX float64
		end   float64
	)

	flush := func() {
		if s := strings.Join(strings.Fields(sb.String()), " "); s != "" {
			cells = append(cells, textCell{X: cellX, Text: s})
		}
		sb.Reset()
	}

	for i, g := range glyphs {
		size := g.FontSize
		if size <= 0 {
			size = defaultFontSize
		}

		if i == 0 {
			cellX = g.X
		} else {
			gap := g.X - end
			switch {
			case gap > cellGap*size:
				flush()
				cellX = g.X
			case gap > wordGap*size && g.S != " " && !strings.HasSuffix(sb.String(), " "):
				sb.WriteByte(' ')
			}
		}
		sb.WriteString(g.S)

		w := g.W
		if w <= 0 {
			w = float64(utf8.RuneCountInString(g.S)) * size * 0.5
		}
		if e := g.X + w; i == 0 || e > end {
			end = e
		}
	}
	flush()

	return cells
}

// detectTables finds blocks of two or more consecutive lines that each hold
// at least two cells.
func detectTables(page int, lines []textLine) []Table {
	var tables []Table
	var block [][]string

	flush := func() {
		if len(block) >= 2 {
			tables = append(tables, Table{Page: page, Rows: block})
		}
		block = nil
	}

	for _, l := range lines {
		if len(l.Cells) < 2 {
			flush()
			continue
		}
		row := make([]string, len(l.Cells))
		for i, c := range l.Cells {
			row[i] = c.Text
		}
		block = append(block, row)
	}
	flush()

	return tables
}
