package loader

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

const missingCell = "NaN"

// renderFrame prints a header and rows the way a data-frame dump looks: a
// left index column, then right-aligned columns separated by two spaces.
// Rows shorter than the header are padded with NaN.
func renderFrame(header []string, rows [][]string) string {
	if len(rows) == 0 {
		return "Empty DataFrame\nColumns: [" + strings.Join(header, ", ") + "]\nIndex: []"
	}

	cols := len(header)
	for _, r := range rows {
		if len(r) > cols {
			cols = len(r)
		}
	}

	names := make([]string, cols)
	for i := range names {
		if i < len(header) && strings.TrimSpace(header[i]) != "" {
			names[i] = header[i]
		} else {
			names[i] = "Unnamed: " + strconv.Itoa(i)
		}
	}

	cells := make([][]string, len(rows))
	for i, r := range rows {
		line := make([]string, cols)
		for j := range line {
			if j < len(r) && strings.TrimSpace(r[j]) != "" {
				line[j] = r[j]
			} else {
				line[j] = missingCell
			}
		}
		cells[i] = line
	}

	indexWidth := runewidth.StringWidth(strconv.Itoa(len(rows) - 1))
	widths := make([]int, cols)
	for j, n := range names {
		widths[j] = runewidth.StringWidth(n)
	}
	for _, line := range cells {
		for j, c := range line {
			if w := runewidth.StringWidth(c); w > widths[j] {
				widths[j] = w
			}
		}
	}

	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", indexWidth))
	for j, n := range names {
		sb.WriteString("  ")
		sb.WriteString(runewidth.FillLeft(n, widths[j]))
	}
	for i, line := range cells {
		sb.WriteString("\n")
		sb.WriteString(runewidth.FillRight(strconv.Itoa(i), indexWidth))
		for j, c := range line {
			sb.WriteString("  ")
			sb.WriteString(runewidth.FillLeft(c, widths[j]))
		}
	}

	return sb.String()
}

// renderTable treats the first detected row as the header.
func renderTable(t Table) string {
	if len(t.Rows) == 0 {
		return ""
	}
	return renderFrame(t.Rows[0], t.Rows[1:])
}
