package menu

import (
	"io"

	"github.com/mattn/go-runewidth"
	"github.com/olekukonko/tablewriter"
)

// RenderTable writes rows as a table with fixed column widths.
// Longer values are cut, so every row has the same layout.
func RenderTable(w io.Writer, headers []string, widths []int, rows [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader(fit(headers, widths))

	for _, row := range rows {
		table.Append(fit(row, widths))
	}

	table.Render()
}

// fit pads or cuts every value to the width of its column.
func fit(values []string, widths []int) []string {
	cells := make([]string, len(values))

	for i, v := range values {
		if i >= len(widths) {
			cells[i] = v

			continue
		}

		cells[i] = runewidth.FillRight(runewidth.Truncate(v, widths[i], "…"), widths[i])
	}

	return cells
}
