package reconcile

import (
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/jiaming2012/trade-journal/src/eventmodels"
)

// Render writes table to w as a console table.
func Render(w io.Writer, table *eventmodels.Table) {
	writer := tablewriter.NewWriter(w)
	writer.SetHeader(table.Header)
	writer.SetAutoWrapText(false)
	writer.SetAlignment(tablewriter.ALIGN_RIGHT)

	for _, row := range table.ToRows()[1:] {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = cell.(string)
		}

		writer.Append(cells)
	}

	writer.Render()
}
