package reconcile

import (
	"time"

	"github.com/jiaming2012/trade-journal/src/eventmodels"
	"github.com/jiaming2012/trade-journal/src/ingest"
)

// NormalizeTimestamps rewrites the given columns in the journal layout.
// Spreadsheets reformat "2025-01-10T09:30:00" as a date on entry, which would
// otherwise stop stored rows from matching fresh ones. Cells that do not
// parse are left as they are.
func NormalizeTimestamps(table *eventmodels.Table, loc *time.Location, columns ...string) {
	if table.IsEmpty() {
		return
	}

	for _, col := range columns {
		if !table.HasColumns(col) {
			continue
		}

		for i := range table.Rows {
			if ts, ok := ingest.ParseTimestamp(table.Value(i, col), loc); ok {
				table.SetValue(i, col, eventmodels.FormatTimestamp(ts))
			}
		}
	}
}
