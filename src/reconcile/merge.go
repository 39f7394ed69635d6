package reconcile

import (
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/trade-journal/src/eventmodels"
)

func rowKey(table *eventmodels.Table, row int, keyCols []string) string {
	parts := make([]string, len(keyCols))
	for i, col := range keyCols {
		parts[i] = strings.TrimSpace(table.Value(row, col))
	}

	// unit separator, never present in sheet cells
	return strings.Join(parts, "\x1f")
}

// MergeManual copies manualCols from stored onto fresh, matching rows on
// keyCols after trimming. When stored repeats a key the last row wins. Fresh
// rows without a match, and every row when stored is empty or either table
// lacks a key column, get "" in the manual columns. Key cells of fresh are
// trimmed in place.
func MergeManual(fresh, stored *eventmodels.Table, keyCols, manualCols []string) *eventmodels.Table {
	for _, col := range manualCols {
		fresh.AddColumn(col, "")
	}

	if stored.IsEmpty() || stored.Len() == 0 {
		return fresh
	}

	if !fresh.HasColumns(keyCols...) || !stored.HasColumns(keyCols...) {
		log.WithField("event", "merge").Warnf("missing key columns %v, skipping manual column merge", keyCols)
		return fresh
	}

	preserved := make(map[string]int, stored.Len())
	for i := range stored.Rows {
		preserved[rowKey(stored, i, keyCols)] = i
	}

	matched := 0
	for i := range fresh.Rows {
		for _, col := range keyCols {
			fresh.SetValue(i, col, strings.TrimSpace(fresh.Value(i, col)))
		}

		j, ok := preserved[rowKey(fresh, i, keyCols)]
		if !ok {
			continue
		}

		matched++
		for _, col := range manualCols {
			fresh.SetValue(i, col, stored.Value(j, col))
		}
	}

	log.WithField("event", "merge").Debugf("preserved manual columns on %d of %d rows", matched, fresh.Len())

	return fresh
}
