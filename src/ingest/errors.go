package ingest

import "fmt"

var (
	ErrUnsupportedFile = fmt.Errorf("unsupported export file type")
	ErrEmptyWorkbook   = fmt.Errorf("workbook has no sheets")
)
