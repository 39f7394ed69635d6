package ingest

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"
)

const defaultConcurrency = 4

// sheetRowsReader feeds workbook rows to gocsv.
type sheetRowsReader struct {
	rows [][]string
	pos  int
}

func newSheetRowsReader(rows [][]string) *sheetRowsReader {
	width := 0
	if len(rows) > 0 {
		width = len(rows[0])
	}

	// excelize trims trailing empty cells
	padded := make([][]string, len(rows))
	for i, row := range rows {
		for len(row) < width {
			row = append(row, "")
		}

		padded[i] = row
	}

	return &sheetRowsReader{rows: padded}
}

func (r *sheetRowsReader) Read() ([]string, error) {
	if r.pos >= len(r.rows) {
		return nil, io.EOF
	}

	row := r.rows[r.pos]
	r.pos++

	return row, nil
}

func (r *sheetRowsReader) ReadAll() ([][]string, error) {
	rows := r.rows[r.pos:]
	r.pos = len(r.rows)
	return rows, nil
}

func readCSV(path string) ([]*BrokerOrderRowDTO, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	var rows []*BrokerOrderRowDTO
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal CSV: %w", err)
	}

	return rows, nil
}

func readXLSX(path string) ([]*BrokerOrderRowDTO, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyWorkbook
	}

	cells, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}

	var rows []*BrokerOrderRowDTO
	if err := gocsv.UnmarshalCSV(newSheetRowsReader(cells), &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sheet %s: %w", sheets[0], err)
	}

	return rows, nil
}

// ReadExport parses one broker export, .csv or .xlsx.
func ReadExport(path string) ([]*BrokerOrderRowDTO, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return readCSV(path)
	case ".xlsx":
		return readXLSX(path)
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFile)
	}
}

type ReadResult struct {
	Entries []LogEntry
	// Read lists the files that parsed, in input order. Failed files are
	// left out so they are retried on the next run.
	Read   []string
	Failed []string
}

type Reader struct {
	normalizer  *Normalizer
	concurrency int
}

func NewReader(normalizer *Normalizer, concurrency int) *Reader {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	return &Reader{
		normalizer:  normalizer,
		concurrency: concurrency,
	}
}

// ReadFiles parses exports concurrently. Entries are returned in file order
// regardless of which file finished first. A file that fails to parse is
// logged and skipped.
func (r *Reader) ReadFiles(ctx context.Context, paths []string) (*ReadResult, error) {
	entries := make([][]LogEntry, len(paths))
	failed := make([]bool, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			rows, err := ReadExport(path)
			if err != nil {
				log.WithField("file", filepath.Base(path)).Errorf("failed to read export: %v", err)
				failed[i] = true
				return nil
			}

			entries[i] = r.normalizer.Normalize(rows)
			log.WithField("file", filepath.Base(path)).Infof("parsed %d filled orders from %d rows", len(entries[i]), len(rows))

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("ReadFiles: %w", err)
	}

	result := &ReadResult{}
	for i, path := range paths {
		if failed[i] {
			result.Failed = append(result.Failed, path)
			continue
		}

		result.Read = append(result.Read, path)
		result.Entries = append(result.Entries, entries[i]...)
	}

	return result, nil
}
