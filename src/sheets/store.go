package sheets

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
	"google.golang.org/api/sheets/v4"

	"github.com/jiaming2012/trade-journal/src/eventmodels"
)

// Store reads and replaces whole tabs of one spreadsheet.
type Store struct {
	srv           *sheets.Service
	spreadsheetId string
	mu            sync.Mutex
}

func NewStore(srv *sheets.Service, spreadsheetId string) *Store {
	return &Store{
		srv:           srv,
		spreadsheetId: spreadsheetId,
	}
}

// ReadTable returns the tab with its first row as the header. A tab that
// does not exist reads as an empty table.
func (s *Store) ReadTable(ctx context.Context, sheetName string) (*eventmodels.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	titles, err := sheetTitles(ctx, s.srv, s.spreadsheetId)
	if err != nil {
		return nil, err
	}

	if _, ok := titles[sheetName]; !ok {
		log.WithField("sheet", sheetName).Info("sheet not found, starting empty")
		return eventmodels.NewTable(), nil
	}

	rows, err := fetchRows(ctx, s.srv, s.spreadsheetId, sheetName)
	if err != nil {
		return nil, err
	}

	return eventmodels.NewTableFromRows(rows), nil
}

// WriteTable replaces the contents of the tab with table, creating the tab
// first if needed. Cells are written as if typed by a user.
func (s *Store) WriteTable(ctx context.Context, sheetName string, table *eventmodels.Table) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	titles, err := sheetTitles(ctx, s.srv, s.spreadsheetId)
	if err != nil {
		return err
	}

	if _, ok := titles[sheetName]; !ok {
		if err := addSheet(ctx, s.srv, s.spreadsheetId, sheetName); err != nil {
			return err
		}
	} else if err := clearRows(ctx, s.srv, s.spreadsheetId, sheetName); err != nil {
		return err
	}

	if err := updateRows(ctx, s.srv, s.spreadsheetId, sheetName, table.ToRows()); err != nil {
		return err
	}

	log.WithField("sheet", sheetName).Infof("wrote %d rows", table.Len())

	return nil
}
