package sheets

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/sheets/v4"

	"github.com/jiaming2012/trade-journal/src/eventmodels"
)

const (
	newSheetRows    = 1000
	newSheetColumns = 30
)

// sheetRange quotes a tab name for A1 notation.
func sheetRange(sheetName string, cells string) string {
	quoted := "'" + strings.ReplaceAll(sheetName, "'", "''") + "'"
	if cells == "" {
		return quoted
	}

	return quoted + "!" + cells
}

func sheetTitles(ctx context.Context, srv *sheets.Service, spreadsheetId string) (map[string]struct{}, error) {
	spreadsheet, err := srv.Spreadsheets.Get(spreadsheetId).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve spreadsheet: %w", err)
	}

	titles := make(map[string]struct{}, len(spreadsheet.Sheets))
	for _, s := range spreadsheet.Sheets {
		if s.Properties != nil {
			titles[s.Properties.Title] = struct{}{}
		}
	}

	return titles, nil
}

func addSheet(ctx context.Context, srv *sheets.Service, spreadsheetId string, sheetName string) error {
	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			{
				AddSheet: &sheets.AddSheetRequest{
					Properties: &sheets.SheetProperties{
						Title: sheetName,
						GridProperties: &sheets.GridProperties{
							RowCount:    newSheetRows,
							ColumnCount: newSheetColumns,
						},
					},
				},
			},
		},
	}

	if _, err := srv.Spreadsheets.BatchUpdate(spreadsheetId, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("unable to add sheet %s: %w", sheetName, err)
	}

	return nil
}

func fetchRows(ctx context.Context, srv *sheets.Service, spreadsheetId string, sheetName string) (eventmodels.Rows, error) {
	response, err := srv.Spreadsheets.Values.Get(spreadsheetId, sheetRange(sheetName, "")).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve data from sheet %s: %w", sheetName, err)
	}

	if response.HTTPStatusCode != 200 {
		return nil, fmt.Errorf("invalid http status code: %v", response.HTTPStatusCode)
	}

	return response.Values, nil
}

func clearRows(ctx context.Context, srv *sheets.Service, spreadsheetId string, sheetName string) error {
	_, err := srv.Spreadsheets.Values.Clear(spreadsheetId, sheetRange(sheetName, ""), &sheets.ClearValuesRequest{}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("unable to clear sheet %s: %w", sheetName, err)
	}

	return nil
}

func updateRows(ctx context.Context, srv *sheets.Service, spreadsheetId string, sheetName string, values eventmodels.Rows) error {
	row := &sheets.ValueRange{
		Values: values,
	}

	response, err := srv.Spreadsheets.Values.Update(spreadsheetId, sheetRange(sheetName, "A1"), row).ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("unable to update sheet %s: %w", sheetName, err)
	}

	if response.HTTPStatusCode != 200 {
		return fmt.Errorf("invalid http status code: %v", response.HTTPStatusCode)
	}

	return nil
}
