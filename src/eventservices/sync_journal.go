package eventservices

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/trade-journal/src/config"
	"github.com/jiaming2012/trade-journal/src/eventmodels"
	"github.com/jiaming2012/trade-journal/src/ingest"
	"github.com/jiaming2012/trade-journal/src/positions"
	"github.com/jiaming2012/trade-journal/src/reconcile"
)

// TableStore persists whole tables by name.
type TableStore interface {
	ReadTable(ctx context.Context, name string) (*eventmodels.Table, error)
	WriteTable(ctx context.Context, name string, table *eventmodels.Table) error
}

type SyncResult struct {
	RunId uuid.UUID
	// Processed are the files whose trades were published. Files that failed
	// to parse are in Failed and should be retried.
	Processed []string
	Failed    []string

	StoredEntries  int
	NewEntries     int
	DroppedEntries int
	LogEntries     int

	Positions *positions.Result
	Summary   positions.Summary
}

type storedTabs struct {
	allTrades     *eventmodels.Table
	openPositions *eventmodels.Table
	closedTrades  *eventmodels.Table
}

func readStoredTabs(ctx context.Context, store TableStore, cfg *config.Config) (*storedTabs, error) {
	tabs := &storedTabs{}

	var err error
	if tabs.allTrades, err = store.ReadTable(ctx, cfg.Sheets.AllTrades); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", cfg.Sheets.AllTrades, err)
	}

	if tabs.openPositions, err = store.ReadTable(ctx, cfg.Sheets.OpenPositions); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", cfg.Sheets.OpenPositions, err)
	}

	if tabs.closedTrades, err = store.ReadTable(ctx, cfg.Sheets.ClosedTrades); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", cfg.Sheets.ClosedTrades, err)
	}

	return tabs, nil
}

// SyncJournal folds new broker exports into the stored trade log, rebuilds
// positions from the whole log and republishes every tab. Nothing is written
// unless the log converts and the engine succeeds. Returns
// positions.ErrNoTrades when there is neither stored history nor new trades.
func SyncJournal(ctx context.Context, store TableStore, cfg *config.Config, files []string) (*SyncResult, error) {
	result := &SyncResult{RunId: uuid.New()}
	logger := log.WithField("run_id", result.RunId.String())
	loc := cfg.Location()

	tabs, err := readStoredTabs(ctx, store, cfg)
	if err != nil {
		return nil, fmt.Errorf("SyncJournal: %w", err)
	}

	stored := ingest.ParseLogEntries(tabs.allTrades, loc)
	result.StoredEntries = len(stored)
	logger.Infof("read %d stored trade log entries", len(stored))

	reader := ingest.NewReader(ingest.NewNormalizer(loc, cfg.FilledStatuses), cfg.Concurrency)
	readResult, err := reader.ReadFiles(ctx, files)
	if err != nil {
		return nil, fmt.Errorf("SyncJournal: %w", err)
	}

	result.NewEntries = len(readResult.Entries)
	result.Failed = readResult.Failed
	logger.Infof("parsed %d new entries from %d of %d files", result.NewEntries, len(readResult.Read), len(files))

	if len(stored) == 0 && len(readResult.Entries) == 0 {
		return nil, fmt.Errorf("SyncJournal: nothing to process: %w", positions.ErrNoTrades)
	}

	entries := append(stored, readResult.Entries...)
	entries, result.DroppedEntries = ingest.DropInvalidTimestamps(entries)
	entries = ingest.Dedupe(entries)
	result.LogEntries = len(entries)
	logger.Infof("trade log has %d entries after dedupe", len(entries))

	records, err := ingest.ToTradeRecords(entries)
	if err != nil {
		return nil, fmt.Errorf("SyncJournal: %w", err)
	}

	engine := positions.NewEngine(logger)
	if result.Positions, err = engine.Process(records); err != nil {
		return nil, fmt.Errorf("SyncJournal: %w", err)
	}

	if result.Summary, err = positions.Summarize(result.Positions); err != nil {
		return nil, fmt.Errorf("SyncJournal: failed to summarize: %w", err)
	}

	reconcile.NormalizeTimestamps(tabs.openPositions, loc, reconcile.ColumnOpenTime)
	reconcile.NormalizeTimestamps(tabs.closedTrades, loc, reconcile.ColumnBuyTime, reconcile.ColumnCloseTime)

	open := reconcile.MergeManual(reconcile.OpenPositionsTable(result.Positions.OpenPositions), tabs.openPositions, reconcile.OpenPositionsKeyColumns, cfg.ManualColumns.OpenPositions)
	closed := reconcile.MergeManual(reconcile.ClosedTradesTable(result.Positions.ClosedTrades), tabs.closedTrades, reconcile.ClosedTradesKeyColumns, cfg.ManualColumns.ClosedTrades)
	reconcile.FormatReturnRates(closed)

	publish := []struct {
		name  string
		table *eventmodels.Table
	}{
		{cfg.Sheets.AllTrades, ingest.ToTable(entries)},
		{cfg.Sheets.OpenPositions, open},
		{cfg.Sheets.ClosedTrades, closed},
	}

	if cfg.Sheets.Summary != "" {
		publish = append(publish, struct {
			name  string
			table *eventmodels.Table
		}{cfg.Sheets.Summary, reconcile.SummaryTable(result.Summary)})
	}

	for _, p := range publish {
		if err := store.WriteTable(ctx, p.name, p.table); err != nil {
			return nil, fmt.Errorf("SyncJournal: failed to publish %s: %w", p.name, err)
		}
	}

	result.Processed = readResult.Read

	logger.WithFields(log.Fields{
		"closed_trades":   len(result.Positions.ClosedTrades),
		"open_positions":  len(result.Positions.OpenPositions),
		"unmatched_sells": len(result.Positions.UnmatchedSells),
	}).Info("journal published")

	return result, nil
}
