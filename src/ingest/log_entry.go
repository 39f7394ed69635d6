package ingest

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/trade-journal/src/eventmodels"
)

// Trade log columns, in the order they are published.
const (
	ColumnTimestamp  = "Timestamp"
	ColumnAssetClass = "Asset Class"
	ColumnSymbol     = "Symbol"
	ColumnDirection  = "Direction"
	ColumnQuantity   = "Quantity"
	ColumnPrice      = "Price"
	ColumnExpiry     = "Expiry"
	ColumnOptionType = "Option Type"
	ColumnStrike     = "Strike"
)

var TradeLogHeader = []string{
	ColumnTimestamp,
	ColumnAssetClass,
	ColumnSymbol,
	ColumnDirection,
	ColumnQuantity,
	ColumnPrice,
	ColumnExpiry,
	ColumnOptionType,
	ColumnStrike,
}

// LogEntry is one row of the persisted trade log. Text columns are kept as
// they were read so dedupe compares what was stored. Timestamp is zero and
// Quantity/Price are nil when the source text did not parse.
type LogEntry struct {
	Timestamp  time.Time
	AssetClass string
	Symbol     string
	Direction  string
	Quantity   *float64
	Price      *float64
	Expiry     string
	OptionType string
	Strike     string
}

func parseNumber(s string) *float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}

	return &v
}

// ParseLogEntries reads a stored trade log table. Timestamps written by
// spreadsheets with a space instead of "T" are accepted.
func ParseLogEntries(table *eventmodels.Table, loc *time.Location) []LogEntry {
	if table.IsEmpty() {
		return nil
	}

	entries := make([]LogEntry, 0, table.Len())
	for i := range table.Rows {
		ts, _ := ParseTimestamp(table.Value(i, ColumnTimestamp), loc)

		entries = append(entries, LogEntry{
			Timestamp:  ts,
			AssetClass: table.Value(i, ColumnAssetClass),
			Symbol:     table.Value(i, ColumnSymbol),
			Direction:  table.Value(i, ColumnDirection),
			Quantity:   parseNumber(table.Value(i, ColumnQuantity)),
			Price:      parseNumber(table.Value(i, ColumnPrice)),
			Expiry:     table.Value(i, ColumnExpiry),
			OptionType: table.Value(i, ColumnOptionType),
			Strike:     table.Value(i, ColumnStrike),
		})
	}

	return entries
}

// DropInvalidTimestamps removes entries whose timestamp did not parse.
func DropInvalidTimestamps(entries []LogEntry) ([]LogEntry, int) {
	valid := make([]LogEntry, 0, len(entries))
	for _, e := range entries {
		if e.Timestamp.IsZero() {
			continue
		}

		valid = append(valid, e)
	}

	dropped := len(entries) - len(valid)
	if dropped > 0 {
		log.Warnf("dropped %d trade log entries with an invalid timestamp", dropped)
	}

	return valid, dropped
}

// ToTable renders entries most recent first.
func ToTable(entries []LogEntry) *eventmodels.Table {
	sorted := make([]LogEntry, len(entries))
	copy(sorted, entries)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.After(sorted[j].Timestamp)
	})

	table := eventmodels.NewTable(TradeLogHeader...)
	for _, e := range sorted {
		table.Append(
			eventmodels.FormatTimestamp(e.Timestamp),
			e.AssetClass,
			e.Symbol,
			e.Direction,
			eventmodels.FormatFloat(e.Quantity),
			eventmodels.FormatFloat(e.Price),
			e.Expiry,
			e.OptionType,
			e.Strike,
		)
	}

	return table
}

// ToTradeRecord converts an entry into an engine input. A malformed identity
// field is an error.
func (e LogEntry) ToTradeRecord() (eventmodels.TradeRecord, error) {
	class, err := eventmodels.ParseAssetClass(strings.TrimSpace(e.AssetClass))
	if err != nil {
		return eventmodels.TradeRecord{}, err
	}

	side, err := eventmodels.ParseTradeSide(e.Direction)
	if err != nil {
		return eventmodels.TradeRecord{}, err
	}

	if e.Quantity == nil {
		return eventmodels.TradeRecord{}, eventmodels.ErrInvalidQuantity
	}

	symbol := eventmodels.NewStockSymbol(e.Symbol)

	if class == eventmodels.AssetClassEquity {
		return eventmodels.NewEquityTrade(e.Timestamp, symbol, side, *e.Quantity, e.Price)
	}

	optionType, err := eventmodels.NewOptionTypeFromCode(strings.TrimSpace(e.OptionType))
	if err != nil {
		return eventmodels.TradeRecord{}, fmt.Errorf("%w: %w", eventmodels.ErrMissingOptionFields, err)
	}

	strike := parseNumber(e.Strike)
	if strike == nil {
		return eventmodels.TradeRecord{}, fmt.Errorf("strike %q: %w", e.Strike, eventmodels.ErrMissingOptionFields)
	}

	return eventmodels.NewOptionTrade(e.Timestamp, symbol, side, *e.Quantity, e.Price, eventmodels.NewExpirationDate(e.Expiry), optionType, *strike)
}

// ToTradeRecords converts the trade log for the engine. Entries without a
// quantity cannot form or close a lot and are skipped with a warning; any
// other malformed entry fails the conversion.
func ToTradeRecords(entries []LogEntry) ([]eventmodels.TradeRecord, error) {
	records := make([]eventmodels.TradeRecord, 0, len(entries))
	skipped := 0

	for i, e := range entries {
		if e.Quantity == nil {
			skipped++
			continue
		}

		tr, err := e.ToTradeRecord()
		if err != nil {
			return nil, fmt.Errorf("ToTradeRecords: entry %d (%s %s %s): %w", i, eventmodels.FormatTimestamp(e.Timestamp), e.Symbol, e.Direction, err)
		}

		records = append(records, tr)
	}

	if skipped > 0 {
		log.Warnf("skipped %d trade log entries with an unparsable quantity", skipped)
	}

	return records, nil
}
