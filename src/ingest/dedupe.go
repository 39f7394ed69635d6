package ingest

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jiaming2012/trade-journal/src/eventmodels"
)

// numericPlaces is the precision quantities and prices are compared at.
const numericPlaces = 4

func roundNumber(v *float64) *float64 {
	if v == nil {
		return nil
	}

	return eventmodels.Float64(decimal.NewFromFloat(*v).Round(numericPlaces).InexactFloat64())
}

func numberKey(v *float64) string {
	if v == nil {
		return ""
	}

	return decimal.NewFromFloat(*v).Round(numericPlaces).String()
}

type entryKey struct {
	timestamp  string
	assetClass string
	symbol     string
	direction  string
	quantity   string
	price      string
	expiry     string
	optionType string
	strike     string
}

// Dedupe trims text columns, rounds quantity and price to four places and
// drops entries that repeat an earlier one on every column. The first
// occurrence is kept, so stored history wins over re-imported files.
func Dedupe(entries []LogEntry) []LogEntry {
	seen := make(map[entryKey]struct{}, len(entries))
	unique := make([]LogEntry, 0, len(entries))

	for _, e := range entries {
		e.AssetClass = strings.TrimSpace(e.AssetClass)
		e.Symbol = strings.TrimSpace(e.Symbol)
		e.Direction = strings.TrimSpace(e.Direction)
		e.Expiry = eventmodels.NewExpirationDate(e.Expiry).String()
		e.OptionType = strings.TrimSpace(e.OptionType)
		e.Strike = strings.TrimSpace(e.Strike)
		e.Quantity = roundNumber(e.Quantity)
		e.Price = roundNumber(e.Price)

		key := entryKey{
			timestamp:  eventmodels.FormatTimestamp(e.Timestamp),
			assetClass: e.AssetClass,
			symbol:     e.Symbol,
			direction:  e.Direction,
			quantity:   numberKey(e.Quantity),
			price:      numberKey(e.Price),
			expiry:     e.Expiry,
			optionType: e.OptionType,
			strike:     e.Strike,
		}

		if _, ok := seen[key]; ok {
			continue
		}

		seen[key] = struct{}{}
		unique = append(unique, e)
	}

	return unique
}
