package ingest

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/trade-journal/src/eventmodels"
)

// ContractMultiplier is the number of shares per option contract.
const ContractMultiplier = 100

// contractMarker suffixes option quantities in the export, e.g. "2张".
const contractMarker = "张"

var DefaultFilledStatuses = []string{"已成交", "Filled", "filled"}

var timestampLayouts = []string{
	eventmodels.TimestampLayout,
	"2006-01-02 15:04:05",
	"2006/01/02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02 15:04",
	"01/02/2006 15:04:05",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"Jan 2, 2006 15:04:05",
	"2006-01-02",
}

var contractsRegex = regexp.MustCompile(`(\d+)`)

// ParseTimestamp accepts the broker's order time ("2025-01-10 09:30:15 ET")
// as well as the canonical journal layout.
func ParseTimestamp(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), " ET"))
	if s == "" {
		return time.Time{}, false
	}

	if loc == nil {
		loc = time.UTC
	}

	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// ParseQuantity converts "N张" contracts into N*100 shares and anything else
// as a plain number. The result is nil when the text does not parse.
func ParseQuantity(s string) *float64 {
	s = strings.TrimSpace(s)
	if strings.Contains(s, contractMarker) {
		match := contractsRegex.FindString(s)
		if match == "" {
			return nil
		}

		contracts, err := strconv.Atoi(match)
		if err != nil {
			return nil
		}

		return eventmodels.Float64(float64(contracts * ContractMultiplier))
	}

	return parseNumber(s)
}

type Normalizer struct {
	Location       *time.Location
	FilledStatuses []string
}

func NewNormalizer(loc *time.Location, filledStatuses []string) *Normalizer {
	if len(filledStatuses) == 0 {
		filledStatuses = DefaultFilledStatuses
	}

	return &Normalizer{
		Location:       loc,
		FilledStatuses: filledStatuses,
	}
}

func (n *Normalizer) isFilled(status string) bool {
	status = strings.TrimSpace(status)
	for _, s := range n.FilledStatuses {
		if status == s {
			return true
		}
	}

	return false
}

// Normalize keeps filled orders and maps them onto trade log entries. Rows
// with an unparsable order time keep a zero timestamp and are dropped later
// with the rest of the log.
func (n *Normalizer) Normalize(rows []*BrokerOrderRowDTO) []LogEntry {
	entries := make([]LogEntry, 0, len(rows))

	for _, row := range rows {
		if !n.isFilled(row.OrderStatus) {
			continue
		}

		ts, ok := ParseTimestamp(row.OrderTime, n.Location)
		if !ok {
			log.Debugf("unparsable order time %q for %s", row.OrderTime, row.Symbol)
		}

		entry := LogEntry{
			Timestamp: ts,
			Direction: strings.TrimSpace(row.Direction),
			Quantity:  ParseQuantity(row.OrderQty),
			Price:     parseNumber(row.AvgPrice),
		}

		symbol := strings.TrimSpace(row.Symbol)
		components, err := eventmodels.NewOptionSymbolComponents(eventmodels.OptionSymbol(symbol))
		if err == nil {
			entry.AssetClass = eventmodels.AssetClassOption.Label()
			entry.Symbol = components.Underlying.String()
			entry.Expiry = components.Expiration.String()
			entry.OptionType = string(components.OptionType)
			entry.Strike = eventmodels.FormatFloat(&components.StrikePrice)
		} else {
			entry.AssetClass = eventmodels.AssetClassEquity.Label()
			entry.Symbol = symbol
		}

		entries = append(entries, entry)
	}

	return entries
}
