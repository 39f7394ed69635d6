package reconcile

import (
	"strconv"

	"github.com/jiaming2012/trade-journal/src/eventmodels"
	"github.com/jiaming2012/trade-journal/src/positions"
)

// ClosedTradesTable renders closed trades in the order given. Return rate is
// left as a ratio so manual columns can be merged before formatting.
func ClosedTradesTable(trades []*eventmodels.ClosedTrade) *eventmodels.Table {
	table := eventmodels.NewTable(ClosedTradesHeader...)

	for _, tr := range trades {
		key := tr.Key()
		table.Append(
			tr.AssetClass.Label(),
			key.AssetCode.String(),
			tr.Direction,
			key.BuyTimestamp,
			key.CloseTimestamp,
			strconv.Itoa(tr.HoldingDays),
			eventmodels.FormatFloat(&tr.ClosedQuantity),
			eventmodels.FormatFloat(tr.BuyPrice),
			eventmodels.FormatFloat(tr.SellPrice),
			eventmodels.FormatFloat(tr.RealizedPnL),
			eventmodels.FormatInt(tr.WinLoss),
			eventmodels.FormatFloat(tr.ReturnRate),
			eventmodels.FormatInt(tr.DaysToExpiry),
			key.OptionDescriptor,
			eventmodels.FormatFloat(tr.CumulativePnL),
		)
	}

	return table
}

func OpenPositionsTable(snapshots []*eventmodels.OpenPositionSnapshot) *eventmodels.Table {
	table := eventmodels.NewTable(OpenPositionsHeader...)

	for _, p := range snapshots {
		key := p.Key()
		table.Append(
			p.AssetClass.Label(),
			key.AssetCode.String(),
			eventmodels.FormatFloat(&p.TotalQuantity),
			eventmodels.FormatFloat(p.AverageCost),
			key.OpenTimestamp,
			eventmodels.FormatInt(p.DaysToExpiry),
			key.OptionDescriptor,
		)
	}

	return table
}

// FormatReturnRates rewrites the return rate column as percentages. Cells
// that are not a number become "".
func FormatReturnRates(table *eventmodels.Table) {
	if table.IsEmpty() || !table.HasColumns(ColumnReturnRate) {
		return
	}

	for i := range table.Rows {
		var ratio *float64
		if v, err := strconv.ParseFloat(table.Value(i, ColumnReturnRate), 64); err == nil {
			ratio = &v
		}

		table.SetValue(i, ColumnReturnRate, positions.FormatPercent(ratio))
	}
}

// SummaryTable renders a run summary as metric/value pairs.
func SummaryTable(summary positions.Summary) *eventmodels.Table {
	table := eventmodels.NewTable("Metric", "Value")

	f := func(v float64) string {
		return strconv.FormatFloat(v, 'f', 2, 64)
	}

	table.Append("Closed Trades", strconv.Itoa(summary.ClosedTrades))
	table.Append("Priced Trades", strconv.Itoa(summary.PricedTrades))
	table.Append("Wins", strconv.Itoa(summary.Wins))
	table.Append("Win Rate", positions.FormatPercent(&summary.WinRate))
	table.Append("Total Realized PnL", FormatMoney(summary.TotalRealizedPnL))
	table.Append("Mean PnL", FormatMoney(summary.MeanPnL))
	table.Append("Median PnL", FormatMoney(summary.MedianPnL))
	table.Append("PnL Std Dev", FormatMoney(summary.StdDevPnL))
	table.Append("Mean Return Rate", positions.FormatPercent(&summary.MeanReturnRate))
	table.Append("Mean Holding Days", f(summary.MeanHoldingDays))
	table.Append("Open Positions", strconv.Itoa(summary.OpenPositions))

	return table
}
