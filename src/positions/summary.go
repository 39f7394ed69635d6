package positions

import (
	"github.com/montanaflynn/stats"

	"github.com/jiaming2012/trade-journal/src/eventmodels"
)

// Summary aggregates a run's closed trades. Trades with an unknown pnl are
// counted in ClosedTrades but excluded from every other figure.
type Summary struct {
	ClosedTrades     int
	PricedTrades     int
	Wins             int
	WinRate          float64
	TotalRealizedPnL float64
	MeanPnL          float64
	MedianPnL        float64
	StdDevPnL        float64
	MeanReturnRate   float64
	MeanHoldingDays  float64
	OpenPositions    int
}

func Summarize(result *Result) (Summary, error) {
	summary := Summary{
		ClosedTrades:  len(result.ClosedTrades),
		OpenPositions: len(result.OpenPositions),
	}

	var pnls, returnRates, holdingDays stats.Float64Data
	for _, tr := range result.ClosedTrades {
		if tr.RealizedPnL == nil {
			continue
		}

		pnls = append(pnls, *tr.RealizedPnL)
		returnRates = append(returnRates, *tr.ReturnRate)
		holdingDays = append(holdingDays, float64(tr.HoldingDays))

		if *tr.WinLoss == 1 {
			summary.Wins++
		}
	}

	summary.PricedTrades = len(pnls)
	if summary.PricedTrades == 0 {
		return summary, nil
	}

	var err error
	if summary.TotalRealizedPnL, err = pnls.Sum(); err != nil {
		return Summary{}, err
	}

	if summary.MeanPnL, err = pnls.Mean(); err != nil {
		return Summary{}, err
	}

	if summary.MedianPnL, err = pnls.Median(); err != nil {
		return Summary{}, err
	}

	if summary.StdDevPnL, err = pnls.StandardDeviation(); err != nil {
		return Summary{}, err
	}

	if summary.MeanReturnRate, err = returnRates.Mean(); err != nil {
		return Summary{}, err
	}

	if summary.MeanHoldingDays, err = holdingDays.Mean(); err != nil {
		return Summary{}, err
	}

	summary.WinRate = float64(summary.Wins) / float64(summary.PricedTrades)

	return summary, nil
}

// ClosedQuantity totals the quantity closed across trades.
func ClosedQuantity(trades []*eventmodels.ClosedTrade) float64 {
	total := 0.0
	for _, tr := range trades {
		total += tr.ClosedQuantity
	}

	return total
}
