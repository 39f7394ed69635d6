package positions

import (
	"fmt"
	"math"
	"time"

	"github.com/jiaming2012/trade-journal/src/eventmodels"
)

const day = 24 * time.Hour

// floorDays counts whole days in d, rounding toward negative infinity.
func floorDays(d time.Duration) int {
	return int(math.Floor(float64(d) / float64(day)))
}

// wallClock drops t's zone offset, keeping its calendar fields. Day counts
// are taken on wall-clock time so a DST change does not shorten a day.
func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// HoldingDays is the number of whole wall-clock days between open and close.
// A close inside the chronology tolerance before the open counts as zero days.
func HoldingDays(open, close time.Time) int {
	days := floorDays(wallClock(close).Sub(wallClock(open)))
	if days < 0 {
		return 0
	}

	return days
}

// DaysToExpiry is the number of whole wall-clock days from the lot's open
// time to midnight of the expiry day.
func DaysToExpiry(from time.Time, expiry eventmodels.ExpirationDate) (*int, error) {
	exp, err := expiry.Time(time.UTC)
	if err != nil {
		return nil, fmt.Errorf("DaysToExpiry: %w", err)
	}

	return eventmodels.Int(floorDays(exp.Sub(wallClock(from)))), nil
}

// WeightedAverageCost returns the total remaining quantity across lots and
// its quantity-weighted mean price. The average is nil when the total is
// not positive or any lot has an unknown price.
func WeightedAverageCost(lots []*eventmodels.OpenLot) (float64, *float64) {
	totalQuantity := 0.0
	totalCost := 0.0
	priced := true

	for _, lot := range lots {
		totalQuantity += lot.RemainingQuantity
		if lot.Price == nil {
			priced = false
			continue
		}

		totalCost += lot.RemainingQuantity * *lot.Price
	}

	if !priced || totalQuantity <= 0 {
		return totalQuantity, nil
	}

	return totalQuantity, eventmodels.Float64(totalCost / totalQuantity)
}

// AccumulatePnL sets CumulativePnL on trades, which must be ordered by close
// time ascending. A trade with unknown pnl gets an unknown cumulative value
// and does not contribute to later ones.
func AccumulatePnL(trades []*eventmodels.ClosedTrade) {
	running := 0.0
	for _, tr := range trades {
		if tr.RealizedPnL == nil {
			tr.CumulativePnL = nil
			continue
		}

		running += *tr.RealizedPnL
		tr.CumulativePnL = eventmodels.Float64(running)
	}
}

// FormatPercent renders a ratio as a two-decimal percentage, e.g. 0.1234 as
// "12.34%". It is display only; stored values keep the ratio.
func FormatPercent(ratio *float64) string {
	if ratio == nil || math.IsNaN(*ratio) {
		return ""
	}

	return fmt.Sprintf("%.2f%%", *ratio*100)
}

// closeMetrics computes pnl, win/loss and return rate for qty units bought at
// buyPrice and sold at sellPrice. All three are nil when either price is unknown.
func closeMetrics(buyPrice, sellPrice *float64, qty float64) (pnl *float64, winLoss *int, returnRate *float64) {
	if buyPrice == nil || sellPrice == nil {
		return nil, nil, nil
	}

	buyCost := *buyPrice * qty
	realized := (*sellPrice - *buyPrice) * qty

	rate := 0.0
	if buyCost != 0 {
		rate = realized / buyCost
	}

	win := 0
	if realized > 0 {
		win = 1
	}

	return eventmodels.Float64(realized), eventmodels.Int(win), eventmodels.Float64(rate)
}
