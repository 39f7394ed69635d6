package eventmodels

import "time"

// ClosedTrade is one matched increment of a sell against a single open lot.
// Pointer fields are nil when an input they derive from was missing.
type ClosedTrade struct {
	AssetClass       AssetClass
	AssetCode        StockSymbol
	Direction        string
	BuyTimestamp     time.Time
	CloseTimestamp   time.Time
	HoldingDays      int
	ClosedQuantity   float64
	BuyPrice         *float64
	SellPrice        *float64
	RealizedPnL      *float64
	WinLoss          *int
	ReturnRate       *float64
	DaysToExpiry     *int
	CumulativePnL    *float64
	OptionDescriptor string
}

type ClosedTradeKey struct {
	AssetCode        StockSymbol
	BuyTimestamp     string
	CloseTimestamp   string
	OptionDescriptor string
}

func (c *ClosedTrade) Key() ClosedTradeKey {
	return ClosedTradeKey{
		AssetCode:        c.AssetCode,
		BuyTimestamp:     FormatTimestamp(c.BuyTimestamp),
		CloseTimestamp:   FormatTimestamp(c.CloseTimestamp),
		OptionDescriptor: c.OptionDescriptor,
	}
}
