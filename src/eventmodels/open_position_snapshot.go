package eventmodels

import "time"

type OpenPositionSnapshot struct {
	AssetClass    AssetClass
	AssetCode     StockSymbol
	TotalQuantity float64
	// AverageCost is nil if any remaining lot has an unknown price.
	AverageCost      *float64
	OpenTimestamp    time.Time
	DaysToExpiry     *int
	OptionDescriptor string
}

type OpenPositionKey struct {
	AssetCode        StockSymbol
	OpenTimestamp    string
	OptionDescriptor string
}

func (p *OpenPositionSnapshot) Key() OpenPositionKey {
	return OpenPositionKey{
		AssetCode:        p.AssetCode,
		OpenTimestamp:    FormatTimestamp(p.OpenTimestamp),
		OptionDescriptor: p.OptionDescriptor,
	}
}
