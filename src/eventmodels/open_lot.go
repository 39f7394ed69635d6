package eventmodels

import "time"

// OpenLot is the unmatched remainder of a buy. Only RemainingQuantity changes
// after creation.
type OpenLot struct {
	RemainingQuantity float64
	Price             *float64
	Timestamp         time.Time
	Source            TradeRecord
}

func NewOpenLot(buy TradeRecord) *OpenLot {
	return &OpenLot{
		RemainingQuantity: buy.Quantity,
		Price:             buy.Price,
		Timestamp:         buy.Timestamp,
		Source:            buy,
	}
}

// Consume removes quantity from the lot and reports whether it is exhausted.
func (l *OpenLot) Consume(quantity float64) bool {
	l.RemainingQuantity -= quantity
	return l.IsExhausted()
}

func (l *OpenLot) IsExhausted() bool {
	return l.RemainingQuantity < LotTolerance
}
