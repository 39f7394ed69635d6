package ingest

// BrokerOrderRowDTO is one row of a broker order-history export. Every field
// is kept as text; parsing happens in Normalizer.
type BrokerOrderRowDTO struct {
	Symbol      string `csv:"Symbol"`
	OrderStatus string `csv:"Order Status"`
	Direction   string `csv:"Direction"`
	OrderQty    string `csv:"Order Qty"`
	AvgPrice    string `csv:"Avg Price"`
	OrderTime   string `csv:"Order Time"`
}
