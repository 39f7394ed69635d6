package positions

import "fmt"

var (
	ErrNoTrades     = fmt.Errorf("no trades to process")
	ErrInvalidTrade = fmt.Errorf("invalid trade record")
)
