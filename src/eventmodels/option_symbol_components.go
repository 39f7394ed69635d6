package eventmodels

// OptionSymbolComponents struct to hold parsed option details
type OptionSymbolComponents struct {
	Underlying  StockSymbol
	Expiration  ExpirationDate
	OptionType  OptionType
	StrikePrice float64
	Symbol      OptionSymbol
}
