package eventmodels

import "fmt"

// AssetKey identifies the open-lot queue a trade belongs to. Equities are
// keyed by ticker; options by underlying, expiry, type and strike. The zero
// value is not a valid key.
type AssetKey struct {
	class      AssetClass
	underlying StockSymbol
	expiry     ExpirationDate
	optionType OptionType
	strike     float64
}

func NewEquityKey(underlying StockSymbol) AssetKey {
	return AssetKey{
		class:      AssetClassEquity,
		underlying: underlying,
	}
}

func NewOptionKey(underlying StockSymbol, expiry ExpirationDate, optionType OptionType, strike float64) AssetKey {
	return AssetKey{
		class:      AssetClassOption,
		underlying: underlying,
		expiry:     expiry,
		optionType: optionType,
		strike:     strike,
	}
}

// ResolveAssetKey derives the key from the identity fields of tr only.
func ResolveAssetKey(tr TradeRecord) AssetKey {
	if tr.IsOption() {
		return NewOptionKey(tr.Underlying, tr.Expiry, tr.OptionType, tr.Strike)
	}

	return NewEquityKey(tr.Underlying)
}

func (k AssetKey) Class() AssetClass {
	return k.class
}

func (k AssetKey) Underlying() StockSymbol {
	return k.underlying
}

func (k AssetKey) String() string {
	if k.class == AssetClassOption {
		return fmt.Sprintf("OPT_%s_%s_%s_%s", k.underlying, k.expiry, k.optionType, FormatFloat(&k.strike))
	}

	return fmt.Sprintf("STK_%s", k.underlying)
}
