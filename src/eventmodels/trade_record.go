package eventmodels

import (
	"fmt"
	"math"
	"time"
)

// TradeRecord is one filled execution. Records are values and are never
// mutated once constructed.
type TradeRecord struct {
	Timestamp  time.Time
	AssetClass AssetClass
	Underlying StockSymbol
	Side       TradeSide
	Quantity   float64
	// Price is nil when the export carried an unparsable price.
	Price *float64

	// option only
	Expiry     ExpirationDate
	OptionType OptionType
	Strike     float64
}

func NewEquityTrade(timestamp time.Time, underlying StockSymbol, side TradeSide, quantity float64, price *float64) (TradeRecord, error) {
	tr := TradeRecord{
		Timestamp:  timestamp,
		AssetClass: AssetClassEquity,
		Underlying: underlying,
		Side:       side,
		Quantity:   quantity,
		Price:      price,
	}

	if err := tr.Validate(); err != nil {
		return TradeRecord{}, fmt.Errorf("NewEquityTrade: %w", err)
	}

	return tr, nil
}

func NewOptionTrade(timestamp time.Time, underlying StockSymbol, side TradeSide, quantity float64, price *float64, expiry ExpirationDate, optionType OptionType, strike float64) (TradeRecord, error) {
	tr := TradeRecord{
		Timestamp:  timestamp,
		AssetClass: AssetClassOption,
		Underlying: underlying,
		Side:       side,
		Quantity:   quantity,
		Price:      price,
		Expiry:     expiry,
		OptionType: optionType,
		Strike:     strike,
	}

	if err := tr.Validate(); err != nil {
		return TradeRecord{}, fmt.Errorf("NewOptionTrade: %w", err)
	}

	return tr, nil
}

func (tr TradeRecord) Validate() error {
	if tr.Timestamp.IsZero() {
		return ErrMissingTimestamp
	}

	if tr.Underlying == "" {
		return ErrMissingUnderlying
	}

	if err := tr.AssetClass.Validate(); err != nil {
		return err
	}

	if err := tr.Side.Validate(); err != nil {
		return err
	}

	if math.IsNaN(tr.Quantity) || math.IsInf(tr.Quantity, 0) || tr.Quantity <= 0 {
		return fmt.Errorf("%v: %w", tr.Quantity, ErrInvalidQuantity)
	}

	if tr.Price != nil && (math.IsNaN(*tr.Price) || math.IsInf(*tr.Price, 0) || *tr.Price < 0) {
		return fmt.Errorf("%v: %w", *tr.Price, ErrInvalidPrice)
	}

	if tr.AssetClass == AssetClassOption {
		if tr.Expiry == "" || tr.OptionType.Validate() != nil || !(tr.Strike > 0) {
			return ErrMissingOptionFields
		}
	}

	return nil
}

func (tr TradeRecord) IsOption() bool {
	return tr.AssetClass == AssetClassOption
}

// OptionDescriptor renders "{expiry} {type} @{strike}" for options and "" for
// equities. It is part of the natural key of journal rows.
func (tr TradeRecord) OptionDescriptor() string {
	if !tr.IsOption() {
		return ""
	}

	return fmt.Sprintf("%s %s @%s", tr.Expiry, tr.OptionType, FormatFloat(&tr.Strike))
}

// DirectionDescriptor is the side, followed by the option type for options.
func (tr TradeRecord) DirectionDescriptor() string {
	if !tr.IsOption() {
		return string(tr.Side)
	}

	return fmt.Sprintf("%s %s", tr.Side, tr.OptionType)
}
