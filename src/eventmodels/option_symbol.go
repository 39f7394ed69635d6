package eventmodels

import (
	"fmt"
	"regexp"
	"strconv"
)

// OptionSymbol is a broker contract symbol: underlying, YYMMDD expiry, C/P and
// the strike in thousandths, e.g. AAPL250117C150000.
type OptionSymbol string

var optionSymbolRegex = regexp.MustCompile(`^([A-Z.]{2,6})(\d{6})([CP])(\d+)$`)

func (s OptionSymbol) IsOption() bool {
	return optionSymbolRegex.MatchString(string(s))
}

func NewOptionSymbolComponents(s OptionSymbol) (OptionSymbolComponents, error) {
	matches := optionSymbolRegex.FindStringSubmatch(string(s))
	if matches == nil {
		return OptionSymbolComponents{}, fmt.Errorf("NewOptionSymbolComponents: %q is not an option symbol", string(s))
	}

	optionType, err := NewOptionTypeFromCode(matches[3])
	if err != nil {
		return OptionSymbolComponents{}, fmt.Errorf("NewOptionSymbolComponents: %w", err)
	}

	strikeRaw, err := strconv.ParseFloat(matches[4], 64)
	if err != nil {
		return OptionSymbolComponents{}, fmt.Errorf("NewOptionSymbolComponents: failed to parse strike %q: %w", matches[4], err)
	}

	return OptionSymbolComponents{
		Underlying:  StockSymbol(matches[1]),
		Expiration:  ExpirationDate(matches[2]),
		OptionType:  optionType,
		StrikePrice: strikeRaw / 1000.0,
		Symbol:      s,
	}, nil
}

func NewOptionSymbol(option OptionSymbolComponents) (OptionSymbol, error) {
	var code string
	switch option.OptionType {
	case Call:
		code = "C"
	case Put:
		code = "P"
	default:
		return "", fmt.Errorf("invalid option type: %s", option.OptionType)
	}

	if len(option.Expiration) != 6 {
		return "", fmt.Errorf("invalid expiration: %q", string(option.Expiration))
	}

	// Format the strike price to 8 digits
	strikePrice := fmt.Sprintf("%08d", int(option.StrikePrice*1000+0.5))

	return OptionSymbol(fmt.Sprintf("%s%s%s%s", option.Underlying, option.Expiration, code, strikePrice)), nil
}
