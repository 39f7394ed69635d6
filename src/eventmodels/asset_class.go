package eventmodels

import "fmt"

type AssetClass string

const (
	AssetClassEquity AssetClass = "equity"
	AssetClassOption AssetClass = "option"
)

func (c AssetClass) Validate() error {
	if c != AssetClassEquity && c != AssetClassOption {
		return fmt.Errorf("AssetClass: Validate: invalid asset class: %q: %w", string(c), ErrInvalidAssetClass)
	}

	return nil
}

// Label is the column value written to the journal sheets.
func (c AssetClass) Label() string {
	switch c {
	case AssetClassEquity:
		return "Stock"
	case AssetClassOption:
		return "Option"
	default:
		return string(c)
	}
}

func ParseAssetClass(s string) (AssetClass, error) {
	switch s {
	case "Stock", "stock", "equity", "股票":
		return AssetClassEquity, nil
	case "Option", "option", "期权":
		return AssetClassOption, nil
	default:
		return "", fmt.Errorf("ParseAssetClass: unknown asset class %q: %w", s, ErrInvalidAssetClass)
	}
}
