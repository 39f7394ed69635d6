package eventmodels

import (
	"fmt"
	"strings"
)

type TradeSide string

const (
	TradeSideBuy  TradeSide = "Buy"
	TradeSideSell TradeSide = "Sell"
)

func (s TradeSide) Validate() error {
	if s != TradeSideBuy && s != TradeSideSell {
		return fmt.Errorf("TradeSide: Validate: invalid side: %q: %w", string(s), ErrInvalidSide)
	}

	return nil
}

func ParseTradeSide(s string) (TradeSide, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "buy", "买入":
		return TradeSideBuy, nil
	case "sell", "卖出":
		return TradeSideSell, nil
	default:
		return "", fmt.Errorf("ParseTradeSide: unknown side %q: %w", s, ErrInvalidSide)
	}
}
