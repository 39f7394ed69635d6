package reconcile

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

const currencyCode = money.USD

// FormatMoney renders v in the journal currency, e.g. "$1,234.56".
func FormatMoney(v float64) string {
	cur := *money.New(0, currencyCode).Currency()
	minor := decimal.NewFromFloat(v).Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}
