package eventmodels

import "fmt"

var (
	ErrMissingTimestamp    = fmt.Errorf("trade record is missing a timestamp")
	ErrMissingUnderlying   = fmt.Errorf("trade record is missing an underlying symbol")
	ErrMissingOptionFields = fmt.Errorf("option trade record is missing expiry, option type or strike")
	ErrInvalidSide         = fmt.Errorf("invalid trade side")
	ErrInvalidAssetClass   = fmt.Errorf("invalid asset class")
	ErrInvalidQuantity     = fmt.Errorf("quantity must be a positive number")
	ErrInvalidPrice        = fmt.Errorf("price must be a non-negative number")
	ErrInvalidExpiration   = fmt.Errorf("invalid compact expiration date")
)
