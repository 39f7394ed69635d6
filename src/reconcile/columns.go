package reconcile

// Closed trades tab.
const (
	ColumnAssetClass     = "Asset Class"
	ColumnAssetCode      = "Asset Code"
	ColumnDirection      = "Direction"
	ColumnBuyTime        = "Buy Time"
	ColumnCloseTime      = "Close Time"
	ColumnHoldingDays    = "Holding Days"
	ColumnClosedQuantity = "Closed Quantity"
	ColumnBuyPrice       = "Buy Price"
	ColumnSellPrice      = "Sell Price"
	ColumnRealizedPnL    = "Realized PnL"
	ColumnWinLoss        = "Win/Loss"
	ColumnReturnRate     = "Return Rate"
	ColumnDaysToExpiry   = "Days To Expiry"
	ColumnOptionInfo     = "Option Info"
	ColumnCumulativePnL  = "Cumulative PnL"
)

// Open positions tab. Asset class, asset code, days to expiry and option
// info are shared with the closed trades tab.
const (
	ColumnQuantity    = "Quantity"
	ColumnAverageCost = "Average Cost"
	ColumnOpenTime    = "Open Time"
)

// Columns filled in by hand on the sheet.
const (
	ColumnSource      = "Source"
	ColumnCloseReason = "Close Reason"
)

var ClosedTradesHeader = []string{
	ColumnAssetClass,
	ColumnAssetCode,
	ColumnDirection,
	ColumnBuyTime,
	ColumnCloseTime,
	ColumnHoldingDays,
	ColumnClosedQuantity,
	ColumnBuyPrice,
	ColumnSellPrice,
	ColumnRealizedPnL,
	ColumnWinLoss,
	ColumnReturnRate,
	ColumnDaysToExpiry,
	ColumnOptionInfo,
	ColumnCumulativePnL,
}

var OpenPositionsHeader = []string{
	ColumnAssetClass,
	ColumnAssetCode,
	ColumnQuantity,
	ColumnAverageCost,
	ColumnOpenTime,
	ColumnDaysToExpiry,
	ColumnOptionInfo,
}

var (
	ClosedTradesKeyColumns  = []string{ColumnAssetCode, ColumnBuyTime, ColumnCloseTime, ColumnOptionInfo}
	OpenPositionsKeyColumns = []string{ColumnAssetCode, ColumnOpenTime, ColumnOptionInfo}
)

var (
	DefaultClosedTradesManualColumns  = []string{ColumnSource, ColumnCloseReason}
	DefaultOpenPositionsManualColumns = []string{ColumnSource}
)
