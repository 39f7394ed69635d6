package positions

import (
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiaming2012/trade-journal/src/eventmodels"
)

var t0 = time.Date(2025, 1, 10, 10, 0, 0, 0, time.UTC)

func stock(t *testing.T, side eventmodels.TradeSide, symbol string, at time.Duration, qty float64, price *float64) eventmodels.TradeRecord {
	tr, err := eventmodels.NewEquityTrade(t0.Add(at), eventmodels.StockSymbol(symbol), side, qty, price)
	require.NoError(t, err)
	return tr
}

func option(t *testing.T, side eventmodels.TradeSide, optionType eventmodels.OptionType, expiry string, at time.Duration, qty float64, price float64) eventmodels.TradeRecord {
	tr, err := eventmodels.NewOptionTrade(t0.Add(at), "SPY", side, qty, eventmodels.Float64(price), eventmodels.ExpirationDate(expiry), optionType, 500)
	require.NoError(t, err)
	return tr
}

func price(p float64) *float64 {
	return eventmodels.Float64(p)
}

func TestProcess_FIFOOrder(t *testing.T) {
	trades := []eventmodels.TradeRecord{
		stock(t, eventmodels.TradeSideBuy, "ABC", 1*time.Hour, 10, price(5)),
		stock(t, eventmodels.TradeSideBuy, "ABC", 2*time.Hour, 10, price(6)),
		stock(t, eventmodels.TradeSideSell, "ABC", 3*time.Hour, 15, price(7)),
	}

	result, err := Process(trades)
	require.NoError(t, err)

	require.Len(t, result.ClosedTrades, 2)

	// most recent first: both share a close time so the later lot comes first
	second, first := result.ClosedTrades[0], result.ClosedTrades[1]

	assert.Equal(t, 10.0, first.ClosedQuantity)
	assert.Equal(t, 5.0, *first.BuyPrice)
	assert.Equal(t, 20.0, *first.RealizedPnL)
	assert.Equal(t, 20.0, *first.CumulativePnL)
	assert.Equal(t, t0.Add(1*time.Hour), first.BuyTimestamp)

	assert.Equal(t, 5.0, second.ClosedQuantity)
	assert.Equal(t, 6.0, *second.BuyPrice)
	assert.Equal(t, 5.0, *second.RealizedPnL)
	assert.Equal(t, 25.0, *second.CumulativePnL)
	assert.Equal(t, t0.Add(2*time.Hour), second.BuyTimestamp)

	require.Len(t, result.OpenPositions, 1)
	open := result.OpenPositions[0]
	assert.Equal(t, 5.0, open.TotalQuantity)
	assert.Equal(t, 6.0, *open.AverageCost)
	assert.Equal(t, t0.Add(2*time.Hour), open.OpenTimestamp)
	assert.Empty(t, result.UnmatchedSells)
}

func TestProcess_ClosedTradeFields(t *testing.T) {
	t.Run("winning equity trade", func(t *testing.T) {
		result, err := Process([]eventmodels.TradeRecord{
			stock(t, eventmodels.TradeSideBuy, "ABC", 0, 10, price(4)),
			stock(t, eventmodels.TradeSideSell, "ABC", 49*time.Hour, 10, price(5)),
		})
		require.NoError(t, err)
		require.Len(t, result.ClosedTrades, 1)

		tr := result.ClosedTrades[0]
		assert.Equal(t, eventmodels.AssetClassEquity, tr.AssetClass)
		assert.Equal(t, eventmodels.StockSymbol("ABC"), tr.AssetCode)
		assert.Equal(t, "Buy", tr.Direction)
		assert.Equal(t, 2, tr.HoldingDays)
		assert.Equal(t, 1, *tr.WinLoss)
		assert.InEpsilon(t, 0.25, *tr.ReturnRate, 1e-9)
		assert.Nil(t, tr.DaysToExpiry)
		assert.Equal(t, "", tr.OptionDescriptor)
		assert.Empty(t, result.OpenPositions)
	})

	t.Run("losing trade has win flag zero", func(t *testing.T) {
		result, err := Process([]eventmodels.TradeRecord{
			stock(t, eventmodels.TradeSideBuy, "ABC", 0, 10, price(5)),
			stock(t, eventmodels.TradeSideSell, "ABC", time.Hour, 10, price(4)),
		})
		require.NoError(t, err)
		require.Len(t, result.ClosedTrades, 1)
		assert.Equal(t, 0, *result.ClosedTrades[0].WinLoss)
		assert.Equal(t, -10.0, *result.ClosedTrades[0].RealizedPnL)
	})

	t.Run("zero cost basis yields a zero return rate", func(t *testing.T) {
		result, err := Process([]eventmodels.TradeRecord{
			stock(t, eventmodels.TradeSideBuy, "ABC", 0, 10, price(0)),
			stock(t, eventmodels.TradeSideSell, "ABC", time.Hour, 10, price(1)),
		})
		require.NoError(t, err)
		require.Len(t, result.ClosedTrades, 1)
		assert.Equal(t, 0.0, *result.ClosedTrades[0].ReturnRate)
		assert.Equal(t, 10.0, *result.ClosedTrades[0].RealizedPnL)
	})

	t.Run("option trade carries descriptors and days to expiry", func(t *testing.T) {
		result, err := Process([]eventmodels.TradeRecord{
			option(t, eventmodels.TradeSideBuy, eventmodels.Call, "250117", 0, 200, 1.5),
			option(t, eventmodels.TradeSideSell, eventmodels.Call, "250117", 26*time.Hour, 100, 2),
		})
		require.NoError(t, err)
		require.Len(t, result.ClosedTrades, 1)

		tr := result.ClosedTrades[0]
		assert.Equal(t, eventmodels.AssetClassOption, tr.AssetClass)
		assert.Equal(t, "Buy Call", tr.Direction)
		assert.Equal(t, "250117 Call @500", tr.OptionDescriptor)
		assert.Equal(t, 1, tr.HoldingDays)
		// 2025-01-10T10:00 to 2025-01-17T00:00
		require.NotNil(t, tr.DaysToExpiry)
		assert.Equal(t, 6, *tr.DaysToExpiry)

		require.Len(t, result.OpenPositions, 1)
		assert.Equal(t, 100.0, result.OpenPositions[0].TotalQuantity)
		assert.Equal(t, 6, *result.OpenPositions[0].DaysToExpiry)
		assert.Equal(t, "250117 Call @500", result.OpenPositions[0].OptionDescriptor)
	})

	t.Run("unparsable expiry does not block emission", func(t *testing.T) {
		result, err := Process([]eventmodels.TradeRecord{
			option(t, eventmodels.TradeSideBuy, eventmodels.Put, "25011", 0, 100, 1),
			option(t, eventmodels.TradeSideSell, eventmodels.Put, "25011", time.Hour, 50, 2),
		})
		require.NoError(t, err)
		require.Len(t, result.ClosedTrades, 1)
		assert.Nil(t, result.ClosedTrades[0].DaysToExpiry)
		require.Len(t, result.OpenPositions, 1)
		assert.Nil(t, result.OpenPositions[0].DaysToExpiry)
	})
}

func TestProcess_MissingPrice(t *testing.T) {
	result, err := Process([]eventmodels.TradeRecord{
		stock(t, eventmodels.TradeSideBuy, "ABC", 0, 10, nil),
		stock(t, eventmodels.TradeSideBuy, "ABC", time.Hour, 10, price(2)),
		stock(t, eventmodels.TradeSideSell, "ABC", 2*time.Hour, 5, price(3)),
		stock(t, eventmodels.TradeSideBuy, "XYZ", 3*time.Hour, 1, price(10)),
		stock(t, eventmodels.TradeSideSell, "XYZ", 4*time.Hour, 1, price(12)),
	})
	require.NoError(t, err)
	require.Len(t, result.ClosedTrades, 2)

	xyz, abc := result.ClosedTrades[0], result.ClosedTrades[1]

	assert.Nil(t, abc.BuyPrice)
	assert.Nil(t, abc.RealizedPnL)
	assert.Nil(t, abc.WinLoss)
	assert.Nil(t, abc.ReturnRate)
	assert.Nil(t, abc.CumulativePnL)

	// unknown pnl does not poison later cumulative values
	assert.Equal(t, 2.0, *xyz.CumulativePnL)

	require.Len(t, result.OpenPositions, 1)
	assert.Equal(t, 15.0, result.OpenPositions[0].TotalQuantity)
	assert.Nil(t, result.OpenPositions[0].AverageCost)
}

func TestProcess_Conservation(t *testing.T) {
	trades := []eventmodels.TradeRecord{
		stock(t, eventmodels.TradeSideBuy, "ABC", 0, 7, price(10)),
		stock(t, eventmodels.TradeSideBuy, "ABC", 1*time.Hour, 3.5, price(11)),
		stock(t, eventmodels.TradeSideSell, "ABC", 2*time.Hour, 4, price(12)),
		stock(t, eventmodels.TradeSideBuy, "ABC", 3*time.Hour, 9, price(9)),
		stock(t, eventmodels.TradeSideSell, "ABC", 4*time.Hour, 8.25, price(10)),
		stock(t, eventmodels.TradeSideSell, "ABC", 5*time.Hour, 20, price(10)),
	}

	result, err := Process(trades)
	require.NoError(t, err)

	bought, sold := 0.0, 0.0
	for _, tr := range trades {
		if tr.Side == eventmodels.TradeSideBuy {
			bought += tr.Quantity
		} else {
			sold += tr.Quantity
		}
	}

	unmatched := 0.0
	for _, u := range result.UnmatchedSells {
		unmatched += u.Quantity
	}

	open := 0.0
	for _, p := range result.OpenPositions {
		open += p.TotalQuantity
	}

	closed := ClosedQuantity(result.ClosedTrades)
	assert.InDelta(t, sold-unmatched, closed, 1e-9)
	assert.InDelta(t, bought, closed+open, 1e-9)

	require.Len(t, result.UnmatchedSells, 1)
	assert.Equal(t, UnmatchedReasonQueueDrained, result.UnmatchedSells[0].Reason)
	assert.InDelta(t, 12.75, result.UnmatchedSells[0].Quantity, 1e-9)
	assert.Empty(t, result.OpenPositions)
}

func TestProcess_Idempotent(t *testing.T) {
	trades := []eventmodels.TradeRecord{
		stock(t, eventmodels.TradeSideBuy, "ABC", 0, 10, price(5)),
		option(t, eventmodels.TradeSideBuy, eventmodels.Put, "250321", time.Minute, 300, 2.1),
		stock(t, eventmodels.TradeSideBuy, "DEF", 2*time.Minute, 10, price(8)),
		stock(t, eventmodels.TradeSideSell, "ABC", time.Hour, 4, price(6)),
		option(t, eventmodels.TradeSideSell, eventmodels.Put, "250321", 2*time.Hour, 100, 1.9),
	}

	first, err := Process(trades)
	require.NoError(t, err)

	second, err := Process(trades)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestProcess_OrphanSell(t *testing.T) {
	result, err := Process([]eventmodels.TradeRecord{
		stock(t, eventmodels.TradeSideSell, "ABC", 0, 10, price(5)),
	})
	require.NoError(t, err)

	assert.Empty(t, result.ClosedTrades)
	assert.Empty(t, result.OpenPositions)
	require.Len(t, result.UnmatchedSells, 1)
	assert.Equal(t, UnmatchedReasonOrphan, result.UnmatchedSells[0].Reason)
	assert.Equal(t, 10.0, result.UnmatchedSells[0].Quantity)
}

func TestProcess_OptionTypesDoNotShareQueues(t *testing.T) {
	result, err := Process([]eventmodels.TradeRecord{
		option(t, eventmodels.TradeSideBuy, eventmodels.Call, "250321", 0, 100, 2),
		option(t, eventmodels.TradeSideSell, eventmodels.Put, "250321", time.Hour, 100, 3),
	})
	require.NoError(t, err)

	assert.Empty(t, result.ClosedTrades)
	require.Len(t, result.OpenPositions, 1)
	assert.Equal(t, "250321 Call @500", result.OpenPositions[0].OptionDescriptor)
	require.Len(t, result.UnmatchedSells, 1)
	assert.Equal(t, UnmatchedReasonOrphan, result.UnmatchedSells[0].Reason)
}

func TestProcess_ChronologicalGuard(t *testing.T) {
	engine := NewEngine(log.NewEntry(log.New()))

	t.Run("sell more than a second before the oldest lot matches nothing", func(t *testing.T) {
		buy := stock(t, eventmodels.TradeSideBuy, "ABC", 10*time.Second, 10, price(5))
		sell := stock(t, eventmodels.TradeSideSell, "ABC", 0, 4, price(6))

		book := newLotBook()
		key := eventmodels.ResolveAssetKey(buy)
		book.queue(key).Enqueue(eventmodels.NewOpenLot(buy))

		closed, unmatched := engine.matchSell(book, key, sell)
		assert.Empty(t, closed)
		require.NotNil(t, unmatched)
		assert.Equal(t, UnmatchedReasonChronology, unmatched.Reason)
		assert.Equal(t, 4.0, unmatched.Quantity)

		lot, ok := book.queue(key).Peek()
		require.True(t, ok)
		assert.Equal(t, 10.0, lot.RemainingQuantity)
	})

	t.Run("partial closes before the guard triggers are kept", func(t *testing.T) {
		early := stock(t, eventmodels.TradeSideBuy, "ABC", 0, 3, price(5))
		late := stock(t, eventmodels.TradeSideBuy, "ABC", time.Hour, 10, price(6))
		sell := stock(t, eventmodels.TradeSideSell, "ABC", time.Minute, 5, price(7))

		book := newLotBook()
		key := eventmodels.ResolveAssetKey(early)
		book.queue(key).Enqueue(eventmodels.NewOpenLot(early))
		book.queue(key).Enqueue(eventmodels.NewOpenLot(late))

		closed, unmatched := engine.matchSell(book, key, sell)
		require.Len(t, closed, 1)
		assert.Equal(t, 3.0, closed[0].ClosedQuantity)
		require.NotNil(t, unmatched)
		assert.Equal(t, 2.0, unmatched.Quantity)
		assert.Equal(t, 1, book.queue(key).Len())
	})

	t.Run("sell within the tolerance is matched", func(t *testing.T) {
		buy := stock(t, eventmodels.TradeSideBuy, "ABC", 500*time.Millisecond, 10, price(5))
		sell := stock(t, eventmodels.TradeSideSell, "ABC", 0, 10, price(6))

		book := newLotBook()
		key := eventmodels.ResolveAssetKey(buy)
		book.queue(key).Enqueue(eventmodels.NewOpenLot(buy))

		closed, unmatched := engine.matchSell(book, key, sell)
		assert.Nil(t, unmatched)
		require.Len(t, closed, 1)
		assert.Equal(t, 0, closed[0].HoldingDays)
		assert.Equal(t, 0, book.queue(key).Len())
	})

	t.Run("a sell recorded before its only buy leaves the lot untouched", func(t *testing.T) {
		result, err := Process([]eventmodels.TradeRecord{
			stock(t, eventmodels.TradeSideBuy, "ABC", 10*time.Second, 10, price(5)),
			stock(t, eventmodels.TradeSideSell, "ABC", 0, 10, price(6)),
		})
		require.NoError(t, err)
		assert.Empty(t, result.ClosedTrades)
		require.Len(t, result.OpenPositions, 1)
		assert.Equal(t, 10.0, result.OpenPositions[0].TotalQuantity)
	})
}

func TestProcess_CumulativePnL(t *testing.T) {
	// input deliberately out of order
	trades := []eventmodels.TradeRecord{
		stock(t, eventmodels.TradeSideSell, "ABC", 3*time.Hour, 1, price(8)),
		stock(t, eventmodels.TradeSideBuy, "ABC", 0, 3, price(10)),
		stock(t, eventmodels.TradeSideSell, "ABC", 1*time.Hour, 1, price(15)),
		stock(t, eventmodels.TradeSideSell, "ABC", 2*time.Hour, 1, price(12)),
	}

	result, err := Process(trades)
	require.NoError(t, err)
	require.Len(t, result.ClosedTrades, 3)

	// descending by close time, cumulative computed ascending
	assert.Equal(t, t0.Add(3*time.Hour), result.ClosedTrades[0].CloseTimestamp)
	assert.Equal(t, -2.0, *result.ClosedTrades[0].RealizedPnL)
	assert.Equal(t, 5.0, *result.ClosedTrades[0].CumulativePnL)

	assert.Equal(t, t0.Add(2*time.Hour), result.ClosedTrades[1].CloseTimestamp)
	assert.Equal(t, 7.0, *result.ClosedTrades[1].CumulativePnL)

	assert.Equal(t, t0.Add(1*time.Hour), result.ClosedTrades[2].CloseTimestamp)
	assert.Equal(t, 5.0, *result.ClosedTrades[2].CumulativePnL)
}

func TestProcess_OpenPositions(t *testing.T) {
	result, err := Process([]eventmodels.TradeRecord{
		stock(t, eventmodels.TradeSideBuy, "OLD", 0, 1, price(1)),
		stock(t, eventmodels.TradeSideBuy, "ABC", time.Hour, 10, price(5)),
		stock(t, eventmodels.TradeSideBuy, "ABC", 2*time.Hour, 5, price(7)),
		stock(t, eventmodels.TradeSideBuy, "NEW", 3*time.Hour, 2, price(3)),
		stock(t, eventmodels.TradeSideBuy, "GONE", 4*time.Hour, 0.3, price(3)),
		stock(t, eventmodels.TradeSideSell, "GONE", 5*time.Hour, 0.1, price(3)),
		stock(t, eventmodels.TradeSideSell, "GONE", 6*time.Hour, 0.1, price(3)),
		stock(t, eventmodels.TradeSideSell, "GONE", 7*time.Hour, 0.1, price(3)),
	})
	require.NoError(t, err)

	require.Len(t, result.OpenPositions, 3)
	assert.Equal(t, eventmodels.StockSymbol("NEW"), result.OpenPositions[0].AssetCode)
	assert.Equal(t, eventmodels.StockSymbol("ABC"), result.OpenPositions[1].AssetCode)
	assert.Equal(t, eventmodels.StockSymbol("OLD"), result.OpenPositions[2].AssetCode)

	abc := result.OpenPositions[1]
	assert.Equal(t, 15.0, abc.TotalQuantity)
	assert.InDelta(t, 5.667, *abc.AverageCost, 0.001)
	assert.Equal(t, t0.Add(time.Hour), abc.OpenTimestamp)
	assert.Empty(t, result.UnmatchedSells)
}

func TestProcess_StructuralFailures(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		result, err := Process(nil)
		assert.ErrorIs(t, err, ErrNoTrades)
		assert.Nil(t, result)
	})

	t.Run("record missing identity fields", func(t *testing.T) {
		result, err := Process([]eventmodels.TradeRecord{
			stock(t, eventmodels.TradeSideBuy, "ABC", 0, 10, price(5)),
			{Timestamp: t0, AssetClass: eventmodels.AssetClassOption, Underlying: "ABC", Side: eventmodels.TradeSideSell, Quantity: 1},
		})
		assert.ErrorIs(t, err, ErrInvalidTrade)
		assert.ErrorIs(t, err, eventmodels.ErrMissingOptionFields)
		assert.Nil(t, result)
	})
}
