package eventmodels

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveAssetKey(t *testing.T) {
	ts := time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC)

	t.Run("equity key is scoped to the ticker", func(t *testing.T) {
		tr, err := NewEquityTrade(ts, "AAPL", TradeSideBuy, 10, Float64(150))
		require.NoError(t, err)

		key := ResolveAssetKey(tr)
		assert.Equal(t, "STK_AAPL", key.String())
		assert.Equal(t, AssetClassEquity, key.Class())
		assert.Equal(t, NewEquityKey("AAPL"), key)
	})

	t.Run("option key combines underlying, expiry, type and strike", func(t *testing.T) {
		tr, err := NewOptionTrade(ts, "AAPL", TradeSideBuy, 100, Float64(2.5), "250117", Call, 150)
		require.NoError(t, err)

		key := ResolveAssetKey(tr)
		assert.Equal(t, "OPT_AAPL_250117_Call_150", key.String())
		assert.Equal(t, NewOptionKey("AAPL", "250117", Call, 150), key)
	})

	t.Run("call and put on the same contract terms are distinct", func(t *testing.T) {
		call, err := NewOptionTrade(ts, "SPY", TradeSideBuy, 100, Float64(1), "250321", Call, 500)
		require.NoError(t, err)
		put, err := NewOptionTrade(ts, "SPY", TradeSideBuy, 100, Float64(1), "250321", Put, 500)
		require.NoError(t, err)

		assert.NotEqual(t, ResolveAssetKey(call), ResolveAssetKey(put))
	})

	t.Run("strike and expiry distinguish contracts", func(t *testing.T) {
		a := NewOptionKey("SPY", "250321", Call, 500)
		assert.NotEqual(t, a, NewOptionKey("SPY", "250321", Call, 505))
		assert.NotEqual(t, a, NewOptionKey("SPY", "250328", Call, 500))
		assert.NotEqual(t, a, NewEquityKey("SPY"))
	})

	t.Run("key ignores quantity, price and timestamp", func(t *testing.T) {
		a, err := NewEquityTrade(ts, "MSFT", TradeSideBuy, 10, Float64(400))
		require.NoError(t, err)
		b, err := NewEquityTrade(ts.Add(48*time.Hour), "MSFT", TradeSideSell, 3, nil)
		require.NoError(t, err)

		assert.Equal(t, ResolveAssetKey(a), ResolveAssetKey(b))
	})
}
