package positions

import (
	"fmt"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/trade-journal/src/eventmodels"
)

type UnmatchedReason string

const (
	UnmatchedReasonOrphan       UnmatchedReason = "orphan"
	UnmatchedReasonChronology   UnmatchedReason = "chronology"
	UnmatchedReasonQueueDrained UnmatchedReason = "queue_drained"
)

// UnmatchedSell records the part of a sell that closed nothing.
type UnmatchedSell struct {
	Key       eventmodels.AssetKey
	Timestamp time.Time
	Quantity  float64
	Reason    UnmatchedReason
}

type Result struct {
	// OpenPositions are ordered by open time, most recent first.
	OpenPositions []*eventmodels.OpenPositionSnapshot
	// ClosedTrades are ordered by close time, most recent first.
	ClosedTrades   []*eventmodels.ClosedTrade
	UnmatchedSells []UnmatchedSell
}

// lotBook holds one queue per asset key and remembers the order keys were
// first seen in, so snapshots do not depend on map iteration.
type lotBook struct {
	queues map[eventmodels.AssetKey]*FIFOQueue[*eventmodels.OpenLot]
	keys   []eventmodels.AssetKey
}

func newLotBook() *lotBook {
	return &lotBook{
		queues: make(map[eventmodels.AssetKey]*FIFOQueue[*eventmodels.OpenLot]),
	}
}

func (b *lotBook) queue(key eventmodels.AssetKey) *FIFOQueue[*eventmodels.OpenLot] {
	q, ok := b.queues[key]
	if !ok {
		q = NewFIFOQueue[*eventmodels.OpenLot](key.String())
		b.queues[key] = q
		b.keys = append(b.keys, key)
	}

	return q
}

func (b *lotBook) get(key eventmodels.AssetKey) (*FIFOQueue[*eventmodels.OpenLot], bool) {
	q, ok := b.queues[key]
	if !ok || q.Len() == 0 {
		return nil, false
	}

	return q, true
}

type Engine struct {
	logger *log.Entry
}

func NewEngine(logger *log.Entry) *Engine {
	if logger == nil {
		logger = log.NewEntry(log.StandardLogger())
	}

	return &Engine{logger: logger}
}

// Process rebuilds positions from the complete trade log. Any invalid record
// fails the whole run and no result is returned.
func Process(trades []eventmodels.TradeRecord) (*Result, error) {
	return NewEngine(nil).Process(trades)
}

func (e *Engine) Process(trades []eventmodels.TradeRecord) (*Result, error) {
	if len(trades) == 0 {
		return nil, ErrNoTrades
	}

	for i, tr := range trades {
		if err := tr.Validate(); err != nil {
			return nil, fmt.Errorf("Engine.Process: trade %d: %w: %w", i, ErrInvalidTrade, err)
		}
	}

	ordered := sortByTimestamp(trades)

	book := newLotBook()
	result := &Result{}

	for _, tr := range ordered {
		key := eventmodels.ResolveAssetKey(tr)

		switch tr.Side {
		case eventmodels.TradeSideBuy:
			book.queue(key).Enqueue(eventmodels.NewOpenLot(tr))
		case eventmodels.TradeSideSell:
			closed, unmatched := e.matchSell(book, key, tr)
			result.ClosedTrades = append(result.ClosedTrades, closed...)
			if unmatched != nil {
				result.UnmatchedSells = append(result.UnmatchedSells, *unmatched)
			}
		}
	}

	result.ClosedTrades = orderClosedTrades(result.ClosedTrades)
	result.OpenPositions = e.snapshots(book)

	return result, nil
}

// sortByTimestamp returns trades in chronological order. Records sharing a
// timestamp keep their input order.
func sortByTimestamp(trades []eventmodels.TradeRecord) []eventmodels.TradeRecord {
	ordered := make([]eventmodels.TradeRecord, len(trades))
	copy(ordered, trades)

	less := func(i, j int) bool {
		return ordered[i].Timestamp.Before(ordered[j].Timestamp)
	}

	if !sort.SliceIsSorted(ordered, less) {
		sort.SliceStable(ordered, less)
	}

	return ordered
}

func (e *Engine) matchSell(book *lotBook, key eventmodels.AssetKey, sell eventmodels.TradeRecord) ([]*eventmodels.ClosedTrade, *UnmatchedSell) {
	queue, ok := book.get(key)
	if !ok {
		e.logger.WithField("event", "orphan_sell").Infof("no open lots for %v, skipping sell of %v at %v", key, sell.Quantity, eventmodels.FormatTimestamp(sell.Timestamp))
		return nil, &UnmatchedSell{Key: key, Timestamp: sell.Timestamp, Quantity: sell.Quantity, Reason: UnmatchedReasonOrphan}
	}

	var closed []*eventmodels.ClosedTrade
	remaining := sell.Quantity

	for remaining > eventmodels.LotTolerance {
		lot, ok := queue.Peek()
		if !ok {
			e.logger.WithField("event", "unmatched_sell").Infof("open lots for %v exhausted with %v left to sell at %v", key, remaining, eventmodels.FormatTimestamp(sell.Timestamp))
			return closed, &UnmatchedSell{Key: key, Timestamp: sell.Timestamp, Quantity: remaining, Reason: UnmatchedReasonQueueDrained}
		}

		if lot.Timestamp.Sub(sell.Timestamp) > eventmodels.ChronologyTolerance {
			e.logger.WithField("event", "chronology").Warnf("sell at %v precedes oldest open lot of %v at %v, leaving %v unmatched",
				eventmodels.FormatTimestamp(sell.Timestamp), key, eventmodels.FormatTimestamp(lot.Timestamp), remaining)
			return closed, &UnmatchedSell{Key: key, Timestamp: sell.Timestamp, Quantity: remaining, Reason: UnmatchedReasonChronology}
		}

		qty := min(remaining, lot.RemainingQuantity)
		closed = append(closed, e.closeLot(lot, sell, qty))

		remaining -= qty
		if lot.Consume(qty) {
			queue.Dequeue()
		}
	}

	return closed, nil
}

func (e *Engine) closeLot(lot *eventmodels.OpenLot, sell eventmodels.TradeRecord, qty float64) *eventmodels.ClosedTrade {
	buy := lot.Source
	pnl, winLoss, returnRate := closeMetrics(lot.Price, sell.Price, qty)

	return &eventmodels.ClosedTrade{
		AssetClass:       buy.AssetClass,
		AssetCode:        buy.Underlying,
		Direction:        buy.DirectionDescriptor(),
		BuyTimestamp:     lot.Timestamp,
		CloseTimestamp:   sell.Timestamp,
		HoldingDays:      HoldingDays(lot.Timestamp, sell.Timestamp),
		ClosedQuantity:   qty,
		BuyPrice:         lot.Price,
		SellPrice:        sell.Price,
		RealizedPnL:      pnl,
		WinLoss:          winLoss,
		ReturnRate:       returnRate,
		DaysToExpiry:     e.daysToExpiry(lot),
		OptionDescriptor: buy.OptionDescriptor(),
	}
}

func (e *Engine) daysToExpiry(lot *eventmodels.OpenLot) *int {
	if !lot.Source.IsOption() {
		return nil
	}

	days, err := DaysToExpiry(lot.Timestamp, lot.Source.Expiry)
	if err != nil {
		e.logger.WithField("event", "expiry").Warnf("%v: %v", eventmodels.ResolveAssetKey(lot.Source), err)
		return nil
	}

	return days
}

// orderClosedTrades accumulates pnl in close-time order, then returns the
// trades most recent first. Cumulative values stay with their trade.
func orderClosedTrades(trades []*eventmodels.ClosedTrade) []*eventmodels.ClosedTrade {
	sort.SliceStable(trades, func(i, j int) bool {
		return trades[i].CloseTimestamp.Before(trades[j].CloseTimestamp)
	})

	AccumulatePnL(trades)

	for i, j := 0, len(trades)-1; i < j; i, j = i+1, j-1 {
		trades[i], trades[j] = trades[j], trades[i]
	}

	return trades
}

func (e *Engine) snapshots(book *lotBook) []*eventmodels.OpenPositionSnapshot {
	var snapshots []*eventmodels.OpenPositionSnapshot

	for _, key := range book.keys {
		queue, ok := book.get(key)
		if !ok {
			continue
		}

		lots := queue.Items()
		first := lots[0]
		totalQuantity, averageCost := WeightedAverageCost(lots)

		snapshots = append(snapshots, &eventmodels.OpenPositionSnapshot{
			AssetClass:       first.Source.AssetClass,
			AssetCode:        first.Source.Underlying,
			TotalQuantity:    totalQuantity,
			AverageCost:      averageCost,
			OpenTimestamp:    first.Timestamp,
			DaysToExpiry:     e.daysToExpiry(first),
			OptionDescriptor: first.Source.OptionDescriptor(),
		})
	}

	sort.SliceStable(snapshots, func(i, j int) bool {
		return snapshots[i].OpenTimestamp.After(snapshots[j].OpenTimestamp)
	})

	return snapshots
}
