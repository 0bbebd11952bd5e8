package engine

import (
	"bourse/internal/common"

	"github.com/tidwall/btree"
)

// entry is the priority key of a resting order. The order itself lives in
// the engine's arena.
type entry struct {
	price int64
	id    uint64
}

type entries = btree.BTreeG[entry]

// OrderBook holds both sides of one instrument in strict price-time
// priority. Orders that turn inactive stay in the trees until they surface
// at the head of their side, where they are discarded.
type OrderBook struct {
	orders *arena

	bids *entries
	asks *entries
}

func newOrderBook(orders *arena) *OrderBook {
	// The book is only ever touched by the matching loop.
	opts := btree.Options{NoLocks: true}

	// Highest price first, earliest id within a price.
	bids := btree.NewBTreeGOptions(func(a, b entry) bool {
		if a.price != b.price {
			return a.price > b.price
		}
		return a.id < b.id
	}, opts)
	// Lowest price first, earliest id within a price.
	asks := btree.NewBTreeGOptions(func(a, b entry) bool {
		if a.price != b.price {
			return a.price < b.price
		}
		return a.id < b.id
	}, opts)

	return &OrderBook{
		orders: orders,
		bids:   bids,
		asks:   asks,
	}
}

// Insert places an accepted order on the side it was submitted for.
func (book *OrderBook) Insert(order *common.Order) {
	book.side(order.Side).Set(entry{price: order.LimitPrice, id: order.ID})
}

func (book *OrderBook) PeekBestBid() (*common.Order, bool) { return book.peek(book.bids) }
func (book *OrderBook) PeekBestAsk() (*common.Order, bool) { return book.peek(book.asks) }
func (book *OrderBook) TakeBestBid() (*common.Order, bool) { return book.take(book.bids) }
func (book *OrderBook) TakeBestAsk() (*common.Order, bool) { return book.take(book.asks) }

// peek returns the best active order without removing it. Inactive heads
// are popped and dropped for good on the way.
func (book *OrderBook) peek(levels *entries) (*common.Order, bool) {
	for {
		head, ok := levels.Min()
		if !ok {
			return nil, false
		}
		if order, ok := book.orders.get(head.id); ok && order.Active() {
			return order, true
		}
		levels.PopMin()
	}
}

// take removes and returns the best active order.
func (book *OrderBook) take(levels *entries) (*common.Order, bool) {
	for {
		head, ok := levels.PopMin()
		if !ok {
			return nil, false
		}
		if order, ok := book.orders.get(head.id); ok && order.Active() {
			return order, true
		}
	}
}

// Bids lists copies of the active bids in priority order.
func (book *OrderBook) Bids() []common.Order { return book.depth(book.bids) }

// Asks lists copies of the active asks in priority order.
func (book *OrderBook) Asks() []common.Order { return book.depth(book.asks) }

func (book *OrderBook) depth(levels *entries) []common.Order {
	var out []common.Order
	levels.Scan(func(e entry) bool {
		if order, ok := book.orders.get(e.id); ok && order.Active() {
			out = append(out, *order)
		}
		return true
	})
	return out
}

// Len counts raw entries on both sides, including inactive orders that have
// not been discarded yet.
func (book *OrderBook) Len() int {
	return book.bids.Len() + book.asks.Len()
}

func (book *OrderBook) side(side common.Side) *entries {
	if side == common.Buy {
		return book.bids
	}
	return book.asks
}
