package engine

import "bourse/internal/common"

// Registry supplies the listed instruments. The engine asks it whether a code
// is listed before accepting an order and before matching a book.
type Registry interface {
	ListedCodes() []string
	Instrument(code string) (Instrument, bool)
}

// Instrument exposes the mutable reference price of a listed code.
type Instrument interface {
	Price() int64
	AdjustPrice(delta int64)
}

// Intake is a drainable source of unassigned orders, e.g. a broker session.
// Clear is called once every pending order has been consumed.
type Intake interface {
	Name() string
	Pending() []common.Order
	Clear()
}

// Reporter receives one human readable event per accepted order and per
// executed trade.
type Reporter interface {
	Announce(event string)
}
