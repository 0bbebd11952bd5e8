package common

import (
	"fmt"
	"strings"
)

// Order is a resting intent to trade a quantity of an instrument at a limit
// price or better. Only the remaining quantity and the active flag change
// after construction.
type Order struct {
	ID         uint64 // Exchange assigned id, 0 until accepted
	Owner      string // Broker that owns the order
	Instrument string // Listed instrument code
	Side       Side   // Order side
	LimitPrice int64  // Max buy or min sell price, in minor units

	quantity int64 // Remaining quantity
	active   bool
}

// NewOrder validates and builds an active order. Pass id 0 for an order that
// has not yet been accepted by the engine.
func NewOrder(id uint64, owner, instrument string, side Side, limitPrice, quantity int64) (*Order, error) {
	owner = strings.TrimSpace(owner)
	instrument = strings.ToUpper(strings.TrimSpace(instrument))

	switch {
	case owner == "":
		return nil, invalid("owner", "cannot be blank")
	case instrument == "":
		return nil, invalid("instrument", "cannot be blank")
	case !side.Valid():
		return nil, invalid("side", "must be BUY or SELL")
	case limitPrice <= 0:
		return nil, invalid("limit price", "must be > 0")
	case quantity <= 0:
		return nil, invalid("quantity", "must be > 0")
	}

	return &Order{
		ID:         id,
		Owner:      owner,
		Instrument: instrument,
		Side:       side,
		LimitPrice: limitPrice,
		quantity:   quantity,
		active:     true,
	}, nil
}

func (o *Order) Quantity() int64 { return o.quantity }

func (o *Order) Active() bool { return o.active }

// ReduceQuantity removes filled from the remaining quantity. The order turns
// inactive the moment nothing remains. Inactive orders and non-positive fills
// are ignored.
func (o *Order) ReduceQuantity(filled int64) {
	if !o.active || filled <= 0 {
		return
	}
	o.quantity -= filled
	if o.quantity <= 0 {
		o.quantity = 0
		o.active = false
	}
}

// Cancel deactivates the order. The book drops it lazily the next time it
// reaches the top of its side.
func (o *Order) Cancel() {
	o.active = false
	o.quantity = 0
}

func (o Order) String() string {
	id := "UNASSIGNED"
	if o.ID != 0 {
		id = fmt.Sprintf("#%d", o.ID)
	}
	s := fmt.Sprintf("Order%s %v %d %s @ $%d (%s)",
		id, o.Side, o.quantity, o.Instrument, o.LimitPrice, o.Owner)
	if !o.active {
		s += " [INACTIVE]"
	}
	return s
}
