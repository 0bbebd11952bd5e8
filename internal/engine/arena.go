package engine

import "bourse/internal/common"

// arena owns every order the engine has accepted, indexed by id. Books hold
// ids only, so a cancel through the arena is observed by the book the next
// time that order reaches the top of its side.
type arena struct {
	orders []*common.Order // orders[i] has id i+1
}

func (a *arena) add(order *common.Order) {
	if order.ID != uint64(len(a.orders))+1 {
		panic("engine: order ids must be assigned sequentially")
	}
	a.orders = append(a.orders, order)
}

func (a *arena) get(id uint64) (*common.Order, bool) {
	if id == 0 || id > uint64(len(a.orders)) {
		return nil, false
	}
	return a.orders[id-1], true
}

func (a *arena) len() int { return len(a.orders) }
