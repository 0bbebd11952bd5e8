package broker

import (
	"fmt"

	"bourse/internal/common"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Broker is an order intake session. Orders submitted here wait, unassigned,
// until the engine drains them.
type Broker struct {
	name    string
	session uuid.UUID
	pending []common.Order
}

func New(name string) *Broker {
	return &Broker{
		name:    name,
		session: uuid.New(),
	}
}

func (b *Broker) Name() string { return b.name }

// Session identifies this intake session in logs.
func (b *Broker) Session() uuid.UUID { return b.session }

// Submit queues a new limit order owned by this broker.
func (b *Broker) Submit(side common.Side, instrument string, limitPrice, quantity int64) error {
	order, err := common.NewOrder(0, b.name, instrument, side, limitPrice, quantity)
	if err != nil {
		return fmt.Errorf("broker %s: %w", b.name, err)
	}
	b.pending = append(b.pending, *order)

	log.Debug().
		Str("broker", b.name).
		Str("session", b.session.String()).
		Str("order", order.String()).
		Msg("order queued")
	return nil
}

// Pending returns a copy of the queued orders.
func (b *Broker) Pending() []common.Order {
	return append([]common.Order(nil), b.pending...)
}

func (b *Broker) Clear() {
	b.pending = nil
}
