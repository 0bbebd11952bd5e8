package engine

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"bourse/internal/common"

	"github.com/rs/zerolog/log"
)

// Engine is the matching engine. It assigns ids to incoming orders, keeps one
// book per listed instrument and matches them in price-time priority.
//
// An Engine is single-writer: intake and matching passes must not overlap.
type Engine struct {
	registry Registry
	reporter Reporter
	now      func() time.Time

	brokers       []Intake
	books         map[string]*OrderBook
	orders        arena
	trades        []common.Trade
	announcements []string

	nextOrderID uint64
	nextTradeID uint64
	accepted    int
}

type Option func(*Engine)

// WithClock overrides the source of trade execution timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func New(registry Registry, opts ...Option) *Engine {
	engine := &Engine{
		registry:    registry,
		now:         time.Now,
		books:       make(map[string]*OrderBook),
		nextOrderID: 1,
		nextTradeID: 1,
	}
	for _, opt := range opts {
		opt(engine)
	}
	return engine
}

func (e *Engine) SetReporter(reporter Reporter) {
	e.reporter = reporter
}

// RegisterBroker adds an intake source drained by IngestOrders.
func (e *Engine) RegisterBroker(broker Intake) {
	e.brokers = append(e.brokers, broker)
	e.announce("BROKER REGISTERED: " + broker.Name())
}

// IngestOrders drains every registered broker, assigns ids and inserts the
// orders into their books. Orders for unlisted instruments are dropped
// without error. A pre-assigned id anywhere in a broker's batch aborts the
// pass with a ProtocolError before any order of that batch is accepted;
// batches drained earlier in the pass stay accepted and the offending broker
// is not cleared.
func (e *Engine) IngestOrders() (int, error) {
	count := 0
	for _, broker := range e.brokers {
		batch := broker.Pending()
		for _, pending := range batch {
			if pending.ID != 0 {
				err := &common.ProtocolError{OrderID: pending.ID, Owner: pending.Owner}
				log.Error().
					Err(err).
					Str("broker", broker.Name()).
					Msg("aborting intake pass")
				return count, err
			}
		}

		for _, pending := range batch {
			order, err := common.NewOrder(
				e.nextOrderID,
				pending.Owner,
				pending.Instrument,
				pending.Side,
				pending.LimitPrice,
				pending.Quantity(),
			)
			if err != nil {
				return count, fmt.Errorf("order from %s: %w", broker.Name(), err)
			}

			book, ok := e.book(order.Instrument)
			if !ok {
				log.Debug().
					Str("broker", broker.Name()).
					Str("instrument", order.Instrument).
					Msg("dropping order for unlisted instrument")
				continue
			}
			e.nextOrderID++

			e.orders.add(order)
			book.Insert(order)
			e.accepted++
			count++

			e.announce("ORDER ACCEPTED: " + order.String())
			log.Debug().
				Uint64("id", order.ID).
				Str("instrument", order.Instrument).
				Str("side", order.Side.String()).
				Int64("price", order.LimitPrice).
				Int64("quantity", order.Quantity()).
				Msg("order accepted")
		}
		broker.Clear()
	}
	return count, nil
}

// MatchAll runs the matching loop for every listed instrument and returns the
// number of trades executed.
func (e *Engine) MatchAll() int {
	codes := append([]string(nil), e.registry.ListedCodes()...)
	sort.Strings(codes)

	executed := 0
	for _, code := range codes {
		executed += e.Match(code)
	}
	return executed
}

// Match consumes crossing best bid / best ask pairs of one instrument until
// the book no longer crosses. Trades execute at the ask price.
func (e *Engine) Match(code string) int {
	code = normaliseCode(code)
	instrument, ok := e.registry.Instrument(code)
	if !ok {
		return 0
	}
	book, ok := e.books[code]
	if !ok {
		return 0
	}

	executed := 0
	for {
		bid, bidOk := book.PeekBestBid()
		ask, askOk := book.PeekBestAsk()

		// If either side is empty, or prices don't cross, we are done.
		if !bidOk || !askOk || bid.LimitPrice < ask.LimitPrice {
			break
		}

		bid, _ = book.TakeBestBid()
		ask, _ = book.TakeBestAsk()

		quantity := min(bid.Quantity(), ask.Quantity())
		price := ask.LimitPrice

		trade, err := common.NewTrade(
			e.nextTradeID, code, price, quantity,
			bid.ID, bid.Owner,
			ask.ID, ask.Owner,
			e.now(),
		)
		if err != nil {
			// Only reachable if the book holds an order that failed validation.
			log.Panic().Err(err).Str("instrument", code).Msg("unable to build trade")
		}
		e.nextTradeID++

		e.trades = append(e.trades, trade)
		e.announce(trade.String())
		log.Debug().
			Uint64("trade", trade.ID).
			Str("instrument", code).
			Int64("price", price).
			Int64("quantity", quantity).
			Msg("trade executed")

		instrument.AdjustPrice(price - instrument.Price())

		bid.ReduceQuantity(quantity)
		ask.ReduceQuantity(quantity)

		// Remainders go back in with their original id, keeping their place.
		if bid.Active() {
			book.Insert(bid)
		}
		if ask.Active() {
			book.Insert(ask)
		}

		executed++
	}

	if executed > 0 {
		log.Info().
			Str("instrument", code).
			Int("trades", executed).
			Int64("price", instrument.Price()).
			Msg("matching pass complete")
	}
	return executed
}

// Cancel deactivates a resting order. It reports false for unknown ids and
// orders that are already inactive.
func (e *Engine) Cancel(id uint64) bool {
	order, ok := e.orders.get(id)
	if !ok || !order.Active() {
		return false
	}
	order.Cancel()
	log.Debug().Uint64("id", id).Str("instrument", order.Instrument).Msg("order cancelled")
	return true
}

// Order returns a copy of an accepted order.
func (e *Engine) Order(id uint64) (common.Order, bool) {
	order, ok := e.orders.get(id)
	if !ok {
		return common.Order{}, false
	}
	return *order, true
}

// Book returns the book of an instrument, if any order for it was accepted.
func (e *Engine) Book(code string) (*OrderBook, bool) {
	book, ok := e.books[normaliseCode(code)]
	return book, ok
}

// Accepted is the number of orders accepted since the engine was created.
func (e *Engine) Accepted() int { return e.accepted }

// Trades returns a snapshot of the trade history.
func (e *Engine) Trades() []common.Trade {
	return append([]common.Trade(nil), e.trades...)
}

// Announcements returns a snapshot of the event log.
func (e *Engine) Announcements() []string {
	return append([]string(nil), e.announcements...)
}

// book returns the book for a listed code, creating it on first use.
func (e *Engine) book(code string) (*OrderBook, bool) {
	code = normaliseCode(code)
	if _, listed := e.registry.Instrument(code); !listed {
		return nil, false
	}
	book, ok := e.books[code]
	if !ok {
		book = newOrderBook(&e.orders)
		e.books[code] = book
	}
	return book, true
}

// Announce appends an event to the log and forwards it to the reporter.
// Collaborators such as the listing registry post their events here.
func (e *Engine) Announce(event string) {
	e.announce(event)
}

func (e *Engine) announce(event string) {
	e.announcements = append(e.announcements, event)
	if e.reporter != nil {
		e.reporter.Announce(event)
	}
}

// normaliseCode keys books the same way orders and listings spell codes.
func normaliseCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
