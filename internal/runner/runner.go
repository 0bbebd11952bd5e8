package runner

import (
	"context"
	"errors"
	"io"
	"time"

	"bourse/internal/broker"
	"bourse/internal/engine"
	"bourse/internal/script"

	"github.com/rs/zerolog/log"
	tomb "gopkg.in/tomb.v2"
)

const commandChanSize = 64

// Runner owns an engine and drives it with alternating intake and matching
// passes. Every engine call happens on the runner's loop goroutine.
type Runner struct {
	engine   *engine.Engine
	brokers  map[string]*broker.Broker
	interval time.Duration
}

func New(eng *engine.Engine, interval time.Duration) *Runner {
	return &Runner{
		engine:   eng,
		brokers:  make(map[string]*broker.Broker),
		interval: interval,
	}
}

// Run reads commands from input and applies them, running a pass every
// interval. It returns after a final pass once input is exhausted or ctx is
// cancelled. A protocol violation during intake stops the runner.
func (r *Runner) Run(ctx context.Context, input io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	t, _ := tomb.WithContext(ctx)

	commands := make(chan script.Command, commandChanSize)
	t.Go(func() error {
		return r.loop(t, commands)
	})

	// The reader lives outside the tomb: a read blocked on stdin must not
	// hold up shutdown.
	go func() {
		err := script.Scan(input, func(cmd script.Command) error {
			select {
			case commands <- cmd:
				return nil
			case <-t.Dying():
				return tomb.ErrDying
			}
		})
		if err != nil {
			if !errors.Is(err, tomb.ErrDying) {
				t.Kill(err)
			}
			return
		}
		close(commands)
	}()

	log.Info().Dur("interval", r.interval).Msg("runner running")
	err := t.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (r *Runner) loop(t *tomb.Tomb, commands <-chan script.Command) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-t.Dying():
			if err := r.drain(commands); err != nil {
				return err
			}
			return r.finalPass()
		case <-ticker.C:
			if _, _, err := r.Pass(); err != nil {
				return err
			}
		case cmd, ok := <-commands:
			if !ok {
				return r.finalPass()
			}
			if err := r.Apply(cmd); err != nil {
				return err
			}
		}
	}
}

// drain applies the commands already read before shutdown.
func (r *Runner) drain(commands <-chan script.Command) error {
	for {
		select {
		case cmd, ok := <-commands:
			if !ok {
				return nil
			}
			if err := r.Apply(cmd); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (r *Runner) finalPass() error {
	_, _, err := r.Pass()
	return err
}

// Apply executes a single command against the engine. Orders that fail
// validation are logged and skipped.
func (r *Runner) Apply(cmd script.Command) error {
	switch cmd.Kind {
	case script.Submit:
		b := r.broker(cmd.Broker)
		if err := b.Submit(cmd.Side, cmd.Instrument, cmd.Price, cmd.Quantity); err != nil {
			log.Warn().Err(err).Int("line", cmd.Line).Msg("rejecting order")
		}
	case script.Cancel:
		if !r.engine.Cancel(cmd.OrderID) {
			log.Warn().
				Uint64("id", cmd.OrderID).
				Int("line", cmd.Line).
				Msg("nothing to cancel")
		}
	case script.Pass:
		_, _, err := r.Pass()
		return err
	}
	return nil
}

// Pass drains every broker into the engine and then matches all books.
func (r *Runner) Pass() (accepted, trades int, err error) {
	accepted, err = r.engine.IngestOrders()
	if err != nil {
		return accepted, 0, err
	}
	trades = r.engine.MatchAll()

	if accepted > 0 || trades > 0 {
		log.Info().
			Int("accepted", accepted).
			Int("trades", trades).
			Msg("pass complete")
	}
	return accepted, trades, nil
}

// broker returns the named broker, registering it with the engine on first
// use.
func (r *Runner) broker(name string) *broker.Broker {
	b, ok := r.brokers[name]
	if !ok {
		b = broker.New(name)
		r.brokers[name] = b
		r.engine.RegisterBroker(b)
		log.Info().
			Str("broker", name).
			Str("session", b.Session().String()).
			Msg("broker registered")
	}
	return b
}
