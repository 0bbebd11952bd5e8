package runner

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"bourse/internal/common"
	"bourse/internal/engine"
	"bourse/internal/listing"
	"bourse/internal/script"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestRunner(t *testing.T) (*Runner, *engine.Engine, *listing.Registry) {
	registry := listing.NewRegistry()
	company, err := listing.NewCompany("ACME", "Acme Corp", 100)
	require.NoError(t, err)
	require.NoError(t, registry.List(company))

	eng := engine.New(registry)
	return New(eng, time.Hour), eng, registry
}

func TestRun_ScriptToCompletion(t *testing.T) {
	r, eng, registry := createTestRunner(t)

	input := strings.NewReader(`
alice BUY ACME 10 105
bob SELL ACME 4 100
PASS
carol SELL ACME 6 103
mallory SELL NOPE 1 1
`)
	require.NoError(t, r.Run(context.Background(), input))

	trades := eng.Trades()
	require.Len(t, trades, 2)
	assert.Equal(t, int64(100), trades[0].Price)
	assert.Equal(t, int64(4), trades[0].Quantity)
	assert.Equal(t, int64(103), trades[1].Price)
	assert.Equal(t, int64(6), trades[1].Quantity)

	acme, _ := registry.Company("ACME")
	assert.Equal(t, int64(103), acme.Price())
	assert.Equal(t, 3, eng.Accepted())
}

func TestRun_MalformedInputStops(t *testing.T) {
	r, eng, _ := createTestRunner(t)

	input := strings.NewReader("alice BUY ACME 10 105\nbob SELL ACME four 100\n")
	err := r.Run(context.Background(), input)
	assert.ErrorIs(t, err, script.ErrMalformedLine)

	// Orders read before the bad line still reach the book in the final pass.
	assert.Equal(t, 1, eng.Accepted())
}

func TestRun_ContextCancel(t *testing.T) {
	r, _, _ := createTestRunner(t)

	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx, pr) }()

	_, err := pw.Write([]byte("alice BUY ACME 1 100\n"))
	require.NoError(t, err)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("runner did not stop after cancel")
	}
}

func TestApply(t *testing.T) {
	r, eng, _ := createTestRunner(t)

	require.NoError(t, r.Apply(script.Command{Kind: script.Submit, Broker: "alice", Side: common.Buy, Instrument: "ACME", Quantity: 5, Price: 100}))
	// Invalid orders are skipped, not fatal.
	require.NoError(t, r.Apply(script.Command{Kind: script.Submit, Broker: "alice", Side: common.Buy, Instrument: "ACME", Quantity: 0, Price: 100}))
	require.NoError(t, r.Apply(script.Command{Kind: script.Pass}))
	assert.Equal(t, 1, eng.Accepted())

	require.NoError(t, r.Apply(script.Command{Kind: script.Cancel, OrderID: 1}))
	order, ok := eng.Order(1)
	require.True(t, ok)
	assert.False(t, order.Active())

	require.NoError(t, r.Apply(script.Command{Kind: script.Submit, Broker: "bob", Side: common.Sell, Instrument: "ACME", Quantity: 5, Price: 100}))
	accepted, trades, err := r.Pass()
	require.NoError(t, err)
	assert.Equal(t, 1, accepted)
	assert.Equal(t, 0, trades, "the cancelled bid must not trade")

	assert.Len(t, r.brokers, 2)
	assert.Contains(t, eng.Announcements(), "BROKER REGISTERED: alice")
}
