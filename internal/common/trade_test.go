package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTrade(t *testing.T) {
	at := time.Unix(1_700_000_000, 0)
	trade, err := NewTrade(1, "acme", 100, 4, 1, "alice", 2, "bob", at)
	require.NoError(t, err)

	assert.Equal(t, "ACME", trade.Instrument)
	assert.Equal(t, at, trade.ExecutedAt)
	assert.Equal(t, "Trade#1 ACME 4 @ $100 | BUY alice(#1) vs SELL bob(#2)", trade.String())
}

func TestNewTrade_Validation(t *testing.T) {
	at := time.Now()
	cases := map[string]func() (Trade, error){
		"trade id":      func() (Trade, error) { return NewTrade(0, "ACME", 100, 4, 1, "a", 2, "b", at) },
		"instrument":    func() (Trade, error) { return NewTrade(1, " ", 100, 4, 1, "a", 2, "b", at) },
		"price":         func() (Trade, error) { return NewTrade(1, "ACME", 0, 4, 1, "a", 2, "b", at) },
		"quantity":      func() (Trade, error) { return NewTrade(1, "ACME", 100, 0, 1, "a", 2, "b", at) },
		"buy order id":  func() (Trade, error) { return NewTrade(1, "ACME", 100, 4, 0, "a", 2, "b", at) },
		"buy owner":     func() (Trade, error) { return NewTrade(1, "ACME", 100, 4, 1, "", 2, "b", at) },
		"sell order id": func() (Trade, error) { return NewTrade(1, "ACME", 100, 4, 1, "a", 0, "b", at) },
		"sell owner":    func() (Trade, error) { return NewTrade(1, "ACME", 100, 4, 1, "a", 2, "", at) },
	}

	for field, build := range cases {
		t.Run(field, func(t *testing.T) {
			_, err := build()
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, field, verr.Field)
		})
	}
}
