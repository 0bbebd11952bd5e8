package broker

import (
	"testing"

	"bourse/internal/common"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroker_SubmitAndClear(t *testing.T) {
	b := New("alice")
	assert.NotEqual(t, uuid.Nil, b.Session())

	require.NoError(t, b.Submit(common.Buy, "acme", 105, 10))
	require.NoError(t, b.Submit(common.Sell, "ACME", 110, 3))

	pending := b.Pending()
	require.Len(t, pending, 2)
	for _, order := range pending {
		assert.Zero(t, order.ID, "brokers never assign ids")
		assert.Equal(t, "alice", order.Owner)
		assert.Equal(t, "ACME", order.Instrument)
		assert.True(t, order.Active())
	}

	// Pending hands out a copy.
	pending[0].LimitPrice = 1
	assert.Equal(t, int64(105), b.Pending()[0].LimitPrice)

	b.Clear()
	assert.Empty(t, b.Pending())
}

func TestBroker_SubmitRejectsInvalidOrders(t *testing.T) {
	b := New("bob")

	err := b.Submit(common.Buy, "ACME", 0, 10)
	var verr *common.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "limit price", verr.Field)
	assert.Empty(t, b.Pending())
}

func TestBroker_SessionsAreDistinct(t *testing.T) {
	assert.NotEqual(t, New("a").Session(), New("a").Session())
}
