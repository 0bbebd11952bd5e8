package common

import (
	"fmt"
	"strings"
	"time"
)

// Trade records one execution between a buy and a sell order.
type Trade struct {
	ID          uint64
	Instrument  string
	Price       int64
	Quantity    int64
	BuyOrderID  uint64
	BuyOwner    string
	SellOrderID uint64
	SellOwner   string
	ExecutedAt  time.Time
}

func NewTrade(
	id uint64,
	instrument string,
	price, quantity int64,
	buyOrderID uint64, buyOwner string,
	sellOrderID uint64, sellOwner string,
	executedAt time.Time,
) (Trade, error) {
	instrument = strings.ToUpper(strings.TrimSpace(instrument))
	buyOwner = strings.TrimSpace(buyOwner)
	sellOwner = strings.TrimSpace(sellOwner)

	switch {
	case id == 0:
		return Trade{}, invalid("trade id", "must be > 0")
	case instrument == "":
		return Trade{}, invalid("instrument", "cannot be blank")
	case price < 1:
		return Trade{}, invalid("price", "must be >= 1")
	case quantity <= 0:
		return Trade{}, invalid("quantity", "must be > 0")
	case buyOrderID == 0:
		return Trade{}, invalid("buy order id", "must be > 0")
	case buyOwner == "":
		return Trade{}, invalid("buy owner", "cannot be blank")
	case sellOrderID == 0:
		return Trade{}, invalid("sell order id", "must be > 0")
	case sellOwner == "":
		return Trade{}, invalid("sell owner", "cannot be blank")
	}

	return Trade{
		ID:          id,
		Instrument:  instrument,
		Price:       price,
		Quantity:    quantity,
		BuyOrderID:  buyOrderID,
		BuyOwner:    buyOwner,
		SellOrderID: sellOrderID,
		SellOwner:   sellOwner,
		ExecutedAt:  executedAt,
	}, nil
}

func (t Trade) String() string {
	return fmt.Sprintf("Trade#%d %s %d @ $%d | BUY %s(#%d) vs SELL %s(#%d)",
		t.ID, t.Instrument, t.Quantity, t.Price,
		t.BuyOwner, t.BuyOrderID, t.SellOwner, t.SellOrderID)
}
