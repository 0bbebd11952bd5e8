package common

type Side int

const (
	// The zero value is not a side; NewOrder rejects it.
	Buy Side = iota + 1
	Sell
)

func (s Side) String() string {
	switch s {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	}
	return "UNKNOWN"
}

// Valid reports whether s is one of Buy or Sell.
func (s Side) Valid() bool {
	return s == Buy || s == Sell
}
