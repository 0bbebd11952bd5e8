package listing

import (
	"fmt"
	"strings"

	"bourse/internal/common"
)

// Company is a listed instrument and its reference price. The price never
// drops below 1.
type Company struct {
	code  string
	name  string
	price int64
}

func NewCompany(code, name string, startingPrice int64) (*Company, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	name = strings.TrimSpace(name)

	switch {
	case code == "":
		return nil, &common.ValidationError{Field: "code", Reason: "cannot be blank"}
	case name == "":
		return nil, &common.ValidationError{Field: "name", Reason: "cannot be blank"}
	case startingPrice < 1:
		return nil, &common.ValidationError{Field: "starting price", Reason: "must be >= 1"}
	}

	return &Company{code: code, name: name, price: startingPrice}, nil
}

func (c *Company) Code() string { return c.code }
func (c *Company) Name() string { return c.name }
func (c *Company) Price() int64 { return c.price }

// AdjustPrice moves the reference price by delta, flooring at 1.
func (c *Company) AdjustPrice(delta int64) {
	c.price = max(1, c.price+delta)
}

func (c *Company) String() string {
	return fmt.Sprintf("%s (%s) $%d", c.code, c.name, c.price)
}
