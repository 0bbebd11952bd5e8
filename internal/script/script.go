// Package script reads order scripts, a line oriented text format used to
// drive the exchange from a file or stdin:
//
//	# comment
//	alice BUY ACME 10 105    broker side instrument quantity price
//	CANCEL 3                 cancel accepted order #3
//	PASS                     run an intake and matching pass now
package script

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"bourse/internal/common"
)

var ErrMalformedLine = errors.New("malformed line")

type Kind int

const (
	Submit Kind = iota
	Cancel
	Pass
)

type Command struct {
	Kind Kind
	Line int

	// Submit
	Broker     string
	Side       common.Side
	Instrument string
	Quantity   int64
	Price      int64

	// Cancel
	OrderID uint64
}

// Parse reads every command from r.
func Parse(r io.Reader) ([]Command, error) {
	var commands []Command
	err := Scan(r, func(cmd Command) error {
		commands = append(commands, cmd)
		return nil
	})
	return commands, err
}

// Scan calls fn for each command as it is read, stopping at the first error.
func Scan(r io.Reader, fn func(Command) error) error {
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		cmd, err := parseLine(strings.Fields(text))
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		cmd.Line = line
		if err := fn(cmd); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func parseLine(fields []string) (Command, error) {
	switch strings.ToUpper(fields[0]) {
	case "PASS":
		if len(fields) != 1 {
			return Command{}, fmt.Errorf("%w: PASS takes no arguments", ErrMalformedLine)
		}
		return Command{Kind: Pass}, nil
	case "CANCEL":
		if len(fields) != 2 {
			return Command{}, fmt.Errorf("%w: want CANCEL <id>", ErrMalformedLine)
		}
		id, err := strconv.ParseUint(strings.TrimPrefix(fields[1], "#"), 10, 64)
		if err != nil || id == 0 {
			return Command{}, fmt.Errorf("%w: bad order id %q", ErrMalformedLine, fields[1])
		}
		return Command{Kind: Cancel, OrderID: id}, nil
	}

	if len(fields) != 5 {
		return Command{}, fmt.Errorf("%w: want <broker> <BUY|SELL> <code> <qty> <price>", ErrMalformedLine)
	}

	var side common.Side
	switch strings.ToUpper(fields[1]) {
	case "BUY":
		side = common.Buy
	case "SELL":
		side = common.Sell
	default:
		return Command{}, fmt.Errorf("%w: unknown side %q", ErrMalformedLine, fields[1])
	}

	qty, err := strconv.ParseInt(fields[3], 10, 64)
	if err != nil {
		return Command{}, fmt.Errorf("%w: bad quantity %q", ErrMalformedLine, fields[3])
	}
	price, err := strconv.ParseInt(strings.TrimPrefix(fields[4], "$"), 10, 64)
	if err != nil {
		return Command{}, fmt.Errorf("%w: bad price %q", ErrMalformedLine, fields[4])
	}

	return Command{
		Kind:       Submit,
		Broker:     fields[0],
		Side:       side,
		Instrument: fields[2],
		Quantity:   qty,
		Price:      price,
	}, nil
}
