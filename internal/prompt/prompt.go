package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/iskorotkov/atm-cash-distribution/internal/domain"
	"github.com/shopspring/decimal"
)

var ErrNoInput = errors.New("no input")

const (
	amountPrompt   = "Enter the amount you want to withdraw (e.g., 1234.67): "
	invalidInput   = "Invalid input. Please enter a valid number (e.g., 1234.67)."
	nonPositive    = "The amount must be greater than 0. Please try again."
	amountTooLarge = "The amount is too large. Please try again."
)

func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewScanner(in),
		out: out,
	}
}

type Prompter struct {
	in  *bufio.Scanner
	out io.Writer

	start sync.Once
	lines chan string
	err   error // Set by scan before lines is closed.
}

// Amount asks until it reads a positive number and returns it. Bad input is answered
// with a message and another prompt.
func (p *Prompter) Amount(ctx context.Context) (decimal.Decimal, error) {
	for {
		if err := ctx.Err(); err != nil {
			return decimal.Zero, err
		}

		if _, err := fmt.Fprint(p.out, amountPrompt); err != nil {
			return decimal.Zero, fmt.Errorf("write prompt: %w", err)
		}

		line, err := p.readLine(ctx)
		if err != nil {
			return decimal.Zero, err
		}

		input := strings.TrimSpace(line)

		amount, err := decimal.NewFromString(input)
		if err != nil {
			slog.DebugContext(ctx, "rejected amount", "input", input, "error", err)
			if err := p.say(invalidInput); err != nil {
				return decimal.Zero, err
			}
			continue
		}

		if !amount.IsPositive() {
			if err := p.say(nonPositive); err != nil {
				return decimal.Zero, err
			}
			continue
		}

		if _, err := domain.ParseCents(amount); err != nil {
			slog.DebugContext(ctx, "rejected amount", "input", input, "error", err)
			if err := p.say(amountTooLarge); err != nil {
				return decimal.Zero, err
			}
			continue
		}

		return amount, nil
	}
}

// readLine waits for the next line or for ctx to be done. Lines are read by a single
// goroutine that outlives cancelled calls, so a later call picks up where it stopped.
func (p *Prompter) readLine(ctx context.Context) (string, error) {
	p.start.Do(func() {
		p.lines = make(chan string)
		go p.scan()
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-p.lines:
		if !ok {
			if p.err != nil {
				return "", fmt.Errorf("read amount: %w", p.err)
			}
			return "", ErrNoInput
		}
		return line, nil
	}
}

func (p *Prompter) scan() {
	defer close(p.lines)

	for p.in.Scan() {
		p.lines <- p.in.Text()
	}
	p.err = p.in.Err()
}

func (p *Prompter) say(msg string) error {
	if _, err := fmt.Fprintln(p.out, msg); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	return nil
}
