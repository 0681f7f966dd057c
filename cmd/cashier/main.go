package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v11"
	"github.com/iskorotkov/atm-cash-distribution/internal/display"
	"github.com/iskorotkov/atm-cash-distribution/internal/distributor"
	"github.com/iskorotkov/atm-cash-distribution/internal/prompt"
	"github.com/shopspring/decimal"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n", err)
			os.Exit(1)
		}
	}()

	config, err := env.ParseAs[Config]()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: config.LogLevel,
	})))

	if err := run(ctx, config); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type Config struct {
	LogLevel      slog.Level         `env:"LOG_LEVEL" envDefault:"WARN"`
	Denominations distributor.Values `env:"DENOMINATIONS"`
}

func run(ctx context.Context, c Config) error {
	values := []decimal.Decimal(c.Denominations)
	if len(values) == 0 {
		values = distributor.Euro
	}

	denominations, err := distributor.NewDenominations(values)
	if err != nil {
		return fmt.Errorf("parse denominations: %w", err)
	}

	amount, err := prompt.New(os.Stdin, os.Stdout).Amount(ctx)
	if err != nil {
		return fmt.Errorf("read amount: %w", err)
	}

	dist := distributor.Compute(amount, values)
	slog.DebugContext(ctx, "distributed amount",
		"amount", amount.String(),
		"items", len(dist.Items),
		"remainder", dist.Remainder.String(),
	)

	fmt.Println()
	fmt.Println("Cash Distribution:")
	if err := display.Write(os.Stdout, dist, denominations); err != nil {
		return fmt.Errorf("display distribution: %w", err)
	}

	return nil
}
