package main

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/caarlos0/env/v11"
	"github.com/iskorotkov/atm-cash-distribution/internal/middleware"
	"github.com/iskorotkov/atm-cash-distribution/internal/rpc"
	"github.com/iskorotkov/atm-cash-distribution/internal/transform"
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
	LogLevel slog.Level `env:"LOG_LEVEL"`
	Addr     string     `env:"ADDR"`

	Interval time.Duration `env:"INTERVAL" envDefault:"1s"`
	Count    int           `env:"COUNT" envDefault:"10"`
	Amount   float64       `env:"AMOUNT" envDefault:"1000"`
}

func run(ctx context.Context, c Config) error {
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %v", c.Interval)
	}

	client := rpc.NewDispenserServiceClient(&http.Client{}, c.Addr,
		connect.WithGRPC(),
		connect.WithInterceptors(middleware.LogRequests()),
	)

	ticker := time.NewTicker(c.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			withdraw(ctx, c, client)
		}
	}
}

func withdraw(ctx context.Context, c Config, client rpc.DispenserServiceClient) {
	slog.InfoContext(ctx, "requesting withdrawals")

	var served int
	for i := range c.Count {
		// Random amounts are generated as floats and rounded to cents before they leave the client.
		amount := decimal.NewFromFloat(math.Abs(rand.NormFloat64() * c.Amount)).Round(2)
		if !amount.IsPositive() {
			continue
		}

		resp, err := client.Distribute(ctx, connect.NewRequest(transform.AmountToProto(amount)))
		if err != nil {
			slog.ErrorContext(ctx, "distribute amount", "error", err, "i", i, "amount", amount.String())
			continue
		}

		w, err := transform.WithdrawalFromProto(resp.Msg)
		if err != nil {
			slog.ErrorContext(ctx, "parse withdrawal", "error", err, "i", i)
			continue
		}

		slog.DebugContext(ctx, "withdrawal served",
			"withdrawal_id", w.ID,
			"amount", w.Amount.String(),
			"dispensed", w.Distribution.Total().String(),
			"remainder", w.Distribution.Remainder.String(),
		)
		served++
	}

	slog.InfoContext(ctx, "requested withdrawals", "count", c.Count, "served", served)
}
