package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/caarlos0/env/v11"
	"github.com/iskorotkov/atm-cash-distribution/internal/distributor"
	"github.com/iskorotkov/atm-cash-distribution/internal/middleware"
	"github.com/iskorotkov/atm-cash-distribution/internal/rpc"
	"github.com/iskorotkov/atm-cash-distribution/internal/service"
	"github.com/shopspring/decimal"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
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
	LogLevel      slog.Level         `env:"LOG_LEVEL"`
	Addr          string             `env:"ADDR"`
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

	dispenser := service.NewDispenser(denominations)

	mux := http.NewServeMux()
	mux.Handle(rpc.NewDispenserServiceHandler(dispenser,
		connect.WithInterceptors(middleware.LogRequests()),
	))
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	var protocols http.Protocols
	protocols.SetHTTP1(true)
	protocols.SetHTTP2(true)
	protocols.SetUnencryptedHTTP2(true)

	server := &http.Server{
		Addr:         c.Addr,
		Handler:      h2c.NewHandler(mux, &http2.Server{}),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		Protocols:    &protocols,
	}

	slog.InfoContext(ctx, "starting server", "addr", c.Addr, "denominations", len(denominations))
	go func() {
		<-ctx.Done()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		slog.InfoContext(ctx, "stopping server")
		if err := server.Shutdown(ctx); err != nil {
			slog.ErrorContext(ctx, "failed to shutdown server", "error", err)
		}
		slog.InfoContext(ctx, "server stopped")
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
