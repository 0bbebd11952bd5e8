package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"bourse/internal/config"
	"bourse/internal/engine"
	"bourse/internal/listing"
	"bourse/internal/logging"
	"bourse/internal/runner"

	"github.com/rs/zerolog/log"
)

func main() {
	envPath := flag.String("env", "", "Path to a .env file (defaults to ./.env if present)")
	ordersPath := flag.String("orders", "-", "Order script to replay, '-' for stdin")
	flag.Parse()

	if err := run(*envPath, *ordersPath); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(envPath, ordersPath string) error {
	cfg, err := config.Load(envPath)
	if err != nil {
		return err
	}
	if err := logging.Setup(cfg.LogLevel, cfg.LogFormat, os.Stderr); err != nil {
		return err
	}

	// Setup the matching engine; listings are announced on its event log.
	registry := listing.NewRegistry()
	eng := engine.New(registry)
	registry.SetReporter(eng)
	for _, l := range cfg.Listings {
		company, err := listing.NewCompany(l.Code, l.Name, l.Price)
		if err != nil {
			return fmt.Errorf("listing %s: %w", l.Code, err)
		}
		if err := registry.List(company); err != nil {
			return err
		}
	}

	var input io.Reader = os.Stdin
	if ordersPath != "-" {
		f, err := os.Open(ordersPath)
		if err != nil {
			return err
		}
		defer f.Close()
		input = f
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
	)
	defer stop()

	log.Info().Str("exchange", cfg.Name).Strs("listed", registry.ListedCodes()).Msg("exchange open")

	if err := runner.New(eng, cfg.PassInterval).Run(ctx, input); err != nil {
		return err
	}

	for _, trade := range eng.Trades() {
		fmt.Println(trade)
	}
	for _, code := range registry.ListedCodes() {
		company, _ := registry.Company(code)
		fmt.Println(company)
	}
	return nil
}
