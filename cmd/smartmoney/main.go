package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	ossignal "os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Bencode92/smartmoney-scraper-sub001/internal/crowding"
	"github.com/Bencode92/smartmoney-scraper-sub001/internal/loader"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	ctx, cancel := ossignal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := Execute(ctx); err != nil {
		exitErr(err)
	}
}

// exitErr prints a per-kind message and exits non-zero.
func exitErr(err error) {
	var schemaErr *loader.SchemaError
	var confErr *crowding.ConfigurationError
	switch {
	case errors.Is(err, loader.ErrNotFound):
		fmt.Fprintf(os.Stderr, "error: %v\ncheck data.funds_file in your config\n", err)
	case errors.As(err, &schemaErr):
		fmt.Fprintf(os.Stderr, "error: bad input record: %v\n", err)
	case errors.As(err, &confErr):
		fmt.Fprintf(os.Stderr, "error: %v\ncheck the crowding weights in your config\n", err)
	default:
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	os.Exit(1)
}
