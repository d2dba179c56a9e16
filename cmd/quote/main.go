// Command quote prints quotes for the symbols given as arguments as JSON.
//
//	quote AAPL MSFT SHOP.TO
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"quote_backend/internal/app/config"
	"quote_backend/internal/app/di"
	"quote_backend/internal/feature/quotes/domain"
	"quote_backend/internal/feature/quotes/transport/http/dto"
)

func main() {
	var (
		configPath string
		noCache    bool
		timeout    time.Duration
	)
	flag.StringVar(&configPath, "config", config.Path(), "path to config.yaml (optional)")
	flag.BoolVar(&noCache, "no-cache", false, "bypass the quote cache")
	flag.DurationVar(&timeout, "timeout", time.Minute, "overall timeout")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] SYMBOL...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	if err := godotenv.Load(".env"); err != nil {
		slog.Debug(".env not found; using system environment variables")
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	symbols := make([]domain.Symbol, 0, flag.NArg())
	for _, arg := range flag.Args() {
		s, err := domain.ParseSymbol(arg)
		if err != nil {
			log.Fatalf("%s: %v", arg, err)
		}
		symbols = append(symbols, s)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	svc, res, err := di.Bootstrap(ctx, cfg, !noCache)
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}
	defer res.Close()

	quotes, err := svc.Fetcher.FetchQuotes(ctx, symbols)
	if err != nil {
		log.Fatal(err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(dto.NewQuotesResponse(quotes)); err != nil {
		log.Fatal(err)
	}
}
