package main

import (
	"context"
	"fmt"
	"os"

	"github.com/de-tools/sales-atlas/pkg/runtime/terminal"
	"github.com/de-tools/sales-atlas/pkg/services/config"
	"github.com/de-tools/sales-atlas/pkg/services/dashboard"
	"github.com/de-tools/sales-atlas/pkg/services/report"
	"github.com/de-tools/sales-atlas/pkg/store/client"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.WarnLevel).With().Timestamp().Logger()
	ctx := logger.WithContext(context.Background())

	cfg, err := config.LoadConfig(os.Getenv("SALES_ATLAS_CONFIG"))
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	brands, err := config.NewBrandRegistry(cfg.BrandsFile)
	if err != nil {
		return fmt.Errorf("failed to create brand registry: %w", err)
	}

	source, err := client.NewReportClient(client.Settings{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
		Cookie:  cfg.API.Cookie,
	})
	if err != nil {
		return fmt.Errorf("failed to create report client: %w", err)
	}

	tag, err := language.Parse(cfg.Locale)
	if err != nil {
		tag = language.Korean
	}

	boards, err := dashboard.NewManager(dashboard.Settings{
		Source:    source,
		Formatter: report.NewFormatter(tag),
	})
	if err != nil {
		return fmt.Errorf("failed to create dashboard manager: %w", err)
	}
	defer boards.Close()

	cli := terminal.NewCLI(terminal.Options{
		Boards: boards,
		Source: source,
		Brands: brands,
		Output: os.Stdout,
	})

	return cli.Execute(ctx)
}
