package main

import (
	"fmt"
	"net"
	"os"

	"github.com/de-tools/sales-atlas/pkg/server"
	"github.com/de-tools/sales-atlas/pkg/services/config"
	"github.com/de-tools/sales-atlas/pkg/services/dashboard"
	"github.com/de-tools/sales-atlas/pkg/services/report"
	"github.com/de-tools/sales-atlas/pkg/store/client"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Sales Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to the configuration file (defaults and SALES_ATLAS_* variables apply when empty)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(_ *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.LoadConfig(cfgPath)
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
		logger.Warn().Err(err).Str("locale", cfg.Locale).Msg("unknown locale, falling back to Korean")
		tag = language.Korean
	}

	boards, err := dashboard.NewManager(dashboard.Settings{
		Source:    source,
		Formatter: report.NewFormatter(tag),
		TTL:       cfg.Board.TTL,
	})
	if err != nil {
		return fmt.Errorf("failed to create dashboard manager: %w", err)
	}

	logger.Info().Msgf("Reporting API at `%s`", cfg.API.BaseURL)
	for _, b := range brands.Brands() {
		logger.Info().Msgf("Brand: `%s`, Name: `%s`", b.Code, b.Name)
	}

	webAPI, err := server.NewWebAPI(logger, server.Config{
		Addr:            net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Boards: boards,
			Brands: brands,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create web api: %w", err)
	}

	return webAPI.Start()
}
