package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/nwsl-data/nwsl-analytics/internal/config"
	"github.com/nwsl-data/nwsl-analytics/internal/httpserver"
	"github.com/nwsl-data/nwsl-analytics/internal/ingest"
	"github.com/nwsl-data/nwsl-analytics/mcp"
	"github.com/nwsl-data/nwsl-analytics/warehouse"
)

const serverVersion = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "nwsl-mcp",
	Short: "An MCP server for NWSL soccer analytics",
	Long: `NWSL MCP exposes a soccer statistics warehouse as schema-described
tools over the Model Context Protocol. It serves the JSON-RPC envelope over
HTTP or stdio and ships an offline ingestion job for loading seasons.`,
}

func init() {
	rootCmd.AddCommand(serveCmd, stdioCmd, ingestCmd)
	ingestCmd.Flags().StringVar(&ingestSeason, "season", "", "season to ingest (e.g. 2024)")
	_ = ingestCmd.MarkFlagRequired("season")
}

// setup builds the pieces every subcommand shares: config, logger, store,
// and the protocol adapter
func setup() (*config.Config, *logrus.Logger, *warehouse.Postgres, *mcp.Server, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("error loading config: %v", err)
	}

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	store, err := warehouse.NewPostgres(cfg.DatabaseURL, log)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("error connecting to warehouse: %v", err)
	}

	aliases := warehouse.NewAliasSet()
	if err := aliases.LoadAliasFile(cfg.TeamAliasFile); err != nil {
		store.Close()
		return nil, nil, nil, nil, fmt.Errorf("error loading team aliases: %v", err)
	}

	server, err := mcp.NewServer(store, mcp.Options{
		Name:         "nwsl-analytics",
		Version:      serverVersion,
		Log:          log,
		QueryTimeout: cfg.QueryTimeout,
		Seasons:      cfg.Seasons,
		MinMinutes:   cfg.MinMinutesThreshold,
		Aliases:      aliases,
	})
	if err != nil {
		store.Close()
		return nil, nil, nil, nil, fmt.Errorf("error creating server: %v", err)
	}

	return cfg, log, store, server, nil
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the MCP envelope over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		cfg, log, store, server, err := setup()
		if err != nil {
			return err
		}
		defer store.Close()

		httpSrv := httpserver.New(server, store, log, "nwsl-analytics", serverVersion, cfg.IsProduction())
		httpSrv.SetReady(true)

		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return httpSrv.Run(ctx, ":"+cfg.Port, cfg.ShutdownTimeout)
		})
		return g.Wait()
	},
}

var stdioCmd = &cobra.Command{
	Use:   "stdio",
	Short: "Serve the MCP envelope over stdin/stdout",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		_, _, store, server, err := setup()
		if err != nil {
			return err
		}
		defer store.Close()

		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			transport := mcp.NewStdioTransport(server, os.Stdin, os.Stdout, os.Stderr)
			return transport.Run(ctx)
		})
		return g.Wait()
	},
}

var ingestSeason string

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Load one season of player stats into the warehouse",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		cfg, log, store, _, err := setup()
		if err != nil {
			return err
		}
		defer store.Close()

		fbref := ingest.NewFBrefClient(cfg.FBrefBaseURL, cfg.FBrefAPIKey, cfg.FBrefRateInterval, log)
		asa := ingest.NewASAClient(cfg.ASABaseURL, cfg.ASARateInterval, log)
		loader := ingest.NewLoader(fbref, asa, store, log)

		return loader.IngestSeason(ctx, ingestSeason)
	},
}
