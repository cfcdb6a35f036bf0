package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jcdickinson/ferrisdoc/internal/cache"
	"github.com/jcdickinson/ferrisdoc/internal/config"
	"github.com/jcdickinson/ferrisdoc/internal/docs"
	"github.com/jcdickinson/ferrisdoc/internal/rustdoc"
)

var debug bool

var rootCmd = &cobra.Command{
	Use:   "ferrisdoc",
	Short: "Read rustdoc HTML pages as structured documentation",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debug {
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(sectionsCmd)
	rootCmd.AddCommand(sidebarCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(clearCacheCmd)
}

func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	return cfg
}

func newService(cfg *config.Config) *docs.Service {
	return docs.NewService(cfg, cache.Default())
}

func getPage(ctx context.Context, cfg *config.Config, location string, noCache bool) *rustdoc.Page {
	page, err := newService(cfg).Get(ctx, location, docs.GetOptions{NoCache: noCache})
	if err != nil {
		slog.Error("failed to parse page", "location", location, "error", err)
		os.Exit(1)
	}
	return page
}
