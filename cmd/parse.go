package cmd

import (
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/jcdickinson/ferrisdoc/internal/config"
	"github.com/jcdickinson/ferrisdoc/internal/render"
)

var (
	parseFormat  string
	parseSection string
	parseNoCache bool
)

var parseCmd = &cobra.Command{
	Use:   "parse <path|url>",
	Short: "Parse a rustdoc item page and print it",
	Example: `  ferrisdoc parse target/doc/demo/struct.Widget.html
  ferrisdoc parse --format term --section impl target/doc/demo/struct.Widget.html
  ferrisdoc parse --format json https://docs.rs/serde/latest/serde/trait.Serialize.html`,
	Args: cobra.ExactArgs(1),
	Run:  runParse,
}

func init() {
	parseCmd.Flags().StringVarP(&parseFormat, "format", "f", "", "output format: markdown, html, term, json or yaml")
	parseCmd.Flags().StringVarP(&parseSection, "section", "s", "", "only print sections matching this query")
	parseCmd.Flags().BoolVar(&parseNoCache, "no-cache", false, "bypass the parsed page cache")
}

func runParse(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	format := cfg.Output.Format
	if parseFormat != "" {
		f, err := config.ParseFormat(parseFormat)
		if err != nil {
			slog.Error("invalid format", "error", err)
			os.Exit(1)
		}
		format = f
	}

	theme, err := render.NewTheme(lipgloss.NewRenderer(os.Stdout), cfg.Theme)
	if err != nil {
		slog.Error("invalid theme", "error", err)
		os.Exit(1)
	}

	page := getPage(cmd.Context(), cfg, args[0], parseNoCache)
	if parseSection != "" {
		page.MainContent = page.FilterSections(parseSection)
	}

	if err := render.Write(os.Stdout, page, format, theme); err != nil {
		slog.Error("failed to render page", "error", err)
		os.Exit(1)
	}
}
