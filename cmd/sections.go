package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var sectionsNoCache bool

var sectionsCmd = &cobra.Command{
	Use:     "sections <path|url>",
	Short:   "List the sections of a rustdoc item page",
	Example: `  ferrisdoc sections target/doc/demo/struct.Widget.html`,
	Args:    cobra.ExactArgs(1),
	Run:     runSections,
}

func init() {
	sectionsCmd.Flags().BoolVar(&sectionsNoCache, "no-cache", false, "bypass the parsed page cache")
}

func runSections(cmd *cobra.Command, args []string) {
	page := getPage(cmd.Context(), loadConfig(), args[0], sectionsNoCache)

	summary := page.Summary()
	if len(summary) == 0 {
		fmt.Println("no sections")
		return
	}
	for _, s := range summary {
		fmt.Printf("%-32s %-28s %d\n", s.Name, s.Kind, s.Records)
	}
	if n := len(page.Diagnostics); n > 0 {
		fmt.Printf("\n%d records skipped (run with --debug for details)\n", n)
	}
}
