package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var sidebarCmd = &cobra.Command{
	Use:   "sidebar <path|url>",
	Short: "Print the sidebar index of a rustdoc item page",
	Args:  cobra.ExactArgs(1),
	Run:   runSidebar,
}

func runSidebar(cmd *cobra.Command, args []string) {
	page := getPage(cmd.Context(), loadConfig(), args[0], false)

	for i, sec := range page.Sidebar {
		if i > 0 {
			fmt.Println()
		}
		fmt.Println(sec.Name)
		for _, item := range sec.Items {
			fmt.Printf("  %s\n", item)
		}
	}
}
