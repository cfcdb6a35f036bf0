package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jcdickinson/ferrisdoc/internal/cache"
)

var clearCacheCmd = &cobra.Command{
	Use:   "clear-cache",
	Short: "Remove every parsed page from the cache",
	Run:   runClearCache,
}

func runClearCache(cmd *cobra.Command, args []string) {
	store := cache.Default()
	if err := store.Clear(); err != nil {
		slog.Error("failed to clear cache", "dir", store.Dir(), "error", err)
		os.Exit(1)
	}
	fmt.Println("page cache cleared")
}
