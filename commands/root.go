// Package commands is the command line interface.
package commands

import (
	"context"

	"github.com/spf13/cobra"
)

var (
	debugFlag   bool
	fetcherFlag string
	cacheFlag   string
)

var rootCmd = &cobra.Command{
	Use:   "boatscan",
	Short: "boatscan aggregates used sailboat listings from several brokerage sites.",
	Long: `boatscan collects listings for a boat make from nettivene, yachtworld,
boat24 and theyachtmarket, normalises them into one table and lets you
filter, summarise and export them. Fetched pages are cached for the day.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "log extraction failures and disable document memoization")
	rootCmd.PersistentFlags().StringVar(&fetcherFlag, "fetcher", "", "page fetcher: http or browser (default from FETCHER)")
	rootCmd.PersistentFlags().StringVar(&cacheFlag, "cache-backend", "", "page cache backend: file or redis (default from CACHE_BACKEND)")
}

// ExecuteContext runs the command named by the process arguments and
// returns its error for the caller to report.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
