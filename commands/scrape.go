package commands

import (
	"os"

	"github.com/spf13/cobra"

	"sailboat-scraper/display"
)

func init() {
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape <make>",
	Short: "Scrape every site for a make, export the listings to CSV and print them.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.close()

		agg, err := s.aggregator(cmd.Context())
		if err != nil {
			return err
		}
		table := agg.Aggregate(cmd.Context(), args[0])
		s.spin.Stop()

		display.Listings(os.Stdout, table.Listings)
		s.logger.Info("Run %s: %d listings for %s", table.RunID, len(table.Listings), table.Make)
		return cmd.Context().Err()
	},
}
