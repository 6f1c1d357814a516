package commands

import (
	"os"

	"github.com/spf13/cobra"

	"sailboat-scraper/display"
	"sailboat-scraper/scraper/boatagent"
)

func init() {
	rootCmd.AddCommand(soldCmd)
}

var soldCmd = &cobra.Command{
	Use:   "sold <make>",
	Short: "Show boats of a make recently sold through boatagent.com.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.close()

		sold := boatagent.New(s.docs, s.logger).Sold(cmd.Context(), args[0])
		display.Sold(os.Stdout, sold)
		return cmd.Context().Err()
	},
}
