package commands

import (
	"os"

	"github.com/spf13/cobra"

	"sailboat-scraper/display"
	"sailboat-scraper/scraper/sokbat"
)

func init() {
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history <make> <model>",
	Short: "Show recorded Swedish sale prices of a model by age.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.close()

		client := sokbat.New(s.docs, sokbat.FixedRate(s.cfg.SEKToEUR), s.logger)
		points, err := client.History(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		display.History(os.Stdout, points)
		return nil
	},
}
