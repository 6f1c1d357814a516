package commands

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"sailboat-scraper/display"
	"sailboat-scraper/models"
	"sailboat-scraper/services"
)

type queryFlags struct {
	model          string
	minYear        int
	maxYear        int
	minLOA, maxLOA float64
}

func (f *queryFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.model, "model", "", "case-insensitive model substring")
	fs.IntVar(&f.minYear, "min-year", 0, "earliest build year")
	fs.IntVar(&f.maxYear, "max-year", 0, "latest build year")
	fs.Float64Var(&f.minLOA, "min-loa", 0, "shortest length overall in metres")
	fs.Float64Var(&f.maxLOA, "max-loa", 0, "longest length overall in metres")
}

// query builds the filter from the flags the user actually set, so an
// explicit zero is a bound rather than "no bound".
func (f *queryFlags) query(fs *pflag.FlagSet) services.Query {
	q := services.Query{Model: f.model}
	if fs.Changed("min-year") {
		q.MinYear = models.Some(f.minYear)
	}
	if fs.Changed("max-year") {
		q.MaxYear = models.Some(f.maxYear)
	}
	if fs.Changed("min-loa") {
		q.MinLOA = models.Some(f.minLOA)
	}
	if fs.Changed("max-loa") {
		q.MaxLOA = models.Some(f.maxLOA)
	}
	return q
}

var (
	queryOpts   queryFlags
	summaryOpts queryFlags
)

func init() {
	queryOpts.register(queryCmd.Flags())
	summaryOpts.register(summaryCmd.Flags())
	rootCmd.AddCommand(queryCmd, summaryCmd)
}

var queryCmd = &cobra.Command{
	Use:   "query <make> [--model m] [--min-year y] [--max-year y] [--min-loa m] [--max-loa m]",
	Short: "List a make's listings matching the filters, cheapest first.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		listings, s, err := runQuery(cmd, args[0], &queryOpts)
		if err != nil {
			return err
		}
		defer s.close()

		display.Listings(os.Stdout, listings)
		return cmd.Context().Err()
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary <make> [filters]",
	Short: "Summarise a make's listings matching the filters.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		listings, s, err := runQuery(cmd, args[0], &summaryOpts)
		if err != nil {
			return err
		}
		defer s.close()

		report := services.NewInsightService(s.logger).Generate(listings)
		display.Summary(os.Stdout, report)
		return cmd.Context().Err()
	},
}

func runQuery(cmd *cobra.Command, brand string, f *queryFlags) ([]models.Listing, *session, error) {
	s, err := openSession(cmd)
	if err != nil {
		return nil, nil, err
	}
	agg, err := s.aggregator(cmd.Context())
	if err != nil {
		s.close()
		return nil, nil, err
	}
	listings := services.NewQueryService(agg).Query(cmd.Context(), brand, f.query(cmd.Flags()))
	s.spin.Stop()
	return listings, s, nil
}
