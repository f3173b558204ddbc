package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xtding233/pull-predictor/internal/gacha"
	"github.com/xtding233/pull-predictor/internal/pricing"
)

func newBudgetCmd(opts *options) *cobra.Command {
	var (
		budget string
		owned  int
	)
	c := &cobra.Command{
		Use:   "budget",
		Short: "Pulls a budget buys, and their odds",
		Long: `budget spends --budget (in the catalog currency) on the best token packs of
the --game preset (first-time x2 packs listed in --first-time count double
once), adds --owned tokens, and reports the odds for the
resulting number of pulls.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cents, err := pricing.ParseCents(budget)
			if err != nil {
				return fmt.Errorf("invalid --budget: %w", err)
			}
			if cents < 0 || cents > pricing.MaxBudgetCents {
				return fmt.Errorf("--budget must be between 0 and %s", pricing.FormatCents(pricing.MaxBudgetCents))
			}
			res, err := opts.resolve(cmd, 1)
			if err != nil {
				return err
			}
			if res.Catalog == nil {
				return errors.New("budget needs a --game preset with a catalog")
			}

			first, err := opts.firstTimeState(*res.Catalog)
			if err != nil {
				return err
			}
			plan := pricing.MaxTokensUnderBudget(*res.Catalog, cents, first)
			pulls := min(res.Token.DrawsForTokens(plan.TotalTokens+owned), gacha.MaxPulls)

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Spend %s for %d %s -> %d pulls\n", plan.Total(), plan.TotalTokens, res.Token.Name, pulls)
			if pulls < 1 {
				return nil
			}
			res.Config.Pulls = pulls
			out, err := gacha.ComputeWithToken(res.Config, res.Token)
			if err != nil {
				return err
			}
			fmt.Fprintln(w)
			return writeReport(w, out, res.Token.Name)
		},
	}
	c.Flags().StringVar(&budget, "budget", "0", "money to spend, e.g. 49.99")
	c.Flags().IntVar(&owned, "owned", 0, "tokens already owned")
	return c
}
