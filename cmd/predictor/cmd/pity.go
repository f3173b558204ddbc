package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xtding233/pull-predictor/internal/gacha"
	"github.com/xtding233/pull-predictor/internal/pricing"
)

func newPityCmd(opts *options) *cobra.Command {
	var pulls int
	c := &cobra.Command{
		Use:   "pity",
		Short: "Guaranteed SSRs banked and the cost of the next one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkPulls(pulls); err != nil {
				return err
			}
			res, err := opts.resolve(cmd, pulls)
			if err != nil {
				return err
			}
			p := gacha.ComputePity(pulls, res.Token)

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Guaranteed pity SSRs: %d\n", p.Count)
			fmt.Fprintf(w, "Next pity in:         %d pulls (%d %s)\n", p.Next, p.Cost, res.Token.Name)
			if res.Catalog == nil {
				return nil
			}
			first, err := opts.firstTimeState(*res.Catalog)
			if err != nil {
				return err
			}
			plan := pricing.MinCostAtLeastTokens(*res.Catalog, p.Cost, first)
			fmt.Fprintf(w, "Cheapest top-up:      %s\n", plan.Total())
			for _, line := range plan.Purchases {
				fmt.Fprintf(w, "  %d x %s (%s each)\n", line.Qty, line.Name, pricing.FormatCents(line.UnitPrice))
			}
			return nil
		},
	}
	c.Flags().IntVarP(&pulls, "pulls", "n", 200, "total pulls (1-10000)")
	return c
}
