package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xtding233/pull-predictor/internal/gacha"
	"github.com/xtding233/pull-predictor/internal/logging"
)

func newSimulateCmd(opts *options) *cobra.Command {
	var (
		pulls, trials int
		seed          uint64
	)
	c := &cobra.Command{
		Use:   "simulate",
		Short: "Monte Carlo check of the expected counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkPulls(pulls); err != nil {
				return err
			}
			if trials < 1 {
				return fmt.Errorf("--trials must be >= 1")
			}
			res, err := opts.resolve(cmd, pulls)
			if err != nil {
				return err
			}
			rates, err := gacha.DeriveRates(res.Config)
			if err != nil {
				return err
			}

			var rng gacha.RandomSource
			if cmd.Flags().Changed("seed") {
				rng = gacha.NewSeededRNG(seed)
			}
			logging.L().Debug("simulating", zap.Int("pulls", pulls), zap.Int("trials", trials))
			rep, err := gacha.Simulate(rates, trials, rng)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "%d trials of %d pulls\n", rep.Trials, pulls)
			fmt.Fprintln(tw, "\tmean\tsim mean\tσ\tsim σ\tp50\tp90\tp99")
			for _, s := range gacha.Summaries(rates) {
				sim := rep.Stats[s.ID]
				fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%.2f\t%.2f\t%.0f\t%.0f\t%.0f\n",
					s.Name, s.Mean, sim.Mean, s.StdDev, sim.StdDev, sim.P50, sim.P90, sim.P99)
			}
			return tw.Flush()
		},
	}
	c.Flags().IntVarP(&pulls, "pulls", "n", 200, "total pulls (1-10000)")
	c.Flags().IntVar(&trials, "trials", 10000, "number of simulated sessions")
	c.Flags().Uint64Var(&seed, "seed", 0, "seed for a replayable run")
	return c
}
