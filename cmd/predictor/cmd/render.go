package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/xtding233/pull-predictor/internal/gacha"
)

// writeReport prints a computation as plain-text sections.
func writeReport(w io.Writer, res gacha.ComputationResult, tokenName string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "%d pulls, %s, pool %d SR / %d SSR\n\n",
		res.Config.Pulls, res.Config.Mode, res.Config.PoolSR, res.Config.PoolSSR)
	fmt.Fprintf(tw, "Guaranteed pity SSRs:\t%d\n", res.Pity.Count)
	fmt.Fprintf(tw, "Next pity:\t%d pulls (%d %s)\n\n", res.Pity.Next, res.Pity.Cost, tokenName)

	for _, s := range res.Summaries {
		fmt.Fprintf(tw, "%s:\t%.2f\n", s.Name, s.Mean)
		for _, b := range s.Bands() {
			fmt.Fprintf(tw, "  %dσ (%s)\t%d - %d\n", b.Sigma, gacha.CoverageLabel(b.Coverage), b.Lower, b.Upper)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, t := range res.Tables {
		fmt.Fprintf(w, "\n%s\n%s\n", t.Name, strings.Repeat("-", len(t.Name)))
		tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintln(tw, "Cnt\tExact\tThis+\t")
		for _, r := range t.Rows {
			fmt.Fprintf(tw, "%s\t%.1f%%\t%.1f%%\t\n", r.Label(), r.Exact*100, r.AtLeast*100)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}
