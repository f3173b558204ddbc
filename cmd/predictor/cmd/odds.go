package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xtding233/pull-predictor/internal/gacha"
)

func newOddsCmd(opts *options) *cobra.Command {
	var (
		pulls  int
		format string
	)
	c := &cobra.Command{
		Use:   "odds",
		Short: "Expected counts, sigma ranges and per-card tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkPulls(pulls); err != nil {
				return err
			}
			res, err := opts.resolve(cmd, pulls)
			if err != nil {
				return err
			}
			out, err := gacha.ComputeWithToken(res.Config, res.Token)
			if err != nil {
				return err
			}

			switch format {
			case "json":
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			case "text":
				return writeReport(cmd.OutOrStdout(), out, res.Token.Name)
			default:
				return fmt.Errorf("unknown --format %q (text, json)", format)
			}
		},
	}
	c.Flags().IntVarP(&pulls, "pulls", "n", 200, "total pulls (1-10000)")
	c.Flags().StringVarP(&format, "format", "f", "text", "output format (text, json)")
	return c
}
