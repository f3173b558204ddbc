// Package cmd provides the predictor CLI commands.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xtding233/pull-predictor/internal/gacha"
	"github.com/xtding233/pull-predictor/internal/game"
	"github.com/xtding233/pull-predictor/internal/logging"
	"github.com/xtding233/pull-predictor/internal/pricing"
)

const version = "0.3.0"

// options are the flags shared by every subcommand.
type options struct {
	configDir string
	verbose   bool

	game    string
	banner  string
	mode    string
	poolSR  int
	poolSSR int

	firstTime []string
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "predictor",
		Short: "Estimate gacha pull outcomes",
		Long: `predictor computes expected SR/SSR counts, sigma ranges and per-card
distribution tables for a number of pulls on a banner.

Examples:
  predictor odds --pulls 200
  predictor odds --pulls 120 --mode promo_sr --pool-sr 33 --pool-ssr 45
  predictor odds --pulls 300 --game shiraoki --banner winter --format json
  predictor pity --pulls 150 --game shiraoki
  predictor budget --budget 99.99 --game shiraoki --first-time all`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := logging.DefaultConfig()
			if opts.verbose {
				cfg.Level = "debug"
			}
			return logging.Initialize(cfg)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configDir, "config-dir", "configs", "preset directory (contains games/)")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	pf.StringVarP(&opts.game, "game", "g", "", "game preset to load")
	pf.StringVarP(&opts.banner, "banner", "b", "", "banner preset within --game")
	pf.StringVarP(&opts.mode, "mode", "m", "", "banner mode: dual_promo_ssr | promo_ssr_and_promo_sr")
	pf.IntVar(&opts.poolSR, "pool-sr", gacha.DefaultPoolSR, "number of SR cards in the pool")
	pf.IntVar(&opts.poolSSR, "pool-ssr", gacha.DefaultPoolSSR, "number of SSR cards in the pool")
	pf.StringSliceVar(&opts.firstTime, "first-time", nil, `pack IDs whose first-time x2 is still open, or "all"`)

	root.AddCommand(
		newOddsCmd(opts),
		newPityCmd(opts),
		newBudgetCmd(opts),
		newSimulateCmd(opts),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "predictor version %s\n", version)
			},
		},
	)
	return root
}

// Execute runs the CLI.
func Execute() error {
	defer logging.Sync()
	return NewRootCmd().Execute()
}

// resolve builds the engine input from presets and explicitly set flags.
func (o *options) resolve(cmd *cobra.Command, pulls int) (game.Resolved, error) {
	var ov game.Overrides
	flags := cmd.Flags()
	if flags.Changed("mode") {
		ov.Mode = &o.mode
	}
	if flags.Changed("pool-sr") || o.game == "" {
		ov.PoolSR = &o.poolSR
	}
	if flags.Changed("pool-ssr") || o.game == "" {
		ov.PoolSSR = &o.poolSSR
	}

	var (
		res game.Resolved
		err error
	)
	if o.game != "" {
		res, err = game.NewLoader(o.configDir).Resolve(o.game, o.banner, ov)
	} else {
		if o.banner != "" {
			return game.Resolved{}, fmt.Errorf("--banner needs --game")
		}
		res, err = game.ResolveDefaults(ov)
	}
	if err != nil {
		return game.Resolved{}, err
	}
	res.Config.Pulls = pulls
	logging.L().Debug("resolved banner",
		zap.String("game", res.Game),
		zap.String("banner", res.Banner),
		zap.String("mode", string(res.Config.Mode)),
		zap.Int("pool_sr", res.Config.PoolSR),
		zap.Int("pool_ssr", res.Config.PoolSSR),
		zap.String("preset_version", res.Version),
	)
	return res, nil
}

// firstTimeState reads --first-time against the preset catalog.
func (o *options) firstTimeState(cat pricing.Catalog) (pricing.FirstTimeState, error) {
	state, err := pricing.ParseFirstTime(cat, o.firstTime)
	if err != nil {
		return nil, fmt.Errorf("invalid --first-time: %w", err)
	}
	return state, nil
}

func checkPulls(pulls int) error {
	if pulls < 1 || pulls > gacha.MaxPulls {
		return fmt.Errorf("--pulls must be between 1 and %d, got %d", gacha.MaxPulls, pulls)
	}
	return nil
}
