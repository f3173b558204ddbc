package gacha

import "github.com/xtding233/pull-predictor/internal/token"

// Table IDs.
const (
	TableBannerSSRTotal   = "banner_ssr_total"
	TablePromoSR          = "promo_sr"
	TableOffBannerSRCard  = "off_banner_sr"
	TableOffBannerSSRCard = "off_banner_ssr"
	TableBannerSSRCard    = "banner_ssr"
)

// one promoted SSR on either banner type pulls at this rate
const bannerSSRCardRate = 0.0075

// ComputationResult is everything the presentation layer needs for one input.
type ComputationResult struct {
	Config    BannerConfig        `json:"config"`
	Rates     DerivedRates        `json:"rates"`
	Pity      PityResult          `json:"pity"`
	Summaries []SummaryStat       `json:"summaries"`
	Tables    []DistributionTable `json:"tables"`
}

// Compute runs the engine with the default pull price.
func Compute(cfg BannerConfig) (ComputationResult, error) {
	return ComputeWithToken(cfg, token.Default())
}

// ComputeWithToken runs the engine, pricing the pity gap in tok.
// It holds no state between calls.
func ComputeWithToken(cfg BannerConfig, tok token.Token) (ComputationResult, error) {
	rates, err := DeriveRates(cfg)
	if err != nil {
		return ComputationResult{}, err
	}
	return ComputationResult{
		Config:    cfg,
		Rates:     rates,
		Pity:      ComputePity(cfg.Pulls, tok),
		Summaries: Summaries(rates),
		Tables:    Tables(rates),
	}, nil
}

// Tables builds the per-card distribution tables for the banner mode.
// Dual-SSR banners get the combined banner SSR table; banners with a
// promoted SR get that card's table instead.
func Tables(r DerivedRates) []DistributionTable {
	n := r.Pulls
	tables := make([]DistributionTable, 0, 4)
	if r.Mode.HasPromoSR() {
		tables = append(tables, BuildTable(TablePromoSR, "Specific Banner SR", n, r.PromoSR()))
	} else {
		tables = append(tables, BuildTable(TableBannerSSRTotal, "Total Banner SSRs (Both Cards)", n, r.BannerSSR))
	}
	return append(tables,
		BuildTable(TableOffBannerSRCard, "Specific Off-Banner SR", n, r.OffBannerSRCard()),
		BuildTable(TableOffBannerSSRCard, "Specific Off-Banner SSR", n, r.OffBannerSSRCard()),
		BuildTable(TableBannerSSRCard, "Specific Banner SSR", n, bannerSSRCardRate),
	)
}
