package gacha

// DerivedRates holds the per-pull probabilities of one computation.
// Normal/Special pairs are the odds on normal pulls and on every 10th pull.
type DerivedRates struct {
	Pulls      int        `json:"pulls"`
	Mode       BannerMode `json:"mode"`
	NumNormal  int        `json:"num_normal"`
	NumSpecial int        `json:"num_special"`

	BannerSSR    float64 `json:"banner_ssr"`
	OffBannerSSR float64 `json:"off_banner_ssr"`

	PromoSRNormal  float64 `json:"promo_sr_normal"`
	PromoSRSpecial float64 `json:"promo_sr_special"`
	PoolSRNormal   float64 `json:"pool_sr_normal"`
	PoolSRSpecial  float64 `json:"pool_sr_special"`

	// pool sizes with the promoted cards removed; may be <= 0 for bad input
	AdjustedPoolSR  int `json:"adjusted_pool_sr"`
	AdjustedPoolSSR int `json:"adjusted_pool_ssr"`
}

// DeriveRates turns a banner config into per-pull rates.
func DeriveRates(cfg BannerConfig) (DerivedRates, error) {
	if err := cfg.Validate(); err != nil {
		return DerivedRates{}, err
	}

	r := DerivedRates{
		Pulls:      cfg.Pulls,
		Mode:       cfg.Mode,
		NumSpecial: cfg.Pulls / SpecialPullInterval,
	}
	r.NumNormal = cfg.Pulls - r.NumSpecial

	if cfg.Mode.HasPromoSR() {
		r.AdjustedPoolSSR = cfg.PoolSSR - 1
		r.AdjustedPoolSR = cfg.PoolSR - 1
		r.BannerSSR, r.OffBannerSSR = 0.0075, 0.0225
		r.PromoSRNormal, r.PromoSRSpecial = 0.0225, 0.12125
	} else {
		r.AdjustedPoolSSR = cfg.PoolSSR - 2
		r.AdjustedPoolSR = cfg.PoolSR
		r.BannerSSR, r.OffBannerSSR = 0.015, 0.015
	}

	r.PoolSRNormal = SRRateNormal - r.PromoSRNormal
	r.PoolSRSpecial = SRRateSpecial - r.PromoSRSpecial
	return r, nil
}

// Blend averages a normal/special rate pair over all pulls.
func (r DerivedRates) Blend(normal, special float64) float64 {
	return (float64(r.NumNormal)*normal + float64(r.NumSpecial)*special) / float64(r.Pulls)
}

// PromoSR is the blended per-pull chance of the promoted SR card.
func (r DerivedRates) PromoSR() float64 {
	return r.Blend(r.PromoSRNormal, r.PromoSRSpecial)
}

// OffBannerSRCard is the blended per-pull chance of one specific off-banner SR.
func (r DerivedRates) OffBannerSRCard() float64 {
	return r.Blend(r.PoolSRNormal, r.PoolSRSpecial) / float64(atLeastOne(r.AdjustedPoolSR))
}

// OffBannerSSRCard is the per-pull chance of one specific off-banner SSR.
func (r DerivedRates) OffBannerSSRCard() float64 {
	return r.OffBannerSSR / float64(atLeastOne(r.AdjustedPoolSSR))
}

// atLeastOne floors a pool denominator; a pool smaller than the promoted
// card count silently inflates the per-card rate.
func atLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
