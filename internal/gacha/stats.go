package gacha

import (
	"fmt"
	"math"
)

// Summary IDs.
const (
	SummaryTotalSR   = "total_sr"
	SummaryTotalSSR  = "total_ssr"
	SummaryBannerSSR = "banner_ssr"
)

// SummaryStat is the closed-form mean and spread of one reward count.
type SummaryStat struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Mean     float64 `json:"mean"`
	Variance float64 `json:"variance"`
	StdDev   float64 `json:"std_dev"`
}

// SigmaBand is the integer range mean ± Sigma·σ and the share of a normal
// distribution that falls inside it.
type SigmaBand struct {
	Sigma    int     `json:"sigma"`
	Lower    int     `json:"lower"`
	Upper    int     `json:"upper"`
	Coverage float64 `json:"coverage"`
}

func newSummary(id, name string, mean, variance float64) SummaryStat {
	if variance < 0 {
		variance = 0
	}
	return SummaryStat{
		ID:       id,
		Name:     name,
		Mean:     mean,
		Variance: variance,
		StdDev:   math.Sqrt(variance),
	}
}

// Summaries returns total SRs, total SSRs and banner SSRs, in that order.
// Normal and special pulls are independent Bernoulli trials so their
// variances add.
func Summaries(r DerivedRates) []SummaryStat {
	normal, special := float64(r.NumNormal), float64(r.NumSpecial)
	pulls := float64(r.Pulls)

	return []SummaryStat{
		newSummary(SummaryTotalSR, "Total SRs Expected",
			normal*SRRateNormal+special*SRRateSpecial,
			normal*SRRateNormal*(1-SRRateNormal)+special*SRRateSpecial*(1-SRRateSpecial)),
		newSummary(SummaryTotalSSR, "Total SSRs Expected",
			pulls*SSRRate,
			pulls*SSRRate*(1-SSRRate)),
		newSummary(SummaryBannerSSR, "Banner SSRs Expected",
			pulls*r.BannerSSR,
			pulls*r.BannerSSR*(1-r.BannerSSR)),
	}
}

// Bands returns the 1σ, 2σ and 3σ ranges.
func (s SummaryStat) Bands() []SigmaBand {
	bands := make([]SigmaBand, 0, 3)
	for i := 1; i <= 3; i++ {
		spread := float64(i) * s.StdDev
		bands = append(bands, SigmaBand{
			Sigma:    i,
			Lower:    max(0, int(math.Floor(s.Mean-spread))),
			Upper:    int(math.Ceil(s.Mean + spread)),
			Coverage: NormalCoverage(float64(i)),
		})
	}
	return bands
}

// NormalCoverage is Φ(z) − Φ(−z) for a standard normal.
func NormalCoverage(z float64) float64 {
	return normalCDF(z) - normalCDF(-z)
}

func normalCDF(x float64) float64 {
	return 0.5 * (1 + math.Erf(x/math.Sqrt2))
}

// CoverageLabel formats a probability as a percentage, saturating at ">99.9%".
func CoverageLabel(p float64) string {
	if p > 0.999 {
		return ">99.9%"
	}
	return fmt.Sprintf("%.1f%%", p*100)
}
