package gacha

import (
	"math"
	"sort"
)

// Stats summarizes simulated samples.
type Stats struct {
	Mean   float64 `json:"mean"`
	Var    float64 `json:"var"`
	StdDev float64 `json:"std_dev"`
	P50    float64 `json:"p50"`
	P90    float64 `json:"p90"`
	P99    float64 `json:"p99"`
}

// SimulationReport holds simulated counterparts of Summaries, keyed the same way.
type SimulationReport struct {
	Trials int              `json:"trials"`
	Stats  map[string]Stats `json:"stats"`
}

// Simulate plays trials full pull sessions and measures the counts the
// closed-form summaries predict. It is a cross-check only; Compute never
// simulates.
func Simulate(r DerivedRates, trials int, rng RandomSource) (SimulationReport, error) {
	if trials <= 0 {
		return SimulationReport{Stats: map[string]Stats{}}, nil
	}
	if rng == nil {
		rng = DefaultRNG()
	}

	sr := make([]int, trials)
	ssr := make([]int, trials)
	banner := make([]int, trials)
	for i := 0; i < trials; i++ {
		s, err := simulateSession(r, rng)
		if err != nil {
			return SimulationReport{}, err
		}
		sr[i], ssr[i], banner[i] = s.sr, s.ssr, s.banner
	}

	return SimulationReport{
		Trials: trials,
		Stats: map[string]Stats{
			SummaryTotalSR:   calcStats(sr),
			SummaryTotalSSR:  calcStats(ssr),
			SummaryBannerSSR: calcStats(banner),
		},
	}, nil
}

type sessionCounts struct{ sr, ssr, banner int }

// simulateSession draws r.Pulls times; every SpecialPullInterval-th pull uses
// the special SR rate. SSR is decided first, then banner vs off-banner, then SR
// among the non-SSR outcomes.
func simulateSession(r DerivedRates, rng RandomSource) (sessionCounts, error) {
	var c sessionCounts
	bannerShare := min(1, r.BannerSSR/SSRRate)
	for pull := 1; pull <= r.Pulls; pull++ {
		hit, err := Draw(SSRRate, rng)
		if err != nil {
			return c, err
		}
		if hit {
			c.ssr++
			up, err := Draw(bannerShare, rng)
			if err != nil {
				return c, err
			}
			if up {
				c.banner++
			}
			continue
		}

		srRate := SRRateNormal
		if pull%SpecialPullInterval == 0 {
			srRate = SRRateSpecial
		}
		hit, err = Draw(min(1, srRate/(1-SSRRate)), rng)
		if err != nil {
			return c, err
		}
		if hit {
			c.sr++
		}
	}
	return c, nil
}

// calcStats computes mean/variance/percentiles for integer samples.
func calcStats(xs []int) Stats {
	n := len(xs)
	if n == 0 {
		return Stats{}
	}
	var sum float64
	for _, v := range xs {
		sum += float64(v)
	}
	mean := sum / float64(n)

	// population variance
	var acc float64
	for _, v := range xs {
		d := float64(v) - mean
		acc += d * d
	}
	variance := acc / float64(n)

	cp := append([]int(nil), xs...)
	sort.Ints(cp)
	percentile := func(p float64) float64 {
		pos := p * float64(n-1)
		i := int(math.Floor(pos))
		if i+1 >= n {
			return float64(cp[n-1])
		}
		f := pos - float64(i)
		return float64(cp[i])*(1-f) + float64(cp[i+1])*f
	}

	return Stats{
		Mean:   mean,
		Var:    variance,
		StdDev: math.Sqrt(variance),
		P50:    percentile(0.50),
		P90:    percentile(0.90),
		P99:    percentile(0.99),
	}
}
