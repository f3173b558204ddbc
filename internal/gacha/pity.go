package gacha

import "github.com/xtding233/pull-predictor/internal/token"

// PityResult summarizes the hard pity: every PityThreshold pulls bank one
// guaranteed SSR.
type PityResult struct {
	Count int `json:"count"` // guarantees already banked
	Next  int `json:"next"`  // pulls until the next guarantee
	Cost  int `json:"cost"`  // tokens needed for those pulls
}

// ComputePity counts banked guarantees and prices the road to the next one.
// When pulls is an exact multiple of the threshold, Next is a full cycle.
func ComputePity(pulls int, tok token.Token) PityResult {
	next := PityThreshold - pulls%PityThreshold
	return PityResult{
		Count: pulls / PityThreshold,
		Next:  next,
		Cost:  tok.TokensForDraws(next),
	}
}
