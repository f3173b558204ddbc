package gacha

import (
	"iter"
	"math/big"
	"slices"
	"strconv"
)

// Table cut-offs.
const (
	// rows stop once the exact mass drops below this past the mean
	MinRowMass = 0.005
	// leftover tail mass above this gets an "N+" overflow row
	MinTailMass = 0.0001
)

// float precision for the binomial product; wide enough that C(n,k) for
// n <= 10000 and p^k never lose the leading digits
const pmfPrec = 256

// DistributionRow is one line of a distribution table.
type DistributionRow struct {
	Count    int     `json:"count"`
	Overflow bool    `json:"overflow,omitempty"` // true for the trailing "Count+" bucket
	Exact    float64 `json:"exact"`
	AtLeast  float64 `json:"at_least"`
}

// Label renders the count column, "7" or "7+".
func (r DistributionRow) Label() string {
	if r.Overflow {
		return strconv.Itoa(r.Count) + "+"
	}
	return strconv.Itoa(r.Count)
}

// DistributionTable is the truncated Binomial(Trials, Prob) distribution of
// copies of one card (or card group).
type DistributionTable struct {
	ID     string            `json:"id"`
	Name   string            `json:"name"`
	Trials int               `json:"trials"`
	Prob   float64           `json:"prob"`
	Rows   []DistributionRow `json:"rows"`
}

// Combinations returns C(n, k), or 0 when k is outside [0, n].
func Combinations(n, k int) *big.Int {
	if n < 0 || k < 0 || k > n {
		return new(big.Int)
	}
	return new(big.Int).Binomial(int64(n), int64(k))
}

// BinomialPMF is C(n,k)·p^k·(1−p)^(n−k). The product is taken in big.Float
// so huge coefficients and tiny powers meet before rounding to float64.
func BinomialPMF(k, n int, p float64) float64 {
	c := Combinations(n, k)
	if c.Sign() == 0 {
		return 0
	}
	f := new(big.Float).SetPrec(pmfPrec).SetInt(c)
	f.Mul(f, powFloat(p, k))
	f.Mul(f, powFloat(1-p, n-k))
	v, _ := f.Float64()
	return v
}

// powFloat raises x to a non-negative integer power by squaring.
func powFloat(x float64, e int) *big.Float {
	result := new(big.Float).SetPrec(pmfPrec).SetFloat64(1)
	base := new(big.Float).SetPrec(pmfPrec).SetFloat64(x)
	for ; e > 0; e >>= 1 {
		if e&1 == 1 {
			result.Mul(result, base)
		}
		base.Mul(base, base)
	}
	return result
}

// Rows yields the distribution table of Binomial(n, p) row by row.
//
// Each row carries the exact mass at k and the mass of all counts >= k. Rows
// stop at the first k past the mean whose mass is below MinRowMass; the
// remaining tail, if above MinTailMass, is folded into one overflow row.
// k = n+1 has zero mass and lies past any mean, so the loop bound is never
// the reason it ends.
//
// The running sum makes the sequence order-dependent; it cannot be resumed.
func Rows(n int, p float64) iter.Seq[DistributionRow] {
	return func(yield func(DistributionRow) bool) {
		mean := float64(n) * p
		cumExcl := 0.0
		last := 0
		for k := 0; k <= n+1; k++ {
			exact := BinomialPMF(k, n, p)
			if !yield(DistributionRow{Count: k, Exact: exact, AtLeast: max(0, 1-cumExcl)}) {
				return
			}
			cumExcl += exact
			last = k
			if exact < MinRowMass && float64(k) > mean {
				break
			}
		}
		if rem := max(0, 1-cumExcl); rem > MinTailMass {
			yield(DistributionRow{Count: last + 1, Overflow: true, Exact: rem, AtLeast: rem})
		}
	}
}

// BuildTable collects Rows(n, p) into a named table.
func BuildTable(id, name string, n int, p float64) DistributionTable {
	return DistributionTable{
		ID:     id,
		Name:   name,
		Trials: n,
		Prob:   p,
		Rows:   slices.Collect(Rows(n, p)),
	}
}
