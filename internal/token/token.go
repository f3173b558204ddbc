package token

// Token defines how many units of a premium currency one pull costs.
type Token struct {
	Name       string `json:"name" yaml:"name"`                 // e.g. "Stellar Jade", "Star Stone"
	PerDraw    int    `json:"per_draw" yaml:"per_draw"`         // tokens per single draw, e.g. 150, 160
	PerTenDraw int    `json:"per_ten_draw" yaml:"per_ten_draw"` // optional; 0 means 10 * PerDraw
	PerNDraw   int    `json:"per_n_draw" yaml:"per_n_draw"`     // optional; 0 means N * PerDraw
	N          int    `json:"n" yaml:"n"`                       // optional bundle size for PerNDraw
}

// DefaultPerDraw is the token price of one pull when nothing else is configured.
const DefaultPerDraw = 150

// Default returns the stock pull currency.
func Default() Token {
	return Token{Name: "gems", PerDraw: DefaultPerDraw}
}

// TokensForDraws returns how many tokens are required for n draws.
func (t Token) TokensForDraws(n int) int {
	if n <= 0 {
		return 0
	}
	if t.PerTenDraw > 0 && n >= 10 && t.N <= 1 {
		tens := n / 10
		rem := n % 10
		return tens*t.PerTenDraw + rem*t.PerDraw
	}
	if t.PerNDraw > 0 && t.N > 1 && n >= t.N {
		bundles := n / t.N
		rem := n % t.N
		return bundles*t.PerNDraw + rem*t.PerDraw
	}
	return n * t.PerDraw
}

// DrawsForTokens is the inverse of TokensForDraws: the largest number of
// draws whose cost does not exceed tokens. A steep bundle discount makes the
// cost non-monotonic (9 singles can cost more than one ten-pull), so the
// search runs down from an upper bound instead of up from the flat estimate.
func (t Token) DrawsForTokens(tokens int) int {
	if tokens <= 0 || t.PerDraw <= 0 {
		return 0
	}
	// cheapest tokens per draw, kept as a fraction unit/size
	unit, size := t.PerDraw, 1
	if t.PerTenDraw > 0 && t.N <= 1 && t.PerTenDraw*size < unit*10 {
		unit, size = t.PerTenDraw, 10
	}
	if t.PerNDraw > 0 && t.N > 1 && t.PerNDraw*size < unit*t.N {
		unit, size = t.PerNDraw, t.N
	}
	for n := tokens/unit*size + size; n > 0; n-- {
		if t.TokensForDraws(n) <= tokens {
			return n
		}
	}
	return 0
}
