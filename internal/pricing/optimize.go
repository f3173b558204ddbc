package pricing

import "sort"

// MaxBudgetCents bounds MaxTokensUnderBudget; its table grows with the budget.
const MaxBudgetCents = 1_000_000

// variant is a pack as bought in one specific way (first-time x2 or normal).
type variant struct {
	id, pack, name string
	tok, price     int
	once           bool // first-time x2, buyable a single time
}

// expand lists the buyable variants of every pack; a pack with first-time
// x2 still available yields both.
func expand(cat Catalog, first FirstTimeState) []variant {
	var vs []variant
	for _, p := range cat.Packs {
		if p.Tokens+p.BonusTokens <= 0 || p.PriceCents <= 0 {
			continue
		}
		if p.FirstTimeX2 && first[p.ID] {
			vs = append(vs, variant{p.ID + "#x2", p.ID, p.Name + " (x2)", p.Tokens*2 + p.BonusTokens, p.PriceCents, true})
		}
		vs = append(vs, variant{p.ID, p.ID, p.Name, p.Tokens + p.BonusTokens, p.PriceCents, false})
	}
	return vs
}

// knapsack is a mixed 0/1 and unbounded knapsack over variants. dp[w] is the
// best gain at exactly weight w, -1 when w is unreachable. take[i][w] records
// that variant i produced dp[w] in its own pass.
type knapsack struct {
	vs     []variant
	weight func(variant) int
	dp     []int
	take   [][]bool
}

func solve(vs []variant, capacity int, weight, gain func(variant) int, better func(a, b int) bool) *knapsack {
	k := &knapsack{vs: vs, weight: weight, dp: make([]int, capacity+1), take: make([][]bool, len(vs))}
	for w := 1; w <= capacity; w++ {
		k.dp[w] = -1
	}
	for i, v := range vs {
		k.take[i] = make([]bool, capacity+1)
		wi, gi := weight(v), gain(v)
		relax := func(w int) {
			from := k.dp[w-wi]
			if from < 0 {
				return
			}
			if cand := from + gi; k.dp[w] < 0 || better(cand, k.dp[w]) {
				k.dp[w] = cand
				k.take[i][w] = true
			}
		}
		// descending reads the previous pass only, so a once-variant is used at most once
		if v.once {
			for w := capacity; w >= wi; w-- {
				relax(w)
			}
		} else {
			for w := wi; w <= capacity; w++ {
				relax(w)
			}
		}
	}
	return k
}

// quantities walks the take table back from weight w.
func (k *knapsack) quantities(w int) map[int]int {
	qty := map[int]int{}
	for i := len(k.vs) - 1; i >= 0; i-- {
		wi := k.weight(k.vs[i])
		for w >= wi && k.take[i][w] {
			qty[i]++
			w -= wi
			if k.vs[i].once {
				break
			}
		}
	}
	return qty
}

// buildPlan turns per-variant quantities into a taxed plan, ordered by pack ID.
// The store doubles the first purchase of a pack whose x2 is still open, so a
// plan holding only the normal variant is upgraded.
func buildPlan(cat Catalog, vs []variant, qty map[int]int) Plan {
	for i, v := range vs {
		if !v.once || qty[i] > 0 {
			continue
		}
		for j, n := range vs {
			if !n.once && n.pack == v.pack && qty[j] > 0 {
				qty[j]--
				qty[i] = 1
				break
			}
		}
	}

	plan := Plan{Currency: cat.Currency}
	for i, q := range qty {
		if q == 0 {
			continue
		}
		v := vs[i]
		sub := v.price * q
		plan.Purchases = append(plan.Purchases, Purchase{
			PackID:     v.id,
			Name:       v.name,
			Qty:        q,
			UnitPrice:  v.price,
			UnitTokens: v.tok,
			Subtotal:   sub,
		})
		plan.SubCents += sub
		plan.TotalTokens += v.tok * q
	}
	sort.Slice(plan.Purchases, func(i, j int) bool {
		return plan.Purchases[i].PackID < plan.Purchases[j].PackID
	})
	plan.TaxCents, plan.TotalCents = applyTax(plan.SubCents, cat.TaxRate)
	return plan
}

func byTokens(v variant) int { return v.tok }
func byPrice(v variant) int  { return v.price }

// MinCostAtLeastTokens finds the cheapest combination worth at least
// targetTokens. Each open first-time x2 is bought at most once.
func MinCostAtLeastTokens(cat Catalog, targetTokens int, first FirstTimeState) Plan {
	vs := expand(cat, first)
	if targetTokens <= 0 || len(vs) == 0 {
		return Plan{Currency: cat.Currency}
	}

	maxTok := 0
	for _, v := range vs {
		maxTok = max(maxTok, v.tok)
	}
	// a cheapest plan never overshoots by a whole pack
	limit := targetTokens + maxTok

	k := solve(vs, limit, byTokens, byPrice, func(a, b int) bool { return a < b })
	best := -1
	for t := targetTokens; t <= limit; t++ {
		if k.dp[t] >= 0 && (best < 0 || k.dp[t] < k.dp[best]) {
			best = t
		}
	}
	if best < 0 {
		return Plan{Currency: cat.Currency}
	}
	return buildPlan(cat, vs, k.quantities(best))
}

// MaxTokensUnderBudget finds the most tokens whose taxed total stays within
// budgetCents, which is clamped to MaxBudgetCents. Each open first-time x2 is
// bought at most once.
func MaxTokensUnderBudget(cat Catalog, budgetCents int, first FirstTimeState) Plan {
	vs := expand(cat, first)
	if budgetCents <= 0 || len(vs) == 0 {
		return Plan{Currency: cat.Currency}
	}
	budget := preTaxBudget(min(budgetCents, MaxBudgetCents), cat.TaxRate)

	k := solve(vs, budget, byPrice, byTokens, func(a, b int) bool { return a > b })
	best := 0
	for c := 0; c <= budget; c++ {
		if k.dp[c] > k.dp[best] {
			best = c
		}
	}
	return buildPlan(cat, vs, k.quantities(best))
}
