package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog(tax float64) Catalog {
	return Catalog{
		TokenName: "gems",
		Currency:  "CAD",
		TaxRate:   tax,
		Packs: []Pack{
			{ID: "60", Name: "60 Pack", Tokens: 60, PriceCents: 99},
			{ID: "300", Name: "300 Pack", Tokens: 300, BonusTokens: 30, FirstTimeX2: true, PriceCents: 499},
			{ID: "980", Name: "980 Pack", Tokens: 980, BonusTokens: 110, PriceCents: 1499},
		},
	}
}

func TestMinCostAtLeastTokens(t *testing.T) {
	plan := MinCostAtLeastTokens(testCatalog(0), 150, nil)
	require.Len(t, plan.Purchases, 1)
	assert.Equal(t, "60", plan.Purchases[0].PackID)
	assert.Equal(t, 3, plan.Purchases[0].Qty)
	assert.Equal(t, 297, plan.TotalCents)
	assert.Equal(t, 180, plan.TotalTokens)
	assert.Equal(t, "2.97 CAD", plan.Total())
}

func TestMinCostAtLeastTokensWithTax(t *testing.T) {
	plan := MinCostAtLeastTokens(testCatalog(0.13), 150, nil)
	assert.Equal(t, 297, plan.SubCents)
	assert.Equal(t, 39, plan.TaxCents)
	assert.Equal(t, 336, plan.TotalCents)
}

func TestMinCostUsesFirstTimeBonus(t *testing.T) {
	plan := MinCostAtLeastTokens(testCatalog(0), 600, FirstTimeState{"300": true})
	require.Len(t, plan.Purchases, 1)
	assert.Equal(t, "300#x2", plan.Purchases[0].PackID)
	assert.Equal(t, 630, plan.TotalTokens)
	assert.Equal(t, 499, plan.TotalCents)
}

func TestMinCostBuysFirstTimeBonusOnce(t *testing.T) {
	plan := MinCostAtLeastTokens(testCatalog(0), 1500, FirstTimeState{"300": true})

	qty := map[string]int{}
	for _, p := range plan.Purchases {
		qty[p.PackID] = p.Qty
	}
	assert.Equal(t, map[string]int{"300#x2": 1, "300": 1, "60": 9}, qty)
	assert.Equal(t, 1500, plan.TotalTokens)
	assert.Equal(t, 1889, plan.TotalCents)
}

func TestMinCostUpgradesFirstPurchase(t *testing.T) {
	// 330 tokens from a plain 300 pack cost the same as the x2 purchase
	plan := MinCostAtLeastTokens(testCatalog(0), 330, FirstTimeState{"300": true})
	require.Len(t, plan.Purchases, 1)
	assert.Equal(t, "300#x2", plan.Purchases[0].PackID)
	assert.Equal(t, 1, plan.Purchases[0].Qty)
	assert.Equal(t, 630, plan.TotalTokens)
	assert.Equal(t, 499, plan.TotalCents)
}

func TestMinCostEmpty(t *testing.T) {
	assert.Empty(t, MinCostAtLeastTokens(testCatalog(0), 0, nil).Purchases)
	assert.Empty(t, MinCostAtLeastTokens(Catalog{Currency: "USD"}, 100, nil).Purchases)
}

func TestMaxTokensUnderBudget(t *testing.T) {
	plan := MaxTokensUnderBudget(testCatalog(0), 500, nil)
	assert.Equal(t, 330, plan.TotalTokens)
	assert.LessOrEqual(t, plan.TotalCents, 500)

	taxed := MaxTokensUnderBudget(testCatalog(0.13), 500, nil)
	assert.LessOrEqual(t, taxed.TotalCents, 500)
	assert.Equal(t, 240, taxed.TotalTokens)
}

func TestMaxTokensBuysFirstTimeBonusOnce(t *testing.T) {
	plan := MaxTokensUnderBudget(testCatalog(0), 1000, FirstTimeState{"300": true})
	assert.Equal(t, 960, plan.TotalTokens)
	assert.Equal(t, 998, plan.TotalCents)
	for _, p := range plan.Purchases {
		if p.PackID == "300#x2" {
			assert.Equal(t, 1, p.Qty)
		}
	}
}

func TestMaxTokensClampsBudget(t *testing.T) {
	plan := MaxTokensUnderBudget(testCatalog(0), 50*MaxBudgetCents, nil)
	assert.LessOrEqual(t, plan.TotalCents, MaxBudgetCents)
	assert.Greater(t, plan.TotalCents, MaxBudgetCents-1499)
}

func TestParseFirstTime(t *testing.T) {
	cat := testCatalog(0)

	state, err := ParseFirstTime(cat, nil)
	require.NoError(t, err)
	assert.Nil(t, state)

	state, err = ParseFirstTime(cat, []string{"all"})
	require.NoError(t, err)
	assert.Equal(t, FirstTimeState{"300": true}, state)

	state, err = ParseFirstTime(cat, []string{"60", "300"})
	require.NoError(t, err)
	assert.Equal(t, FirstTimeState{"300": true}, state)

	_, err = ParseFirstTime(cat, []string{"9999"})
	assert.ErrorIs(t, err, ErrUnknownPack)
}

func TestCents(t *testing.T) {
	c, err := ParseCents("12.99")
	require.NoError(t, err)
	assert.Equal(t, 1299, c)

	c, err = ParseCents("5")
	require.NoError(t, err)
	assert.Equal(t, 500, c)

	_, err = ParseCents("abc")
	assert.Error(t, err)

	assert.Equal(t, "0.05", FormatCents(5))
	assert.Equal(t, "12.99", FormatCents(1299))
	assert.Equal(t, 1000, preTaxBudget(1130, 0.13))
}
