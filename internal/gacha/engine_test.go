package gacha

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tableIDs(tables []DistributionTable) []string {
	ids := make([]string, 0, len(tables))
	for _, t := range tables {
		ids = append(ids, t.ID)
	}
	return ids
}

func TestComputeDualPromoSSR(t *testing.T) {
	res, err := Compute(BannerConfig{Pulls: 200, Mode: DualPromoSSR, PoolSR: 33, PoolSSR: 45})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Pity.Count)
	assert.Equal(t, 200, res.Pity.Next)
	assert.Equal(t, 200*PityTokenCost, res.Pity.Cost)

	require.Len(t, res.Summaries, 3)
	assert.InDelta(t, 6.0, res.Summaries[1].Mean, 1e-9)
	assert.InDelta(t, 3.0, res.Summaries[2].Mean, 1e-9)

	assert.Equal(t, []string{
		TableBannerSSRTotal, TableOffBannerSRCard, TableOffBannerSSRCard, TableBannerSSRCard,
	}, tableIDs(res.Tables))
	assert.Equal(t, 0.015, res.Tables[0].Prob)
	assert.Equal(t, "Total Banner SSRs (Both Cards)", res.Tables[0].Name)
	assert.Equal(t, bannerSSRCardRate, res.Tables[3].Prob)
}

func TestComputePromoSR(t *testing.T) {
	res, err := Compute(BannerConfig{Pulls: 10, Mode: PromoSSRAndPromoSR, PoolSR: 33, PoolSSR: 45})
	require.NoError(t, err)

	assert.Equal(t, []string{
		TablePromoSR, TableOffBannerSRCard, TableOffBannerSSRCard, TableBannerSSRCard,
	}, tableIDs(res.Tables))
	assert.InDelta(t, (9*0.0225+1*0.12125)/10, res.Tables[0].Prob, 1e-12)
	for _, tbl := range res.Tables {
		assert.Equal(t, 10, tbl.Trials)
		assert.NotEmpty(t, tbl.Rows)
	}
}

func TestComputeRejectsInvalidPulls(t *testing.T) {
	_, err := Compute(BannerConfig{Pulls: 0, Mode: DualPromoSSR, PoolSR: 33, PoolSSR: 45})
	assert.ErrorIs(t, err, ErrInvalidPulls)
}

func TestComputeIsIdempotentAndConcurrencySafe(t *testing.T) {
	cfg := BannerConfig{Pulls: 350, Mode: PromoSSRAndPromoSR, PoolSR: 33, PoolSSR: 45}
	want, err := Compute(cfg)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]ComputationResult, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = Compute(cfg)
		}(i)
	}
	wg.Wait()
	for _, got := range results {
		assert.Equal(t, want, got)
	}
}
