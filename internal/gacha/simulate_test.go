package gacha

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulateAgreesWithClosedForm(t *testing.T) {
	r, err := DeriveRates(BannerConfig{Pulls: 200, Mode: PromoSSRAndPromoSR, PoolSR: 33, PoolSSR: 45})
	require.NoError(t, err)

	rep, err := Simulate(r, 4000, NewSeededRNG(42))
	require.NoError(t, err)
	assert.Equal(t, 4000, rep.Trials)

	for _, s := range Summaries(r) {
		sim, ok := rep.Stats[s.ID]
		require.True(t, ok, s.ID)
		// five standard errors of the sample mean
		tol := 5 * s.StdDev / 63.2
		assert.InDelta(t, s.Mean, sim.Mean, tol, s.ID)
		assert.InDelta(t, s.StdDev, sim.StdDev, 0.1*s.StdDev+0.05, s.ID)
	}
}

func TestSimulateNoTrials(t *testing.T) {
	r, err := DeriveRates(BannerConfig{Pulls: 10, Mode: DualPromoSSR, PoolSR: 33, PoolSSR: 45})
	require.NoError(t, err)
	rep, err := Simulate(r, 0, nil)
	require.NoError(t, err)
	assert.Empty(t, rep.Stats)
}

func TestCalcStats(t *testing.T) {
	s := calcStats([]int{1, 2, 3, 4})
	assert.Equal(t, 2.5, s.Mean)
	assert.Equal(t, 1.25, s.Var)
	assert.Equal(t, 2.5, s.P50)
	assert.Equal(t, Stats{}, calcStats(nil))
	assert.Equal(t, 7.0, calcStats([]int{7}).P99)
}
