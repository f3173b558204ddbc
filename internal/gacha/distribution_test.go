package gacha

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombinations(t *testing.T) {
	tests := []struct {
		n, k int
		want int64
	}{
		{5, 0, 1},
		{5, 2, 10},
		{5, 5, 1},
		{52, 5, 2598960},
		{5, -1, 0},
		{5, 6, 0},
		{0, 0, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Combinations(tt.n, tt.k).Int64(), "C(%d,%d)", tt.n, tt.k)
	}
}

func TestBinomialPMF(t *testing.T) {
	assert.InDelta(t, 0.22573983181798207, BinomialPMF(3, 200, 0.015), 1e-12)
	assert.Equal(t, 0.0, BinomialPMF(201, 200, 0.015))
	assert.Equal(t, 0.0, BinomialPMF(-1, 200, 0.015))
	assert.Equal(t, 1.0, BinomialPMF(0, 5, 0))

	// coefficients far beyond float64 range still give a finite mass
	p := BinomialPMF(300, 10000, 0.03)
	assert.False(t, math.IsInf(p, 0) || math.IsNaN(p))
	assert.Greater(t, p, 0.0)
}

func TestRowsMatchesReferenceTable(t *testing.T) {
	rows := slices.Collect(Rows(200, 0.015))
	require.Len(t, rows, 11)

	wantExact := []float64{
		0.048668291378490124, 0.14822829861469075, 0.2245997316572852,
		0.22573983181798207, 0.16930487386348655, 0.10106727495607117,
		0.05002060562546669, 0.02111094450617956, 0.007755860957536779,
		0.0025196705648850453,
	}
	for k, want := range wantExact {
		assert.Equal(t, k, rows[k].Count)
		assert.False(t, rows[k].Overflow)
		assert.InDelta(t, want, rows[k].Exact, 1e-12, "k=%d", k)
	}
	assert.InDelta(t, 0.5785036783495339, rows[3].AtLeast, 1e-12)

	last := rows[10]
	assert.True(t, last.Overflow)
	assert.Equal(t, "10+", last.Label())
	assert.InDelta(t, 0.000984616057926102, last.Exact, 1e-12)
	assert.Equal(t, last.Exact, last.AtLeast)
}

func TestRowsWithoutOverflow(t *testing.T) {
	rows := slices.Collect(Rows(1, 0.5))
	require.Len(t, rows, 3)
	assert.Equal(t, DistributionRow{Count: 0, Exact: 0.5, AtLeast: 1}, rows[0])
	assert.Equal(t, DistributionRow{Count: 1, Exact: 0.5, AtLeast: 0.5}, rows[1])
	assert.Equal(t, 2, rows[2].Count)
	assert.Zero(t, rows[2].Exact)
	assert.Zero(t, rows[2].AtLeast)
}

func TestRowsZeroProbability(t *testing.T) {
	rows := slices.Collect(Rows(50, 0))
	require.Len(t, rows, 2)
	assert.Equal(t, 1.0, rows[0].Exact)
	assert.Equal(t, 1.0, rows[0].AtLeast)
	assert.Zero(t, rows[1].Exact)
}

func TestRowsStopEarlyWhenConsumerStops(t *testing.T) {
	n := 0
	for range Rows(10000, 0.03) {
		n++
		if n == 5 {
			break
		}
	}
	assert.Equal(t, 5, n)
}

func TestRowsProperties(t *testing.T) {
	cases := []struct {
		n int
		p float64
	}{
		{1, 0.0075},
		{10, 0.032375},
		{200, 0.015},
		{200, 0.00784848484848485},
		{1000, 0.0225 / 44},
		{10000, 0.0075},
		{10000, 0.18},
	}
	for _, c := range cases {
		rows := slices.Collect(Rows(c.n, c.p))
		require.NotEmpty(t, rows)
		assert.Equal(t, 0, rows[0].Count)
		assert.Equal(t, 1.0, rows[0].AtLeast, "n=%d p=%v", c.n, c.p)

		sum := 0.0
		prev := math.Inf(1)
		for i, r := range rows {
			sum += r.Exact
			if r.Overflow {
				assert.Equal(t, len(rows)-1, i, "overflow row must be last")
				continue
			}
			assert.Equal(t, i, r.Count)
			assert.LessOrEqual(t, r.AtLeast, prev)
			prev = r.AtLeast
		}
		// a dropped tail is at most MinTailMass
		assert.InDelta(t, 1.0, sum, MinTailMass+1e-9, "n=%d p=%v", c.n, c.p)
		assert.LessOrEqual(t, len(rows), c.n+3)
	}
}

func TestBuildTable(t *testing.T) {
	tbl := BuildTable("id", "Name", 10, 0.032375)
	assert.Equal(t, "id", tbl.ID)
	assert.Equal(t, 10, tbl.Trials)
	require.Len(t, tbl.Rows, 5)
	assert.Equal(t, "4+", tbl.Rows[4].Label())
	assert.Equal(t, "3", tbl.Rows[3].Label())
}
