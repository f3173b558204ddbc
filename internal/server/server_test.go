package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xtding233/pull-predictor/internal/gacha"
	"github.com/xtding233/pull-predictor/internal/game"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	dir := t.TempDir()
	games := filepath.Join(dir, "games")
	require.NoError(t, os.MkdirAll(filepath.Join(games, "shiraoki", "banners"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(games, "default.yaml"), []byte("version: \"1\"\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(games, "shiraoki.yaml"), []byte(`
tokens:
  name: crystals
catalog:
  currency: USD
  packs:
    - {id: p60, name: "60", tokens: 60, price_cents: 99}
    - {id: p300, name: "300", tokens: 300, bonus_tokens: 30, first_time_x2: true, price_cents: 499}
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(games, "shiraoki", "banners", "winter.yaml"), []byte(`
banner:
  mode: promo_ssr_and_promo_sr
  pool_sr: 40
`), 0o644))

	return New(Options{Addr: ":0", CacheSize: 16, CacheTTL: time.Minute}, game.NewLoader(dir), zap.NewNop())
}

func get(t *testing.T, s *Server, url string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
	return rec
}

func TestHandleOdds(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/api/v1/odds?pulls=200&mode=dual_promo_ssr&pool_sr=33&pool_ssr=45")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var out oddsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.False(t, out.Cached)
	assert.Equal(t, 1, out.Pity.Count)
	assert.Equal(t, 200, out.Pity.Next)
	require.Len(t, out.Summaries, 3)
	assert.InDelta(t, 3.0, out.Summaries[2].Mean, 1e-9)
	require.Len(t, out.Tables, 4)
	assert.Equal(t, gacha.TableBannerSSRTotal, out.Tables[0].ID)

	rec = get(t, s, "/api/v1/odds?pulls=200&mode=dual_promo_ssr&pool_sr=33&pool_ssr=45")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.True(t, out.Cached)
}

func TestHandleOddsWithPreset(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/api/v1/odds?pulls=10&game=shiraoki&banner=winter")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var out oddsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, gacha.PromoSSRAndPromoSR, out.Config.Mode)
	assert.Equal(t, 40, out.Config.PoolSR)
	assert.Equal(t, gacha.DefaultPoolSSR, out.Config.PoolSSR)
	assert.Equal(t, "crystals", out.Token)
	assert.Equal(t, gacha.TablePromoSR, out.Tables[0].ID)
}

func TestHandleOddsBadRequests(t *testing.T) {
	s := newTestServer(t)
	for _, url := range []string{
		"/api/v1/odds",
		"/api/v1/odds?pulls=abc",
		"/api/v1/odds?pulls=0",
		"/api/v1/odds?pulls=10001",
		"/api/v1/odds?pulls=10&mode=triple",
		"/api/v1/odds?pulls=10&pool_sr=-3",
		"/api/v1/odds?pulls=10&banner=winter",
		"/api/v1/odds?pulls=10&game=..",
	} {
		rec := get(t, s, url)
		assert.Equal(t, http.StatusBadRequest, rec.Code, url)
		var e errResp
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e), url)
		assert.NotEmpty(t, e.Err, url)
	}
}

func TestHandlePity(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/api/v1/pity?pulls=190&game=shiraoki")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var out pityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, 10, out.Pity.Next)
	assert.Equal(t, 1500, out.Pity.Cost)
	require.NotNil(t, out.Plan)
	assert.GreaterOrEqual(t, out.Plan.TotalTokens, 1500)
	assert.NotEmpty(t, out.Total)

	rec = get(t, s, "/api/v1/pity?pulls=190")
	var bare pityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bare))
	assert.Nil(t, bare.Plan)
	assert.Equal(t, "gems", bare.Token)
}

func TestHandlePityFirstTime(t *testing.T) {
	s := newTestServer(t)

	for _, url := range []string{
		"/api/v1/pity?pulls=190&game=shiraoki&first_time=p300",
		"/api/v1/pity?pulls=190&game=shiraoki&first_time=all",
		"/api/v1/pity?pulls=190&game=shiraoki&first_time=p60,p300",
	} {
		rec := get(t, s, url)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var out pityResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
		require.NotNil(t, out.Plan)
		assert.Equal(t, 1889, out.Plan.TotalCents, url)
		assert.Equal(t, 1500, out.Plan.TotalTokens, url)
		for _, p := range out.Plan.Purchases {
			if p.PackID == "p300#x2" {
				assert.Equal(t, 1, p.Qty, url)
			}
		}
	}

	rec := get(t, s, "/api/v1/pity?pulls=190&game=shiraoki&first_time=p999")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlePresetsAndHealth(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/api/v1/presets")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"games":["shiraoki"]}`, rec.Body.String())

	rec = get(t, s, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = get(t, s, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
}
