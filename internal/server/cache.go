package server

import (
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/xtding233/pull-predictor/internal/gacha"
	"github.com/xtding233/pull-predictor/internal/metrics"
	"github.com/xtding233/pull-predictor/internal/token"
)

// resultCache memoizes engine results keyed by banner config and token.
// Preset reloads purge it.
type resultCache struct {
	lru *expirable.LRU[string, gacha.ComputationResult]
}

func newResultCache(size int, ttl time.Duration) *resultCache {
	return &resultCache{lru: expirable.NewLRU[string, gacha.ComputationResult](size, nil, ttl)}
}

func cacheKey(cfg gacha.BannerConfig, tok token.Token) string {
	return fmt.Sprintf("%d|%s|%d|%d|%d|%d|%d|%d",
		cfg.Pulls, cfg.Mode, cfg.PoolSR, cfg.PoolSSR, tok.PerDraw, tok.PerTenDraw, tok.PerNDraw, tok.N)
}

// compute returns a cached result or runs the engine and stores it.
func (c *resultCache) compute(cfg gacha.BannerConfig, tok token.Token) (gacha.ComputationResult, bool, error) {
	key := cacheKey(cfg, tok)
	if res, ok := c.lru.Get(key); ok {
		metrics.CacheLookups.WithLabelValues("hit").Inc()
		return res, true, nil
	}
	metrics.CacheLookups.WithLabelValues("miss").Inc()

	start := time.Now()
	res, err := gacha.ComputeWithToken(cfg, tok)
	if err != nil {
		return gacha.ComputationResult{}, false, err
	}
	metrics.ComputationDuration.Observe(time.Since(start).Seconds())
	metrics.ComputationsTotal.WithLabelValues(string(cfg.Mode)).Inc()

	c.lru.Add(key, res)
	return res, false, nil
}

func (c *resultCache) purge() { c.lru.Purge() }
