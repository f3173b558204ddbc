// types.go
package game

import "github.com/xtding233/pull-predictor/internal/pricing"

// RawConfig is one preset layer as read from YAML. Pointer fields stay nil
// when the layer does not set them.
type RawConfig struct {
	Version string           `yaml:"version"`
	Banner  *BannerConfig    `yaml:"banner,omitempty"`
	Tokens  *TokenConfig     `yaml:"tokens,omitempty"`
	Catalog *pricing.Catalog `yaml:"catalog,omitempty"`
	Notes   string           `yaml:"notes,omitempty"`
}

type BannerConfig struct {
	Name    string `yaml:"name,omitempty"`
	Mode    string `yaml:"mode,omitempty"` // "dual_promo_ssr" | "promo_ssr_and_promo_sr"
	PoolSR  *int   `yaml:"pool_sr,omitempty"`
	PoolSSR *int   `yaml:"pool_ssr,omitempty"`
}

type TokenConfig struct {
	Name       string `yaml:"name,omitempty"`
	PerDraw    *int   `yaml:"per_draw,omitempty"`
	PerTenDraw *int   `yaml:"per_ten_draw,omitempty"`
	PerNDraw   *int   `yaml:"per_n_draw,omitempty"`
	N          *int   `yaml:"n,omitempty"`
}
