// resolve.go
package game

import (
	"fmt"

	"github.com/xtding233/pull-predictor/internal/gacha"
	"github.com/xtding233/pull-predictor/internal/pricing"
	"github.com/xtding233/pull-predictor/internal/token"
)

// Overrides carries caller-supplied values that beat every preset layer.
type Overrides struct {
	Mode    *string
	PoolSR  *int
	PoolSSR *int
}

// Resolved is a preset turned into engine inputs. Config.Pulls is left
// for the caller.
type Resolved struct {
	Game    string
	Banner  string
	Config  gacha.BannerConfig
	Token   token.Token
	Catalog *pricing.Catalog
	Version string // effective preset version for tracing
}

type Resolver interface {
	Resolve(game, banner string, o Overrides) (Resolved, error)
}

var _ Resolver = (*Loader)(nil)

// Resolve merges default → game → banner → overrides. Unset pools fall back
// to gacha.DefaultPoolSR / gacha.DefaultPoolSSR and an unset mode to
// DualPromoSSR.
func (l *Loader) Resolve(game, banner string, o Overrides) (Resolved, error) {
	raw, err := l.LoadMerged(game, banner)
	if err != nil {
		return Resolved{}, err
	}
	return resolveRaw(raw, game, banner, o)
}

// ResolveDefaults resolves overrides against built-in defaults only.
func ResolveDefaults(o Overrides) (Resolved, error) {
	return resolveRaw(RawConfig{}, "", "", o)
}

func resolveRaw(raw RawConfig, game, banner string, o Overrides) (Resolved, error) {
	res := Resolved{
		Game:    game,
		Banner:  banner,
		Config:  gacha.BannerConfig{Mode: gacha.DualPromoSSR, PoolSR: gacha.DefaultPoolSR, PoolSSR: gacha.DefaultPoolSSR},
		Token:   token.Default(),
		Catalog: raw.Catalog,
		Version: raw.Version,
	}

	mode := ""
	if raw.Banner != nil {
		mode = raw.Banner.Mode
		if raw.Banner.PoolSR != nil {
			res.Config.PoolSR = *raw.Banner.PoolSR
		}
		if raw.Banner.PoolSSR != nil {
			res.Config.PoolSSR = *raw.Banner.PoolSSR
		}
	}
	if o.Mode != nil {
		mode = *o.Mode
	}
	if mode != "" {
		m, err := gacha.ParseBannerMode(mode)
		if err != nil {
			return Resolved{}, fmt.Errorf("resolve mode: %w", err)
		}
		res.Config.Mode = m
	}
	if o.PoolSR != nil {
		res.Config.PoolSR = *o.PoolSR
	}
	if o.PoolSSR != nil {
		res.Config.PoolSSR = *o.PoolSSR
	}

	if raw.Tokens != nil {
		if raw.Tokens.Name != "" {
			res.Token.Name = raw.Tokens.Name
		}
		if raw.Tokens.PerDraw != nil {
			res.Token.PerDraw = *raw.Tokens.PerDraw
		}
		if raw.Tokens.PerTenDraw != nil {
			res.Token.PerTenDraw = *raw.Tokens.PerTenDraw
		}
		if raw.Tokens.PerNDraw != nil {
			res.Token.PerNDraw = *raw.Tokens.PerNDraw
		}
		if raw.Tokens.N != nil {
			res.Token.N = *raw.Tokens.N
		}
	}
	return res, nil
}
