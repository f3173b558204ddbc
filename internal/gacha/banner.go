package gacha

import (
	"errors"
	"fmt"
	"strings"
)

// Fixed game-mechanic parameters.
const (
	SRRateNormal  = 0.18 // SR rate on a normal pull
	SRRateSpecial = 0.97 // SR rate on every 10th pull
	SSRRate       = 0.03 // SSR rate on any pull

	SpecialPullInterval = 10
	PityThreshold       = 200
	PityTokenCost       = 150

	// front ends cap pulls here; the engine itself only requires Pulls >= 1
	MaxPulls = 10000

	DefaultPoolSR  = 33
	DefaultPoolSSR = 45
)

var (
	ErrInvalidPulls = errors.New("invalid pulls; must be >= 1")
	ErrInvalidMode  = errors.New("invalid banner mode")
)

// BannerMode selects which cards the banner promotes.
type BannerMode string

const (
	// Two promoted SSR cards, no promoted SR.
	DualPromoSSR BannerMode = "dual_promo_ssr"
	// One promoted SSR card plus one promoted SR card.
	PromoSSRAndPromoSR BannerMode = "promo_ssr_and_promo_sr"
)

var modeAliases = map[string]BannerMode{
	string(DualPromoSSR):       DualPromoSSR,
	string(PromoSSRAndPromoSR): PromoSSRAndPromoSR,
	"dual":                     DualPromoSSR,
	"promo_sr":                 PromoSSRAndPromoSR,
	"2 promo ssrs":             DualPromoSSR,
	"1 promo ssr + 1 promo sr": PromoSSRAndPromoSR,
}

// ParseBannerMode accepts the canonical names, the short aliases "dual" and
// "promo_sr", and the banner picker labels ("2 Promo SSRs", "1 Promo SSR + 1 Promo SR").
func ParseBannerMode(s string) (BannerMode, error) {
	if m, ok := modeAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

// HasPromoSR reports whether the banner carries a promoted SR card.
func (m BannerMode) HasPromoSR() bool { return m == PromoSSRAndPromoSR }

func (m BannerMode) Valid() bool {
	return m == DualPromoSSR || m == PromoSSRAndPromoSR
}

// BannerConfig is the full input of one computation.
// Pool sizes count every card of the tier, promoted ones included.
type BannerConfig struct {
	Pulls   int        `json:"pulls"`
	Mode    BannerMode `json:"mode"`
	PoolSR  int        `json:"pool_sr"`
	PoolSSR int        `json:"pool_ssr"`
}

// Validate checks the pull count and mode. Pool sizes are left to the caller.
func (c BannerConfig) Validate() error {
	if c.Pulls < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidPulls, c.Pulls)
	}
	if !c.Mode.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidMode, c.Mode)
	}
	return nil
}
