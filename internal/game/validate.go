package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/xtding233/pull-predictor/internal/gacha"
)

var validate = validator.New()

// ValidateRaw checks semantic constraints of a merged preset.
func ValidateRaw(cfg RawConfig) error {
	var errs []string

	if cfg.Banner != nil {
		if cfg.Banner.Mode != "" {
			if _, err := gacha.ParseBannerMode(cfg.Banner.Mode); err != nil {
				errs = append(errs, "banner.mode must be one of: dual_promo_ssr, promo_ssr_and_promo_sr")
			}
		}
		if cfg.Banner.PoolSR != nil && *cfg.Banner.PoolSR < 0 {
			errs = append(errs, "banner.pool_sr must be >= 0")
		}
		if cfg.Banner.PoolSSR != nil && *cfg.Banner.PoolSSR < 0 {
			errs = append(errs, "banner.pool_ssr must be >= 0")
		}
	}

	if cfg.Tokens != nil {
		if cfg.Tokens.PerDraw != nil && *cfg.Tokens.PerDraw <= 0 {
			errs = append(errs, "tokens.per_draw must be >= 1")
		}
		if cfg.Tokens.PerTenDraw != nil && *cfg.Tokens.PerTenDraw < 0 {
			errs = append(errs, "tokens.per_ten_draw must be >= 0")
		}
		if cfg.Tokens.PerNDraw != nil && *cfg.Tokens.PerNDraw < 0 {
			errs = append(errs, "tokens.per_n_draw must be >= 0")
		}
		if cfg.Tokens.PerNDraw != nil && *cfg.Tokens.PerNDraw > 0 && (cfg.Tokens.N == nil || *cfg.Tokens.N < 2) {
			errs = append(errs, "tokens.n must be >= 2 when tokens.per_n_draw is set")
		}
	}

	if cfg.Catalog != nil {
		if err := validate.Struct(cfg.Catalog); err != nil {
			var verrs validator.ValidationErrors
			if !errors.As(err, &verrs) {
				return err
			}
			for _, fe := range verrs {
				errs = append(errs, fmt.Sprintf("catalog: %s failed %q", fe.Namespace(), fe.Tag()))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
