package game

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/xtding233/pull-predictor/internal/pricing"
)

// Paths locates preset files under BaseDir.
type Paths struct {
	BaseDir string // e.g. /etc/pull-predictor
}

func (p Paths) DefaultPath() string {
	return filepath.Join(p.BaseDir, "games", "default.yaml")
}
func (p Paths) GamePath(game string) string {
	return filepath.Join(p.BaseDir, "games", game+".yaml")
}
func (p Paths) BannerPath(game, banner string) string {
	return filepath.Join(p.BaseDir, "games", game, "banners", banner+".yaml")
}

// Loader reads YAML presets and merges default → game → banner.
type Loader struct {
	paths Paths

	mu    sync.RWMutex
	cache map[string]RawConfig // key: "game" or "game/banner"
}

// NewLoader creates a preset loader rooted at baseDir.
func NewLoader(baseDir string) *Loader {
	return &Loader{
		paths: Paths{BaseDir: baseDir},
		cache: make(map[string]RawConfig),
	}
}

// Paths exposes the file layout, e.g. for a watcher.
func (l *Loader) Paths() Paths { return l.paths }

// LoadMerged loads and merges default → game → banner (banner optional).
// Missing game and banner files are not an error; a missing default is.
func (l *Loader) LoadMerged(game, banner string) (RawConfig, error) {
	if err := checkName(game); err != nil {
		return RawConfig{}, err
	}
	if banner != "" {
		if err := checkName(banner); err != nil {
			return RawConfig{}, err
		}
	}
	key := game
	if banner != "" {
		key = game + "/" + banner
	}

	l.mu.RLock()
	cfg, ok := l.cache[key]
	l.mu.RUnlock()
	if ok {
		return cfg, nil
	}

	defCfg, err := readYAML(l.paths.DefaultPath())
	if err != nil {
		return RawConfig{}, fmt.Errorf("read default: %w", err)
	}
	gameCfg, err := readYAML(l.paths.GamePath(game))
	if err != nil {
		return RawConfig{}, fmt.Errorf("read game %s: %w", game, err)
	}
	merged := mergeRaw(defCfg, gameCfg)
	if banner != "" {
		bannerCfg, err := readYAML(l.paths.BannerPath(game, banner))
		if err != nil {
			return RawConfig{}, fmt.Errorf("read banner %s/%s: %w", game, banner, err)
		}
		merged = mergeRaw(merged, bannerCfg)
	}
	if err := ValidateRaw(merged); err != nil {
		return RawConfig{}, fmt.Errorf("preset %s: %w", key, err)
	}

	l.mu.Lock()
	l.cache[key] = merged
	l.mu.Unlock()
	return merged, nil
}

// Games lists the game presets found on disk.
func (l *Loader) Games() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(l.paths.BaseDir, "games"))
	if err != nil {
		return nil, err
	}
	var games []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != ".yaml" || name == "default.yaml" {
			continue
		}
		games = append(games, strings.TrimSuffix(name, ".yaml"))
	}
	sort.Strings(games)
	return games, nil
}

// Invalidate clears the loader cache. Call after the watcher sees a change.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[string]RawConfig)
}

var ErrBadName = errors.New("invalid preset name")

// checkName keeps preset names inside BaseDir.
func checkName(name string) error {
	if name == "" || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return fmt.Errorf("%w: %q", ErrBadName, name)
	}
	return nil
}

// readYAML loads one layer. Missing files return a zero config, no error.
func readYAML(path string) (RawConfig, error) {
	var cfg RawConfig
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return RawConfig{}, nil
		}
		return RawConfig{}, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return RawConfig{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// mergeRaw overlays b on a: set fields in b win. A catalog in b replaces
// the whole catalog of a.
func mergeRaw(a, b RawConfig) RawConfig {
	out := a

	if b.Version != "" {
		out.Version = b.Version
	}
	if b.Notes != "" {
		out.Notes = b.Notes
	}

	if b.Banner != nil {
		c := BannerConfig{}
		if out.Banner != nil {
			c = *out.Banner
		}
		if b.Banner.Name != "" {
			c.Name = b.Banner.Name
		}
		if b.Banner.Mode != "" {
			c.Mode = b.Banner.Mode
		}
		if b.Banner.PoolSR != nil {
			c.PoolSR = b.Banner.PoolSR
		}
		if b.Banner.PoolSSR != nil {
			c.PoolSSR = b.Banner.PoolSSR
		}
		out.Banner = &c
	}

	if b.Tokens != nil {
		c := TokenConfig{}
		if out.Tokens != nil {
			c = *out.Tokens
		}
		if b.Tokens.Name != "" {
			c.Name = b.Tokens.Name
		}
		if b.Tokens.PerDraw != nil {
			c.PerDraw = b.Tokens.PerDraw
		}
		if b.Tokens.PerTenDraw != nil {
			c.PerTenDraw = b.Tokens.PerTenDraw
		}
		if b.Tokens.PerNDraw != nil {
			c.PerNDraw = b.Tokens.PerNDraw
		}
		if b.Tokens.N != nil {
			c.N = b.Tokens.N
		}
		out.Tokens = &c
	}

	if b.Catalog != nil {
		c := *b.Catalog
		c.Packs = append([]pricing.Pack(nil), b.Catalog.Packs...)
		out.Catalog = &c
	}
	return out
}
