package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/jask/folio/internal/scrollspy"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Layout   LayoutConfig   `mapstructure:"layout"`
	Spy      SpyConfig      `mapstructure:"spy"`
	Nav      NavConfig      `mapstructure:"nav"`
	Sections SectionsConfig `mapstructure:"sections"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig holds the log file settings. The TUI owns stdout, so logs go to a file.
type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"`
}

// LayoutConfig maps the terminal onto virtual pixels.
type LayoutConfig struct {
	RowPx           float64 `mapstructure:"row_px"`
	NavMode         string  `mapstructure:"nav_mode"`
	NavMarginPx     float64 `mapstructure:"nav_margin_px"`
	DefaultOffsetPx float64 `mapstructure:"default_offset_px"`
	FrameMs         int     `mapstructure:"frame_ms"`
}

// SpyConfig holds the scoring constants.
type SpyConfig struct {
	VisibilityWeight float64 `mapstructure:"visibility_weight"`
	CenterWeight     float64 `mapstructure:"center_weight"`
	Threshold        float64 `mapstructure:"threshold"`
	StickyThreshold  float64 `mapstructure:"sticky_threshold"`
	HeaderZoneRatio  float64 `mapstructure:"header_zone_ratio"`
}

// NavConfig holds the scroll-duration model and timer settings.
type NavConfig struct {
	PxPerMs        float64 `mapstructure:"px_per_ms"`
	MinDurationMs  int     `mapstructure:"min_duration_ms"`
	MaxDurationMs  int     `mapstructure:"max_duration_ms"`
	SafetyMarginMs int     `mapstructure:"safety_margin_ms"`
	SettleMs       int     `mapstructure:"settle_ms"`
	ArrivePx       float64 `mapstructure:"arrive_px"`
}

// SectionsConfig is the ordered catalog and its sticky subset.
type SectionsConfig struct {
	Catalog []string `mapstructure:"catalog"`
	Sticky  []string `mapstructure:"sticky"`
}

func defaultPath(elem ...string) string {
	return filepath.Join(append([]string{os.Getenv("HOME")}, elem...)...)
}

func setDefaults(v *viper.Viper) {
	t := scrollspy.DefaultTuning()
	var catalog, sticky []string
	for _, s := range scrollspy.DefaultSections() {
		catalog = append(catalog, string(s.ID))
		if s.Sticky {
			sticky = append(sticky, string(s.ID))
		}
	}

	v.SetDefault("database.path", defaultPath(".local", "share", "folio", "folio.db"))
	v.SetDefault("log.path", defaultPath(".local", "state", "folio", "folio.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("layout.row_px", 16.0)
	v.SetDefault("layout.nav_mode", string(scrollspy.NavSticky))
	v.SetDefault("layout.nav_margin_px", 20.0)
	v.SetDefault("layout.default_offset_px", 80.0)
	v.SetDefault("layout.frame_ms", 16)
	v.SetDefault("spy.visibility_weight", t.VisibilityWeight)
	v.SetDefault("spy.center_weight", t.CenterWeight)
	v.SetDefault("spy.threshold", t.Threshold)
	v.SetDefault("spy.sticky_threshold", t.StickyThreshold)
	v.SetDefault("spy.header_zone_ratio", t.HeaderZoneRatio)
	v.SetDefault("nav.px_per_ms", t.PxPerMs)
	v.SetDefault("nav.min_duration_ms", int(t.MinDuration/time.Millisecond))
	v.SetDefault("nav.max_duration_ms", int(t.MaxDuration/time.Millisecond))
	v.SetDefault("nav.safety_margin_ms", int(t.SafetyMargin/time.Millisecond))
	v.SetDefault("nav.settle_ms", int(t.SettleDelay/time.Millisecond))
	v.SetDefault("nav.arrive_px", t.ArriveEpsilon)
	v.SetDefault("sections.catalog", catalog)
	v.SetDefault("sections.sticky", sticky)
}

// Load reads configuration from file and env. Env var overrides use prefix FOLIO_.
// An explicit path wins over FOLIO_CONFIG, which wins over ~/.config/folio/config.toml.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	if path == "" {
		path = os.Getenv("FOLIO_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(defaultPath(".config", "folio"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("FOLIO")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// A missing default file is fine; a broken or missing explicit one is not.
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks cross-field constraints.
func (c Config) Validate() error {
	if c.Layout.RowPx <= 0 {
		return fmt.Errorf("config: layout.row_px must be positive, got %v", c.Layout.RowPx)
	}
	if c.Layout.FrameMs <= 0 {
		return fmt.Errorf("config: layout.frame_ms must be positive, got %d", c.Layout.FrameMs)
	}
	if _, err := scrollspy.ParseNavMode(c.Layout.NavMode); err != nil {
		return fmt.Errorf("config: layout.nav_mode: %w", err)
	}
	if _, err := c.Catalog(); err != nil {
		return fmt.Errorf("config: sections: %w", err)
	}
	if err := c.Tuning().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Catalog builds the section catalog, flagging the sticky subset.
func (c Config) Catalog() (*scrollspy.Catalog, error) {
	sticky := make(map[string]bool, len(c.Sections.Sticky))
	for _, id := range c.Sections.Sticky {
		sticky[strings.TrimSpace(id)] = true
	}
	sections := make([]scrollspy.Section, 0, len(c.Sections.Catalog))
	for _, id := range c.Sections.Catalog {
		id = strings.TrimSpace(id)
		sections = append(sections, scrollspy.Section{ID: scrollspy.SectionID(id), Sticky: sticky[id]})
		delete(sticky, id)
	}
	for id := range sticky {
		return nil, fmt.Errorf("sticky section %q is not in the catalog: %w", id, scrollspy.ErrUnknownSection)
	}
	return scrollspy.NewCatalog(sections)
}

// Tuning converts the spy and nav sections into engine constants.
func (c Config) Tuning() scrollspy.Tuning {
	ms := func(n int) time.Duration { return time.Duration(n) * time.Millisecond }
	return scrollspy.Tuning{
		VisibilityWeight: c.Spy.VisibilityWeight,
		CenterWeight:     c.Spy.CenterWeight,
		Threshold:        c.Spy.Threshold,
		StickyThreshold:  c.Spy.StickyThreshold,
		HeaderZoneRatio:  c.Spy.HeaderZoneRatio,
		PxPerMs:          c.Nav.PxPerMs,
		MinDuration:      ms(c.Nav.MinDurationMs),
		MaxDuration:      ms(c.Nav.MaxDurationMs),
		SafetyMargin:     ms(c.Nav.SafetyMarginMs),
		SettleDelay:      ms(c.Nav.SettleMs),
		ArriveEpsilon:    c.Nav.ArrivePx,
	}
}

// NavMode returns the parsed layout.nav_mode; Validate guarantees it parses.
func (c Config) NavMode() scrollspy.NavMode {
	m, _ := scrollspy.ParseNavMode(c.Layout.NavMode)
	return m
}

func (c Config) FrameInterval() time.Duration {
	return time.Duration(c.Layout.FrameMs) * time.Millisecond
}

// Save writes the provided config to disk, creating the config directory if needed.
// The viewer uses it to persist the nav mode toggle.
func Save(path string, cfg Config) error {
	if path == "" {
		path = os.Getenv("FOLIO_CONFIG")
	}
	if path == "" {
		path = defaultPath(".config", "folio", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)
	v.Set("layout.row_px", cfg.Layout.RowPx)
	v.Set("layout.nav_mode", cfg.Layout.NavMode)
	v.Set("layout.nav_margin_px", cfg.Layout.NavMarginPx)
	v.Set("layout.default_offset_px", cfg.Layout.DefaultOffsetPx)
	v.Set("layout.frame_ms", cfg.Layout.FrameMs)
	v.Set("spy.visibility_weight", cfg.Spy.VisibilityWeight)
	v.Set("spy.center_weight", cfg.Spy.CenterWeight)
	v.Set("spy.threshold", cfg.Spy.Threshold)
	v.Set("spy.sticky_threshold", cfg.Spy.StickyThreshold)
	v.Set("spy.header_zone_ratio", cfg.Spy.HeaderZoneRatio)
	v.Set("nav.px_per_ms", cfg.Nav.PxPerMs)
	v.Set("nav.min_duration_ms", cfg.Nav.MinDurationMs)
	v.Set("nav.max_duration_ms", cfg.Nav.MaxDurationMs)
	v.Set("nav.safety_margin_ms", cfg.Nav.SafetyMarginMs)
	v.Set("nav.settle_ms", cfg.Nav.SettleMs)
	v.Set("nav.arrive_px", cfg.Nav.ArrivePx)
	v.Set("sections.catalog", cfg.Sections.Catalog)
	v.Set("sections.sticky", cfg.Sections.Sticky)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
