package config

import "strings"

// Default values applied when a field is absent from the configuration.
const (
	DefaultTitle         = "SiteGen"
	DefaultHomepage      = "content/home.md"
	DefaultFontFamily    = "var(--custom-font-family)"
	DefaultPrimaryColor  = "#667eea"
	DefaultContrastColor = "#764ba2"
	DefaultPaginateBy    = 10
	DefaultAssetsDir     = "assets"
)

// DefaultApplier applies defaults for a specific configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config) error
	Domain() string
}

// SiteDefaultApplier handles title, base URL and homepage defaults.
type SiteDefaultApplier struct{}

func (s *SiteDefaultApplier) Domain() string { return "site" }

func (s *SiteDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Title == "" {
		cfg.Title = DefaultTitle
	}
	if cfg.BaseURL != "" && !strings.HasSuffix(cfg.BaseURL, "/") {
		cfg.BaseURL += "/"
	}
	if cfg.Homepage == "" {
		cfg.Homepage = DefaultHomepage
	}
	return nil
}

// ThemeDefaultApplier fills unset theme values.
type ThemeDefaultApplier struct{}

func (t *ThemeDefaultApplier) Domain() string { return "theme" }

func (t *ThemeDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Theme.FontFamily == "" {
		cfg.Theme.FontFamily = DefaultFontFamily
	}
	if cfg.Theme.PrimaryColor == "" {
		cfg.Theme.PrimaryColor = DefaultPrimaryColor
	}
	if cfg.Theme.ContrastColor == "" {
		cfg.Theme.ContrastColor = DefaultContrastColor
	}
	return nil
}

// BuildDefaultApplier handles build option defaults.
type BuildDefaultApplier struct{}

func (b *BuildDefaultApplier) Domain() string { return "build" }

func (b *BuildDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Build.PaginateBy == 0 {
		cfg.Build.PaginateBy = DefaultPaginateBy
	}
	if cfg.Build.AssetsDir == "" {
		cfg.Build.AssetsDir = DefaultAssetsDir
	}
	if cfg.Build.Order == "" {
		cfg.Build.Order = OrderByName
	} else if m := NormalizeOrderMode(string(cfg.Build.Order)); m != "" {
		cfg.Build.Order = m
	}
	return nil
}

func defaultAppliers() []DefaultApplier {
	return []DefaultApplier{
		&SiteDefaultApplier{},
		&ThemeDefaultApplier{},
		&BuildDefaultApplier{},
	}
}

func applyDefaults(cfg *Config) error {
	for _, applier := range defaultAppliers() {
		if err := applier.ApplyDefaults(cfg); err != nil {
			return err
		}
	}
	return nil
}
