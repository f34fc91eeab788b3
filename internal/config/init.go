package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/autosite/internal/foundation/errors"
)

// Example returns the configuration written by Init.
func Example() Config {
	return Config{
		Title:    "My Site",
		BaseURL:  "https://example.com/",
		Homepage: DefaultHomepage,
		Pages: []Page{
			{Path: "content/about.md", Title: "About"},
			{Path: "content/blog", Title: "Blog"},
			{Path: "https://github.com/example", Title: "GitHub"},
		},
		Theme: ThemeConfig{
			FontFamily:    DefaultFontFamily,
			PrimaryColor:  DefaultPrimaryColor,
			ContrastColor: DefaultContrastColor,
		},
		Build: BuildConfig{
			PaginateBy: DefaultPaginateBy,
			AssetsDir:  DefaultAssetsDir,
			Order:      OrderByName,
		},
	}
}

// Init creates a new configuration file with example content.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.ValidationError("configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath).Build()
	}

	example := Example()
	data, err := yaml.Marshal(&example)
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to marshal config").Fatal().Build()
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write config file").
			Fatal().WithContext("path", configPath).Build()
	}
	return nil
}
