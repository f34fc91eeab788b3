package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/autosite/internal/foundation/errors"
)

// Config is the site configuration. One file describes the site pages, the
// theme, build options and the legacy list entries.
type Config struct {
	Title    string      `yaml:"title"`
	BaseURL  string      `yaml:"base_url"`
	Homepage string      `yaml:"homepage"`
	Pages    []Page      `yaml:"pages"`
	Theme    ThemeConfig `yaml:"theme"`
	Build    BuildConfig `yaml:"build"`
	Entries  []Entry     `yaml:"entries,omitempty"`
}

// Page declares one navigation item: a Markdown file, a directory of Markdown
// files, or an absolute http(s) URL.
type Page struct {
	Path  string `yaml:"path"`
	Title string `yaml:"title,omitempty"`
}

// ThemeConfig holds the values substituted into the generated stylesheet.
type ThemeConfig struct {
	FontFamily    string `yaml:"font_family"`
	PrimaryColor  string `yaml:"primary_color"`
	ContrastColor string `yaml:"contrast_color"`
}

// BuildConfig holds generation options.
type BuildConfig struct {
	PaginateBy  int       `yaml:"paginate_by"`
	AssetsDir   string    `yaml:"assets_dir"`
	Order       OrderMode `yaml:"order"`
	CheckLinks  bool      `yaml:"check_links"`
	MetricsFile string    `yaml:"metrics_file,omitempty"`
	Manifest    bool      `yaml:"manifest"`
}

// Entry is a legacy per-page setting: a source file with a "###" header block
// rendered through its own template and appended to a JSON list file.
type Entry struct {
	Source   string `yaml:"source"`
	Template string `yaml:"template"`
	Output   string `yaml:"output"`
	List     string `yaml:"list"`
}

// Load reads, expands, decodes, defaults and validates the configuration file.
func Load(configPath string) (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, err
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, errors.ConfigError("configuration file not found").
			WithContext("path", configPath).Build()
	}

	// #nosec G304 -- the config path is chosen by the operator.
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read config file").
			Fatal().WithContext("path", configPath).Build()
	}

	return Parse(data)
}

// Parse decodes YAML configuration after expanding ${VAR} references.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "invalid YAML in configuration file").
			Fatal().Build()
	}

	if err := applyDefaults(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
