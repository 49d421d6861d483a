package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "COCOS2MANTI"

// ErrInvalid is returned for configurations that cannot run.
var ErrInvalid = errors.New("config: invalid configuration")

type Config struct {
	// Root is scanned for asset dirs. Bundles go to <Root>/<ExportDir>/<name>.
	Root        string `yaml:"root" toml:"root" envconfig:"ROOT"`
	ExportDir   string `yaml:"export_dir" toml:"export_dir" envconfig:"EXPORT_DIR"`
	Workers     int    `yaml:"workers" toml:"workers" envconfig:"WORKERS"`
	Compression string `yaml:"compression" toml:"compression" envconfig:"COMPRESSION"`
	ShowStats   bool   `yaml:"show_stats" toml:"show_stats" envconfig:"SHOW_STATS"`

	Steps StepsConfig `yaml:"steps" toml:"steps" envconfig:"STEPS"`
	Tools ToolsConfig `yaml:"tools" toml:"tools" envconfig:"TOOLS"`
	Log   LogConfig   `yaml:"log" toml:"log" envconfig:"LOG"`

	BuildVersion string `yaml:"-" toml:"-" ignored:"true"`
}

// StepsConfig switches the optional pipeline steps.
type StepsConfig struct {
	Atlas     bool `yaml:"atlas" toml:"atlas" envconfig:"ATLAS"`
	WebP      bool `yaml:"webp" toml:"webp" envconfig:"WEBP"`
	Quantize  bool `yaml:"quantize" toml:"quantize" envconfig:"QUANTIZE"`
	Skeletons bool `yaml:"skeletons" toml:"skeletons" envconfig:"SKELETONS"`
	Particles bool `yaml:"particles" toml:"particles" envconfig:"PARTICLES"`
}

// ToolsConfig locates the external tools.
type ToolsConfig struct {
	TexturePacker string `yaml:"texture_packer" toml:"texture_packer" envconfig:"TEXTURE_PACKER"`
	CWebP         string `yaml:"cwebp" toml:"cwebp" envconfig:"CWEBP"`
	PNGQuant      string `yaml:"pngquant" toml:"pngquant" envconfig:"PNGQUANT"`
	Spine         string `yaml:"spine" toml:"spine" envconfig:"SPINE"`
	WebPQuality   int    `yaml:"webp_quality" toml:"webp_quality" envconfig:"WEBP_QUALITY"`
	PNGQuality    string `yaml:"png_quality" toml:"png_quality" envconfig:"PNG_QUALITY"`
}

type LogConfig struct {
	Level       string `yaml:"level" toml:"level" envconfig:"LEVEL"`
	Development bool   `yaml:"development" toml:"development" envconfig:"DEVELOPMENT"`
}

// Default returns the configuration used without a config file. Workers is
// left at zero, meaning one per logical CPU.
func Default() *Config {
	return &Config{
		Root:        ".",
		ExportDir:   "export",
		Compression: "none",
		Steps: StepsConfig{
			Atlas:     true,
			WebP:      true,
			Quantize:  true,
			Particles: true,
		},
		Tools: ToolsConfig{
			TexturePacker: "TexturePacker",
			CWebP:         "cwebp",
			PNGQuant:      "pngquant",
			Spine:         "Spine",
			WebPQuality:   85,
			PNGQuality:    "65-70",
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads path over the defaults and applies environment overrides. An
// empty path skips the file. The format follows the extension.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
	}
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("config: environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	case ".toml":
		err = toml.Unmarshal(data, c)
	default:
		return fmt.Errorf("%w: unsupported config format %q", ErrInvalid, ext)
	}
	if err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	return nil
}

// Validate reports the first setting that cannot work.
func (c *Config) Validate() error {
	if c.Root == "" {
		return fmt.Errorf("%w: root is empty", ErrInvalid)
	}
	if c.ExportDir == "" {
		return fmt.Errorf("%w: export dir is empty", ErrInvalid)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalid, c.Workers)
	}
	switch strings.ToLower(c.Compression) {
	case "", "none", "gzip", "zstd":
	default:
		return fmt.Errorf("%w: unknown compression %q", ErrInvalid, c.Compression)
	}
	if q := c.Tools.WebPQuality; q < 0 || q > 100 {
		return fmt.Errorf("%w: webp quality %d is outside 0-100", ErrInvalid, q)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalid, c.Log.Level)
	}
	return nil
}

// ExportPath is the directory bundles of the asset dir name are written to.
func (c *Config) ExportPath(name string) string {
	dir := c.ExportDir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(c.Root, dir)
	}
	return filepath.Join(dir, name)
}
