package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-vault2html/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxTitleLength = 200
	MaxLangLength  = 35 // BCP 47 tags are short; "zh-Hant-TW" fits easily
	MaxPathLength  = 4096
	MaxStyleLength = 50
	MaxWorkers     = 256
)

// Default values.
const (
	DefaultSiteTitle      = "Study Notes"
	DefaultLang           = "en"
	DefaultRootDocument   = "MAIN.md"
	DefaultAttachmentsDir = "attachments"
	DefaultDrawingsDir    = "Excalidraw"
	DefaultOutputDir      = "dist"
	DefaultStylesheet     = "styles.css"
	DefaultHighlight      = "github"
)

// AppName names the per-user config directory.
const AppName = "go-vault2html"

// Config holds all configuration for a site build.
type Config struct {
	Site   SiteConfig   `yaml:"site"`
	Vault  VaultConfig  `yaml:"vault"`
	Output OutputConfig `yaml:"output"`
	Style  StyleConfig  `yaml:"style"`
	Assets AssetsConfig `yaml:"assets"`
	Render RenderConfig `yaml:"render"`
}

// SiteConfig defines page-level metadata.
type SiteConfig struct {
	Title string `yaml:"title"`
	Lang  string `yaml:"lang"` // html lang attribute
}

// VaultConfig defines where content is read from, relative to the vault root.
type VaultConfig struct {
	RootDocument   string `yaml:"rootDocument"`
	AttachmentsDir string `yaml:"attachmentsDir"`
	DrawingsDir    string `yaml:"drawingsDir"`
}

// OutputConfig defines the output destination.
type OutputConfig struct {
	Dir string `yaml:"dir"` // Used when no output directory argument is given
}

// StyleConfig defines page styling.
type StyleConfig struct {
	Stylesheet string `yaml:"stylesheet"` // Copied next to index.html; missing = built-in stylesheet
	Highlight  string `yaml:"highlight"`  // chroma style for fenced code
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// RenderConfig defines how section bodies are rendered.
type RenderConfig struct {
	Workers   int   `yaml:"workers"`   // 0 = one per CPU
	LazyMedia *bool `yaml:"lazyMedia"` // nil = enabled
}

// LazyMediaEnabled reports whether media decoration is on.
func (r RenderConfig) LazyMediaEnabled() bool {
	return r.LazyMedia == nil || *r.LazyMedia
}

// Validate checks field values and lengths.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"site.title", c.Site.Title, MaxTitleLength},
		{"site.lang", c.Site.Lang, MaxLangLength},
		{"vault.rootDocument", c.Vault.RootDocument, MaxPathLength},
		{"vault.attachmentsDir", c.Vault.AttachmentsDir, MaxPathLength},
		{"vault.drawingsDir", c.Vault.DrawingsDir, MaxPathLength},
		{"output.dir", c.Output.Dir, MaxPathLength},
		{"style.stylesheet", c.Style.Stylesheet, MaxPathLength},
		{"style.highlight", c.Style.Highlight, MaxStyleLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	for name, dir := range map[string]string{
		"vault.attachmentsDir": c.Vault.AttachmentsDir,
		"vault.drawingsDir":    c.Vault.DrawingsDir,
	} {
		if err := validateVaultDir(name, dir); err != nil {
			return err
		}
	}

	if c.Site.Lang != "" && strings.ContainsAny(c.Site.Lang, " \t\"<>") {
		return fmt.Errorf("%w: site.lang %q", ErrInvalidValue, c.Site.Lang)
	}
	if c.Render.Workers < 0 || c.Render.Workers > MaxWorkers {
		return fmt.Errorf("%w: render.workers must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Render.Workers)
	}

	return nil
}

// validateVaultDir rejects media directories that escape the vault root.
// Empty means the default.
func validateVaultDir(name, dir string) error {
	if dir == "" {
		return nil
	}
	clean := filepath.ToSlash(filepath.Clean(dir))
	if filepath.IsAbs(dir) || clean == ".." || strings.HasPrefix(clean, "../") {
		return fmt.Errorf("%w: %s must be inside the vault, got %q", ErrInvalidValue, name, dir)
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Site: SiteConfig{Title: DefaultSiteTitle, Lang: DefaultLang},
		Vault: VaultConfig{
			RootDocument:   DefaultRootDocument,
			AttachmentsDir: DefaultAttachmentsDir,
			DrawingsDir:    DefaultDrawingsDir,
		},
		Output: OutputConfig{Dir: DefaultOutputDir},
		Style:  StyleConfig{Stylesheet: DefaultStylesheet, Highlight: DefaultHighlight},
		Assets: AssetsConfig{BasePath: ""},
		Render: RenderConfig{Workers: 0},
	}
}

// WithDefaults returns a copy of c where every empty field takes its
// default value.
func (c *Config) WithDefaults() *Config {
	d := DefaultConfig()
	out := *c
	setDefault(&out.Site.Title, d.Site.Title)
	setDefault(&out.Site.Lang, d.Site.Lang)
	setDefault(&out.Vault.RootDocument, d.Vault.RootDocument)
	setDefault(&out.Vault.AttachmentsDir, d.Vault.AttachmentsDir)
	setDefault(&out.Vault.DrawingsDir, d.Vault.DrawingsDir)
	setDefault(&out.Output.Dir, d.Output.Dir)
	setDefault(&out.Style.Stylesheet, d.Style.Stylesheet)
	setDefault(&out.Style.Highlight, d.Style.Highlight)
	return &out
}

func setDefault(field *string, value string) {
	if *field == "" {
		*field = value
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
// Fields absent from the file take their default values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg.WithDefaults(), nil
}

// Dump encodes the configuration as YAML.
func (c *Config) Dump() ([]byte, error) {
	return yamlutil.Marshal(c)
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// SearchPaths lists the files tried for a config name, in order:
// ./NAME.yaml, ./NAME.yml, then the same names under the user config
// directory (~/.config/go-vault2html/ on Linux).
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, AppName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file of SearchPaths(name).
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
