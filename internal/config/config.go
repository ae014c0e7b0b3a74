// Package config loads and validates the YAML site configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-md2site/internal/fileutil"
	"github.com/alnah/go-md2site/internal/pipeline"
	"github.com/alnah/go-md2site/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field limits.
const (
	MaxPathLength     = 4096
	MaxNameLength     = 100
	MaxBasePathLength = 256
	MaxWorkers        = 32
)

// Defaults for a site laid out like the classic content/static/public tree.
const (
	DefaultContentDir   = "./content"
	DefaultStaticDir    = "./static"
	DefaultOutputDir    = "./public"
	DefaultTemplatePath = "./template.html"
	DefaultPDFTimeout   = 30 * time.Second
)

// DefaultConfigName is looked up when no --config flag is given.
const DefaultConfigName = "site"

// Config holds all configuration for a site build.
type Config struct {
	Content  DirConfig      `yaml:"content"`
	Static   DirConfig      `yaml:"static"`
	Output   DirConfig      `yaml:"output"`
	Template TemplateConfig `yaml:"template"`
	Style    StyleConfig    `yaml:"style"`
	Render   RenderConfig   `yaml:"render"`
	Build    BuildConfig    `yaml:"build"`
	PDF      PDFConfig      `yaml:"pdf"`
	Assets   AssetsConfig   `yaml:"assets"`
}

// DirConfig names a directory of the site tree.
type DirConfig struct {
	Dir string `yaml:"dir"`
}

// TemplateConfig selects the page template.
type TemplateConfig struct {
	Path string `yaml:"path"` // file path, or name of a built-in/asset template
}

// StyleConfig selects the stylesheet injected into every page.
type StyleConfig struct {
	Name string `yaml:"name"` // empty = no stylesheet
}

// RenderConfig controls Markdown rendering.
type RenderConfig struct {
	Engine   string `yaml:"engine"`   // "native" (default) or "commonmark"
	BasePath string `yaml:"basePath"` // prefix for root-relative URLs, e.g. "/blog"
}

// BuildConfig controls build concurrency.
type BuildConfig struct {
	Workers int `yaml:"workers"` // 0 = auto
}

// PDFConfig controls PDF export of generated pages.
type PDFConfig struct {
	Enabled bool   `yaml:"enabled"`
	Timeout string `yaml:"timeout"` // Go duration, e.g. "45s"
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // empty = embedded assets only
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Content:  DirConfig{Dir: DefaultContentDir},
		Static:   DirConfig{Dir: DefaultStaticDir},
		Output:   DirConfig{Dir: DefaultOutputDir},
		Template: TemplateConfig{Path: DefaultTemplatePath},
		Render:   RenderConfig{Engine: pipeline.EngineNative},
	}
}

// Validate checks values and field lengths.
// Called by LoadConfig; the CLI calls it again after applying flag overrides.
func (c *Config) Validate() error {
	for _, f := range []struct {
		name  string
		value string
		max   int
	}{
		{"content.dir", c.Content.Dir, MaxPathLength},
		{"static.dir", c.Static.Dir, MaxPathLength},
		{"output.dir", c.Output.Dir, MaxPathLength},
		{"template.path", c.Template.Path, MaxPathLength},
		{"style.name", c.Style.Name, MaxPathLength},
		{"render.basePath", c.Render.BasePath, MaxBasePathLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"pdf.timeout", c.PDF.Timeout, MaxNameLength},
	} {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	switch c.Render.Engine {
	case "", pipeline.EngineNative, pipeline.EngineCommonMark:
	default:
		return fmt.Errorf("%w: render.engine %q (must be %s or %s)",
			ErrInvalidValue, c.Render.Engine, pipeline.EngineNative, pipeline.EngineCommonMark)
	}

	if _, err := pipeline.NormalizeBasePath(c.Render.BasePath); err != nil {
		return fmt.Errorf("%w: render.basePath: %w", ErrInvalidValue, err)
	}

	if c.Build.Workers < 0 || c.Build.Workers > MaxWorkers {
		return fmt.Errorf("%w: build.workers must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Build.Workers)
	}

	if _, err := c.PDFTimeout(); err != nil {
		return err
	}

	return nil
}

// PDFTimeout parses pdf.timeout, returning DefaultPDFTimeout when unset.
func (c *Config) PDFTimeout() (time.Duration, error) {
	if c.PDF.Timeout == "" {
		return DefaultPDFTimeout, nil
	}
	d, err := time.ParseDuration(c.PDF.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: pdf.timeout %q: %v", ErrInvalidValue, c.PDF.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: pdf.timeout must be positive, got %s", ErrInvalidValue, d)
	}
	return d, nil
}

func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// A name is searched in the current directory, then in the user config
// directory under go-md2site/. Keys missing from the file keep their
// DefaultConfig values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
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

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Marshal encodes cfg as YAML, for writing a starter config file.
func (c *Config) Marshal() ([]byte, error) {
	return yamlutil.Marshal(c)
}

// SearchPaths returns the candidate files for a config name, in lookup order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "go-md2site", name+ext))
		}
	}

	return paths
}

func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
