package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/viper"
)

// FileName is the name of the configuration file looked up in the repository root.
const FileName = ".skillcheck.yaml"

// EnvPrefix prefixes environment overrides, e.g. SKILLCHECK_SKILLS_DIR.
const EnvPrefix = "SKILLCHECK"

// Config represents the full skillcheck configuration
type Config struct {
	Title    string         `mapstructure:"title" yaml:"title"`
	Skills   SkillsConfig   `mapstructure:"skills" yaml:"skills"`
	Report   ReportConfig   `mapstructure:"report" yaml:"report"`
	Badge    BadgeConfig    `mapstructure:"badge" yaml:"badge"`
	Timeouts TimeoutsConfig `mapstructure:"timeouts" yaml:"timeouts"`
}

// SkillsConfig selects the skill files to check
type SkillsConfig struct {
	Dir     string   `mapstructure:"dir" yaml:"dir"`
	Include string   `mapstructure:"include" yaml:"include"` // glob relative to Dir
	Exclude []string `mapstructure:"exclude" yaml:"exclude,omitempty"`
}

// ReportConfig contains paths of generated documents, relative to the repository root
type ReportConfig struct {
	Path           string `mapstructure:"path" yaml:"path"`
	ReadmeTemplate string `mapstructure:"readme_template" yaml:"readme_template"`
	ReadmePath     string `mapstructure:"readme_path" yaml:"readme_path"`
}

// BadgeConfig describes the shields.io badge embedded in generated documents
type BadgeConfig struct {
	Label      string `mapstructure:"label" yaml:"label"`
	Base       string `mapstructure:"base" yaml:"base"`
	Style      string `mapstructure:"style" yaml:"style"`
	Host       string `mapstructure:"host" yaml:"host"`
	Repository string `mapstructure:"repository" yaml:"repository,omitempty"` // skips the git remote lookup
}

// TimeoutsConfig contains duration strings such as "5s".
// Parsing is reserved; Execution bounds external commands.
type TimeoutsConfig struct {
	Parsing   string `mapstructure:"parsing" yaml:"parsing"`
	Execution string `mapstructure:"execution" yaml:"execution"`
}

// SetupEnv makes viper read SKILLCHECK_* variables, with "." in nested keys
// replaced by "_".
func SetupEnv() {
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

// registerKeys declares every key with its default. Unmarshal only consults
// the environment for keys viper already knows.
func registerKeys() {
	d := Default()
	viper.SetDefault("title", d.Title)
	viper.SetDefault("skills.dir", d.Skills.Dir)
	viper.SetDefault("skills.include", d.Skills.Include)
	viper.SetDefault("skills.exclude", []string{})
	viper.SetDefault("report.path", d.Report.Path)
	viper.SetDefault("report.readme_template", d.Report.ReadmeTemplate)
	viper.SetDefault("report.readme_path", d.Report.ReadmePath)
	viper.SetDefault("badge.label", d.Badge.Label)
	viper.SetDefault("badge.base", d.Badge.Base)
	viper.SetDefault("badge.style", d.Badge.Style)
	viper.SetDefault("badge.host", d.Badge.Host)
	viper.SetDefault("badge.repository", d.Badge.Repository)
	viper.SetDefault("timeouts.parsing", d.Timeouts.Parsing)
	viper.SetDefault("timeouts.execution", d.Timeouts.Execution)
}

// Load loads configuration from file and environment
func Load() (*Config, error) {
	registerKeys()
	cfg := &Config{}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// applyDefaults sets default values for unset fields
func applyDefaults(cfg *Config) {
	if cfg.Title == "" {
		cfg.Title = "Software engineering self assessment"
	}

	if cfg.Skills.Dir == "" {
		cfg.Skills.Dir = "Skills"
	}

	if cfg.Skills.Include == "" {
		cfg.Skills.Include = "*.md"
	}

	if cfg.Report.Path == "" {
		cfg.Report.Path = filepath.Join("Profile", "REPORT.md")
	}

	if cfg.Report.ReadmeTemplate == "" {
		cfg.Report.ReadmeTemplate = filepath.Join(".github", "src", "Templates", "README.md")
	}

	if cfg.Report.ReadmePath == "" {
		cfg.Report.ReadmePath = "README.md"
	}

	if cfg.Badge.Label == "" {
		cfg.Badge.Label = "Skills"
	}

	if cfg.Badge.Base == "" {
		cfg.Badge.Base = "https://img.shields.io/badge/Self_Assessment-skills-009933"
	}

	if cfg.Badge.Style == "" {
		cfg.Badge.Style = "flat-square"
	}

	if cfg.Badge.Host == "" {
		cfg.Badge.Host = "https://github.com"
	}

	if cfg.Timeouts.Parsing == "" {
		cfg.Timeouts.Parsing = "1s"
	}

	if cfg.Timeouts.Execution == "" {
		cfg.Timeouts.Execution = "5s"
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if filepath.IsAbs(c.Skills.Dir) {
		return fmt.Errorf("skills dir must be relative to the repository root: %s", c.Skills.Dir)
	}

	patterns := append([]string{c.Skills.Include}, c.Skills.Exclude...)
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid skills pattern: %q", pattern)
		}
	}

	if !strings.HasPrefix(c.Badge.Base, "http://") && !strings.HasPrefix(c.Badge.Base, "https://") {
		return fmt.Errorf("invalid badge base: %s (must be an http(s) URL)", c.Badge.Base)
	}

	if c.Badge.Repository != "" && strings.Count(c.Badge.Repository, "/") != 1 {
		return fmt.Errorf("invalid badge repository: %s (must be org/repo)", c.Badge.Repository)
	}

	if _, err := time.ParseDuration(c.Timeouts.Parsing); err != nil {
		return fmt.Errorf("invalid parsing timeout: %w", err)
	}

	if _, err := c.ExecutionTimeout(); err != nil {
		return err
	}

	return nil
}

// ExecutionTimeout returns the bound for external commands such as git.
func (c *Config) ExecutionTimeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.Timeouts.Execution)
	if err != nil {
		return 0, fmt.Errorf("invalid execution timeout: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid execution timeout: %s (must be positive)", c.Timeouts.Execution)
	}
	return d, nil
}
