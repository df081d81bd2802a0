// Package config holds the settings of a vacancystats run.
//
// Values are layered: DefaultConfig, then the YAML file (if any), then the
// environment (including a .env file in the working directory), then command
// line flags applied by the caller.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/fr4nk3nst1ner/vacancystats/internal/report"
	"github.com/fr4nk3nst1ner/vacancystats/internal/scraper"
	"github.com/fr4nk3nst1ner/vacancystats/internal/ui"
)

// Source keys accepted in Sources
const (
	SourceHeadHunter = "hh"
	SourceSuperJob   = "sj"
)

// AppName is used for the XDG config directory.
const AppName = "vacancystats"

// DefaultLanguages are the keywords searched when none are configured.
var DefaultLanguages = []string{
	"JavaScript",
	"Java",
	"Python",
	"Ruby",
	"PHP",
	"C++",
	"CSS",
	"C#",
}

// Config holds all options of a run.
type Config struct {
	Languages []string      `yaml:"languages"`
	Sources   []string      `yaml:"sources"`
	Timeout   time.Duration `yaml:"timeout"`
	ProxyURL  string        `yaml:"proxy"`
	LogLevel  string        `yaml:"log_level"`
	Format    string        `yaml:"format"`
	Colorize  bool          `yaml:"colorize"`
	Silence   bool          `yaml:"silence"`

	// MetricsFile, when set, receives the run's counters in prometheus
	// text format.
	MetricsFile string `yaml:"metrics_file"`

	HeadHunter HeadHunterConfig `yaml:"headhunter"`
	SuperJob   SuperJobConfig   `yaml:"superjob"`
}

// HeadHunterConfig configures the api.hh.ru source.
type HeadHunterConfig struct {
	BaseURL   string `yaml:"base_url"`
	Area      string `yaml:"area"`
	UserAgent string `yaml:"user_agent"`
	MaxPages  int    `yaml:"max_pages"`
}

// SuperJobConfig configures the api.superjob.ru source.
type SuperJobConfig struct {
	BaseURL string `yaml:"base_url"`
	Town    string `yaml:"town"`
	// APIKey is normally supplied through SJ_ID_KEY rather than the file.
	APIKey string `yaml:"api_key"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() *Config {
	return &Config{
		Languages: append([]string(nil), DefaultLanguages...),
		Sources:   []string{SourceSuperJob, SourceHeadHunter},
		Timeout:   30 * time.Second,
		LogLevel:  "info",
		Format:    report.FormatTable,
		Colorize:  true,
		HeadHunter: HeadHunterConfig{
			BaseURL:  scraper.HeadHunterBaseURL,
			MaxPages: scraper.HeadHunterMaxPages,
		},
		SuperJob: SuperJobConfig{
			BaseURL: scraper.SuperJobBaseURL,
			Town:    scraper.SuperJobDefaultTown,
		},
	}
}

// HasSource reports whether key is among the selected sources.
func (c *Config) HasSource(key string) bool {
	for _, s := range c.Sources {
		if strings.EqualFold(strings.TrimSpace(s), key) {
			return true
		}
	}
	return false
}

// Validate ensures all configuration values are coherent.
func (c *Config) Validate() error {
	if len(c.Languages) == 0 {
		return fmt.Errorf("at least one language is required")
	}
	for _, lang := range c.Languages {
		if strings.TrimSpace(lang) == "" {
			return fmt.Errorf("language keywords cannot be empty")
		}
	}

	if len(c.Sources) == 0 {
		return fmt.Errorf("at least one source is required")
	}
	seen := make(map[string]bool, len(c.Sources))
	for _, s := range c.Sources {
		key := strings.ToLower(strings.TrimSpace(s))
		switch key {
		case SourceHeadHunter, SourceSuperJob:
		default:
			return fmt.Errorf("unknown source %q (want %s or %s)", s, SourceHeadHunter, SourceSuperJob)
		}
		if seen[key] {
			return fmt.Errorf("duplicate source %q", s)
		}
		seen[key] = true
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.ProxyURL != "" {
		if u, err := url.Parse(c.ProxyURL); err != nil || u.Host == "" {
			return fmt.Errorf("invalid proxy URL %q", c.ProxyURL)
		}
	}
	if _, err := ui.ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	if !report.ValidFormat(c.Format) {
		return fmt.Errorf("output format must be %s or %s", report.FormatTable, report.FormatMarkdown)
	}

	if c.HasSource(SourceHeadHunter) {
		if err := validBaseURL("headhunter", c.HeadHunter.BaseURL); err != nil {
			return err
		}
		if strings.TrimSpace(c.HeadHunter.Area) == "" {
			return fmt.Errorf("headhunter area is required")
		}
		if c.HeadHunter.MaxPages <= 0 {
			return fmt.Errorf("headhunter max pages must be positive")
		}
	}

	if c.HasSource(SourceSuperJob) {
		if err := validBaseURL("superjob", c.SuperJob.BaseURL); err != nil {
			return err
		}
		if c.SuperJob.APIKey == "" {
			return fmt.Errorf("superjob API key is required (set %s)", EnvSuperJobKey)
		}
	}

	return nil
}

func validBaseURL(name, raw string) error {
	if raw == "" {
		return fmt.Errorf("%s base URL cannot be empty", name)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid %s base URL: %w", name, err)
	}
	if u.Host == "" {
		return fmt.Errorf("%s base URL must include a host", name)
	}
	return nil
}
