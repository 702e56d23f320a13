package types

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/iamLiquidX/SearchX/search"
)

// DefaultConfigPath is used when neither --config nor SEARCHX_CONFIG is set.
const DefaultConfigPath = "searchx.yaml"

var (
	// ErrNoRoots is returned when the config names no search roots.
	ErrNoRoots = errors.New("no search roots configured")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// DriveConfig selects how Drive credentials are obtained. With both files
// set an installed-app client and its saved token are used, otherwise
// Application Default Credentials.
type DriveConfig struct {
	CredentialsFile string `yaml:"credentials_file,omitempty"`
	TokenFile       string `yaml:"token_file,omitempty"`
}

// TelegraphConfig configures the page publisher.
type TelegraphConfig struct {
	AccessToken string `yaml:"access_token,omitempty"`
	ShortName   string `yaml:"short_name,omitempty"`
	AuthorName  string `yaml:"author_name,omitempty"`
	AuthorURL   string `yaml:"author_url,omitempty"`
	BaseURL     string `yaml:"base_url,omitempty"`
}

// SlackConfig configures optional reply delivery to Slack.
type SlackConfig struct {
	Channel string `yaml:"channel,omitempty"`
}

// Config is the SearchX configuration file.
type Config struct {
	Roots []search.Root `yaml:"roots,omitempty"`

	// Legacy form: three parallel lists, one entry per root.
	DriveIDs   []string `yaml:"drive_ids,omitempty"`
	DriveNames []string `yaml:"drive_names,omitempty"`
	IndexURLs  []string `yaml:"index_urls,omitempty"`

	PageSize     int                  `yaml:"page_size,omitempty"`
	MaxResults   int                  `yaml:"max_results,omitempty"`
	MaxDepth     int                  `yaml:"max_depth,omitempty"`
	Match        search.MatchStrategy `yaml:"match,omitempty"`
	Presentation search.Presentation  `yaml:"presentation,omitempty"`
	Timeout      time.Duration        `yaml:"timeout,omitempty"`
	CallTimeout  time.Duration        `yaml:"call_timeout,omitempty"`
	LogLevel     string               `yaml:"log_level,omitempty"`

	Drive     DriveConfig     `yaml:"drive,omitempty"`
	Telegraph TelegraphConfig `yaml:"telegraph,omitempty"`
	Slack     SlackConfig     `yaml:"slack,omitempty"`
}

// ConfigPath returns flagPath, then $SEARCHX_CONFIG, then DefaultConfigPath.
func ConfigPath(flagPath string) string {
	if flagPath != "" {
		return flagPath
	}
	if p := os.Getenv("SEARCHX_CONFIG"); p != "" {
		return p
	}
	return DefaultConfigPath
}

// LoadConfig reads, normalizes and validates the config at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML config data, folds the legacy parallel lists into
// Roots and validates the result.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if tok := os.Getenv("TELEGRAPH_ACCESS_TOKEN"); tok != "" {
		cfg.Telegraph.AccessToken = tok
	}
	if err := cfg.foldLegacyRoots(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) foldLegacyRoots() error {
	if len(c.DriveIDs) == 0 && len(c.DriveNames) == 0 && len(c.IndexURLs) == 0 {
		return nil
	}
	if len(c.Roots) > 0 {
		return fmt.Errorf("%w: use either roots or drive_ids/drive_names/index_urls, not both", ErrInvalidValue)
	}
	if len(c.DriveIDs) != len(c.DriveNames) || len(c.DriveIDs) != len(c.IndexURLs) {
		return fmt.Errorf("%w: drive_ids, drive_names and index_urls must have equal length, got %d, %d and %d",
			ErrInvalidValue, len(c.DriveIDs), len(c.DriveNames), len(c.IndexURLs))
	}
	for i := range c.DriveIDs {
		c.Roots = append(c.Roots, search.Root{
			ID:       c.DriveIDs[i],
			Name:     c.DriveNames[i],
			IndexURL: c.IndexURLs[i],
		})
	}
	return nil
}

// Validate checks that all configured values are usable.
func (c *Config) Validate() error {
	if len(c.Roots) == 0 {
		return ErrNoRoots
	}
	for i, r := range c.Roots {
		if strings.TrimSpace(r.ID) == "" {
			return fmt.Errorf("%w: root %d has no id", ErrInvalidValue, i)
		}
		if r.IndexURL != "" {
			u, err := url.Parse(r.IndexURL)
			if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
				return fmt.Errorf("%w: root %d index_url must be an http(s) URL, got %q", ErrInvalidValue, i, r.IndexURL)
			}
		}
	}
	if c.PageSize < 0 || c.MaxResults < 0 || c.MaxDepth < 0 {
		return fmt.Errorf("%w: page_size, max_results and max_depth must not be negative", ErrInvalidValue)
	}
	switch c.Match {
	case "", search.MatchStrict, search.MatchCoarse:
	default:
		return fmt.Errorf("%w: match must be %q or %q, got %q", ErrInvalidValue, search.MatchStrict, search.MatchCoarse, c.Match)
	}
	if f := c.Presentation.SummaryMany; f != "" && !search.ValidSummary(f) {
		return fmt.Errorf("%w: presentation.summary_many must contain exactly one %%d verb, got %q", ErrInvalidValue, f)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if (c.Drive.CredentialsFile == "") != (c.Drive.TokenFile == "") {
		return fmt.Errorf("%w: drive.credentials_file and drive.token_file must be set together", ErrInvalidValue)
	}
	return nil
}

// Level returns the configured log level, info by default.
func (c *Config) Level() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("%w: unknown log_level %q", ErrInvalidValue, c.LogLevel)
}

// SearchConfig returns the pipeline configuration.
func (c *Config) SearchConfig() search.Config {
	return search.Config{
		Roots:        c.Roots,
		PageSize:     c.PageSize,
		MaxResults:   c.MaxResults,
		MaxDepth:     c.MaxDepth,
		Match:        c.Match,
		Presentation: c.Presentation,
		Timeout:      c.Timeout,
		CallTimeout:  c.CallTimeout,
	}
}
