package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/etnz/vitals/ouraapi"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"
)

// Config is the optional YAML configuration file of vtl.
//
//	token: <oura personal access token>
//	base_url: https://api.ouraring.com/v2/usercollection
//	days: 30
//	rate: 5
//	model: gemini-2.5-flash
type Config struct {
	Token   string  `yaml:"token"`
	BaseURL string  `yaml:"base_url"`
	Days    int     `yaml:"days"`  // default number of days to fetch.
	Rate    float64 `yaml:"rate"`  // maximum API requests per second.
	Model   string  `yaml:"model"` // model used by 'assist'.
}

const (
	defaultDays  = 30
	defaultRate  = 5
	defaultModel = "gemini-2.5-flash"
)

// DefaultConfigPath returns $XDG_CONFIG_HOME/vitals/config.yaml or its platform equivalent.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "vitals", "config.yaml")
}

// LoadConfig reads the config file at path. A missing file is not an error: every field gets its
// default value.
func LoadConfig(path string) (*Config, error) {
	cfg := new(Config)
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			log.Debug().Str("path", path).Msg("no config file")
		case err != nil:
			return nil, fmt.Errorf("cannot read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("invalid config %q: %w", path, err)
			}
		}
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = ouraapi.DefaultBaseURL
	}
	if cfg.Days <= 0 {
		cfg.Days = defaultDays
	}
	if cfg.Rate <= 0 {
		cfg.Rate = defaultRate
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	return cfg, nil
}

// client returns an API client for token configured by c.
func (c *Config) client(token string) *ouraapi.Client {
	client := ouraapi.NewClient(token)
	client.BaseURL = c.BaseURL
	client.Limiter = rate.NewLimiter(rate.Limit(c.Rate), 1)
	return client
}
