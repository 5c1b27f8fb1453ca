// Package config loads the run configuration: fixed search parameters from a
// YAML file, secrets and toggles from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Search mirrors configs/search.yaml. The query, window and budgets are run
// constants, not runtime flags.
type Search struct {
	Query           string `yaml:"query"`
	Language        string `yaml:"language"`
	Region          string `yaml:"region"`
	Period          string `yaml:"period"`
	MaxPages        int    `yaml:"max_pages"`
	BatchSize       int    `yaml:"batch_size"`
	StagnationLimit int    `yaml:"stagnation_limit"`
}

type Mail struct {
	Host     string
	Port     int
	From     string
	To       string
	Password string // read from MAIL_PASSWORD; absence fails delivery only
	Subject  string
}

type Config struct {
	Search Search
	Mail   Mail

	IncludeSentiment bool
	Passes           int
	PassInterval     time.Duration
	RequestTimeout   time.Duration
	OutputDir        string
	LogFile          string
	Debug            bool
}

func defaultSearch() Search {
	return Search{
		Query: "India AND (business OR finance OR economy OR markets " +
			"OR stocks OR revenue OR company OR IPO OR investment OR profit)",
		Language:        "en",
		Region:          "IN",
		Period:          "1d",
		MaxPages:        100,
		BatchSize:       10,
		StagnationLimit: 15,
	}
}

// Load builds the config from defaults, the search YAML (if present) and the
// environment.
func Load() (*Config, error) {
	cfg := &Config{
		Search: defaultSearch(),
		Mail: Mail{
			Host:    getEnvOrDefault("SMTP_HOST", "smtp.gmail.com"),
			Port:    getEnvIntOrDefault("SMTP_PORT", 587),
			From:    os.Getenv("MAIL_FROM"),
			To:      os.Getenv("MAIL_TO"),
			Subject: getEnvOrDefault("MAIL_SUBJECT", "India Business News Report"),
		},
		IncludeSentiment: true,
		Passes:           2,
		PassInterval:     2 * time.Hour,
		RequestTimeout:   30 * time.Second,
		OutputDir:        getEnvOrDefault("OUTPUT_DIR", "."),
		LogFile:          getEnvOrDefault("LOG_FILE", "news_harvest.log"),
	}

	searchPath := getEnvOrDefault("SEARCH_CONFIG_PATH", "configs/search.yaml")
	if err := loadSearchFile(searchPath, &cfg.Search); err != nil {
		return nil, err
	}

	cfg.Mail.Password = os.Getenv("MAIL_PASSWORD")

	if v := os.Getenv("INCLUDE_SENTIMENT"); v != "" {
		cfg.IncludeSentiment = v == "true"
	}
	if v := os.Getenv("PASSES"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.Passes = val
		}
	}
	if v := os.Getenv("PASS_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d >= 0 {
			cfg.PassInterval = d
		}
	}
	if v := os.Getenv("REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.RequestTimeout = d
		}
	}
	if os.Getenv("DEBUG") == "true" {
		cfg.Debug = true
	}

	return cfg, cfg.Validate()
}

// loadSearchFile overlays the YAML file onto the defaults. A missing file is
// fine; a malformed one is not.
func loadSearchFile(path string, search *Search) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("open search config: %w", err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(search); err != nil {
		return fmt.Errorf("parse search config %s: %w", path, err)
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Search.Query == "" {
		return fmt.Errorf("search query must not be empty")
	}
	if c.Search.MaxPages <= 0 {
		return fmt.Errorf("max_pages must be positive")
	}
	if c.Search.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be positive")
	}
	if c.Search.StagnationLimit <= 0 {
		return fmt.Errorf("stagnation_limit must be positive")
	}
	// Mail.Password is deliberately not validated here: a missing credential
	// must fail delivery, not the harvest.
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
