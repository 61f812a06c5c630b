package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the full application configuration, loaded from YAML with
// environment-variable overrides for deploy-time secrets.
type Config struct {
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Scan struct {
		Cron        string `yaml:"cron"`
		Concurrency int    `yaml:"concurrency"`
		Benchmark   string `yaml:"benchmark"`
		Lookback    string `yaml:"lookback"`
		Strategy    string `yaml:"strategy"`
		OutputPath  string `yaml:"output_path"`
		LedgerPath  string `yaml:"ledger_path"`
	} `yaml:"scan"`
	SMTP struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		To       string `yaml:"to"`
	} `yaml:"smtp"`
	Database struct {
		URL string `yaml:"url"`
	} `yaml:"database"`
}

func defaults() *Config {
	c := &Config{}
	c.Log.Level = "info"
	c.Server.Port = 8080
	c.Scan.Cron = "0 21 * * 1-5"
	c.Scan.Concurrency = 10
	c.Scan.Benchmark = "SPY"
	c.Scan.Lookback = "1y"
	c.Scan.Strategy = "v4"
	c.Scan.OutputPath = "public/signals.json"
	c.Scan.LedgerPath = "data/trade_ledger.json"
	c.SMTP.Host = "smtp.gmail.com"
	c.SMTP.Port = 587
	return c
}

// Load reads the YAML config at path, applies env overrides and
// validates the result. A missing file yields pure defaults.
func Load(path string) (*Config, error) {
	c := defaults()

	if b, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}

	applyEnv(c)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func applyEnv(c *Config) {
	if v := os.Getenv("TRADING_EMAIL"); v != "" {
		c.SMTP.Username = v
		if c.SMTP.To == "" {
			c.SMTP.To = v
		}
	}
	if v := os.Getenv("TRADING_PASSWORD"); v != "" {
		c.SMTP.Password = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Database.URL = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Server.Port = n
		}
	}
	if v := os.Getenv("SCAN_STRATEGY"); v != "" {
		c.Scan.Strategy = v
	}
}

// Validate checks the fields every cycle depends on.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Scan.Concurrency < 1 {
		return fmt.Errorf("scan.concurrency must be at least 1")
	}
	if c.Scan.Benchmark == "" {
		return fmt.Errorf("scan.benchmark is required")
	}
	if c.Scan.OutputPath == "" {
		return fmt.Errorf("scan.output_path is required")
	}
	if c.Scan.LedgerPath == "" {
		return fmt.Errorf("scan.ledger_path is required")
	}
	if _, ok := Presets()[c.Scan.Strategy]; !ok {
		return fmt.Errorf("unknown scan.strategy %q", c.Scan.Strategy)
	}
	return nil
}

// ActiveStrategy resolves the configured preset.
func (c *Config) ActiveStrategy() Strategy {
	return Presets()[c.Scan.Strategy]
}
