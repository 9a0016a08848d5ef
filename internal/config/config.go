// Package config loads runtime settings from a TOML file, environment
// variables and command-line flags, in increasing order of precedence.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"codeberg.org/mutker/syshealth/internal/errors"
)

const (
	DefaultLogLevel      = "info"
	DefaultBudgetSeconds = 120
	DefaultDatabase      = "syshealth.db"

	configEnv  = "SYSHEALTH_CONFIG"
	configName = "syshealth"
	envPrefix  = "SYSHEALTH"
)

// Config holds all runtime settings.
type Config struct {
	ScanPath        string   `mapstructure:"scan_path"`
	ReportPath      string   `mapstructure:"report_path"`
	Store           bool     `mapstructure:"store"`
	Database        string   `mapstructure:"database"`
	SpeedTest       bool     `mapstructure:"speedtest"`
	SpeedTestBinary string   `mapstructure:"speedtest_binary"`
	DNSTargets      []string `mapstructure:"dns_targets"`
	BudgetSeconds   int      `mapstructure:"budget"`
	LogLevel        string   `mapstructure:"log_level"`
	Debug           bool     `mapstructure:"debug"`
	Verbose         bool     `mapstructure:"verbose"`
}

// Budget returns the global collection budget as a duration.
func (c *Config) Budget() time.Duration {
	return time.Duration(c.BudgetSeconds) * time.Second
}

// Load reads configuration from defaults, an optional TOML file
// (explicit path via SYSHEALTH_CONFIG, else /etc and the working
// directory), SYSHEALTH_* environment variables and command-line
// flags. Flags win.
func Load() (*Config, error) {
	errFactory := errors.New()

	v := viper.New()
	v.SetDefault("scan_path", "")
	v.SetDefault("report_path", "")
	v.SetDefault("store", false)
	v.SetDefault("database", DefaultDatabase)
	v.SetDefault("speedtest", false)
	v.SetDefault("speedtest_binary", "")
	v.SetDefault("dns_targets", []string{})
	v.SetDefault("budget", DefaultBudgetSeconds)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("debug", false)
	v.SetDefault("verbose", false)

	flags := pflag.NewFlagSet(os.Args[0], pflag.ContinueOnError)
	flags.ParseErrorsWhitelist.UnknownFlags = true
	flags.String("scan-path", "", "Path to the raw scan JSON file")
	flags.String("report-path", "", "Write the report to this file instead of stdout")
	flags.Bool("store", false, "Persist the latest report to the database")
	flags.String("database", DefaultDatabase, "Path to the report database")
	flags.Bool("speedtest", false, "Enable the external speed test collector")
	flags.String("speedtest-binary", "", "Explicit path to the speed test executable")
	flags.StringSlice("dns-targets", nil, "Additional local DNS servers to probe")
	flags.Int("budget", DefaultBudgetSeconds, "Global collection budget in seconds")
	flags.String("log-level", DefaultLogLevel, "Log level (debug, info, warning, error)")
	flags.Bool("debug", false, "Enable debugging mode")
	flags.Bool("verbose", false, "Enable verbose logging")
	if err := flags.Parse(os.Args[1:]); err != nil {
		return nil, errFactory.Wrap(errors.ErrBindFlags, err)
	}

	if path := os.Getenv(configEnv); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("toml")
		v.AddConfigPath("/etc")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errFactory.Wrap(errors.ErrReadConfig, err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	flags.Visit(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		switch f.Value.Type() {
		case "stringSlice":
			slice, err := flags.GetStringSlice(f.Name)
			if err == nil {
				v.Set(key, slice)
			}
		default:
			v.Set(key, f.Value.String())
		}
	})

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks field-level constraints.
func (c *Config) Validate() error {
	errFactory := errors.New()

	if !LogLevel(c.LogLevel).IsValid() {
		return errFactory.WithMessage(errors.ErrInvalidLogLevel, "invalid_log_level: "+c.LogLevel)
	}
	if c.BudgetSeconds <= 0 {
		return errFactory.WithMessage(errors.ErrInvalidConfig, "collection budget must be positive")
	}

	return nil
}
