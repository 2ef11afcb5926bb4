package config

import (
	"os"

	"codeberg.org/vintar/cpuctl/internal/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultInterval  = 1
	DefaultMetricsDB = "/var/lib/cpuctl/metrics.db"

	configName = "cpuctl.conf"
	configType = "toml"
	configDir  = "/etc"
	envPrefix  = "CPUCTL"

	// ConfigPathEnv overrides the config file location, mainly for tests
	ConfigPathEnv = "CPUCTL_CONFIG"
)

type Config struct {
	Interval  int    `mapstructure:"interval"`
	Debug     bool   `mapstructure:"debug"`
	Verbose   bool   `mapstructure:"verbose"`
	Raw       bool   `mapstructure:"raw"`
	Metrics   bool   `mapstructure:"metrics"`
	MetricsDB string `mapstructure:"metrics_db"`
}

// Load reads configuration from file, environment and the given flag set,
// in increasing order of precedence. A nil flag set skips flag binding.
func Load(flags *pflag.FlagSet) (*Config, error) {
	errFactory := errors.New()

	v := viper.New()
	v.SetDefault("interval", DefaultInterval)
	v.SetDefault("metrics_db", DefaultMetricsDB)

	if path := os.Getenv(ConfigPathEnv); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType(configType)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		v.AddConfigPath(configDir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, errFactory.Wrap(errors.ErrReadConfig, err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, errFactory.Wrap(errors.ErrBindFlags, err)
		}
		if f := flags.Lookup("metrics-db"); f != nil {
			if err := v.BindPFlag("metrics_db", f); err != nil {
				return nil, errFactory.Wrap(errors.ErrBindFlags, err)
			}
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the loaded values for consistency.
func (c *Config) Validate() error {
	errFactory := errors.New()

	if c.Interval <= 0 {
		return errFactory.WithData(errors.ErrInvalidInterval, c.Interval)
	}
	if c.Metrics && c.MetricsDB == "" {
		return errFactory.WithMessage(errors.ErrInvalidConfig, "metrics enabled without a database path")
	}

	return nil
}
