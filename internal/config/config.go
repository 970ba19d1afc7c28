// Package config loads tool settings from a config file, the environment and flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by the tool
const EnvPrefix = "OPKC"

// PassphraseEnv names the environment variable holding a non-interactive passphrase
const PassphraseEnv = EnvPrefix + "_PASSPHRASE"

// Config holds settings shared by every command
type Config struct {
	KDFBackend string `mapstructure:"kdf_backend" validate:"oneof=auto reference xcrypto"`
	Workers    int    `mapstructure:"workers" validate:"min=1,max=64"`
	IgnoreHMAC bool   `mapstructure:"ignore_hmac"`
	SkipFailed bool   `mapstructure:"skip_failed"`
	Output     string `mapstructure:"output" validate:"oneof=table json yaml"`
	LogLevel   string `mapstructure:"log_level" validate:"oneof=trace debug info warn error disabled"`
}

// New returns a viper instance with the search paths, defaults and environment
// binding used by Load.
func New() *viper.Viper {
	v := viper.New()
	v.SetConfigName("opkeychain")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("$HOME/.opkeychain")
	v.AddConfigPath("/etc/opkeychain")

	v.SetDefault("kdf_backend", "auto")
	v.SetDefault("workers", 4)
	v.SetDefault("ignore_hmac", false)
	v.SetDefault("skip_failed", false)
	v.SetDefault("output", "table")
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// LoadDotEnv loads environment variables from the given .env files, or ./.env when
// none are named. Missing files are ignored; variables already set take precedence.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("error loading %s: %w", file, err)
		}
	}
	return nil
}

// Load reads configuration into a validated Config. An explicit configFile must
// exist; otherwise the search paths are tried and a missing file means defaults.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.KDFBackend = strings.ToLower(cfg.KDFBackend)
	cfg.Output = strings.ToLower(cfg.Output)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field ranges and enumerations
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("invalid config: %s fails %q (value %v)", strings.ToLower(fe.Field()), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
