// Package config loads the eccli configuration. Everything has a
// working default, so the tool runs without any config file at all;
// 'eccli init' writes one for users who want persistent settings.
package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config is the eccli configuration file structure.
type Config struct {
	Data struct {
		BaseDir string `yaml:"base_dir" mapstructure:"base_dir"`
	} `yaml:"data" mapstructure:"data"`

	Session struct {
		Cookie     string `yaml:"cookie" mapstructure:"cookie"`
		CookieFile string `yaml:"cookie_file" mapstructure:"cookie_file"`
	} `yaml:"session" mapstructure:"session"`

	API struct {
		BaseURL        string `yaml:"base_url" mapstructure:"base_url"`
		CDNURL         string `yaml:"cdn_url" mapstructure:"cdn_url"`
		TimeoutSeconds int    `yaml:"timeout_seconds" mapstructure:"timeout_seconds"`
	} `yaml:"api" mapstructure:"api"`

	Log struct {
		Level string `yaml:"level" mapstructure:"level"`
	} `yaml:"log" mapstructure:"log"`
}

// DefaultPath returns the default config file location
// (~/.eccli/config.yml).
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yml"
	}
	return filepath.Join(home, ".eccli", "config.yml")
}

// Load reads the config file at path. A missing file is not an error:
// the defaults apply, matching a tool that can run configless.
// EC_-prefixed environment variables override file values.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("EC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range []string{
		"data.base_dir",
		"session.cookie",
		"session.cookie_file",
		"api.base_url",
		"api.cdn_url",
		"api.timeout_seconds",
		"log.level",
	} {
		_ = v.BindEnv(key)
	}

	if err := v.ReadInConfig(); err != nil {
		_, notFound := err.(viper.ConfigFileNotFoundError)
		if !notFound && !stderrors.Is(err, os.ErrNotExist) {
			return nil, errors.Wrapf(err, "read config file %s", path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Data.BaseDir == "" {
		c.Data.BaseDir = "data"
	}
	if c.API.BaseURL == "" {
		c.API.BaseURL = "https://everybody.codes"
	}
	if c.API.CDNURL == "" {
		c.API.CDNURL = "https://everybody-codes.b-cdn.net"
	}
	if c.API.TimeoutSeconds <= 0 {
		c.API.TimeoutSeconds = 30
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Save writes the configuration to path, creating parent directories
// as needed. Used by 'eccli init'.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "marshal config")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return errors.Wrap(err, "create config directory")
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.Wrap(err, "write config file")
	}
	return nil
}
