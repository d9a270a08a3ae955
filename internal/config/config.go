package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/jengzang/a5grid/pkg/a5"
)

// Config 应用配置
type Config struct {
	Port      string `mapstructure:"port"`
	DBPath    string `mapstructure:"db_path"`
	JWTSecret string `mapstructure:"jwt_secret"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"` // json, console
	LogFile   string `mapstructure:"log_file"`   // empty logs to stderr

	CacheMaxCost       int64 `mapstructure:"cache_max_cost"` // bytes of cached boundaries
	MaxUncompactCells  int   `mapstructure:"max_uncompact_cells"`
	RateLimitPerMinute int   `mapstructure:"rate_limit_per_minute"`
	DefaultResolution  int   `mapstructure:"default_resolution"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", ":8080")
	v.SetDefault("db_path", "./data/a5grid.db")
	v.SetDefault("jwt_secret", "your-secret-key-change-in-production")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("log_file", "")
	v.SetDefault("cache_max_cost", 64<<20)
	v.SetDefault("max_uncompact_cells", 1<<20)
	v.SetDefault("rate_limit_per_minute", 600)
	v.SetDefault("default_resolution", 10)
}

// Load 加载配置. Values come from, in increasing priority: defaults, the
// optional config file, a .env file in the working directory and the
// process environment.
func Load(path string) (*Config, error) {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the server cannot run with
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("port must not be empty")
	}
	if c.DefaultResolution < 0 || c.DefaultResolution > a5.MaxResolution {
		return errors.Errorf("default resolution %d outside [0, %d]", c.DefaultResolution, a5.MaxResolution)
	}
	if c.MaxUncompactCells <= 0 || c.MaxUncompactCells > a5.MaxChildren {
		return errors.Errorf("max uncompact cells %d outside (0, %d]", c.MaxUncompactCells, a5.MaxChildren)
	}
	if c.RateLimitPerMinute <= 0 {
		return errors.Errorf("rate limit %d must be positive", c.RateLimitPerMinute)
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return errors.Errorf("unknown log format %q", c.LogFormat)
	}
	return nil
}
