package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/Rohit-Goswami064/Divine-Darshan/storage"
)

// EnvPrefix namespaces environment variables, e.g. DARSHAN_API_URL
const EnvPrefix = "DARSHAN"

type StorageConfig struct {
	Driver      string `mapstructure:"driver"`
	SQLitePath  string `mapstructure:"sqlite_path"`
	RedisAddr   string `mapstructure:"redis_addr"`
	RedisPrefix string `mapstructure:"redis_prefix"`
}

// Config is the client configuration.
type Config struct {
	// APIURL is the production API base URL. Empty derives it from Host.
	APIURL            string        `mapstructure:"api_url"`
	Host              string        `mapstructure:"host"`
	TokenKey          string        `mapstructure:"token_key"`
	Storage           StorageConfig `mapstructure:"storage"`
	LogLevel          string        `mapstructure:"log_level"`
	Locale            string        `mapstructure:"locale"`
	Timeout           time.Duration `mapstructure:"timeout"`
	Debug             bool          `mapstructure:"debug"`
	Metrics           bool          `mapstructure:"metrics"`
	SkipExpiredTokens bool          `mapstructure:"skip_expired_tokens"`
}

func (c *Config) GetAPIURL() string { return c.APIURL }
func (c *Config) GetHost() string   { return c.Host }

// StorageOptions maps the storage section to storage.Open options.
func (c *Config) StorageOptions() storage.Options {
	return storage.Options{
		Driver:      c.Storage.Driver,
		SQLitePath:  c.Storage.SQLitePath,
		RedisAddr:   c.Storage.RedisAddr,
		RedisPrefix: c.Storage.RedisPrefix,
	}
}

// Validate checks the loaded values.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Host, validation.Required),
		validation.Field(&c.TokenKey, validation.Required),
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.Timeout, validation.By(func(value interface{}) error {
			if d, _ := value.(time.Duration); d < 0 {
				return errors.New("must not be negative")
			}
			return nil
		})),
		validation.Field(&c.Storage),
	)
}

func (s StorageConfig) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Driver, validation.Required, validation.In(storage.DriverMemory, storage.DriverSQLite, storage.DriverRedis)),
		validation.Field(&s.SQLitePath, validation.By(requiredFor(s.Driver, storage.DriverSQLite))),
		validation.Field(&s.RedisAddr, validation.By(requiredFor(s.Driver, storage.DriverRedis))),
	)
}

func requiredFor(driver, want string) validation.RuleFunc {
	return func(value interface{}) error {
		if driver != want {
			return nil
		}
		return validation.Validate(value, validation.Required)
	}
}

type loadOptions struct {
	configFile string
	envFiles   []string
}

// LoadOption customizes Load.
type LoadOption func(*loadOptions)

// WithConfigFile reads path instead of searching for darshan.yaml.
func WithConfigFile(path string) LoadOption {
	return func(o *loadOptions) {
		o.configFile = path
	}
}

// WithEnvFiles loads dotenv files before reading the environment. Missing
// files are ignored. Defaults to ".env".
func WithEnvFiles(paths ...string) LoadOption {
	return func(o *loadOptions) {
		o.envFiles = paths
	}
}

// Load reads defaults, then an optional config file, then the
// environment (dotenv files included), and validates the result.
func Load(opts ...LoadOption) (*Config, error) {
	options := loadOptions{envFiles: []string{".env"}}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}

	for _, file := range options.envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load env file %s: %w", file, err)
		}
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if options.configFile != "" {
		v.SetConfigFile(options.configFile)
	} else {
		v.SetConfigName("darshan")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := configDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		)
	}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.Storage.Driver = strings.ToLower(strings.TrimSpace(cfg.Storage.Driver))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api_url", "")
	v.SetDefault("host", "localhost")
	v.SetDefault("token_key", "token")
	v.SetDefault("log_level", "info")
	v.SetDefault("locale", "en")
	v.SetDefault("timeout", "0s")
	v.SetDefault("debug", false)
	v.SetDefault("metrics", false)
	v.SetDefault("skip_expired_tokens", false)

	v.SetDefault("storage.driver", storage.DriverSQLite)
	v.SetDefault("storage.sqlite_path", defaultSQLitePath())
	v.SetDefault("storage.redis_addr", "")
	v.SetDefault("storage.redis_prefix", storage.DefaultRedisPrefix)
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".darshan"), nil
}

func defaultSQLitePath() string {
	dir, err := configDir()
	if err != nil {
		dir = ".darshan"
	}
	return filepath.Join(dir, "storage.db")
}
