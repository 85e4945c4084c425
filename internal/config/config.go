package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

type AppConfig struct {
	API      *APIConfig      `mapstructure:"api"`
	Gin      *GinConfig      `mapstructure:"gin"`
	Postgres *PostgresConfig `mapstructure:"postgres"`
	Events   *EventsConfig   `mapstructure:"events"`
	Contest  *ContestConfig  `mapstructure:"contest"`
	Log      *LogConfig      `mapstructure:"log"`
}

type APIConfig struct {
	Environment        string   `mapstructure:"environment"`
	Port               string   `mapstructure:"port"`
	BaseURL            string   `mapstructure:"base_url"`
	JWTSigningKey      string   `mapstructure:"jwt_signing_key"`
	AllowedCORSDomains []string `mapstructure:"allowed_cors_domains"`
	RateLimit          float64  `mapstructure:"rate_limit"`
	RateBurst          int      `mapstructure:"rate_burst"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DB       string `mapstructure:"db"`
	SSLMode  string `mapstructure:"ssl_mode"`
}

// DSN renders the connection string understood by the pgx driver.
func (c *PostgresConfig) DSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DB, sslMode)
}

type EventsConfig struct {
	BufferSize int64 `mapstructure:"buffer_size"`
	Retries    int   `mapstructure:"retries"`
}

type ContestConfig struct {
	MaxPriorEntries   int `mapstructure:"max_prior_entries"`
	RecomputeAttempts int `mapstructure:"recompute_attempts"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

var watchOnce sync.Once

// Load reads the YAML file at path and overlays environment variables such as API_PORT
// or POSTGRES_HOST on top of it.
func Load(path string) (*AppConfig, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("v.ReadInConfig -> %w", err)
	}

	conf := &AppConfig{}
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("v.Unmarshal -> %w", err)
	}

	return conf, nil
}

// Watch calls onChange with the reloaded configuration whenever the file at path is written.
func Watch(path string, onChange func(*AppConfig)) {
	watchOnce.Do(func() {
		v := viper.New()
		setDefaults(v)
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return
		}

		v.OnConfigChange(func(e fsnotify.Event) {
			if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
				return
			}

			conf := &AppConfig{}
			if err := v.Unmarshal(conf); err != nil {
				return
			}
			onChange(conf)
		})
		v.WatchConfig()
	})
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.environment", "development")
	v.SetDefault("api.port", "8080")
	v.SetDefault("api.base_url", "localhost:8080")
	v.SetDefault("api.jwt_signing_key", "")
	v.SetDefault("api.allowed_cors_domains", []string{})
	v.SetDefault("api.rate_limit", 20)
	v.SetDefault("api.rate_burst", 40)
	v.SetDefault("gin.mode", "debug")
	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", "5432")
	v.SetDefault("postgres.user", "postgres")
	v.SetDefault("postgres.password", "")
	v.SetDefault("postgres.db", "contests")
	v.SetDefault("postgres.ssl_mode", "disable")
	v.SetDefault("events.buffer_size", 256)
	v.SetDefault("events.retries", 3)
	v.SetDefault("contest.max_prior_entries", 4)
	v.SetDefault("contest.recompute_attempts", 3)
	v.SetDefault("log.level", "info")
}
