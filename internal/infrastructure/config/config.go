package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	CORS   CORSConfig   `mapstructure:"cors"`
	Model  ModelConfig  `mapstructure:"model"`
	Redis  RedisConfig  `mapstructure:"redis"`
	Log    LogConfig    `mapstructure:"log"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// CORSConfig holds the single origin allowed to call the API from a browser
type CORSConfig struct {
	AllowOrigin string `mapstructure:"allow_origin"`
}

// ModelConfig holds training data and pipeline settings
type ModelConfig struct {
	DataPath       string  `mapstructure:"data_path"`
	NGramMin       int     `mapstructure:"ngram_min"`
	NGramMax       int     `mapstructure:"ngram_max"`
	StopWords      bool    `mapstructure:"stop_words"`
	C              float64 `mapstructure:"c"`
	MaxIterations  int     `mapstructure:"max_iterations"`
	BalanceClasses bool    `mapstructure:"balance_classes"`
}

// RedisConfig holds settings for the optional verdict cache
type RedisConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Host     string        `mapstructure:"host"`
	Port     int           `mapstructure:"port"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from an optional config.yaml and PHISHPROOF_*
// environment variables, on top of built-in defaults.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("PHISHPROOF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if !validOrigin(cfg.CORS.AllowOrigin) {
		return nil, fmt.Errorf("invalid cors.allow_origin %q", cfg.CORS.AllowOrigin)
	}
	return &cfg, nil
}

// validOrigin accepts "*" or an absolute http(s) origin, the forms the
// CORS middleware can be built with
func validOrigin(origin string) bool {
	if origin == "*" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)

	v.SetDefault("cors.allow_origin", "https://phishproof.netlify.app")

	v.SetDefault("model.data_path", "spam.csv")
	v.SetDefault("model.ngram_min", 1)
	v.SetDefault("model.ngram_max", 2)
	v.SetDefault("model.stop_words", true)
	v.SetDefault("model.c", 1.0)
	v.SetDefault("model.max_iterations", 1000)
	v.SetDefault("model.balance_classes", true)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", time.Hour)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}
