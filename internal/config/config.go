package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMySQL  = "mysql"
	BackendMemory = "memory"
)

type Config struct {
	AppEnv   string `yaml:"app_env"`
	LogLevel string `yaml:"log_level"`

	HTTPPort int `yaml:"http_port"`
	GRPCPort int `yaml:"grpc_port"`

	Store     StoreConfig     `yaml:"store"`
	Annotator AnnotatorConfig `yaml:"annotator"`
}

type StoreConfig struct {
	Backend    string        `yaml:"backend"`
	SQLitePath string        `yaml:"sqlite_path"`
	RedisAddr  string        `yaml:"redis_addr"`
	MySQLDSN   string        `yaml:"mysql_dsn"`
	KeyPrefix  string        `yaml:"key_prefix"`
	Timeout    time.Duration `yaml:"timeout"`
}

type AnnotatorConfig struct {
	APIKey   string        `yaml:"api_key"`
	Model    string        `yaml:"model"`
	Timeout  time.Duration `yaml:"timeout"`
	Fallback string        `yaml:"fallback"`
}

func Default() Config {
	return Config{
		AppEnv:   "dev",
		LogLevel: "info",
		HTTPPort: 8080,
		GRPCPort: 50051,
		Store: StoreConfig{
			Backend:    BackendSQLite,
			SQLitePath: filepath.Join(".storefront", "storefront.db"),
			RedisAddr:  "localhost:6379",
			MySQLDSN:   "root:root@tcp(localhost:3306)/storefront?parseTime=true",
			KeyPrefix:  "storefront:",
			Timeout:    5 * time.Second,
		},
		Annotator: AnnotatorConfig{
			Model:   "gemini-2.5-flash",
			Timeout: 8 * time.Second,
		},
	}
}

// Load applies, in order: defaults, the YAML file named by STOREFRONT_CONFIG
// (if set), and environment overrides.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("STOREFRONT_CONFIG"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.AppEnv = getEnv("APP_ENV", c.AppEnv)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.HTTPPort = getEnvInt("HTTP_PORT", c.HTTPPort)
	c.GRPCPort = getEnvInt("GRPC_PORT", c.GRPCPort)

	c.Store.Backend = getEnv("STORE_BACKEND", c.Store.Backend)
	c.Store.SQLitePath = getEnv("SQLITE_PATH", c.Store.SQLitePath)
	c.Store.RedisAddr = getEnv("REDIS_ADDR", c.Store.RedisAddr)
	c.Store.MySQLDSN = getEnv("MYSQL_DSN", c.Store.MySQLDSN)
	c.Store.KeyPrefix = getEnv("STORE_KEY_PREFIX", c.Store.KeyPrefix)
	c.Store.Timeout = getEnvDuration("STORE_TIMEOUT", c.Store.Timeout)

	c.Annotator.APIKey = getEnv("GEMINI_API_KEY", c.Annotator.APIKey)
	c.Annotator.Model = getEnv("GEMINI_MODEL", c.Annotator.Model)
	c.Annotator.Timeout = getEnvDuration("ANNOTATOR_TIMEOUT", c.Annotator.Timeout)
}

func (c Config) Validate() error {
	switch c.Store.Backend {
	case BackendSQLite, BackendRedis, BackendMySQL, BackendMemory:
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	if c.HTTPPort <= 0 || c.GRPCPort <= 0 {
		return fmt.Errorf("ports must be positive, got http=%d grpc=%d", c.HTTPPort, c.GRPCPort)
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
