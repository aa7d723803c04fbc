package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration, loaded once at startup.
type Config struct {
	ServerPort int    `mapstructure:"SERVER_PORT"`
	BaseURL    string `mapstructure:"BASE_URL"`
	LogLevel   string `mapstructure:"LOG_LEVEL"`

	Host     string `mapstructure:"DB_HOST"`
	Port     int    `mapstructure:"DB_PORT"`
	User     string `mapstructure:"DB_USER"`
	Password string `mapstructure:"DB_PASSWORD"`
	DBName   string `mapstructure:"DB_NAME"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	JWTSecret string `mapstructure:"JWT_SECRET"`

	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `mapstructure:"GOOGLE_REDIRECT_URL"`

	// Bcrypt hash of the shared secret presented by the auth provider's
	// profile-sync webhook.
	SyncSecretHash string `mapstructure:"SYNC_SECRET_HASH"`

	S3Bucket    string `mapstructure:"S3_BUCKET"`
	S3Region    string `mapstructure:"S3_REGION"`
	S3AccessKey string `mapstructure:"S3_ACCESS_KEY"`
	S3SecretKey string `mapstructure:"S3_SECRET_KEY"`
	S3Endpoint  string `mapstructure:"S3_ENDPOINT"`
	S3PublicURL string `mapstructure:"S3_PUBLIC_URL"`

	SMTPHost string `mapstructure:"SMTP_HOST"`
	SMTPPort int    `mapstructure:"SMTP_PORT"`
	SMTPUser string `mapstructure:"SMTP_USER"`
	SMTPPass string `mapstructure:"SMTP_PASS"`
	SMTPFrom string `mapstructure:"SMTP_FROM"`
}

var (
	instance *Config
	mu       sync.RWMutex
)

// Load reads configuration from the environment (viper) and caches it.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("SERVER_PORT", 7070)
	v.SetDefault("BASE_URL", "http://localhost:7070")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "metra")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("SMTP_PORT", 587)

	// Bind every key we read so AutomaticEnv picks them up without a file.
	for _, key := range []string{
		"SERVER_PORT", "BASE_URL", "LOG_LEVEL",
		"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME",
		"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
		"JWT_SECRET",
		"GOOGLE_CLIENT_ID", "GOOGLE_CLIENT_SECRET", "GOOGLE_REDIRECT_URL",
		"SYNC_SECRET_HASH",
		"S3_BUCKET", "S3_REGION", "S3_ACCESS_KEY", "S3_SECRET_KEY", "S3_ENDPOINT", "S3_PUBLIC_URL",
		"SMTP_HOST", "SMTP_PORT", "SMTP_USER", "SMTP_PASS", "SMTP_FROM",
	} {
		_ = v.BindEnv(key)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	mu.Lock()
	instance = &cfg
	mu.Unlock()
	return &cfg, nil
}

// Get returns the loaded config; it panics when Load was never called.
func Get() *Config {
	mu.RLock()
	defer mu.RUnlock()
	if instance == nil {
		panic("config: Load must be called before Get")
	}
	return instance
}

// GetSafe returns the loaded config and whether it is available.
func GetSafe() (*Config, bool) {
	mu.RLock()
	defer mu.RUnlock()
	return instance, instance != nil
}

// SetForTesting injects a config instance in tests.
func SetForTesting(cfg *Config) {
	mu.Lock()
	instance = cfg
	mu.Unlock()
}
