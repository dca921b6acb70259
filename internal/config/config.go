package config

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorageMongo  = "mongo"
	StorageMemory = "memory"
)

// minTimeout is the shortest accepted LLM_TIMEOUT and PERSIST_TIMEOUT.
const minTimeout = time.Second

type Config struct {
	Port     string
	LogLevel string
	LogJSON  bool

	StorageBackend string
	MongoURI       string
	MongoDatabase  string
	PersistTimeout time.Duration

	LLM LLMConfig

	SessionTTL           time.Duration
	SessionSweepInterval time.Duration

	AuthRateLimit     float64
	AuthRateBurst     int
	TrustProxyHeaders bool
	BcryptCost        int
	CORSAllowedOrigin string
	ShutdownTimeout   time.Duration
}

type LLMConfig struct {
	APIKey       string
	Model        string
	BaseURL      string
	Temperature  float32
	Timeout      time.Duration
	MaxRetries   int
	RetryBackoff time.Duration
	UseMock      bool
}

// LoadEnv reads a .env file into the process environment when one exists.
func LoadEnv() error {
	err := godotenv.Load(".env")
	if err != nil {
		log.Printf("could not load .env file: %v", err)
		return err
	}
	return nil
}

// Load builds the service configuration from defaults and the environment.
// A missing OPENAI_API_KEY is not an error here; the completion provider
// reports it the first time it is used.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("PORT", "8000")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_JSON", true)
	v.SetDefault("STORAGE_BACKEND", StorageMongo)
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017/")
	v.SetDefault("MONGO_DATABASE", "VOCAHIRE")
	v.SetDefault("PERSIST_TIMEOUT", "10s")
	v.SetDefault("OPENAI_API_KEY", "")
	v.SetDefault("OPENAI_MODEL", "gpt-3.5-turbo")
	v.SetDefault("OPENAI_BASE_URL", "")
	v.SetDefault("LLM_TEMPERATURE", 0.7)
	v.SetDefault("LLM_TIMEOUT", "60s")
	v.SetDefault("LLM_MAX_RETRIES", 2)
	v.SetDefault("LLM_RETRY_BACKOFF", "500ms")
	v.SetDefault("USE_MOCK_LLM", false)
	v.SetDefault("SESSION_TTL", "0s")
	v.SetDefault("SESSION_SWEEP_INTERVAL", "1m")
	v.SetDefault("AUTH_RATE_LIMIT", 5.0)
	v.SetDefault("AUTH_RATE_BURST", 10)
	v.SetDefault("TRUST_PROXY_HEADERS", false)
	v.SetDefault("BCRYPT_COST", 12)
	v.SetDefault("CORS_ALLOWED_ORIGIN", "*")
	v.SetDefault("SHUTDOWN_TIMEOUT", "5s")

	var durErr error
	duration := func(key string) time.Duration {
		d, err := durationValue(v, key)
		if err != nil && durErr == nil {
			durErr = err
		}
		return d
	}

	cfg := &Config{
		Port:           v.GetString("PORT"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		LogJSON:        v.GetBool("LOG_JSON"),
		StorageBackend: strings.ToLower(v.GetString("STORAGE_BACKEND")),
		MongoURI:       v.GetString("MONGO_URI"),
		MongoDatabase:  v.GetString("MONGO_DATABASE"),
		PersistTimeout: duration("PERSIST_TIMEOUT"),
		LLM: LLMConfig{
			APIKey:       v.GetString("OPENAI_API_KEY"),
			Model:        v.GetString("OPENAI_MODEL"),
			BaseURL:      v.GetString("OPENAI_BASE_URL"),
			Temperature:  float32(v.GetFloat64("LLM_TEMPERATURE")),
			Timeout:      duration("LLM_TIMEOUT"),
			MaxRetries:   v.GetInt("LLM_MAX_RETRIES"),
			RetryBackoff: duration("LLM_RETRY_BACKOFF"),
			UseMock:      v.GetBool("USE_MOCK_LLM"),
		},
		SessionTTL:           duration("SESSION_TTL"),
		SessionSweepInterval: duration("SESSION_SWEEP_INTERVAL"),
		AuthRateLimit:        v.GetFloat64("AUTH_RATE_LIMIT"),
		AuthRateBurst:        v.GetInt("AUTH_RATE_BURST"),
		TrustProxyHeaders:    v.GetBool("TRUST_PROXY_HEADERS"),
		BcryptCost:           v.GetInt("BCRYPT_COST"),
		CORSAllowedOrigin:    v.GetString("CORS_ALLOWED_ORIGIN"),
		ShutdownTimeout:      duration("SHUTDOWN_TIMEOUT"),
	}

	if durErr != nil {
		return nil, durErr
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StorageBackend {
	case StorageMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("MONGO_URI is required for the %s storage backend", StorageMongo)
		}
	case StorageMemory:
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend)
	}

	if c.LLM.Timeout < minTimeout {
		return fmt.Errorf("LLM_TIMEOUT must be at least %s, got %s", minTimeout, c.LLM.Timeout)
	}
	if c.PersistTimeout < minTimeout {
		return fmt.Errorf("PERSIST_TIMEOUT must be at least %s, got %s", minTimeout, c.PersistTimeout)
	}
	if c.LLM.MaxRetries < 0 {
		return fmt.Errorf("LLM_MAX_RETRIES must not be negative, got %d", c.LLM.MaxRetries)
	}
	if c.SessionTTL < 0 {
		return fmt.Errorf("SESSION_TTL must not be negative, got %s", c.SessionTTL)
	}
	return nil
}

// durationValue parses key as a Go duration. A bare number is rejected
// (except 0) because it would otherwise be read as nanoseconds.
func durationValue(v *viper.Viper, key string) (time.Duration, error) {
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "0" {
		return 0, nil
	}
	if _, err := strconv.ParseFloat(raw, 64); err == nil {
		return 0, fmt.Errorf("%s=%q has no unit, use a duration such as %ss", key, raw, raw)
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s=%q is not a valid duration: %w", key, raw, err)
	}
	return d, nil
}
