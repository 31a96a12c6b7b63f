package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the immutable process-wide configuration. It is loaded once in
// main and injected into every component that needs it.
type Config struct {
	Server ServerConfig
	CORS   CORSConfig
	LLM    LLMConfig
	Redis  RedisConfig
	Cache  CacheConfig
	Logger LoggerConfig
}

type ServerConfig struct {
	Port int
}

type CORSConfig struct {
	// AllowOrigin is the development frontend origin allowed to call the API
	// with credentials.
	AllowOrigin string
}

// ProviderConfig holds the credential and model name for one provider.
type ProviderConfig struct {
	APIKey string
	Model  string
}

// LLMConfig selects and configures the upstream chat-completion provider.
type LLMConfig struct {
	// Provider is one of "openrouter", "openai" or "groq".
	Provider       string
	UseMock        bool
	RequestTimeout time.Duration
	OpenRouter     ProviderConfig
	OpenAI         ProviderConfig
	Groq           ProviderConfig
}

type RedisConfig struct {
	// Address is empty when the response cache is disabled.
	Address  string
	Password string
	DB       int
}

type CacheConfig struct {
	TTL time.Duration
}

type LoggerConfig struct {
	Level string
	Env   string
}

// LoadConfig reads configuration from the environment, with an optional
// config.yaml providing file-based overrides for local development.
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("provider", "openrouter")
	viper.SetDefault("openrouter.model", "gpt-4o-mini")
	viper.SetDefault("openai.model", "gpt-4o-mini")
	viper.SetDefault("groq.model", "llama-3.1-8b-instant")
	viper.SetDefault("use_mock", false)
	viper.SetDefault("request_timeout_seconds", 30.0)
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("cors.allow_origin", "http://localhost:5173")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("cache.ttl_seconds", 300)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("env", "development")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file is the normal case; the environment is authoritative.
	}

	config := &Config{
		Server: ServerConfig{
			Port: viper.GetInt("server.port"),
		},
		CORS: CORSConfig{
			AllowOrigin: viper.GetString("cors.allow_origin"),
		},
		LLM: LLMConfig{
			Provider:       strings.ToLower(viper.GetString("provider")),
			UseMock:        viper.GetBool("use_mock"),
			RequestTimeout: time.Duration(viper.GetFloat64("request_timeout_seconds") * float64(time.Second)),
			OpenRouter: ProviderConfig{
				APIKey: viper.GetString("openrouter.api_key"),
				Model:  viper.GetString("openrouter.model"),
			},
			OpenAI: ProviderConfig{
				APIKey: viper.GetString("openai.api_key"),
				Model:  viper.GetString("openai.model"),
			},
			Groq: ProviderConfig{
				APIKey: viper.GetString("groq.api_key"),
				Model:  viper.GetString("groq.model"),
			},
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		Cache: CacheConfig{
			TTL: time.Duration(viper.GetInt("cache.ttl_seconds")) * time.Second,
		},
		Logger: LoggerConfig{
			Level: viper.GetString("log.level"),
			Env:   viper.GetString("env"),
		},
	}

	return config, nil
}
