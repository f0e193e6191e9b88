// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ashureev/spiritual-guide/internal/agent"
	"github.com/ashureev/spiritual-guide/internal/store"
)

// DefaultSalt is the placeholder HMAC salt; running with it is allowed but logged.
const DefaultSalt = "changeme"

// AvatarLanguages lists the languages with a HEYGEN_AVATAR_<LANG> override.
var AvatarLanguages = []string{"es", "en", "pt", "it", "de", "ca", "fr", "pl", "tl"}

// Config holds all application configuration.
type Config struct {
	Port           string
	AllowedOrigins []string
	TrustProxy     bool
	MaxBodyBytes   int64
	MaxMessageLen  int
	MaxHistory     int
	SecretSalt     string

	Memory    MemoryConfig
	LLM       LLMConfig
	RateLimit RateLimitConfig
	HeyGen    HeyGenConfig
}

// MemoryConfig selects the user memory backend.
type MemoryConfig struct {
	Backend       string
	DataDir       string
	DBPath        string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
	// RedisTTL expires idle users in the redis backend; zero keeps them.
	RedisTTL      time.Duration
}

// LLMConfig configures the chat-completions gateway. ModelBible is accepted
// for deployment compatibility and only reported at startup; every turn is
// one structured completion on ModelMain.
type LLMConfig struct {
	APIKey          string
	BaseURL         string
	ModelMain       string
	ModelBible      string
	ResponseTimeout time.Duration
	MaxTokensMain   int
	Temperature     float64
	TopicLock       bool
}

// RateLimitConfig holds per-client-IP limits, in requests per minute.
type RateLimitConfig struct {
	AskPerMinute   int
	TokenPerMinute int
}

// HeyGenConfig configures the avatar token proxy.
type HeyGenConfig struct {
	APIKey        string
	VoiceID       string
	DefaultAvatar string
	Avatars       map[string]string
	Version       string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "")),
		TrustProxy:     getEnvBool("TRUST_PROXY", true),
		MaxBodyBytes:   int64(getEnvInt("MAX_BODY_BYTES", 8192)),
		MaxMessageLen:  getEnvInt("MAX_MESSAGE_LEN", 1000),
		MaxHistory:     getEnvInt("MAX_HISTORY", 10),
		SecretSalt:     getEnv("SECRET_SALT", DefaultSalt),
		Memory: MemoryConfig{
			Backend:       strings.ToLower(getEnv("MEMORY_BACKEND", store.BackendFile)),
			DataDir:       getEnv("DATA_DIR", "./data"),
			DBPath:        getEnv("DB_PATH", "./data/memory.db"),
			RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       getEnvInt("REDIS_DB", 0),
			RedisPrefix:   getEnv("REDIS_KEY_PREFIX", "guide:mem:"),
			RedisTTL:      getEnvDuration("REDIS_TTL", 0),
		},
		LLM: LLMConfig{
			APIKey:          getEnv("OPENAI_API_KEY", ""),
			BaseURL:         strings.TrimRight(getEnv("OPENAI_BASE_URL", "https://api.openai.com"), "/"),
			ModelMain:       getEnv("OPENAI_MODEL_MAIN", "gpt-4o"),
			ModelBible:      getEnv("OPENAI_MODEL_BIBLE", "gpt-4o-mini"),
			ResponseTimeout: time.Duration(getEnvInt("RESPONSE_TIMEOUT_MS", 12000)) * time.Millisecond,
			MaxTokensMain:   getEnvInt("MAX_TOKENS_MAIN", 220),
			Temperature:     getEnvFloat("TEMPERATURE", 0.6),
			// Only the literal "false" disables the lock.
			TopicLock: getEnv("ENABLE_TOPIC_LOCK", "true") != "false",
		},
		RateLimit: RateLimitConfig{
			AskPerMinute:   getEnvInt("ASK_RATE_PER_MIN", 60),
			TokenPerMinute: getEnvInt("TOKEN_RATE_PER_MIN", 10),
		},
		HeyGen: HeyGenConfig{
			APIKey:        firstNonEmpty(getEnv("HEYGEN_API_KEY", ""), getEnv("HEYGEN_TOKEN", "")),
			VoiceID:       strings.TrimSpace(getEnv("HEYGEN_VOICE_ID", "")),
			DefaultAvatar: strings.TrimSpace(getEnv("HEYGEN_DEFAULT_AVATAR", "")),
			Avatars:       loadAvatars(),
			Version:       getEnv("HEYGEN_CFG_VERSION", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if c.LLM.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required")
	}
	if c.LLM.ModelMain == "" {
		return fmt.Errorf("OPENAI_MODEL_MAIN cannot be empty")
	}
	if c.LLM.ResponseTimeout <= 0 {
		return fmt.Errorf("RESPONSE_TIMEOUT_MS must be > 0")
	}
	if c.LLM.MaxTokensMain <= 0 {
		return fmt.Errorf("MAX_TOKENS_MAIN must be > 0")
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("MAX_BODY_BYTES must be > 0")
	}
	if c.MaxMessageLen <= 0 {
		return fmt.Errorf("MAX_MESSAGE_LEN must be > 0")
	}
	if c.MaxHistory <= 0 {
		return fmt.Errorf("MAX_HISTORY must be > 0")
	}
	if c.RateLimit.AskPerMinute <= 0 || c.RateLimit.TokenPerMinute <= 0 {
		return fmt.Errorf("rate limits must be > 0")
	}

	switch c.Memory.Backend {
	case store.BackendFile:
		if c.Memory.DataDir == "" {
			return fmt.Errorf("DATA_DIR cannot be empty")
		}
	case store.BackendSQLite:
		if c.Memory.DBPath == "" {
			return fmt.Errorf("DB_PATH cannot be empty")
		}
	case store.BackendRedis:
		if c.Memory.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR cannot be empty")
		}
		if c.Memory.RedisTTL < 0 {
			return fmt.Errorf("REDIS_TTL must be >= 0")
		}
	default:
		return fmt.Errorf("MEMORY_BACKEND must be one of file, sqlite, redis (got %q)", c.Memory.Backend)
	}
	return nil
}

// UsesDefaultSalt reports whether the placeholder salt is in effect.
func (c *Config) UsesDefaultSalt() bool {
	return c.SecretSalt == DefaultSalt
}

// AgentConfig derives the orchestrator settings.
func (c *Config) AgentConfig() agent.Config {
	return agent.Config{
		ModelMain:       c.LLM.ModelMain,
		ResponseTimeout: c.LLM.ResponseTimeout,
		MaxTokensMain:   c.LLM.MaxTokensMain,
		Temperature:     c.LLM.Temperature,
		TopicLock:       c.LLM.TopicLock,
	}
}

// StoreOptions derives the memory backend options.
func (c *Config) StoreOptions() store.Options {
	return store.Options{
		Backend: c.Memory.Backend,
		DataDir: c.Memory.DataDir,
		DBPath:  c.Memory.DBPath,
		Redis: store.RedisConfig{
			Addr:      c.Memory.RedisAddr,
			Password:  c.Memory.RedisPassword,
			DB:        c.Memory.RedisDB,
			KeyPrefix: c.Memory.RedisPrefix,
			TTL:       c.Memory.RedisTTL,
		},
	}
}

func loadAvatars() map[string]string {
	avatars := make(map[string]string, len(AvatarLanguages))
	for _, lang := range AvatarLanguages {
		if v := strings.TrimSpace(getEnv("HEYGEN_AVATAR_"+strings.ToUpper(lang), "")); v != "" {
			avatars[lang] = v
		}
	}
	return avatars
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return fallback
	}
	return f
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return d
}
