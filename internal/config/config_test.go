package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Empty(t, cfg.AllowedOrigins)
	assert.True(t, cfg.TrustProxy)
	assert.EqualValues(t, 8192, cfg.MaxBodyBytes)
	assert.Equal(t, 1000, cfg.MaxMessageLen)
	assert.Equal(t, 10, cfg.MaxHistory)
	assert.True(t, cfg.UsesDefaultSalt())

	assert.Equal(t, "file", cfg.Memory.Backend)
	assert.Equal(t, "./data", cfg.Memory.DataDir)
	assert.Equal(t, "guide:mem:", cfg.Memory.RedisPrefix)
	assert.Zero(t, cfg.Memory.RedisTTL)

	assert.Equal(t, "https://api.openai.com", cfg.LLM.BaseURL)
	assert.Equal(t, "gpt-4o", cfg.LLM.ModelMain)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.ModelBible)
	assert.Equal(t, 12*time.Second, cfg.LLM.ResponseTimeout)
	assert.Equal(t, 220, cfg.LLM.MaxTokensMain)
	assert.InDelta(t, 0.6, cfg.LLM.Temperature, 1e-9)
	assert.True(t, cfg.LLM.TopicLock)

	assert.Equal(t, 60, cfg.RateLimit.AskPerMinute)
	assert.Equal(t, 10, cfg.RateLimit.TokenPerMinute)
	assert.Empty(t, cfg.HeyGen.Avatars)
}

func TestLoadRequiresAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example,,")
	t.Setenv("MEMORY_BACKEND", "SQLite")
	t.Setenv("DB_PATH", "/tmp/x.db")
	t.Setenv("RESPONSE_TIMEOUT_MS", "2500")
	t.Setenv("OPENAI_BASE_URL", "http://localhost:9999/")
	t.Setenv("TEMPERATURE", "not-a-number")
	t.Setenv("SECRET_SALT", "pepper")
	t.Setenv("HEYGEN_TOKEN", "hg-fallback")
	t.Setenv("HEYGEN_AVATAR_EN", "avatar-en")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, "sqlite", cfg.Memory.Backend)
	assert.Equal(t, 2500*time.Millisecond, cfg.LLM.ResponseTimeout)
	assert.Equal(t, "http://localhost:9999", cfg.LLM.BaseURL)
	assert.InDelta(t, 0.6, cfg.LLM.Temperature, 1e-9)
	assert.False(t, cfg.UsesDefaultSalt())
	assert.Equal(t, "hg-fallback", cfg.HeyGen.APIKey)
	assert.Equal(t, map[string]string{"en": "avatar-en"}, cfg.HeyGen.Avatars)

	opts := cfg.StoreOptions()
	assert.Equal(t, "sqlite", opts.Backend)
	assert.Equal(t, "/tmp/x.db", opts.DBPath)
}

func TestTopicLockOnlyDisabledByLiteralFalse(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"false", false},
		{"0", true},
		{"no", true},
		{"FALSE", true},
		{"true", true},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("OPENAI_API_KEY", "sk-test")
			t.Setenv("ENABLE_TOPIC_LOCK", tt.value)
			cfg, err := Load()
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.LLM.TopicLock)
			assert.Equal(t, tt.want, cfg.AgentConfig().TopicLock)
		})
	}
}

func TestValidateRejectsUnknownBackend(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("MEMORY_BACKEND", "etcd")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MEMORY_BACKEND")
}

func TestAgentConfig(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("MAX_TOKENS_MAIN", "300")

	cfg, err := Load()
	require.NoError(t, err)

	ac := cfg.AgentConfig()
	assert.Equal(t, "gpt-4o", ac.ModelMain)
	assert.Equal(t, 300, ac.MaxTokensMain)
	assert.Equal(t, 12*time.Second, ac.ResponseTimeout)
}

func TestRedisTTL(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("MEMORY_BACKEND", "redis")
	t.Setenv("REDIS_TTL", "720h")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 720*time.Hour, cfg.Memory.RedisTTL)
	assert.Equal(t, 720*time.Hour, cfg.StoreOptions().Redis.TTL)

	t.Setenv("REDIS_TTL", "-1h")
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REDIS_TTL")
}

func TestValidateRejectsNonPositiveMaxHistory(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("MAX_HISTORY", "0")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAX_HISTORY")
}
