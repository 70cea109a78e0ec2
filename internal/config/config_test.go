package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"ENV", "OPENAI_API_KEY", "NAVER_API_KEY", "BATCH_SIZE", "MAX_RETRIES", "RETRY_BASE_DELAY", "DEFAULT_MODEL", "INSIGHT_MODEL", "MAX_CONCURRENT_BATCHES"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "gpt-5-nano", cfg.DefaultModel)
	assert.Equal(t, "gpt-4.1", cfg.InsightModel)
	assert.Equal(t, 50, cfg.BatchSize)
	assert.Equal(t, 2, cfg.MaxRetries)
	assert.Equal(t, time.Second, cfg.RetryBaseDelay)
	assert.Equal(t, 0, cfg.MaxConcurrentBatches)
	assert.False(t, cfg.HasOpenAI())
	assert.False(t, cfg.HasNaver())
	assert.True(t, cfg.IsDev())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("NAVER_API_KEY", "key")
	t.Setenv("NAVER_SECRET_KEY", "secret")
	t.Setenv("NAVER_CUSTOMER_ID", "123")
	t.Setenv("BATCH_SIZE", "20")
	t.Setenv("MAX_RETRIES", "not-a-number")
	t.Setenv("RETRY_BASE_DELAY", "250ms")
	t.Setenv("ENV", "production")

	cfg := Load()
	assert.True(t, cfg.HasOpenAI())
	assert.True(t, cfg.HasNaver())
	assert.Equal(t, 20, cfg.BatchSize)
	assert.Equal(t, 2, cfg.MaxRetries)
	assert.Equal(t, 250*time.Millisecond, cfg.RetryBaseDelay)
	assert.False(t, cfg.IsDev())
}

func TestHasNaver_RequiresAllThree(t *testing.T) {
	cfg := &Config{NaverAPIKey: "key", NaverSecretKey: "secret"}
	assert.False(t, cfg.HasNaver())
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("KJ_TEST_DOTENV=from-file\nKJ_TEST_PRESET=from-file\n"), 0o600))
	t.Setenv("KJ_TEST_PRESET", "from-env")
	t.Cleanup(func() { os.Unsetenv("KJ_TEST_DOTENV") })

	assert.True(t, LoadDotEnv(filepath.Join(dir, "missing.env"), path))
	assert.Equal(t, "from-file", os.Getenv("KJ_TEST_DOTENV"))
	assert.Equal(t, "from-env", os.Getenv("KJ_TEST_PRESET"))

	assert.False(t, LoadDotEnv(filepath.Join(dir, "missing.env")))
}

func TestParseYAMLConfig(t *testing.T) {
	data := []byte(`
models:
  - value: gpt-4.1-mini
    label: GPT-4.1 Mini
dummy_rules:
  - stage: 구매 행동
    contains: [쿠폰, 예약]
classifier:
  batch_size: 25
  max_retries: 0
  max_concurrency: 4
  retry_base_delay: 500ms
`)
	y, err := ParseYAMLConfig(data)
	require.NoError(t, err)
	assert.Equal(t, []ModelConfig{{Value: "gpt-4.1-mini", Label: "GPT-4.1 Mini"}}, y.GetModels())
	require.Len(t, y.GetDummyRules(), 1)
	assert.Equal(t, []string{"쿠폰", "예약"}, y.GetDummyRules()[0].Contains)

	cfg := &Config{BatchSize: 50, MaxRetries: 2, RetryBaseDelay: time.Second}
	y.Apply(cfg)
	assert.Equal(t, 25, cfg.BatchSize)
	assert.Equal(t, 0, cfg.MaxRetries)
	assert.Equal(t, 4, cfg.MaxConcurrentBatches)
	assert.Equal(t, 500*time.Millisecond, cfg.RetryBaseDelay)
	assert.Same(t, y, cfg.YAML)
}

func TestYAMLConfig_NilDefaults(t *testing.T) {
	var y *YAMLConfig
	assert.Equal(t, DefaultModels, y.GetModels())
	assert.Nil(t, y.GetDummyRules())

	cfg := &Config{BatchSize: 50}
	y.Apply(cfg)
	assert.Equal(t, 50, cfg.BatchSize)
}

func TestLoadYAMLConfig_Missing(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))
	y, err := LoadYAMLConfig()
	assert.NoError(t, err)
	assert.Nil(t, y)
}

func TestParseYAMLConfig_Invalid(t *testing.T) {
	_, err := ParseYAMLConfig([]byte("models: [unterminated"))
	assert.Error(t, err)
}
