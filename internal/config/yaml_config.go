package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// YAMLConfig represents the structure of the config.yaml file.
// Lists and rule tables that are awkward to express as env vars live here.
type YAMLConfig struct {
	Models     []ModelConfig     `yaml:"models"`
	DummyRules []DummyRuleConfig `yaml:"dummy_rules"`
	Classifier ClassifierConfig  `yaml:"classifier"`
}

// ModelConfig is one selectable classification model.
type ModelConfig struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
}

// DummyRuleConfig maps keyword substrings to a stage label for dummy mode.
type DummyRuleConfig struct {
	Stage    string   `yaml:"stage"`
	Contains []string `yaml:"contains"`
}

// ClassifierConfig overrides classifier tuning. Zero values keep the env settings.
type ClassifierConfig struct {
	BatchSize      int    `yaml:"batch_size,omitempty"`
	MaxRetries     *int   `yaml:"max_retries,omitempty"`
	MaxConcurrency int    `yaml:"max_concurrency,omitempty"`
	RetryBaseDelay string `yaml:"retry_base_delay,omitempty"`
}

// DefaultModels is the model picker shown when no YAML list is configured.
var DefaultModels = []ModelConfig{
	{Value: "gpt-5", Label: "GPT-5"},
	{Value: "gpt-5-mini", Label: "GPT-5 Mini"},
	{Value: "gpt-5-nano", Label: "GPT-5 Nano"},
	{Value: "gpt-4.1", Label: "GPT-4.1"},
}

// LoadYAMLConfig loads the YAML configuration file.
// Path is determined by CONFIG_FILE env var, defaulting to "config.yaml".
// Returns nil without error if the config file doesn't exist.
func LoadYAMLConfig() (*YAMLConfig, error) {
	path := getEnv("CONFIG_FILE", "config.yaml")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	return ParseYAMLConfig(data)
}

// ParseYAMLConfig decodes a YAML document and applies defaults.
func ParseYAMLConfig(data []byte) (*YAMLConfig, error) {
	var cfg YAMLConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if len(cfg.Models) == 0 {
		cfg.Models = DefaultModels
	}

	return &cfg, nil
}

// GetModels returns the configured model list, or the defaults.
func (c *YAMLConfig) GetModels() []ModelConfig {
	if c == nil || len(c.Models) == 0 {
		return DefaultModels
	}
	return c.Models
}

// GetDummyRules returns the configured dummy rule table, or nil to use the built-in one.
func (c *YAMLConfig) GetDummyRules() []DummyRuleConfig {
	if c == nil {
		return nil
	}
	return c.DummyRules
}

// Apply folds classifier overrides from YAML into cfg.
func (c *YAMLConfig) Apply(cfg *Config) {
	if c == nil || cfg == nil {
		return
	}
	cfg.YAML = c
	if c.Classifier.BatchSize > 0 {
		cfg.BatchSize = c.Classifier.BatchSize
	}
	if c.Classifier.MaxRetries != nil && *c.Classifier.MaxRetries >= 0 {
		cfg.MaxRetries = *c.Classifier.MaxRetries
	}
	if c.Classifier.MaxConcurrency > 0 {
		cfg.MaxConcurrentBatches = c.Classifier.MaxConcurrency
	}
	if c.Classifier.RetryBaseDelay != "" {
		if d, err := time.ParseDuration(c.Classifier.RetryBaseDelay); err == nil {
			cfg.RetryBaseDelay = d
		}
	}
}
