package testsupport

import (
	"path/filepath"
	"testing"

	"summarizer/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.LLM.APIKey = "test"

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithMaxRetainedMessages overrides the conversation retention bound.
func WithMaxRetainedMessages(n int) ConfigOption {
	return func(c *config.Config) {
		c.Summarization.MaxRetainedMessages = n
	}
}

// WithSystemPrompt overrides the default system prompt.
func WithSystemPrompt(prompt string) ConfigOption {
	return func(c *config.Config) {
		c.Summarization.SystemPrompt = prompt
	}
}
