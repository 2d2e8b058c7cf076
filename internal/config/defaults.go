package config

// DefaultSystemPrompt anchors every conversation context and is never evicted
// by truncation.
const DefaultSystemPrompt = "You are a summarization assistant."

const (
	defaultDataDir             = "~/.local/share/summarizer"
	defaultLogDir              = "~/.local/share/summarizer/logs"
	defaultLLMBaseURL          = "https://api.openai.com/v1/chat/completions"
	defaultLLMModel            = "gpt-4"
	defaultLLMTimeoutSeconds   = 120
	defaultMaxRetainedMessages = 10
	defaultMaxSourceChars      = 8000
	defaultTemperature         = 0.3
	defaultLogLevel            = "info"
	defaultLogFormat           = "console"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		LLM: LLM{
			BaseURL:        defaultLLMBaseURL,
			Model:          defaultLLMModel,
			TimeoutSeconds: defaultLLMTimeoutSeconds,
		},
		Summarization: Summarization{
			SystemPrompt:        DefaultSystemPrompt,
			MaxRetainedMessages: defaultMaxRetainedMessages,
			MaxSourceChars:      defaultMaxSourceChars,
			Temperature:         defaultTemperature,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
