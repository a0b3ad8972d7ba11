// internal/common/config/config.go
package config

// Config is the main application configuration struct.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Server  ServerConfig  `mapstructure:"server"`
	Gemini  GeminiConfig  `mapstructure:"gemini"`
	Limits  LimitsConfig  `mapstructure:"limits"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Port            int `mapstructure:"port"`
	ShutdownTimeout int `mapstructure:"shutdown_timeout"` // milliseconds
}

// GeminiConfig holds the generative-model client settings. APIKey is the
// only required credential in the system; its absence is surfaced as a
// first-class "not configured" error, never a panic.
type GeminiConfig struct {
	APIKey       string  `mapstructure:"api_key"`
	BaseURL      string  `mapstructure:"base_url"`
	Model        string  `mapstructure:"model"`
	MaxTokens    int     `mapstructure:"max_tokens"`
	Temperature  float64 `mapstructure:"temperature"`
	MaxAttempts  int     `mapstructure:"max_attempts"`  // per request, rate-limit retries included
	RetryBackoff int     `mapstructure:"retry_backoff"` // milliseconds, fixed delay between attempts
}

// LimitsConfig bounds caller input before any network call.
type LimitsConfig struct {
	IdeaMaxChars   int   `mapstructure:"idea_max_chars"`
	UploadMaxBytes int64 `mapstructure:"upload_max_bytes"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
