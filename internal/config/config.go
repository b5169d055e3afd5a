package config

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Retry   RetryConfig   `mapstructure:"retry"`
	Breaker BreakerConfig `mapstructure:"breaker"`
	Client  ClientConfig  `mapstructure:"client"`
	Logger  LoggerConfig  `mapstructure:"logger"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// RetryConfig carries the backoff thresholds. These are tunables, not
// contracts; defaults match the library's DefaultPolicy.
type RetryConfig struct {
	MaxRetries  int `mapstructure:"max_retries"`
	BaseDelayMs int `mapstructure:"base_delay_ms"`
	MaxDelayMs  int `mapstructure:"max_delay_ms"`
}

type BreakerConfig struct {
	MaxFailures    int `mapstructure:"max_failures"`
	ResetTimeoutMs int `mapstructure:"reset_timeout_ms"`
}

type ClientConfig struct {
	TimeoutMs int `mapstructure:"timeout_ms"`
}

type LoggerConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type Manager interface {
	Load(configPath string) (*Config, error)
	Reload() error
	GetConfig() *Config
}
