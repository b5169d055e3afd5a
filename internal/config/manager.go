package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

type manager struct {
	mu     sync.RWMutex
	config *Config
	viper  *viper.Viper
}

func NewManager() Manager {
	return &manager{
		viper: viper.New(),
	}
}

func (m *manager) Load(configPath string) (*Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setupViper(configPath)

	if err := m.viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	config, err := m.unmarshal()
	if err != nil {
		return nil, err
	}

	m.config = config
	return config, nil
}

func (m *manager) Reload() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.config == nil {
		return fmt.Errorf("config not loaded")
	}

	if err := m.viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to reload config: %w", err)
	}

	config, err := m.unmarshal()
	if err != nil {
		return err
	}

	m.config = config
	return nil
}

func (m *manager) GetConfig() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

func (m *manager) unmarshal() (*Config, error) {
	var config Config
	if err := m.viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &config, nil
}

func (m *manager) setupViper(configPath string) {
	m.viper.SetConfigFile(configPath)

	m.viper.SetEnvPrefix("RESILIENCE")
	m.viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	m.viper.AutomaticEnv()

	m.viper.SetDefault("server.host", "0.0.0.0")
	m.viper.SetDefault("server.port", 8080)
	m.viper.SetDefault("retry.max_retries", 3)
	m.viper.SetDefault("retry.base_delay_ms", 100)
	m.viper.SetDefault("retry.max_delay_ms", 10000)
	m.viper.SetDefault("breaker.max_failures", 5)
	m.viper.SetDefault("breaker.reset_timeout_ms", 30000)
	m.viper.SetDefault("client.timeout_ms", 30000)
	m.viper.SetDefault("logger.level", "info")
	m.viper.SetDefault("logger.format", "json")
}

func validateConfig(config *Config) error {
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	if config.Retry.MaxRetries < 0 {
		return fmt.Errorf("max_retries must not be negative")
	}

	if config.Retry.BaseDelayMs <= 0 {
		return fmt.Errorf("base_delay_ms must be positive")
	}

	if config.Retry.MaxDelayMs > 0 && config.Retry.MaxDelayMs < config.Retry.BaseDelayMs {
		return fmt.Errorf("max_delay_ms must not be below base_delay_ms")
	}

	if config.Client.TimeoutMs <= 0 {
		return fmt.Errorf("timeout_ms must be positive")
	}

	return nil
}
