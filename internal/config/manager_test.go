package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestManager_Load(t *testing.T) {
	path := writeConfig(t, `
server:
  host: 127.0.0.1
  port: 9090
retry:
  max_retries: 5
  base_delay_ms: 50
  max_delay_ms: 2000
`)

	mgr := NewManager()
	cfg, err := mgr.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("server port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Retry.MaxRetries != 5 {
		t.Errorf("max_retries = %d, want 5", cfg.Retry.MaxRetries)
	}
	if cfg.Retry.BaseDelayMs != 50 {
		t.Errorf("base_delay_ms = %d, want 50", cfg.Retry.BaseDelayMs)
	}

	if mgr.GetConfig() != cfg {
		t.Error("GetConfig should return the loaded config")
	}
}

func TestManager_Defaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8081
`)

	mgr := NewManager()
	cfg, err := mgr.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Retry.MaxRetries != 3 {
		t.Errorf("default max_retries = %d, want 3", cfg.Retry.MaxRetries)
	}
	if cfg.Retry.BaseDelayMs != 100 {
		t.Errorf("default base_delay_ms = %d, want 100", cfg.Retry.BaseDelayMs)
	}
	if cfg.Breaker.MaxFailures != 5 {
		t.Errorf("default max_failures = %d, want 5", cfg.Breaker.MaxFailures)
	}
	if cfg.Logger.Level != "info" {
		t.Errorf("default logger level = %q, want info", cfg.Logger.Level)
	}
}

func TestManager_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "invalid port",
			content: `
server:
  port: -1
`,
		},
		{
			name: "negative max_retries",
			content: `
retry:
  max_retries: -2
`,
		},
		{
			name: "zero base delay",
			content: `
retry:
  base_delay_ms: 0
`,
		},
		{
			name: "cap below base delay",
			content: `
retry:
  base_delay_ms: 500
  max_delay_ms: 100
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			if _, err := NewManager().Load(path); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestManager_ReloadBeforeLoad(t *testing.T) {
	if err := NewManager().Reload(); err == nil {
		t.Error("expected error reloading before load")
	}
}
