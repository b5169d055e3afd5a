package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"

	"resilience-go/internal/config"
	"resilience-go/internal/handler"
	"resilience-go/pkg/httpclient"
	"resilience-go/pkg/logger"
	"resilience-go/pkg/retry"
	"resilience-go/pkg/tracker"
)

func main() {
	configPath := flag.String("config", "config/dev.yaml", "Configuration file path")
	flag.Parse()

	if err := run(*configPath); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func run(configPath string) error {
	mgr := config.NewManager()
	cfg, err := mgr.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger.SetLogger(logger.New(logger.Config{
		Level:  cfg.Logger.Level,
		Format: cfg.Logger.Format,
	}))
	srvLog := logger.GetLogger().WithField("component", "server")

	registry := prometheus.NewRegistry()
	tr := tracker.NewWithMetrics(registry)

	exec := retry.NewExecutor(retry.Policy{
		MaxRetries: cfg.Retry.MaxRetries,
		BaseDelay:  time.Duration(cfg.Retry.BaseDelayMs) * time.Millisecond,
		MaxDelay:   time.Duration(cfg.Retry.MaxDelayMs) * time.Millisecond,
	}, tr)
	client := httpclient.New(exec, httpclient.Config{
		Timeout:      time.Duration(cfg.Client.TimeoutMs) * time.Millisecond,
		MaxFailures:  cfg.Breaker.MaxFailures,
		ResetTimeout: time.Duration(cfg.Breaker.ResetTimeoutMs) * time.Millisecond,
	})

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	handler.NewController(tr, registry, client).Register(app)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	errChan := make(chan error, 1)
	go func() {
		errChan <- app.Listen(addr)
	}()
	srvLog.WithField("addr", addr).Info("Ops server started")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case <-sigChan:
		srvLog.Info("Shutdown signal received")
	}

	return app.ShutdownWithTimeout(5 * time.Second)
}
