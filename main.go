package main

import (
	"context"
	"flag"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"resilience-go/pkg/failure"
	"resilience-go/pkg/httpclient"
	"resilience-go/pkg/logger"
	"resilience-go/pkg/retry"
	"resilience-go/pkg/tracker"
)

// getEnvOrDefault returns environment variable value or default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvIntOrDefault returns environment variable as int or default
func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func main() {
	defaultURLs := getEnvOrDefault("PROBE_URLS", "")
	defaultRetries := getEnvIntOrDefault("PROBE_MAX_RETRIES", 3)
	defaultDelayMs := getEnvIntOrDefault("PROBE_BASE_DELAY_MS", 100)

	urls := flag.String("urls", defaultURLs, "Comma-separated URLs to probe")
	maxRetries := flag.Int("max-retries", defaultRetries, "Maximum retries per URL")
	baseDelayMs := flag.Int("base-delay-ms", defaultDelayMs, "Initial backoff delay in milliseconds")
	debug := flag.Bool("debug", os.Getenv("DEBUG") == "true", "Enable debug logging")
	flag.Parse()

	if *urls == "" {
		fmt.Println("Usage: resilience-go -urls=https://example.com,https://example.org")
		fmt.Println("Probes each URL through the retry executor and prints the terminal outcome.")
		os.Exit(1)
	}

	level := "info"
	if *debug {
		level = "debug"
	}
	logger.SetLogger(logger.New(logger.Config{Level: level, Format: "console"}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tr := tracker.New()
	exec := retry.NewExecutor(retry.Policy{
		MaxRetries: *maxRetries,
		BaseDelay:  time.Duration(*baseDelayMs) * time.Millisecond,
		MaxDelay:   10 * time.Second,
	}, tr, retry.WithOnRetry(func(attempt int, f *failure.Failure) {
		fmt.Printf("  retry %d after %s failure: %s\n", attempt, f.Category, f.Message)
	}))
	client := httpclient.New(exec, httpclient.Config{
		Timeout:      15 * time.Second,
		MaxFailures:  5,
		ResetTimeout: 30 * time.Second,
	})

	for _, target := range strings.Split(*urls, ",") {
		target = strings.TrimSpace(target)
		if target == "" {
			continue
		}

		fmt.Printf("Probing %s\n", target)
		body, err := client.Get(ctx, probeContext(target), target)
		if err != nil {
			f := failure.FromError(err, probeContext(target))
			action := f.Category.TerminalAction()
			fmt.Printf("  FAILED [%s -> %s]: %s\n", f.Category, action, action.UserMessage())
			continue
		}
		fmt.Printf("  OK (%d bytes)\n", len(body))
	}

	printSummary(tr)
}

// probeContext derives a stable operation context key from the target URL.
func probeContext(target string) string {
	if u, err := url.Parse(target); err == nil && u.Host != "" {
		return "probe:" + u.Host
	}
	return "probe:" + target
}

func printSummary(tr *tracker.Tracker) {
	records := tr.Log()
	if len(records) == 0 {
		fmt.Println("\nNo failures observed")
		return
	}

	fmt.Printf("\nObserved %d failure(s):\n", len(records))
	for _, r := range records {
		fmt.Printf("  %s  %-14s %-24s %s\n",
			r.OccurredAt.Format(time.TimeOnly), r.Category, r.Context, r.Message)
	}
}
