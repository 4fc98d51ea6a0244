package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/hszk-dev/base-n-shortener/internal/config"
	"github.com/hszk-dev/base-n-shortener/internal/metrics"
	"github.com/hszk-dev/base-n-shortener/internal/shortener"
)

type App struct {
	Service  *shortener.Service
	Registry *prometheus.Registry
	Logger   *slog.Logger
}

func newLogger(cfg config.Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func newApp(cfg config.Config, logw io.Writer) (*App, error) {
	logger := newLogger(cfg, logw)
	reg := prometheus.NewRegistry()

	svc, err := shortener.NewService(cfg.Session(),
		shortener.WithLogger(logger),
		shortener.WithRecorder(metrics.New(reg)),
	)
	if err != nil {
		return nil, err
	}

	return &App{Service: svc, Registry: reg, Logger: logger}, nil
}

// Process shortens longURL, expands the result and checks it round-trips.
func (a *App) Process(longURL string) (string, error) {
	shortURL, err := a.Service.Shorten(longURL)
	if err != nil {
		return "", fmt.Errorf("shorten %q: %w", longURL, err)
	}

	expanded, err := a.Service.Expand(shortURL)
	if err != nil {
		return "", fmt.Errorf("expand %q: %w", shortURL, err)
	}
	if expanded != longURL {
		return "", fmt.Errorf("expand %q returned %q, want %q", shortURL, expanded, longURL)
	}

	return shortURL, nil
}

// WriteMetrics dumps the session metrics in the Prometheus text format.
func (a *App) WriteMetrics(w io.Writer) error {
	families, err := a.Registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	return nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("url-shortener", flag.ContinueOnError)
	fs.SetOutput(stderr)
	showMetrics := fs.Bool("metrics", false, "print session metrics after processing")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	app, err := newApp(config.Load(), stderr)
	if err != nil {
		fmt.Fprintf(stderr, "failed to start: %v\n", err)
		return 1
	}

	urls := fs.Args()
	if len(urls) == 0 {
		scanner := bufio.NewScanner(stdin)
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				urls = append(urls, line)
			}
		}
		if err := scanner.Err(); err != nil {
			fmt.Fprintf(stderr, "failed to read input: %v\n", err)
			return 1
		}
	}

	status := 0
	for _, longURL := range urls {
		shortURL, err := app.Process(longURL)
		if err != nil {
			app.Logger.Error("processing failed", "error", err)
			status = 1
			continue
		}
		fmt.Fprintf(stdout, "%s -> %s\n", longURL, shortURL)
	}

	if *showMetrics {
		if err := app.WriteMetrics(stdout); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
	}

	return status
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
